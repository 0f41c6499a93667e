package upload

import (
	"fmt"
	"net/http"
)

const defaultMaxMemory = 32 << 20 // 32MB, net/http's own default

// RequestResolver resolves uploads out of an HTTP request's multipart form.
type RequestResolver struct {
	r         *http.Request
	maxMemory int64
}

// RequestOption configures a RequestResolver.
type RequestOption func(*RequestResolver)

// WithMaxMemory sets the in-memory budget for parsing the multipart form;
// larger parts spill to temporary files.
func WithMaxMemory(n int64) RequestOption {
	return func(res *RequestResolver) {
		res.maxMemory = n
	}
}

// NewRequestResolver wraps an HTTP request. The form is parsed lazily on
// the first Resolve call.
func NewRequestResolver(r *http.Request, opts ...RequestOption) *RequestResolver {
	res := &RequestResolver{r: r, maxMemory: defaultMaxMemory}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Resolve returns the upload bound to the named form field, or (nil, nil)
// when the field carries no file.
func (res *RequestResolver) Resolve(attribute string) (Upload, error) {
	if res.r.MultipartForm == nil {
		if err := res.r.ParseMultipartForm(res.maxMemory); err != nil {
			if err == http.ErrNotMultipart {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
	}

	headers := res.r.MultipartForm.File[attribute]
	if len(headers) == 0 {
		return nil, nil
	}
	return NewMultipart(headers[0])
}
