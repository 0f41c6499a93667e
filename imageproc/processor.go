package imageproc

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/userscoders/fileupload/attachment"
)

// Processor applies image transforms to one source image. It implements
// attachment.Processor; each Invoke replaces the working image with the
// operation's result.
type Processor struct {
	img image.Image
}

// New decodes the image at sourcePath and returns a processor over it. Its
// signature matches attachment.ProcessorFactory.
func New(sourcePath string) (attachment.Processor, error) {
	img, err := imaging.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenImage, err)
	}
	return &Processor{img: img}, nil
}

// Invoke applies a named operation with positional arguments.
//
// Supported operations:
//
//	resize(width, height)    scale to the exact dimensions
//	fit(width, height)       scale down to fit within the bounds
//	fill(width, height)      scale and center-crop to fill the bounds
//	crop(width, height)      center-crop without scaling
//	grayscale()
//	blur(sigma)
//	sharpen(sigma)
//	rotate(degrees)          counter-clockwise, transparent background
func (p *Processor) Invoke(op string, args ...any) error {
	switch op {
	case "resize":
		w, h, err := dimensions(op, args)
		if err != nil {
			return err
		}
		p.img = imaging.Resize(p.img, w, h, imaging.Lanczos)
	case "fit":
		w, h, err := dimensions(op, args)
		if err != nil {
			return err
		}
		p.img = imaging.Fit(p.img, w, h, imaging.Lanczos)
	case "fill":
		w, h, err := dimensions(op, args)
		if err != nil {
			return err
		}
		p.img = imaging.Fill(p.img, w, h, imaging.Center, imaging.Lanczos)
	case "crop":
		w, h, err := dimensions(op, args)
		if err != nil {
			return err
		}
		p.img = imaging.CropCenter(p.img, w, h)
	case "grayscale":
		p.img = imaging.Grayscale(p.img)
	case "blur":
		sigma, err := floatArg(op, args, 0)
		if err != nil {
			return err
		}
		p.img = imaging.Blur(p.img, sigma)
	case "sharpen":
		sigma, err := floatArg(op, args, 0)
		if err != nil {
			return err
		}
		p.img = imaging.Sharpen(p.img, sigma)
	case "rotate":
		degrees, err := floatArg(op, args, 0)
		if err != nil {
			return err
		}
		p.img = imaging.Rotate(p.img, degrees, color.Transparent)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	return nil
}

// Save encodes the working image to the destination path, with the output
// format chosen by the destination's extension.
func (p *Processor) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSaveImage, err)
	}
	if err := imaging.Save(p.img, path); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSaveImage, err)
	}
	return nil
}

func dimensions(op string, args []any) (int, int, error) {
	w, err := intArg(op, args, 0)
	if err != nil {
		return 0, 0, err
	}
	h, err := intArg(op, args, 1)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// intArg coerces a positional argument to int. Formats parsed from YAML or
// JSON may carry numbers as int, int64 or float64.
func intArg(op string, args []any, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: %s needs at least %d arguments", ErrBadArgs, op, i+1)
	}
	switch v := args[i].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %s argument %d is %T, want integer", ErrBadArgs, op, i, args[i])
	}
}

func floatArg(op string, args []any, i int) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: %s needs at least %d arguments", ErrBadArgs, op, i+1)
	}
	switch v := args[i].(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: %s argument %d is %T, want number", ErrBadArgs, op, i, args[i])
	}
}
