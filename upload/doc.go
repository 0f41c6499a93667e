// Package upload abstracts uploaded source files for the attachment
// manager.
//
// An Upload provides a readable temporary location, a reported extension,
// and a non-destructive SaveAs. Two implementations are included: Multipart
// over a form file header, and Disk over an existing file. A Resolver
// fetches the upload bound to an entity attribute from the form layer;
// RequestResolver does so from an *http.Request.
package upload
