// Package imageproc implements the attachment processor interface for
// images, backed by github.com/disintegration/imaging. Pass New as the
// processor factory to apply per-format transforms like resize or fill.
package imageproc
