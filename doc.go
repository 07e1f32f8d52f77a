// Package letterart renders video frames and images as colorized
// letter art. Each frame is downscaled to a cell grid, every cell
// becomes one letter from a repeating alphabet drawn in the cell's
// sampled color, and cells darker than a threshold can be suppressed
// so the subject's silhouette floats on empty space.
//
// The package itself is pure Go: it maps cell grids to glyph grids and
// renders them either as ANSI text for a terminal or as RGBA canvases
// for encoding. Opening and writing video files lives in the video
// subpackage, which wraps OpenCV.
package letterart
