package letterart

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Adjust collects the optional tone adjustments applied to still
// images and GIF frames before downscaling. The zero value leaves the
// image untouched. Video frames are not adjusted; they go straight
// from decode to downscale.
type Adjust struct {
	Gamma      float64 // 1.0 (or 0, unset) leaves the image unchanged
	Brightness float64 // percentage, -100 to 100
	Contrast   float64 // percentage, -100 to 100
	Sharpen    float64 // 0 leaves the image unchanged
	Invert     bool
}

// Apply runs the configured adjustments in order: gamma, brightness,
// sharpen, contrast, invert. Adjustments left at their zero value are
// skipped.
func (a Adjust) Apply(img image.Image) image.Image {
	if a.Gamma != 0 && a.Gamma != 1.0 {
		img = imaging.AdjustGamma(img, a.Gamma)
	}
	if a.Brightness != 0 {
		img = imaging.AdjustBrightness(img, a.Brightness)
	}
	if a.Sharpen != 0 {
		img = imaging.Sharpen(img, a.Sharpen)
	}
	if a.Contrast != 0 {
		img = imaging.AdjustContrast(img, a.Contrast)
	}
	if a.Invert {
		img = imaging.Invert(img)
	}
	return img
}

// OpenImage decodes the image file at the given path, applying any
// EXIF orientation so photos come out upright.
func OpenImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return img, nil
}

// SaveImage writes an image to the given path, with the format chosen
// by the file extension.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save image %s: %w", path, err)
	}
	return nil
}
