package img

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/sunshineplan/imgconv"
)

// ToJPEG decodes any supported image format and re-encodes it as JPEG,
// downscaling when the image exceeds maxMPXS megapixels. Post images
// attached to scheduled X posts go through this before hitting disk.
func ToJPEG(imageData []byte, maxMPXS float64) ([]byte, error) {
	img, err := imgconv.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %v", err)
	}

	bounds := img.Bounds()
	width := bounds.Max.X - bounds.Min.X
	height := bounds.Max.Y - bounds.Min.Y
	currentMPXS := float64(width*height) / 1000000.0

	if currentMPXS > maxMPXS {
		ratio := maxMPXS / currentMPXS
		img = imgconv.Resize(img, &imgconv.ResizeOption{
			Width:  int(float64(width) * ratio),
			Height: int(float64(height) * ratio),
		})
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("error encoding JPEG: %v", err)
	}

	return buf.Bytes(), nil
}
