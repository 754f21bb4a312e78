package mdblog

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// measureImage reads the header of a local image to get its dimensions.
func measureImage(path string) (*Image, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from post front matter
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found: %s", path)
		}
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	return &Image{
		Path:   path,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}
