package parser

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// mediaExtent decodes the header of the media part behind a relationship id
// and returns its pixel size in EMU. Zero is returned for unresolvable,
// external or undecodable targets.
func (dr *docReader) mediaExtent(rID string) (cx, cy int64) {
	rel, ok := dr.rels[rID]
	if !ok || rel.external {
		return 0, 0
	}
	f := findZipFile(dr.zr, rel.target)
	if f == nil {
		return 0, 0
	}
	rc, err := f.Open()
	if err != nil {
		return 0, 0
	}
	defer rc.Close()

	cfg, _, err := image.DecodeConfig(rc)
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0
	}
	return PixelsToEMU(cfg.Width), PixelsToEMU(cfg.Height)
}
