package delivery

import (
	"fmt"
	"strings"

	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/internal/entity"
)

// Transformation constants shared with the external image service. Preview
// and full delivery use the same dimensions; only quality differs.
const (
	PreviewQuality = 60
	FullQuality    = 100

	CropMode = "extract"
	Focus    = "center"
)

func BuildTransform(desc entity.VariantDescriptor, fidelity dto.Fidelity) dto.Transform {
	quality := FullQuality
	if fidelity == dto.FidelityPreview {
		quality = PreviewQuality
	}

	return dto.Transform{
		Quality:  quality,
		Width:    desc.Width,
		Height:   desc.Height,
		CropMode: CropMode,
		Focus:    Focus,
	}
}

// TransformPath renders the descriptor in the image service's URL dialect,
// e.g. "tr:q-60,w-1200,h-800,cm-extract,fo-center".
func TransformPath(t dto.Transform) string {
	return fmt.Sprintf("tr:q-%d,w-%d,h-%d,cm-%s,fo-%s", t.Quality, t.Width, t.Height, t.CropMode, t.Focus)
}

func transformURL(endpoint, assetKey string, t dto.Transform) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(endpoint, "/"),
		TransformPath(t),
		strings.TrimLeft(assetKey, "/"),
	)
}
