package dto

type Fidelity string

const (
	FidelityPreview Fidelity = "preview"
	FidelityFull    Fidelity = "full"
)

// Transform is the descriptor sent to the external image service.
type Transform struct {
	Quality  int    `json:"quality"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	CropMode string `json:"crop_mode"`
	Focus    string `json:"focus"`
}
