package entity

type ResolutionTier string

const (
	TierSmall    ResolutionTier = "small"
	TierMedium   ResolutionTier = "medium"
	TierLarge    ResolutionTier = "large"
	TierOriginal ResolutionTier = "original"
)

type LicenseType string

const (
	LicensePersonal   LicenseType = "personal"
	LicenseCommercial LicenseType = "commercial"
)

func ParseResolutionTier(s string) (ResolutionTier, bool) {
	switch ResolutionTier(s) {
	case TierSmall, TierMedium, TierLarge, TierOriginal:
		return ResolutionTier(s), true
	}
	return "", false
}

func ParseLicenseType(s string) (LicenseType, bool) {
	switch LicenseType(s) {
	case LicensePersonal, LicenseCommercial:
		return LicenseType(s), true
	}
	return "", false
}

// VariantKey selects one purchasable form of a product.
type VariantKey struct {
	Tier    ResolutionTier `json:"tier"`
	License LicenseType    `json:"license"`
}

// VariantDescriptor is the priced, dimensioned form a VariantKey resolves to.
// Price is in minor currency units (paise).
type VariantDescriptor struct {
	Tier    ResolutionTier `json:"tier"`
	License LicenseType    `json:"license"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Price   int64          `json:"price"`
	Terms   string         `json:"terms"`
}
