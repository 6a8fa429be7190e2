package catalog

import "github.com/pixelshop/backend/internal/entity"

// Tier dimensions are fixed constants shared by preview and full delivery.
var tierDimensions = map[entity.ResolutionTier][2]int{
	entity.TierSmall:    {640, 427},
	entity.TierMedium:   {1200, 800},
	entity.TierLarge:    {2400, 1600},
	entity.TierOriginal: {6000, 4000},
}

// Prices in paise per (tier, license).
var variantPrices = map[entity.VariantKey]int64{
	{Tier: entity.TierSmall, License: entity.LicensePersonal}:      199,
	{Tier: entity.TierMedium, License: entity.LicensePersonal}:     499,
	{Tier: entity.TierLarge, License: entity.LicensePersonal}:      999,
	{Tier: entity.TierOriginal, License: entity.LicensePersonal}:   1999,
	{Tier: entity.TierSmall, License: entity.LicenseCommercial}:    499,
	{Tier: entity.TierMedium, License: entity.LicenseCommercial}:   1249,
	{Tier: entity.TierLarge, License: entity.LicenseCommercial}:    2499,
	{Tier: entity.TierOriginal, License: entity.LicenseCommercial}: 4999,
}

var licenseTerms = map[entity.LicenseType]string{
	entity.LicensePersonal:   "Personal, non-commercial use only",
	entity.LicenseCommercial: "Commercial use, unlimited impressions",
}

// Descriptor is the pure catalog mapping: every valid key resolves to exactly
// one descriptor; an unknown key is a lookup failure, never a default.
func Descriptor(key entity.VariantKey) (entity.VariantDescriptor, bool) {
	dims, ok := tierDimensions[key.Tier]
	if !ok {
		return entity.VariantDescriptor{}, false
	}

	price, ok := variantPrices[key]
	if !ok {
		return entity.VariantDescriptor{}, false
	}

	return entity.VariantDescriptor{
		Tier:    key.Tier,
		License: key.License,
		Width:   dims[0],
		Height:  dims[1],
		Price:   price,
		Terms:   licenseTerms[key.License],
	}, true
}

func tiers() []entity.ResolutionTier {
	return []entity.ResolutionTier{
		entity.TierSmall,
		entity.TierMedium,
		entity.TierLarge,
		entity.TierOriginal,
	}
}
