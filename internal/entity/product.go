package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID uuid.UUID `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// AssetKey is the master object's path in the external asset service.
	AssetKey string `json:"asset_key"`

	Licenses []LicenseType `json:"licenses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) Offers(license LicenseType) bool {
	for _, l := range p.Licenses {
		if l == license {
			return true
		}
	}
	return false
}
