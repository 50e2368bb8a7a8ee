package claim

import (
	"time"

	"gorm.io/gorm"
)

type ClaimServicePort interface {
	ValidateCode(code string) (*Claim, error)
	GetByCode(code string) (*Claim, error)
	MarkUsedTx(tx *gorm.DB, claimID uint) error

	CreateClaims(count int, title, description string, expiresAt *time.Time, createdBy uint) ([]Claim, error)
	ListClaims(input ListClaimsInput) ([]Claim, int64, error)
	DeactivateClaim(claimID uint) (*Claim, error)
}

// FilingStatus reports whether claim filing is globally open. Implemented by
// the settings service; injected so this package stays decoupled from it.
type FilingStatus interface {
	Current() (enabled bool, message string, err error)
}
