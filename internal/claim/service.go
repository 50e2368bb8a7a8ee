package claim

import (
	"errors"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

var (
	ErrClaimNotFound = errors.New("claim code not found")
	ErrClaimUsed     = errors.New("this claim code has already been used")
	ErrClaimInactive = errors.New("this claim code is no longer active")
	ErrClaimExpired  = errors.New("this claim code has expired")
)

// Codes are case-sensitive: both digits and mixed-case letters carry meaning.
const (
	codeAlphabet = "0123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	codeLength   = 7
)

type ClaimService struct {
	DB *gorm.DB
}

// ValidateCode returns the claim when code identifies an active, unused,
// unexpired claim. Otherwise a second, unfiltered lookup discriminates the
// most specific failure: used beats inactive beats expired beats not found.
func (cs *ClaimService) ValidateCode(code string) (*Claim, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrClaimNotFound
	}

	now := time.Now()

	var c Claim
	err := cs.DB.
		Where("code = ? AND is_active = ? AND is_used = ?", code, true, false).
		Where("expires_at IS NULL OR expires_at > ?", now).
		First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Follow-up lookup without the gate filters to name the reason.
	var any Claim
	if err := cs.DB.Where("code = ?", code).First(&any).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}

	switch {
	case any.IsUsed:
		return nil, ErrClaimUsed
	case !any.IsActive:
		return nil, ErrClaimInactive
	case any.ExpiresAt != nil && !any.ExpiresAt.After(now):
		return nil, ErrClaimExpired
	default:
		return nil, ErrClaimNotFound
	}
}

func (cs *ClaimService) GetByCode(code string) (*Claim, error) {
	var c Claim
	if err := cs.DB.Where("code = ?", strings.TrimSpace(code)).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	return &c, nil
}

// MarkUsedTx flips is_used inside the caller's transaction so the flip and
// the final submission land together.
func (cs *ClaimService) MarkUsedTx(tx *gorm.DB, claimID uint) error {
	res := tx.Model(&Claim{}).
		Where("id = ? AND is_used = ?", claimID, false).
		Update("is_used", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrClaimUsed
	}
	return nil
}

func (cs *ClaimService) CreateClaims(count int, title, description string, expiresAt *time.Time, createdBy uint) ([]Claim, error) {
	if count < 1 {
		return nil, errors.New("count must be at least 1")
	}

	created := make([]Claim, 0, count)

	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			code, err := gonanoid.Generate(codeAlphabet, codeLength)
			if err != nil {
				return err
			}

			uid := createdBy
			c := Claim{
				Code:        code,
				Title:       strings.TrimSpace(title),
				Description: strings.TrimSpace(description),
				IsActive:    true,
				ExpiresAt:   expiresAt,
				CreatedBy:   &uid,
			}

			if err := tx.Create(&c).Error; err != nil {
				return err
			}
			created = append(created, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (cs *ClaimService) ListClaims(input ListClaimsInput) ([]Claim, int64, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 || input.PageSize > 200 {
		input.PageSize = 50
	}

	q := cs.DB.Model(&Claim{})

	switch strings.ToLower(strings.TrimSpace(input.Status)) {
	case "", "all":
	case "active":
		q = q.Where("is_active = ? AND is_used = ?", true, false).
			Where("expires_at IS NULL OR expires_at > ?", time.Now())
	case "used":
		q = q.Where("is_used = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	case "expired":
		q = q.Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now())
	default:
		return nil, 0, errors.New("unknown status filter")
	}

	if s := strings.TrimSpace(input.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("code LIKE ? OR title LIKE ?", like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Claim
	if err := q.
		Order("created_at DESC").
		Limit(input.PageSize).
		Offset((input.Page - 1) * input.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (cs *ClaimService) DeactivateClaim(claimID uint) (*Claim, error) {
	var c Claim
	if err := cs.DB.First(&c, claimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}

	if err := cs.DB.Model(&c).Update("is_active", false).Error; err != nil {
		return nil, err
	}

	c.IsActive = false
	return &c, nil
}
