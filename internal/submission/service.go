package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"claims-portal-api/internal/claim"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrAlreadySubmitted = errors.New("a claim has already been submitted for this code")

type SubmissionService struct {
	DB     *gorm.DB
	Claims claim.ClaimServicePort
}

// GetByCode loads the submission state for a claim code. A missing row is
// not an error: the form starts empty.
func (ss *SubmissionService) GetByCode(code string) (*ClaimSubmission, FormPayload, bool, error) {
	cl, err := ss.Claims.GetByCode(code)
	if err != nil {
		return nil, FormPayload{}, false, err
	}

	var sub ClaimSubmission
	err = ss.DB.Where("claim_id = ?", cl.ID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FormPayload{}, false, nil
		}
		return nil, FormPayload{}, false, err
	}

	form, recovered := decodeFormPayload(sub.FormData)
	return &sub, form, recovered, nil
}

// SaveDraft upserts the draft row for a claim. A submitted row is never
// overwritten: a stale autosave arriving after submission is refused.
func (ss *SubmissionService) SaveDraft(code string, form FormPayload) (*ClaimSubmission, error) {
	cl, err := ss.Claims.GetByCode(code)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form payload: %w", err)
	}

	var sub ClaimSubmission

	err = ss.DB.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("claim_id = ?", cl.ID).First(&sub).Error
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			sub = ClaimSubmission{
				ClaimID:            cl.ID,
				Code:               cl.Code,
				FormData:           datatypes.JSON(raw),
				Status:             StatusDraft,
				SelectedCategories: pq.StringArray(form.SelectedCategories()),
			}
			return tx.Create(&sub).Error
		}

		if sub.Status == StatusSubmitted {
			return ErrAlreadySubmitted
		}

		if err := tx.Model(&sub).Updates(map[string]interface{}{
			"form_data":           datatypes.JSON(raw),
			"selected_categories": pq.StringArray(form.SelectedCategories()),
		}).Error; err != nil {
			return err
		}

		sub.FormData = datatypes.JSON(raw)
		sub.SelectedCategories = pq.StringArray(form.SelectedCategories())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

// Submit validates the full form, then writes the submitted row and marks
// the claim used in one transaction. A second submit for the same code
// fails with ErrAlreadySubmitted no matter which check trips first.
func (ss *SubmissionService) Submit(code string, form FormPayload) (*ClaimSubmission, error) {
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	cl, err := ss.Claims.ValidateCode(code)
	if err != nil {
		if errors.Is(err, claim.ErrClaimUsed) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}

	raw, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form payload: %w", err)
	}

	now := time.Now()
	var sub ClaimSubmission

	err = ss.DB.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("claim_id = ?", cl.ID).First(&sub).Error
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			sub = ClaimSubmission{
				ClaimID:            cl.ID,
				Code:               cl.Code,
				FormData:           datatypes.JSON(raw),
				Status:             StatusSubmitted,
				SelectedCategories: pq.StringArray(form.SelectedCategories()),
				SubmittedAt:        &now,
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
		} else {
			if sub.Status == StatusSubmitted {
				return ErrAlreadySubmitted
			}

			if err := tx.Model(&sub).Updates(map[string]interface{}{
				"form_data":           datatypes.JSON(raw),
				"status":              StatusSubmitted,
				"selected_categories": pq.StringArray(form.SelectedCategories()),
				"submitted_at":        now,
			}).Error; err != nil {
				return err
			}

			sub.FormData = datatypes.JSON(raw)
			sub.Status = StatusSubmitted
			sub.SelectedCategories = pq.StringArray(form.SelectedCategories())
			sub.SubmittedAt = &now
		}

		if err := ss.Claims.MarkUsedTx(tx, cl.ID); err != nil {
			if errors.Is(err, claim.ErrClaimUsed) {
				return ErrAlreadySubmitted
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sub, nil
}
