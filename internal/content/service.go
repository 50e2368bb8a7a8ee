package content

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("content entry not found")
	ErrVersionConflict = errors.New("entry changed since you loaded it, reload and retry")
	ErrMissingFields   = errors.New("required fields are missing")
	ErrDuplicateSlug   = errors.New("a section with this slug already exists")
)

type ContentService struct {
	DB *gorm.DB
}

// Public reads return visible entries only, in sort order.

func (cs *ContentService) VisibleSections() ([]ContentSection, error) {
	var out []ContentSection
	err := cs.DB.Where("is_visible = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (cs *ContentService) VisibleFAQs(category string) ([]FAQ, error) {
	q := cs.DB.Where("is_visible = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []FAQ
	err := q.Order("sort_order ASC, id ASC").Find(&out).Error
	return out, err
}

func (cs *ContentService) VisibleDates() ([]ImportantDate, error) {
	var out []ImportantDate
	err := cs.DB.Where("is_visible = ?", true).
		Order("sort_order ASC, happens ASC").
		Find(&out).Error
	return out, err
}

// Admin reads include hidden entries.

func (cs *ContentService) AllSections() ([]ContentSection, error) {
	var out []ContentSection
	err := cs.DB.Order("sort_order ASC, id ASC").Find(&out).Error
	return out, err
}

func (cs *ContentService) AllFAQs() ([]FAQ, error) {
	var out []FAQ
	err := cs.DB.Order("sort_order ASC, id ASC").Find(&out).Error
	return out, err
}

func (cs *ContentService) AllDates() ([]ImportantDate, error) {
	var out []ImportantDate
	err := cs.DB.Order("sort_order ASC, happens ASC").Find(&out).Error
	return out, err
}

func (cs *ContentService) CreateSection(input SectionInput, actorID uint) (*ContentSection, error) {
	slug := strings.TrimSpace(strings.ToLower(input.Slug))
	if slug == "" || strings.TrimSpace(input.Title) == "" {
		return nil, ErrMissingFields
	}

	visible := true
	if input.IsVisible != nil {
		visible = *input.IsVisible
	}

	section := ContentSection{
		Slug:      slug,
		Title:     input.Title,
		Body:      input.Body,
		SortOrder: input.SortOrder,
		IsVisible: visible,
		Version:   1,
		UpdatedBy: &actorID,
	}
	if err := cs.DB.Create(&section).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") ||
			strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return &section, nil
}

func (cs *ContentService) UpdateSection(id uint, input SectionInput, actorID uint) (*ContentSection, error) {
	var section ContentSection
	if err := cs.DB.First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"version":    input.Version + 1,
		"updated_by": actorID,
	}
	if strings.TrimSpace(input.Title) != "" {
		updates["title"] = input.Title
	}
	updates["body"] = input.Body
	updates["sort_order"] = input.SortOrder
	if input.IsVisible != nil {
		updates["is_visible"] = *input.IsVisible
	}

	res := cs.DB.Model(&ContentSection{}).
		Where("id = ? AND version = ?", id, input.Version).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	if err := cs.DB.First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (cs *ContentService) DeleteSection(id uint) error {
	res := cs.DB.Delete(&ContentSection{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (cs *ContentService) CreateFAQ(input FAQInput, actorID uint) (*FAQ, error) {
	if strings.TrimSpace(input.Question) == "" || strings.TrimSpace(input.Answer) == "" {
		return nil, ErrMissingFields
	}

	visible := true
	if input.IsVisible != nil {
		visible = *input.IsVisible
	}

	faq := FAQ{
		Question:  input.Question,
		Answer:    input.Answer,
		Category:  input.Category,
		SortOrder: input.SortOrder,
		IsVisible: visible,
		Version:   1,
		UpdatedBy: &actorID,
	}
	if err := cs.DB.Create(&faq).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

func (cs *ContentService) UpdateFAQ(id uint, input FAQInput, actorID uint) (*FAQ, error) {
	var faq FAQ
	if err := cs.DB.First(&faq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"version":    input.Version + 1,
		"updated_by": actorID,
		"sort_order": input.SortOrder,
		"category":   input.Category,
	}
	if strings.TrimSpace(input.Question) != "" {
		updates["question"] = input.Question
	}
	if strings.TrimSpace(input.Answer) != "" {
		updates["answer"] = input.Answer
	}
	if input.IsVisible != nil {
		updates["is_visible"] = *input.IsVisible
	}

	res := cs.DB.Model(&FAQ{}).
		Where("id = ? AND version = ?", id, input.Version).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	if err := cs.DB.First(&faq, id).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

func (cs *ContentService) DeleteFAQ(id uint) error {
	res := cs.DB.Delete(&FAQ{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (cs *ContentService) CreateDate(input DateInput, actorID uint) (*ImportantDate, error) {
	if strings.TrimSpace(input.Label) == "" || input.Happens == nil {
		return nil, ErrMissingFields
	}

	visible := true
	if input.IsVisible != nil {
		visible = *input.IsVisible
	}

	d := ImportantDate{
		Label:     input.Label,
		Happens:   *input.Happens,
		Details:   input.Details,
		SortOrder: input.SortOrder,
		IsVisible: visible,
		Version:   1,
		UpdatedBy: &actorID,
	}
	if err := cs.DB.Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (cs *ContentService) UpdateDate(id uint, input DateInput, actorID uint) (*ImportantDate, error) {
	var d ImportantDate
	if err := cs.DB.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"version":    input.Version + 1,
		"updated_by": actorID,
		"sort_order": input.SortOrder,
		"details":    input.Details,
	}
	if strings.TrimSpace(input.Label) != "" {
		updates["label"] = input.Label
	}
	if input.Happens != nil {
		updates["happens"] = *input.Happens
	}
	if input.IsVisible != nil {
		updates["is_visible"] = *input.IsVisible
	}

	res := cs.DB.Model(&ImportantDate{}).
		Where("id = ? AND version = ?", id, input.Version).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	if err := cs.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (cs *ContentService) DeleteDate(id uint) error {
	res := cs.DB.Delete(&ImportantDate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
