package document

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"claims-portal-api/internal/claim"
	"claims-portal-api/internal/submission"
	"claims-portal-api/internal/util"

	"gorm.io/gorm"
)

const (
	maxUploadBytes = 10 << 20
	signedURLTTL   = 15 * time.Minute
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrFileTooLarge     = fmt.Errorf("file exceeds the %dMB limit", maxUploadBytes>>20)
	ErrFileTypeBlocked  = errors.New("file type is not allowed")
	ErrBadCategory      = errors.New("unknown harm category")
)

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".heic": "image/heic",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// Storage calls go through package vars so tests can run without a bucket.
var (
	uploadToGCS     = util.UploadBytesToGCS
	deleteFromGCS   = util.DeleteGCSObject
	signGCSURL      = util.SignedGCSURL
	deleteGCSPrefix = util.DeleteGCSPrefix
)

type DocumentService struct {
	DB     *gorm.DB
	Claims claim.ClaimServicePort
	Bucket string
}

// Upload stores one supporting file for a claim. The claim only has to
// exist; uploads keep working on a code whose submission is still a draft.
func (ds *DocumentService) Upload(code, category string, fh *multipart.FileHeader) (*ClaimDocument, error) {
	if !submission.ValidCategory(category) {
		return nil, ErrBadCategory
	}

	cl, err := ds.Claims.GetByCode(code)
	if err != nil {
		return nil, err
	}

	if fh.Size > maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	ext := util.ExtFromFilenameOrMime(fh.Filename, fh.Header.Get("Content-Type"))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return nil, ErrFileTypeBlocked
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(data) > maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	base := util.SafeBaseName(fh.Filename)
	objectPath := fmt.Sprintf("claims/%s/%s/%d_%s%s",
		cl.Code, category, time.Now().UnixNano(), base, ext)

	if _, _, err := uploadToGCS(data, contentType, ds.Bucket, objectPath); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc := ClaimDocument{
		Code:         cl.Code,
		Category:     category,
		OriginalName: fh.Filename,
		ObjectPath:   objectPath,
		ContentType:  contentType,
		SizeBytes:    int64(len(data)),
	}
	if err := ds.DB.Create(&doc).Error; err != nil {
		// orphaned object, best effort cleanup
		_ = deleteFromGCS(ds.Bucket, objectPath)
		return nil, err
	}

	return &doc, nil
}

// ListByCode returns the live documents for a code grouped by harm category.
func (ds *DocumentService) ListByCode(code string) (map[string][]DocumentView, error) {
	cl, err := ds.Claims.GetByCode(code)
	if err != nil {
		return nil, err
	}

	var docs []ClaimDocument
	if err := ds.DB.
		Where("code = ? AND is_deleted = ?", cl.Code, false).
		Order("created_at ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}

	grouped := make(map[string][]DocumentView)
	for _, d := range docs {
		grouped[d.Category] = append(grouped[d.Category], DocumentView{
			ID:           d.ID,
			Category:     d.Category,
			OriginalName: d.OriginalName,
			ContentType:  d.ContentType,
			SizeBytes:    d.SizeBytes,
			CreatedAt:    d.CreatedAt,
		})
	}
	return grouped, nil
}

func (ds *DocumentService) getLive(code string, docID uint) (*ClaimDocument, error) {
	var doc ClaimDocument
	err := ds.DB.
		Where("id = ? AND code = ? AND is_deleted = ?", docID, code, false).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// SignedURL mints a short lived view link for the claimant's own document.
func (ds *DocumentService) SignedURL(code string, docID uint) (*SignedURLResponse, error) {
	doc, err := ds.getLive(code, docID)
	if err != nil {
		return nil, err
	}

	url, err := signGCSURL(ds.Bucket, doc.ObjectPath, signedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign url: %w", err)
	}

	return &SignedURLResponse{
		URL:         url,
		PreviewKind: previewKind(doc.ContentType),
		ExpiresIn:   int(signedURLTTL.Seconds()),
	}, nil
}

func previewKind(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case contentType == "application/pdf":
		return "pdf"
	case strings.HasPrefix(contentType, "text/"):
		return "text"
	}
	return "other"
}

// SoftDelete hides the row and removes the object best effort. A storage
// failure never blocks the delete: the row is already gone from the UI and
// the object can be swept later.
func (ds *DocumentService) SoftDelete(code string, docID uint) (*ClaimDocument, error) {
	doc, err := ds.getLive(code, docID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := ds.DB.Model(doc).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error; err != nil {
		return nil, err
	}
	doc.IsDeleted = true
	doc.DeletedAt = &now

	_ = deleteFromGCS(ds.Bucket, doc.ObjectPath)

	return doc, nil
}

// PurgeCode hard-deletes every document row for a code and sweeps the whole
// storage folder, soft-deleted leftovers included. Used after a claim is
// fully resolved and its files must not be retained.
func (ds *DocumentService) PurgeCode(code string) (int64, error) {
	res := ds.DB.Where("code = ?", code).Delete(&ClaimDocument{})
	if res.Error != nil {
		return 0, res.Error
	}

	if err := deleteGCSPrefix(ds.Bucket, fmt.Sprintf("claims/%s/", code)); err != nil {
		return res.RowsAffected, fmt.Errorf("rows removed but storage sweep failed: %w", err)
	}

	return res.RowsAffected, nil
}

// AdminList pages through every document, deleted ones included, joined
// with the submission status of the owning code.
func (ds *DocumentService) AdminList(input AdminListInput) ([]AdminDocumentRow, int64, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	q := ds.DB.Model(&ClaimDocument{}).
		Select("claim_documents.*, COALESCE(s.status, '') AS submission_status").
		Joins("LEFT JOIN claim_submissions s ON s.code = claim_documents.code")

	if input.Code != nil && *input.Code != "" {
		q = q.Where("claim_documents.code = ?", *input.Code)
	}
	if input.Category != nil && *input.Category != "" {
		q = q.Where("claim_documents.category = ?", *input.Category)
	}
	if input.Deleted != nil {
		q = q.Where("claim_documents.is_deleted = ?", *input.Deleted)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []AdminDocumentRow
	err := q.Order("claim_documents.created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
