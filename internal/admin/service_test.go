package admin

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"claims-portal-api/internal/claim"
	"claims-portal-api/internal/contact"
	"claims-portal-api/internal/document"
	"claims-portal-api/internal/submission"

	"github.com/glebarez/sqlite"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&claim.Claim{},
		&submission.ClaimSubmission{},
		&document.ClaimDocument{},
		&contact.ContactMessage{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &AdminService{DB: db}, db
}

func seedSubmission(t *testing.T, db *gorm.DB, claimID uint, code, status, formJSON string) {
	t.Helper()

	sub := submission.ClaimSubmission{
		ClaimID:  claimID,
		Code:     code,
		Status:   status,
		FormData: datatypes.JSON([]byte(formJSON)),
	}
	if status == submission.StatusSubmitted {
		now := time.Now()
		sub.SubmittedAt = &now
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed submission %s: %v", code, err)
	}
}

func TestDashboardStats(t *testing.T) {
	svc, db := newTestService(t)

	db.Create(&claim.Claim{Code: "aaa1111", IsActive: true})
	db.Create(&claim.Claim{Code: "bbb2222", IsActive: true, IsUsed: true})
	db.Create(&claim.Claim{Code: "ccc3333", IsActive: false})

	seedSubmission(t, db, 1, "aaa1111", submission.StatusDraft, `{}`)
	seedSubmission(t, db, 2, "bbb2222", submission.StatusSubmitted, `{}`)
	db.Model(&submission.ClaimSubmission{}).
		Where("code = ?", "bbb2222").
		Update("selected_categories", pq.StringArray{"financialLoss", "lostTime"})

	db.Create(&document.ClaimDocument{Code: "bbb2222", Category: "financialLoss", OriginalName: "a.pdf", ObjectPath: "p", SizeBytes: 2048})
	db.Create(&document.ClaimDocument{Code: "bbb2222", Category: "financialLoss", OriginalName: "b.pdf", ObjectPath: "q", SizeBytes: 512, IsDeleted: true})
	db.Create(&contact.ContactMessage{Name: "A", Email: "a@x.com", Body: "hi"})

	stats, err := svc.DashboardStats()
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}

	if stats.TotalClaims != 3 || stats.ActiveClaims != 1 || stats.UsedClaims != 1 {
		t.Fatalf("claims stats=%+v", stats)
	}
	if stats.DraftCount != 1 || stats.SubmittedCount != 1 || stats.SubmittedLast24h != 1 || stats.SubmittedLast7d != 1 {
		t.Fatalf("submission stats=%+v", stats)
	}
	if stats.DocumentCount != 1 || stats.DocumentBytes != 2048 || stats.UnreadMessages != 1 {
		t.Fatalf("doc/message stats=%+v", stats)
	}
	if stats.CategoryCounts["financialLoss"] != 1 || stats.CategoryCounts["lostTime"] != 1 {
		t.Fatalf("category counts=%v", stats.CategoryCounts)
	}
}

func TestExportCSV_FlattensFormFields(t *testing.T) {
	svc, db := newTestService(t)

	seedSubmission(t, db, 1, "aaa1111", submission.StatusSubmitted,
		`{"contact":{"firstName":"Jane","lastName":"Doe"},"payment":{"method":"paypal","paypalEmail":"j@x.com"}}`)
	seedSubmission(t, db, 2, "bbb2222", submission.StatusDraft,
		`{"contact":{"firstName":"Bob"}}`)

	_, filename, out, err := svc.ExportSubmissions(ExportInput{Format: "csv"})
	if err != nil {
		t.Fatalf("ExportSubmissions: %v", err)
	}
	if filename == "" {
		t.Fatalf("empty filename")
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records=%d", len(records))
	}

	header := records[0]
	colIdx := map[string]int{}
	for i, h := range header {
		colIdx[h] = i
	}
	for _, want := range []string{"code", "status", "contact.firstName", "payment.method", "payment.paypalEmail"} {
		if _, ok := colIdx[want]; !ok {
			t.Fatalf("missing column %q in %v", want, header)
		}
	}

	byCode := map[string][]string{}
	for _, rec := range records[1:] {
		byCode[rec[colIdx["code"]]] = rec
	}
	if byCode["aaa1111"][colIdx["payment.method"]] != "paypal" {
		t.Fatalf("row=%v", byCode["aaa1111"])
	}
	// the draft never set a payment method, the cell stays blank
	if byCode["bbb2222"][colIdx["payment.method"]] != "" {
		t.Fatalf("row=%v", byCode["bbb2222"])
	}
}

func TestExport_StatusFilter(t *testing.T) {
	svc, db := newTestService(t)

	seedSubmission(t, db, 1, "aaa1111", submission.StatusSubmitted, `{}`)
	seedSubmission(t, db, 2, "bbb2222", submission.StatusDraft, `{}`)

	_, _, out, err := svc.ExportSubmissions(ExportInput{Format: "csv", Status: submission.StatusSubmitted})
	if err != nil {
		t.Fatalf("ExportSubmissions: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 || records[1][0] != "aaa1111" {
		t.Fatalf("records=%v", records)
	}

	if _, _, _, err := svc.ExportSubmissions(ExportInput{Status: "bogus"}); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestExportXLSX_RoundTrips(t *testing.T) {
	svc, db := newTestService(t)

	seedSubmission(t, db, 1, "aaa1111", submission.StatusSubmitted,
		`{"contact":{"firstName":"Jane"}}`)

	contentType, filename, out, err := svc.ExportSubmissions(ExportInput{Format: "xlsx"})
	if err != nil {
		t.Fatalf("ExportSubmissions: %v", err)
	}
	if contentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("contentType=%q", contentType)
	}
	if filename == "" {
		t.Fatalf("empty filename")
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Submissions")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0][0] != "code" || rows[1][0] != "aaa1111" {
		t.Fatalf("rows=%v", rows)
	}
}

func TestFlattenForm_PreservesOrderAndLists(t *testing.T) {
	raw := []byte(`{"contact":{"firstName":"J","email":"j@x.com"},"financialLoss":{"selected":true,"documentIds":[1,2]}}`)

	cols, vals := flattenForm(raw)
	want := []string{"contact.firstName", "contact.email", "financialLoss.selected", "financialLoss.documentIds"}
	if len(cols) != len(want) {
		t.Fatalf("cols=%v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("cols=%v want %v", cols, want)
		}
	}
	if vals["financialLoss.documentIds"] != "1,2" {
		t.Fatalf("vals=%v", vals)
	}
}
