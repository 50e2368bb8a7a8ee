package submission

import (
	"errors"
	"testing"

	"claims-portal-api/internal/claim"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&claim.Claim{}, &ClaimSubmission{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func newTestService(t *testing.T) (*SubmissionService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	return &SubmissionService{
		DB:     db,
		Claims: &claim.ClaimService{DB: db},
	}, db
}

func seedClaim(t *testing.T, db *gorm.DB, c claim.Claim) claim.Claim {
	t.Helper()
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed claim %q: %v", c.Code, err)
	}
	return c
}

func TestGetByCode_NoRowStartsEmpty(t *testing.T) {
	svc, db := newTestService(t)
	seedClaim(t, db, claim.Claim{Code: "2xQ9YNw", IsActive: true})

	sub, form, recovered, err := svc.GetByCode("2xQ9YNw")
	if err != nil {
		t.Fatalf("GetByCode err: %v", err)
	}
	if sub != nil || recovered {
		t.Fatalf("sub=%+v recovered=%v", sub, recovered)
	}
	if form.Contact.FirstName != "" {
		t.Fatalf("expected empty form, got %+v", form)
	}
}

func TestGetByCode_UnknownCode(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, _, err := svc.GetByCode("nope123")
	if !errors.Is(err, claim.ErrClaimNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestSaveDraft_CreatesThenUpdates(t *testing.T) {
	svc, db := newTestService(t)
	seedClaim(t, db, claim.Claim{Code: "2xQ9YNw", IsActive: true})

	form := FormPayload{Contact: ContactInfo{FirstName: "Jane"}}
	sub, err := svc.SaveDraft("2xQ9YNw", form)
	if err != nil {
		t.Fatalf("SaveDraft err: %v", err)
	}
	if sub.Status != StatusDraft || sub.Code != "2xQ9YNw" {
		t.Fatalf("sub=%+v", sub)
	}

	form.Contact.FirstName = "Janet"
	form.LostTime = HarmSection{Selected: true, Details: "hours on hold"}
	if _, err := svc.SaveDraft("2xQ9YNw", form); err != nil {
		t.Fatalf("second SaveDraft err: %v", err)
	}

	var count int64
	db.Model(&ClaimSubmission{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row, got %d", count)
	}

	_, loaded, recovered, err := svc.GetByCode("2xQ9YNw")
	if err != nil {
		t.Fatalf("GetByCode err: %v", err)
	}
	if recovered {
		t.Fatalf("fresh draft should not need recovery")
	}
	if loaded.Contact.FirstName != "Janet" || !loaded.LostTime.Selected {
		t.Fatalf("loaded=%+v", loaded)
	}
}

func TestSaveDraft_TracksSelectedCategories(t *testing.T) {
	svc, db := newTestService(t)
	seedClaim(t, db, claim.Claim{Code: "2xQ9YNw", IsActive: true})

	form := FormPayload{
		FinancialLoss: HarmSection{Selected: true, Details: "charges"},
		IdentityTheft: HarmSection{Selected: true, Details: "new account"},
	}
	sub, err := svc.SaveDraft("2xQ9YNw", form)
	if err != nil {
		t.Fatalf("SaveDraft err: %v", err)
	}
	if len(sub.SelectedCategories) != 2 ||
		sub.SelectedCategories[0] != CategoryFinancialLoss ||
		sub.SelectedCategories[1] != CategoryIdentityTheft {
		t.Fatalf("categories=%v", sub.SelectedCategories)
	}
}

func TestSubmit_MarksClaimUsed(t *testing.T) {
	svc, db := newTestService(t)
	cl := seedClaim(t, db, claim.Claim{Code: "2xQ9YNw", IsActive: true})

	sub, err := svc.Submit("2xQ9YNw", validForm())
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if sub.Status != StatusSubmitted || sub.SubmittedAt == nil {
		t.Fatalf("sub=%+v", sub)
	}

	var got claim.Claim
	if err := db.First(&got, cl.ID).Error; err != nil {
		t.Fatalf("reload claim: %v", err)
	}
	if !got.IsUsed {
		t.Fatalf("claim should be marked used")
	}
}

func TestSubmit_UpgradesExistingDraft(t *testing.T) {
	svc, db := newTestService(t)
	seedClaim(t, db, claim.Claim{Code: "2xQ9YNw", IsActive: true})

	if _, err := svc.SaveDraft("2xQ9YNw", FormPayload{Contact: ContactInfo{FirstName: "Jane"}}); err != nil {
		t.Fatalf("SaveDraft err: %v", err)
	}

	if _, err := svc.Submit("2xQ9YNw", validForm()); err != nil {
		t.Fatalf("Submit err: %v", err)
	}

	var count int64
	db.Model(&ClaimSubmission{}).Where("status = ?", StatusSubmitted).Count(&count)
	if count != 1 {
		t.Fatalf("submitted rows=%d", count)
	}
	db.Model(&ClaimSubmission{}).Count(&count)
	if count != 1 {
		t.Fatalf("total rows=%d", count)
	}
}

func TestSubmit_InvalidFormRejected(t *testing.T) {
	svc, db := newTestService(t)
	cl := seedClaim(t, db, claim.Claim{Code: "2xQ9YNw", IsActive: true})

	form := validForm()
	form.Payment = PaymentInfo{Method: MethodPayPal}

	_, err := svc.Submit("2xQ9YNw", form)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err=%v", err)
	}

	// a failed submit must not burn the code
	var got claim.Claim
	db.First(&got, cl.ID)
	if got.IsUsed {
		t.Fatalf("claim burned by invalid submit")
	}
}

func TestSubmit_SecondSubmitRefused(t *testing.T) {
	svc, db := newTestService(t)
	seedClaim(t, db, claim.Claim{Code: "2xQ9YNw", IsActive: true})

	if _, err := svc.Submit("2xQ9YNw", validForm()); err != nil {
		t.Fatalf("first Submit err: %v", err)
	}

	_, err := svc.Submit("2xQ9YNw", validForm())
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("err=%v", err)
	}
}

func TestSaveDraft_AfterSubmitRefused(t *testing.T) {
	svc, db := newTestService(t)
	seedClaim(t, db, claim.Claim{Code: "2xQ9YNw", IsActive: true})

	if _, err := svc.Submit("2xQ9YNw", validForm()); err != nil {
		t.Fatalf("Submit err: %v", err)
	}

	_, err := svc.SaveDraft("2xQ9YNw", FormPayload{Contact: ContactInfo{FirstName: "Stale"}})
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("err=%v", err)
	}

	// submitted payload stays intact
	_, form, _, err := svc.GetByCode("2xQ9YNw")
	if err != nil {
		t.Fatalf("GetByCode err: %v", err)
	}
	if form.Contact.FirstName != "Jane" {
		t.Fatalf("form=%+v", form.Contact)
	}
}

func TestGetByCode_RecoversLegacyNumericKeyRow(t *testing.T) {
	svc, db := newTestService(t)
	cl := seedClaim(t, db, claim.Claim{Code: "2xQ9YNw", IsActive: true})

	if _, err := svc.SaveDraft("2xQ9YNw", FormPayload{}); err != nil {
		t.Fatalf("SaveDraft err: %v", err)
	}

	// rewrite the stored payload into the degraded legacy shape
	legacy := `{"0":"{\"con","1":"tact\":{\"firstName\":\"Jane\"}}"}`
	if err := db.Model(&ClaimSubmission{}).
		Where("claim_id = ?", cl.ID).
		Update("form_data", legacy).Error; err != nil {
		t.Fatalf("rewrite row: %v", err)
	}

	_, form, recovered, err := svc.GetByCode("2xQ9YNw")
	if err != nil {
		t.Fatalf("GetByCode err: %v", err)
	}
	if !recovered {
		t.Fatalf("expected recovery")
	}
	if form.Contact.FirstName != "Jane" {
		t.Fatalf("form=%+v", form.Contact)
	}
}
