package claim

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type stubClaimService struct {
	validateErr error
	claim       *Claim
}

func (s *stubClaimService) ValidateCode(code string) (*Claim, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return s.claim, nil
}
func (s *stubClaimService) GetByCode(code string) (*Claim, error)     { return s.claim, nil }
func (s *stubClaimService) MarkUsedTx(tx *gorm.DB, id uint) error     { return nil }
func (s *stubClaimService) DeactivateClaim(id uint) (*Claim, error)   { return s.claim, nil }
func (s *stubClaimService) ListClaims(in ListClaimsInput) ([]Claim, int64, error) {
	return nil, 0, nil
}
func (s *stubClaimService) CreateClaims(count int, title, description string, expiresAt *time.Time, createdBy uint) ([]Claim, error) {
	return nil, nil
}

type stubFiling struct {
	enabled bool
	message string
}

func (s *stubFiling) Current() (bool, string, error) { return s.enabled, s.message, nil }

func newGateRouter(svc ClaimServicePort, filing FilingStatus) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cc := &ClaimController{ClaimService: svc, Filing: filing}
	r.POST("/api/claims/validate", cc.ValidateCode)
	return r
}

func postValidate(t *testing.T, r *gin.Engine, code string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(ValidateCodeRequest{Code: code})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/claims/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestValidateCode_Success(t *testing.T) {
	r := newGateRouter(
		&stubClaimService{claim: &Claim{Code: "2xQ9YNw", Title: "Settlement"}},
		&stubFiling{enabled: true},
	)

	w := postValidate(t, r, "2xQ9YNw")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Valid bool `json:"valid"`
		Claim struct {
			Code string `json:"code"`
		} `json:"claim"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Valid || resp.Claim.Code != "2xQ9YNw" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestValidateCode_ReasonStatusMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{ErrClaimUsed, http.StatusConflict, "used"},
		{ErrClaimInactive, http.StatusForbidden, "inactive"},
		{ErrClaimExpired, http.StatusGone, "expired"},
		{ErrClaimNotFound, http.StatusNotFound, "not_found"},
	}

	for _, tc := range cases {
		r := newGateRouter(&stubClaimService{validateErr: tc.err}, &stubFiling{enabled: true})
		w := postValidate(t, r, "whatever")

		if w.Code != tc.wantStatus {
			t.Fatalf("err %v: status=%d want %d", tc.err, w.Code, tc.wantStatus)
		}

		var resp struct {
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Reason != tc.wantReason {
			t.Fatalf("err %v: reason=%q want %q", tc.err, resp.Reason, tc.wantReason)
		}
	}
}

func TestValidateCode_FilingDisabled(t *testing.T) {
	r := newGateRouter(
		&stubClaimService{claim: &Claim{Code: "2xQ9YNw"}},
		&stubFiling{enabled: false, message: "Maintenance until Friday"},
	)

	w := postValidate(t, r, "2xQ9YNw")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Reason string `json:"reason"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Reason != "disabled" || resp.Error != "Maintenance until Friday" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestValidateCode_MissingCode(t *testing.T) {
	r := newGateRouter(&stubClaimService{}, &stubFiling{enabled: true})
	w := postValidate(t, r, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}
