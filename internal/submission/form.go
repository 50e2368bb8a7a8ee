package submission

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	CategoryFinancialLoss     = "financialLoss"
	CategoryEmotionalDistress = "emotionalDistress"
	CategoryIdentityTheft     = "identityTheft"
	CategoryCreditDamage      = "creditDamage"
	CategoryLostTime          = "lostTime"
	CategoryOther             = "other"
)

const (
	MethodPayPal        = "paypal"
	MethodVenmo         = "venmo"
	MethodZelle         = "zelle"
	MethodPrepaidCard   = "prepaidCard"
	MethodPhysicalCheck = "physicalCheck"
)

type ContactInfo struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type HarmSection struct {
	Selected         bool   `json:"selected"`
	Details          string `json:"details"`
	HasDocumentation string `json:"hasDocumentation"` // yes|no|""
	DocumentIDs      []uint `json:"documentIds"`
}

// PaymentInfo is a tagged union: Method selects which of the remaining
// fields are required.
type PaymentInfo struct {
	Method string `json:"method"`

	PayPalEmail string `json:"paypalEmail,omitempty"`

	VenmoPhone string `json:"venmoPhone,omitempty"`

	ZellePhone string `json:"zellePhone,omitempty"`
	ZelleEmail string `json:"zelleEmail,omitempty"`

	CardEmail string `json:"cardEmail,omitempty"`

	CheckAddressLine1 string `json:"checkAddressLine1,omitempty"`
	CheckAddressLine2 string `json:"checkAddressLine2,omitempty"`
	CheckCity         string `json:"checkCity,omitempty"`
	CheckState        string `json:"checkState,omitempty"`
	CheckZipCode      string `json:"checkZipCode,omitempty"`
}

type SignatureBlock struct {
	FullName string `json:"fullName"`
	Date     string `json:"date"`
	Agreed   bool   `json:"agreed"`
}

type FormPayload struct {
	Contact ContactInfo `json:"contact"`

	FinancialLoss     HarmSection `json:"financialLoss"`
	EmotionalDistress HarmSection `json:"emotionalDistress"`
	IdentityTheft     HarmSection `json:"identityTheft"`
	CreditDamage      HarmSection `json:"creditDamage"`
	LostTime          HarmSection `json:"lostTime"`

	Payment   PaymentInfo    `json:"payment"`
	Signature SignatureBlock `json:"signature"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form validation failed: %d field error(s)", len(e.Fields))
}

type harmEntry struct {
	Category string
	Section  HarmSection
}

func (f *FormPayload) harmSections() []harmEntry {
	return []harmEntry{
		{CategoryFinancialLoss, f.FinancialLoss},
		{CategoryEmotionalDistress, f.EmotionalDistress},
		{CategoryIdentityTheft, f.IdentityTheft},
		{CategoryCreditDamage, f.CreditDamage},
		{CategoryLostTime, f.LostTime},
	}
}

// SelectedCategories lists the harm categories the claimant marked.
func (f *FormPayload) SelectedCategories() []string {
	var out []string
	for _, h := range f.harmSections() {
		if h.Section.Selected {
			out = append(out, h.Category)
		}
	}
	return out
}

func ValidCategory(cat string) bool {
	switch cat {
	case CategoryFinancialLoss, CategoryEmotionalDistress, CategoryIdentityTheft,
		CategoryCreditDamage, CategoryLostTime, CategoryOther:
		return true
	}
	return false
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	dot := strings.LastIndex(s, ".")
	return at > 0 && dot > at+1 && dot < len(s)-1
}

// Validate runs the full-schema check used on submit. Drafts are never
// validated: a half-filled form must always be savable.
func (f *FormPayload) Validate() []FieldError {
	var errs []FieldError
	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(f.Contact.FirstName) == "" {
		add("contact.firstName", "First name is required")
	}
	if strings.TrimSpace(f.Contact.LastName) == "" {
		add("contact.lastName", "Last name is required")
	}
	email := strings.TrimSpace(f.Contact.Email)
	if email == "" {
		add("contact.email", "Email is required")
	} else if !looksLikeEmail(email) {
		add("contact.email", "Email is not valid")
	}

	anySelected := false
	for _, h := range f.harmSections() {
		if !h.Section.Selected {
			continue
		}
		anySelected = true

		if strings.TrimSpace(h.Section.Details) == "" {
			add(h.Category+".details", "Please describe this harm")
		}
		if h.Section.HasDocumentation == "yes" && len(h.Section.DocumentIDs) == 0 {
			add(h.Category+".documentIds", "Please upload at least one supporting document")
		}
	}
	if !anySelected {
		add("harmTypes", "Select at least one type of harm")
	}

	switch f.Payment.Method {
	case "":
		add("payment.method", "Select a payment method")
	case MethodPayPal:
		if strings.TrimSpace(f.Payment.PayPalEmail) == "" {
			add("payment.paypalEmail", "PayPal email is required")
		}
	case MethodVenmo:
		if strings.TrimSpace(f.Payment.VenmoPhone) == "" {
			add("payment.venmoPhone", "Venmo phone number is required")
		}
	case MethodZelle:
		if strings.TrimSpace(f.Payment.ZellePhone) == "" && strings.TrimSpace(f.Payment.ZelleEmail) == "" {
			add("payment.zelle", "Zelle requires a phone number or an email")
		}
	case MethodPrepaidCard:
		if strings.TrimSpace(f.Payment.CardEmail) == "" {
			add("payment.cardEmail", "Email for the prepaid card is required")
		}
	case MethodPhysicalCheck:
		if strings.TrimSpace(f.Payment.CheckAddressLine1) == "" {
			add("payment.checkAddressLine1", "Mailing address is required")
		}
		if strings.TrimSpace(f.Payment.CheckCity) == "" {
			add("payment.checkCity", "City is required")
		}
		if strings.TrimSpace(f.Payment.CheckState) == "" {
			add("payment.checkState", "State is required")
		}
		if strings.TrimSpace(f.Payment.CheckZipCode) == "" {
			add("payment.checkZipCode", "ZIP code is required")
		}
	default:
		add("payment.method", "Unknown payment method")
	}

	if strings.TrimSpace(f.Signature.FullName) == "" {
		add("signature.fullName", "Full legal name is required")
	}
	if !f.Signature.Agreed {
		add("signature.agreed", "You must agree to the declaration")
	}

	return errs
}

// decodeFormPayload loads a persisted draft payload. New rows are always
// stored as a well-formed JSON object, but older rows were observed in a
// degraded shape: an object with sequential numeric string keys ("0","1",...)
// each holding a fragment of the original JSON text. Those are reconstructed
// by concatenating the fragments in key order and re-parsing. Anything that
// still fails decodes to an empty form rather than an error, so a corrupted
// draft can never break the form load.
func decodeFormPayload(raw []byte) (FormPayload, bool) {
	var empty FormPayload

	if len(raw) == 0 {
		return empty, false
	}

	// Payload stored as a JSON string containing JSON.
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		var fp FormPayload
		if err := json.Unmarshal([]byte(asString), &fp); err == nil {
			return fp, true
		}
		return empty, false
	}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return empty, false
	}

	if rebuilt, ok := rebuildNumericKeyed(asMap); ok {
		var fp FormPayload
		if err := json.Unmarshal(rebuilt, &fp); err == nil {
			return fp, true
		}
		// The rebuilt text may itself be a quoted JSON string.
		var inner string
		if err := json.Unmarshal(rebuilt, &inner); err == nil {
			if err := json.Unmarshal([]byte(inner), &fp); err == nil {
				return fp, true
			}
		}
		return empty, false
	}

	var fp FormPayload
	if err := json.Unmarshal(raw, &fp); err != nil {
		return empty, false
	}
	return fp, false
}

// rebuildNumericKeyed detects the {"0":"{","1":"\"co","2":...} shape and
// concatenates the string fragments in numeric key order.
func rebuildNumericKeyed(m map[string]json.RawMessage) ([]byte, bool) {
	if len(m) == 0 {
		return nil, false
	}

	keys := make([]int, 0, len(m))
	for k := range m {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			return nil, false
		}
		keys = append(keys, n)
	}
	sort.Ints(keys)

	// keys must be exactly 0..n-1
	for i, k := range keys {
		if k != i {
			return nil, false
		}
	}

	var b strings.Builder
	for _, k := range keys {
		var fragment string
		if err := json.Unmarshal(m[strconv.Itoa(k)], &fragment); err != nil {
			return nil, false
		}
		b.WriteString(fragment)
	}

	return []byte(b.String()), true
}
