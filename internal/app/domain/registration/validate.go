package registration

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
)

const (
	minTxnLen = 8
	maxTxnLen = 35
	phoneLen  = 10
)

var allowedScreenshotTypes = []string{"image/png", "image/jpeg", "image/webp"}

// Form is a registration as submitted, before the screenshot is attached.
type Form struct {
	StudentName   string
	Email         string
	Phone         string
	CollegeID     string
	SportIDs      []string
	TransactionID string
}

// Screenshot is the uploaded payment proof.
type Screenshot struct {
	Name string
	Data []byte
	// Size is the number of bytes received; past the cap Data is truncated.
	Size int64
}

// Normalize trims every field, title-cases the name and upper-cases the
// transaction id. Phone numbers keep digits only, with a leading +91 or 0
// dropped.
func (f *Form) Normalize() {
	f.StudentName = cases.Title(language.English).String(strings.Join(strings.Fields(f.StudentName), " "))
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Phone = normalizePhone(f.Phone)
	f.CollegeID = strings.TrimSpace(f.CollegeID)
	f.TransactionID = strings.ToUpper(strings.TrimSpace(f.TransactionID))

	seen := make(map[string]bool, len(f.SportIDs))
	ids := f.SportIDs[:0]
	for _, id := range f.SportIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	f.SportIDs = ids
}

func normalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case len(digits) == phoneLen+2 && strings.HasPrefix(digits, "91"):
		return digits[2:]
	case len(digits) == phoneLen+1 && strings.HasPrefix(digits, "0"):
		return digits[1:]
	}
	return digits
}

// Validate checks a normalized form and its screenshot. It returns the
// detected screenshot content type, and FieldErrors when anything fails.
func Validate(f Form, shot *Screenshot, maxBytes int64) (string, error) {
	errs := models.FieldErrors{}

	if f.StudentName == "" {
		errs.Add("studentName", "Name is required.")
	}
	if f.Email == "" {
		errs.Add("email", "Email is required.")
	} else if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
		errs.Add("email", "Enter a valid email address.")
	}
	if len(f.Phone) != phoneLen {
		errs.Add("phone", "Enter a 10 digit phone number.")
	}
	if f.CollegeID == "" {
		errs.Add("collegeId", "Choose your college.")
	}
	if len(f.SportIDs) == 0 {
		errs.Add("sportIds", "Choose at least one sport.")
	}
	if !validTransactionID(f.TransactionID) {
		errs.Add("transactionId", fmt.Sprintf("Transaction ID must be %d to %d letters or digits.", minTxnLen, maxTxnLen))
	}

	var contentType string
	switch {
	case shot != nil && maxBytes > 0 && (shot.Size > maxBytes || int64(len(shot.Data)) > maxBytes):
		errs.Add("paymentScreenshot", fmt.Sprintf("Screenshot must be at most %d MB.", maxBytes>>20))
	case shot == nil || len(shot.Data) == 0:
		errs.Add("paymentScreenshot", "Upload your payment screenshot.")
	default:
		mt := mimetype.Detect(shot.Data)
		if !mimetype.EqualsAny(mt.String(), allowedScreenshotTypes...) {
			errs.Add("paymentScreenshot", "Screenshot must be a PNG, JPEG or WebP image.")
		} else {
			contentType = mt.String()
		}
	}

	return contentType, errs.Err()
}

func validTransactionID(s string) bool {
	if len(s) < minTxnLen || len(s) > maxTxnLen {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
