package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTransactionID(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"utr label", "Paid to Sports Meet\nUTR: 412345678901\n₹500", "412345678901", true},
		{"utr no label", "UTR No. 3129 8877 6655", "", false},
		{"lowercase upi ref", "upi ref no 309912345678", "309912345678", true},
		{"transaction id alnum", "Transaction ID T2310021234567890ABCD", "T2310021234567890ABCD", true},
		{"filler word", "Your UTR is 512398761234 for this payment", "512398761234", true},
		{"label without value falls back", "Transaction ID: pending\nRef 777766665555", "777766665555", true},
		{"bare 12 digits", "Paid ₹250 on 12/10 ref 998877665544 success", "998877665544", true},
		{"13 digits is not a ref", "phone 9988776655443", "", false},
		{"nothing", "Payment successful", "", false},
		{"label inside word ignored", "COMPUTRON 1234567890", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTransactionID(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
