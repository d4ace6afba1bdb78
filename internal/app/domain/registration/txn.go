package registration

import (
	"regexp"
	"strings"
	"unicode"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

var txnLabels = []string{
	"UTR",
	"UTR No",
	"UTR Number",
	"UPI Ref",
	"UPI Ref No",
	"UPI Reference",
	"UPI Transaction ID",
	"UPI Txn ID",
	"Transaction ID",
	"Transaction No",
	"Transaction Reference",
	"Txn ID",
	"Txn No",
	"Reference ID",
	"Reference No",
	"Ref No",
	"Bank Reference No",
}

// fillers may sit between a label and its value ("UTR is 4123...").
var fillers = map[string]bool{"no": true, "number": true, "id": true, "is": true, "ref": true}

var (
	labelBuilder = ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
		DFA:                  true,
	})
	labelMatcher = labelBuilder.Build(txnLabels)

	upiRef = regexp.MustCompile(`\b\d{12}\b`)
)

// ExtractTransactionID pulls a payment reference out of OCR text taken from a
// payment screenshot. Labelled values win; otherwise the first standalone
// 12 digit UPI reference is used.
func ExtractTransactionID(text string) (string, bool) {
	for _, m := range labelMatcher.FindAll(text) {
		if id, ok := valueAfter(text[m.End():]); ok {
			return id, true
		}
	}
	if ref := upiRef.FindString(text); ref != "" {
		return ref, true
	}
	return "", false
}

// valueAfter reads the first plausible id in the few tokens after a label.
func valueAfter(rest string) (string, bool) {
	tokens := strings.FieldsFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, tok := range tokens {
		if i >= 4 {
			break
		}
		if fillers[strings.ToLower(tok)] {
			continue
		}
		if validTransactionID(tok) && strings.ContainsAny(tok, "0123456789") {
			return strings.ToUpper(tok), true
		}
		return "", false
	}
	return "", false
}
