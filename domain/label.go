package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel trims a cluster label and puts it in NFC form so that
// decomposed accents coming out of spreadsheets compare equal.
func NormalizeLabel(label string) string {
	return norm.NFC.String(strings.TrimSpace(label))
}
