package services

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// NormalizePhone formats raw as E.164 when it is a valid number for region.
// Anything that does not parse is kept verbatim.
func NormalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	p, err := libphonenumber.Parse(raw, region)
	if err != nil || !libphonenumber.IsValidNumber(p) {
		return raw
	}
	return libphonenumber.Format(p, libphonenumber.E164)
}
