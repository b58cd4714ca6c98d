package user

import (
	"fmt"
	"strings"
)

// CountryCode identifies a supported dialing region.
type CountryCode string

// UA is currently the only supported region.
const UA CountryCode = "UA"

type countryInfo struct {
	DialPrefix string
	MinDigits  int
	MaxDigits  int
	Name       string
}

// countryTable maps each supported region to its dialing prefix and the
// inclusive length bounds for national phone numbers.
var countryTable = map[CountryCode]countryInfo{
	UA: {DialPrefix: "+380", MinDigits: 9, MaxDigits: 9, Name: "Ukraine"},
}

// ParseCountryCode resolves a region code or dial prefix to a CountryCode.
// Unknown values are a hard error, never a default.
func ParseCountryCode(s string) (CountryCode, error) {
	trimmed := strings.TrimSpace(s)
	for code, info := range countryTable {
		if strings.EqualFold(trimmed, string(code)) || trimmed == info.DialPrefix {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown country code %q", s)
}

// Valid reports whether the code is a member of the country table.
func (c CountryCode) Valid() bool {
	_, ok := countryTable[c]
	return ok
}

// DialPrefix returns the international dialing prefix, e.g. "+380" for UA.
func (c CountryCode) DialPrefix() string {
	return countryTable[c].DialPrefix
}

// PhoneLengthRange returns the inclusive digit-count bounds for the region.
func (c CountryCode) PhoneLengthRange() (min, max int) {
	info := countryTable[c]
	return info.MinDigits, info.MaxDigits
}

// CountryName returns the display name of the region.
func (c CountryCode) CountryName() string {
	return countryTable[c].Name
}
