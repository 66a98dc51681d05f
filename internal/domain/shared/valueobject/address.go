package valueobject

import (
	"strings"
)

// Address is a value object for a service site's postal address.
// It is immutable; With* methods return copies.
type Address struct {
	line1      string
	line2      string
	city       string
	region     string
	postalCode string
	country    string
}

// NewAddress builds an address from trimmed parts. Line1 and city are
// required; callers validate them through Validate before persisting.
func NewAddress(line1, line2, city, region, postalCode, country string) Address {
	return Address{
		line1:      strings.TrimSpace(line1),
		line2:      strings.TrimSpace(line2),
		city:       strings.TrimSpace(city),
		region:     strings.TrimSpace(region),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
	}
}

// Line1 returns the first address line
func (a Address) Line1() string { return a.line1 }

// Line2 returns the optional second address line
func (a Address) Line2() string { return a.line2 }

// City returns the city
func (a Address) City() string { return a.city }

// Region returns the state, province or county
func (a Address) Region() string { return a.region }

// PostalCode returns the postal code
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the country
func (a Address) Country() string { return a.country }

// IsEmpty returns true if no address part is set
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Missing returns the names of required parts that are blank
func (a Address) Missing() []string {
	var missing []string
	if a.line1 == "" {
		missing = append(missing, "line1")
	}
	if a.city == "" {
		missing = append(missing, "city")
	}
	return missing
}

// FullAddress returns the address as a single comma-separated line
func (a Address) FullAddress() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.line1, a.line2, a.city, a.region, a.postalCode, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Equals reports whether both addresses match case-insensitively
func (a Address) Equals(other Address) bool {
	return strings.EqualFold(a.FullAddress(), other.FullAddress())
}

// String implements fmt.Stringer
func (a Address) String() string {
	return a.FullAddress()
}
