package enums

import (
	"fmt"
	"strings"
)

// ShippingCountry enumerates the destinations the storefront ships to.
type ShippingCountry string

const (
	ShippingCountryFrance      ShippingCountry = "FR"
	ShippingCountryBelgium     ShippingCountry = "BE"
	ShippingCountrySwitzerland ShippingCountry = "CH"
)

var validShippingCountries = []ShippingCountry{
	ShippingCountryFrance,
	ShippingCountryBelgium,
	ShippingCountrySwitzerland,
}

// String implements fmt.Stringer.
func (c ShippingCountry) String() string {
	return string(c)
}

// IsValid reports whether the destination is supported.
func (c ShippingCountry) IsValid() bool {
	for _, candidate := range validShippingCountries {
		if candidate == c {
			return true
		}
	}
	return false
}

// shippingCountryAliases maps the French display names the checkout form
// submits onto their ISO codes.
var shippingCountryAliases = map[string]ShippingCountry{
	"france":   ShippingCountryFrance,
	"belgique": ShippingCountryBelgium,
	"suisse":   ShippingCountrySwitzerland,
}

// ParseShippingCountry converts a raw string, either an ISO code or the
// form's display name, into a ShippingCountry.
func ParseShippingCountry(value string) (ShippingCountry, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validShippingCountries {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	if country, ok := shippingCountryAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return country, nil
	}
	return "", fmt.Errorf("unsupported shipping country %q", value)
}
