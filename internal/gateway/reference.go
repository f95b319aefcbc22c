package gateway

import "strings"

// country code prefix of payer phone numbers
const countryCodePrefix = "243"

// ExtractReferenceNumber splits a gateway order number into a reference and
// a phone number. For mobile payments the gateway concatenates both, the
// phone number starting at the first occurrence of the country code prefix.
// Order numbers without the prefix carry no phone number.
func ExtractReferenceNumber(orderNumber string) (reference, phoneNumber string) {
	i := strings.Index(orderNumber, countryCodePrefix)
	if i < 0 {
		return orderNumber, ""
	}
	return orderNumber[:i], orderNumber[i:]
}
