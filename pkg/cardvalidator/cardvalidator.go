// Package cardvalidator holds the stateless card and bank account format
// checks: per-network card number patterns, expiry, and routing/account
// number shapes. Nothing here touches storage.
package cardvalidator

import (
	"regexp"
	"strings"
	"time"
)

// Card number patterns per network. DUMMY accepts any 12-digit number and
// exists for sandbox methods.
var cardPatterns = map[string]*regexp.Regexp{
	"AMEX":        regexp.MustCompile(`^3[47][0-9]{13}$`),
	"DISCOVER":    regexp.MustCompile(`^65[4-9][0-9]{13}|64[4-9][0-9]{13}|6011[0-9]{12}|(622(?:12[6-9]|1[3-9][0-9]|[2-8][0-9][0-9]|9[01][0-9]|92[0-5])[0-9]{10})$`),
	"MASTERCARD":  regexp.MustCompile(`^(5[1-5][0-9]{14}|2(22[1-9][0-9]{12}|2[3-9][0-9]{13}|[3-6][0-9]{14}|7[0-1][0-9]{13}|720[0-9]{12}))$`),
	"VISA":        regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`),
	"DUMMY":       regexp.MustCompile(`^[0-9]{12}?$`),
	"VISA_MASTER": regexp.MustCompile(`^(?:4[0-9]{12}(?:[0-9]{3})?|5[1-5][0-9]{14})$`),
}

var (
	routingPattern = regexp.MustCompile(`^[0-9]{9}$`)
	accountPattern = regexp.MustCompile(`^[0-9]{6,17}$`)
)

// IsSupportedCardType reports whether a validation pattern exists for the
// given network name (case-insensitive).
func IsSupportedCardType(cardType string) bool {
	_, ok := cardPatterns[strings.ToUpper(cardType)]
	return ok
}

// IsValidCardNumber matches the number against its network's pattern.
// Unknown networks never validate.
func IsValidCardNumber(cardType, cardNumber string) bool {
	pattern, ok := cardPatterns[strings.ToUpper(cardType)]
	if !ok {
		return false
	}
	return pattern.MatchString(cardNumber)
}

// IsExpired reports whether the card's expiry month has fully passed. A card
// is valid through the last day of its expiration month, UTC.
func IsExpired(expirationMonth, expirationYear int, now time.Time) bool {
	if expirationMonth < 1 || expirationMonth > 12 {
		return true
	}
	endOfMonth := time.Date(expirationYear, time.Month(expirationMonth), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, 0)
	return !now.UTC().Before(endOfMonth)
}

// IsValidRoutingNumber checks the nine-digit ABA routing format.
func IsValidRoutingNumber(routingNumber string) bool {
	return routingPattern.MatchString(routingNumber)
}

// IsValidAccountNumber checks the 6-17 digit account number format.
func IsValidAccountNumber(accountNumber string) bool {
	return accountPattern.MatchString(accountNumber)
}
