package fx

import "strings"

// KnownNames holds display names for common codes. The importer falls back to
// it when a names file leaves a code out.
var KnownNames = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"CHF": "Swiss Franc",
	"AUD": "Australian Dollar",
	"CAD": "Canadian Dollar",
	"CNY": "Chinese Yuan",
	"INR": "Indian Rupee",
	"SGD": "Singapore Dollar",
	"HKD": "Hong Kong Dollar",
	"NZD": "New Zealand Dollar",
	"SEK": "Swedish Krona",
	"NOK": "Norwegian Krone",
	"KRW": "South Korean Won",
	"BRL": "Brazilian Real",
	"ZAR": "South African Rand",
	"GEL": "Georgian Lari",
}

// NormalizeCode upper-cases and trims a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code looks like a three-letter ISO 4217 code.
func ValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// DisplayName returns the name of code in names, or code itself.
func DisplayName(code string, names map[string]string) string {
	if n := names[code]; n != "" {
		return n
	}
	return code
}

// ImportName picks the name stored for code on import.
func ImportName(code string, names map[string]string) string {
	if n := names[code]; n != "" {
		return n
	}
	if n, ok := KnownNames[code]; ok {
		return n
	}
	return code
}
