package server

import "strings"

// NormalizeNumber extracts a dialable mobile number from free-form text.
// Separators and a +91/0 country prefix are tolerated; anything containing
// letters is rejected.
func NormalizeNumber(text string) (string, bool) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return "", false
	}

	var digits strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", false
		}
	}

	number := digits.String()
	switch {
	case len(number) == 12 && strings.HasPrefix(number, "91"):
		number = number[2:]
	case len(number) == 11 && strings.HasPrefix(number, "0"):
		number = number[1:]
	}

	if len(number) < 10 || len(number) > 15 {
		return "", false
	}

	return number, true
}
