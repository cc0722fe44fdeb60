package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reZone  = regexp.MustCompile(`^[A-Z][A-Z0-9_-]{1,31}$`)
	reTier  = regexp.MustCompile(`^(FACTORY|WHOLESALE|RETAIL)$`)
	rePhone = regexp.MustCompile(`^[0-9+() -]{5,20}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Zone validates a geographic zone code (upper-case, e.g. NORTH, ZONE-3).
func Zone(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reZone.MatchString(s)
}

// Tier validates a client price tier.
func Tier(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reTier.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == "" || rePhone.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

// Date validates an ISO date (YYYY-MM-DD) and returns the normalized form.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// Money validates a strictly positive price value.
func Money(v float64) bool { return v > 0 }

// Qty validates an order line quantity.
func Qty(n int) bool { return n >= 1 && n <= 10000 }

// Password enforces the login password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
