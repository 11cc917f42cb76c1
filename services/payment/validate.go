package payment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Zimbabwean mobile numbers: local 07XXXXXXXX or international +2637XXXXXXXX.
	mobileNumberRe = regexp.MustCompile(`^(?:07\d{8}|\+2637\d{8})$`)
	emailRe        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	cvvRe          = regexp.MustCompile(`^\d{3,4}$`)
)

func validMobileNumber(phone string) bool {
	return mobileNumberRe.MatchString(strings.TrimSpace(phone))
}

func validEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

func validCVV(cvv string) bool {
	return cvvRe.MatchString(cvv)
}

// validCardNumber runs the Luhn checksum over a 12-19 digit card number,
// ignoring spaces.
func validCardNumber(number string) bool {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) < 12 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// validExpiry parses an MM/YY expiry and checks the card is not expired.
func validExpiry(expiry string, now time.Time) bool {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return false
	}
	year += 2000

	// A card is valid through the last day of its expiry month.
	expiresAfter := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return now.Before(expiresAfter)
}

// maskPhone keeps the prefix and last three digits, e.g. "07** ***123".
func maskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) < 5 {
		return "***"
	}
	return phone[:2] + "** ***" + phone[len(phone)-3:]
}

// maskCard keeps the last four digits, e.g. "**** **** **** 4242".
func maskCard(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) < 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// maskEmail keeps the first character and the domain, e.g. "t***@example.com".
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
