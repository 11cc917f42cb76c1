package payment

import (
	"testing"
	"time"
)

func TestValidCardNumber(t *testing.T) {
	valid := []string{
		"4242424242424242",
		"4242 4242 4242 4242",
		"5555555555554444",
		"378282246310005", // 15-digit Amex
	}
	for _, n := range valid {
		if !validCardNumber(n) {
			t.Errorf("validCardNumber(%q) = false, want true", n)
		}
	}

	invalid := []string{
		"",
		"4242424242424241", // bad checksum
		"1234",             // too short
		"4242-4242-4242-4242",
		"42424242424242424242424242", // too long
	}
	for _, n := range invalid {
		if validCardNumber(n) {
			t.Errorf("validCardNumber(%q) = true, want false", n)
		}
	}
}

func TestValidMobileNumber(t *testing.T) {
	valid := []string{"0772123456", "0712345678", "+263772123456"}
	for _, p := range valid {
		if !validMobileNumber(p) {
			t.Errorf("validMobileNumber(%q) = false, want true", p)
		}
	}

	invalid := []string{"", "077212345", "07721234567", "0872123456", "772123456"}
	for _, p := range invalid {
		if validMobileNumber(p) {
			t.Errorf("validMobileNumber(%q) = true, want false", p)
		}
	}
}

func TestValidExpiry(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	if !validExpiry("06/26", now) {
		t.Error("card expiring this month should still be valid")
	}
	if !validExpiry("12/27", now) {
		t.Error("future expiry should be valid")
	}
	if validExpiry("05/26", now) {
		t.Error("last month's expiry should be invalid")
	}
	if validExpiry("13/27", now) {
		t.Error("month 13 should be invalid")
	}
	if validExpiry("0627", now) {
		t.Error("missing separator should be invalid")
	}
	if validExpiry("06/2026", now) {
		t.Error("four-digit year should be invalid")
	}
}

func TestMasking(t *testing.T) {
	if got := maskCard("4242 4242 4242 4242"); got != "**** **** **** 4242" {
		t.Errorf("maskCard = %q", got)
	}
	if got := maskPhone("0772123456"); got != "07** ***456" {
		t.Errorf("maskPhone = %q", got)
	}
	if got := maskEmail("tendai@example.com"); got != "t***@example.com" {
		t.Errorf("maskEmail = %q", got)
	}
}
