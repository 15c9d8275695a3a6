package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhoneNumber validates a phone number and returns it in E.164
// form. Numbers without a country code are assumed to be Philippine.
func NormalizePhoneNumber(phone string) (string, error) {
	cleanPhone := strings.TrimSpace(phone)
	if cleanPhone == "" {
		return "", fmt.Errorf("empty phone number")
	}

	num, err := phonenumbers.Parse(cleanPhone, "PH")
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number: %s", phone)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsValidPhoneNumber reports whether the number parses and is valid
func IsValidPhoneNumber(phone string) bool {
	_, err := NormalizePhoneNumber(phone)
	return err == nil
}
