package utils

import (
	"errors"
	"strings"
)

func ExtractEmailDomain(email string) (string, error) {
	parts := strings.Split(strings.TrimSpace(email), "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", errors.New("invalid email format")
	}
	return strings.ToLower(parts[1]), nil
}

// EmailInDomain checks the address belongs to allowedDomain exactly (no subdomains).
func EmailInDomain(email, allowedDomain string) bool {
	allowedDomain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(allowedDomain), "@"))
	if allowedDomain == "" {
		return false
	}
	d, err := ExtractEmailDomain(email)
	if err != nil {
		return false
	}
	return d == allowedDomain
}
