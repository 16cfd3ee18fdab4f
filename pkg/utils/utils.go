package utils

import "strings"

func StringPtr(s string) *string {
	return &s
}

// MaskEmail keeps the first character of the local part and the domain.
// "alice@example.com" becomes "a****@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "****"
	}
	local := email[:at]
	return local[:1] + strings.Repeat("*", max(len(local)-1, 4)) + email[at:]
}
