package roster

import "strings"

// nameKeySep joins the two halves of a name key. Names are not expected
// to contain it.
const nameKeySep = "|"

// NormalizeEmail lowercases and trims an email. A missing or
// whitespace-only value normalizes to "".
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeNameKey builds the "first|last" key used by name matching.
// Each part is trimmed and lowercased on its own. The key is returned even
// when both parts are empty; use IsEmptyNameKey to filter those.
func NormalizeNameKey(first, last string) string {
	return strings.ToLower(strings.TrimSpace(first)) + nameKeySep +
		strings.ToLower(strings.TrimSpace(last))
}

// IsEmptyNameKey reports whether key came from a row with no name at all.
func IsEmptyNameKey(key string) bool {
	return key == nameKeySep || key == ""
}
