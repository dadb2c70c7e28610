package core

import "golang.org/x/text/unicode/norm"

// CanonicalState normalizes a state name to NFC so visually identical names
// share a census entry. Nothing else about the name changes.
func CanonicalState(s string) string {
	return norm.NFC.String(s)
}
