// Package naming derives a person name and an organization qualifier from a
// filesystem display name.
package naming

import "strings"

// Split breaks a display name like "Jane Doe AcmeCorp" into the person name
// and an organization qualifier. The rule is positional: the last
// whitespace-delimited token is the qualifier, everything before it is the
// name. A single token is all name, no qualifier. This cannot distinguish
// multi-word organizations ("Wang Acme Software Corp" splits after
// "Software"); callers should treat the qualifier as a hint, not a fact.
func Split(displayName string) (name, org string) {
	tokens := strings.Fields(displayName)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	default:
		return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
	}
}
