// Package resolve assigns parsed contacts to filesystem entities: base-dir
// sub-folders in folder mode, tagged photographs in photo mode. Both modes
// share the qualifier disambiguation rule but differ on purpose in
// cardinality: a contact is claimed by at most one folder, while any number
// of photos may match the same contact. All decisions are deterministic:
// every tie-break falls through to original contact-list order, never map
// iteration order.
package resolve

import (
	"strings"
	"unicode/utf8"

	"github.com/kozaktomas/contact-album/internal/vcard"
)

// isSubsequence reports whether every rune of short occurs in long in the
// same relative order, not necessarily adjacent. Used to match an
// abbreviated contact organization ("ACorp") against a fuller folder
// qualifier ("AcmeCorp"). Whitespace in short is skipped: folder qualifiers
// are single tokens, so "Beijing Office" must still match "BeijingOffice".
func isSubsequence(short, long string) bool {
	short = strings.Join(strings.Fields(short), "")
	if short == "" || long == "" {
		return false
	}
	s := []rune(short)
	i := 0
	for _, r := range long {
		if i < len(s) && s[i] == r {
			i++
		}
	}
	return i == len(s)
}

// pickByQualifier disambiguates same-name candidates against an entity's
// organization qualifier. Priority order: exact organization equality, then
// the longest subsequence match, then a contact with no organization at all
// (treated as the unclaimed default), then the first candidate in contact
// list order. Candidates are contact-list indices in ascending order.
func pickByQualifier(contacts []vcard.Contact, candidates []int, entityOrg string) int {
	if entityOrg != "" {
		best := -1
		bestScore := 0
		for _, idx := range candidates {
			org := strings.TrimSpace(contacts[idx].Org)
			if org == "" {
				continue
			}
			if org == entityOrg {
				return idx
			}
			if isSubsequence(org, entityOrg) {
				if score := utf8.RuneCountInString(org); score > bestScore {
					bestScore = score
					best = idx
				}
			}
		}
		if best >= 0 {
			return best
		}
	}

	for _, idx := range candidates {
		if strings.TrimSpace(contacts[idx].Org) == "" {
			return idx
		}
	}
	return candidates[0]
}
