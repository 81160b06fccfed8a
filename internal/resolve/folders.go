package resolve

import (
	"strings"

	"github.com/kozaktomas/contact-album/internal/naming"
	"github.com/kozaktomas/contact-album/internal/vcard"
)

// Folder is one sub-directory to be identified. Path is the caller's
// identifier (usually the full directory path); Name is the display name the
// match runs on.
type Folder struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// FolderMatch pairs a folder with its assigned contact. ContactIndex is the
// position in the original contact list, kept so callers can correlate
// same-name contacts.
type FolderMatch struct {
	Folder       Folder        `json:"folder"`
	Contact      vcard.Contact `json:"contact"`
	ContactIndex int           `json:"contact_index"`
}

// FolderResult is the outcome of one folder-mode run. Matches and
// UnmatchedFolders follow folder input order; UnmatchedContacts follows
// contact input order.
type FolderResult struct {
	Matches           []FolderMatch   `json:"matches"`
	UnmatchedFolders  []Folder        `json:"unmatched_folders"`
	UnmatchedContacts []vcard.Contact `json:"unmatched_contacts"`
}

// ResolveFolders assigns each folder at most one contact, and each contact
// to at most one folder. Folders whose display name carries an organization
// qualifier are resolved in a first pass, so a qualifier-less "Li" cannot
// steal the contact that "Li ACorp" needs. Within a pass, folders are
// processed in input order; candidate contacts are matched by exact trimmed
// name equality among not-yet-claimed contacts.
func ResolveFolders(contacts []vcard.Contact, folders []Folder) *FolderResult {
	claimed := make([]bool, len(contacts))
	assigned := make(map[int]int, len(folders)) // folder input index -> contact index

	// Two-phase pass: qualifier-bearing folders first.
	for _, wantQualifier := range []bool{true, false} {
		for i, f := range folders {
			name, org := naming.Split(f.Name)
			if name == "" {
				continue
			}
			if (org != "") != wantQualifier {
				continue
			}

			candidates := unclaimedByName(contacts, claimed, name)
			if len(candidates) == 0 {
				continue
			}
			winner := candidates[0]
			if len(candidates) > 1 {
				winner = pickByQualifier(contacts, candidates, org)
			}
			claimed[winner] = true
			assigned[i] = winner
		}
	}

	res := &FolderResult{}
	for i, f := range folders {
		if name, _ := naming.Split(f.Name); name == "" {
			continue
		}
		if idx, ok := assigned[i]; ok {
			res.Matches = append(res.Matches, FolderMatch{
				Folder:       f,
				Contact:      contacts[idx],
				ContactIndex: idx,
			})
		} else {
			res.UnmatchedFolders = append(res.UnmatchedFolders, f)
		}
	}
	for i, c := range contacts {
		if !claimed[i] {
			res.UnmatchedContacts = append(res.UnmatchedContacts, c)
		}
	}
	return res
}

// unclaimedByName returns the indices of all not-yet-claimed contacts whose
// trimmed name equals the folder name exactly, in contact list order.
func unclaimedByName(contacts []vcard.Contact, claimed []bool, name string) []int {
	var candidates []int
	for i, c := range contacts {
		if claimed[i] {
			continue
		}
		if strings.TrimSpace(c.Name) == name {
			candidates = append(candidates, i)
		}
	}
	return candidates
}
