package resolve

import (
	"strings"

	"github.com/kozaktomas/contact-album/internal/vcard"
)

// Photo is one photograph with the person tags already extracted from its
// metadata. Tags may be empty when the photo carried no readable tags.
type Photo struct {
	Path string   `json:"path"`
	Tags []string `json:"tags,omitempty"`
}

// PhotoMatch pairs a photo with every contact matched by its tags,
// duplicate-free, in tag order.
type PhotoMatch struct {
	Photo          Photo           `json:"photo"`
	Contacts       []vcard.Contact `json:"contacts"`
	ContactIndexes []int           `json:"contact_indexes"`
}

// PhotoResult is the outcome of one photo-mode run.
type PhotoResult struct {
	Matches           []PhotoMatch    `json:"matches"`
	UnmatchedPhotos   []Photo         `json:"unmatched_photos"`
	UnmatchedContacts []vcard.Contact `json:"unmatched_contacts"`
}

// ResolvePhotos matches each photo's tags against the contact list. Unlike
// folder mode there is no claiming: one contact may appear on any number of
// photos, and one photo may match several contacts. Tags are matched by
// exact name equality or containment in either direction, since face tags
// are often abbreviated or extended forms of the recorded name. A photo
// with no tags, or whose tags match nothing, ends up unmatched; a contact
// is unmatched only if no tag on any photo selected it.
func ResolvePhotos(contacts []vcard.Contact, photos []Photo) *PhotoResult {
	res := &PhotoResult{}
	everMatched := make([]bool, len(contacts))

	for _, p := range photos {
		if len(p.Tags) == 0 {
			res.UnmatchedPhotos = append(res.UnmatchedPhotos, p)
			continue
		}

		match := PhotoMatch{Photo: p}
		onPhoto := make(map[int]bool)
		for _, tag := range p.Tags {
			candidates := candidatesForTag(contacts, tag)
			if len(candidates) == 0 {
				continue
			}
			winner := pickTagged(contacts, candidates)
			if onPhoto[winner] {
				continue
			}
			onPhoto[winner] = true
			everMatched[winner] = true
			match.Contacts = append(match.Contacts, contacts[winner])
			match.ContactIndexes = append(match.ContactIndexes, winner)
		}

		if len(match.Contacts) == 0 {
			res.UnmatchedPhotos = append(res.UnmatchedPhotos, p)
			continue
		}
		res.Matches = append(res.Matches, match)
	}

	for i, c := range contacts {
		if !everMatched[i] {
			res.UnmatchedContacts = append(res.UnmatchedContacts, c)
		}
	}
	return res
}

// candidatesForTag returns contact indices whose name equals the tag or has
// a containment relationship with it, in contact list order.
func candidatesForTag(contacts []vcard.Contact, tag string) []int {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	var candidates []int
	for i, c := range contacts {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		if name == tag || strings.Contains(tag, name) || strings.Contains(name, tag) {
			candidates = append(candidates, i)
		}
	}
	return candidates
}

// pickTagged chooses among several candidates for one tag: the first
// candidate with a non-empty organization, otherwise the first in contact
// list order. The tag text itself is deliberately not consulted further.
func pickTagged(contacts []vcard.Contact, candidates []int) int {
	for _, idx := range candidates {
		if strings.TrimSpace(contacts[idx].Org) != "" {
			return idx
		}
	}
	return candidates[0]
}
