package resolve

import (
	"reflect"
	"testing"

	"github.com/kozaktomas/contact-album/internal/vcard"
)

func photo(path string, tags ...string) Photo {
	return Photo{Path: path, Tags: tags}
}

func TestResolvePhotosBasic(t *testing.T) {
	contacts := []vcard.Contact{
		{Name: "Zhang Wei"},
		{Name: "Li Na"},
	}
	photos := []Photo{
		photo("a.jpg", "Zhang Wei"),
		photo("b.jpg", "Li Na", "Zhang Wei"),
		photo("c.jpg", "Nobody Known"),
	}

	res := ResolvePhotos(contacts, photos)

	if len(res.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(res.Matches))
	}
	if !reflect.DeepEqual(res.Matches[0].ContactIndexes, []int{0}) {
		t.Errorf("a.jpg indexes = %v", res.Matches[0].ContactIndexes)
	}
	if !reflect.DeepEqual(res.Matches[1].ContactIndexes, []int{1, 0}) {
		t.Errorf("b.jpg indexes = %v", res.Matches[1].ContactIndexes)
	}
	if len(res.UnmatchedPhotos) != 1 || res.UnmatchedPhotos[0].Path != "c.jpg" {
		t.Errorf("unmatched photos = %+v", res.UnmatchedPhotos)
	}
	if len(res.UnmatchedContacts) != 0 {
		t.Errorf("unmatched contacts = %+v", res.UnmatchedContacts)
	}
}

func TestResolvePhotosNonExclusive(t *testing.T) {
	// Unlike folder mode, one contact may match any number of photos.
	contacts := []vcard.Contact{{Name: "Zhang Wei"}}
	photos := []Photo{
		photo("a.jpg", "Zhang Wei"),
		photo("b.jpg", "Zhang Wei"),
		photo("c.jpg", "Zhang Wei"),
	}

	res := ResolvePhotos(contacts, photos)

	if len(res.Matches) != 3 {
		t.Fatalf("matches = %d, want 3", len(res.Matches))
	}
	for _, m := range res.Matches {
		if len(m.Contacts) != 1 || m.Contacts[0].Name != "Zhang Wei" {
			t.Errorf("match = %+v", m)
		}
	}
}

func TestResolvePhotosContainment(t *testing.T) {
	contacts := []vcard.Contact{{Name: "Zhang Wei"}}
	photos := []Photo{
		photo("short-tag.jpg", "Zhang"),          // name contains tag
		photo("long-tag.jpg", "Zhang Wei 2024"),  // tag contains name
		photo("unrelated.jpg", "Wang"),
	}

	res := ResolvePhotos(contacts, photos)

	if len(res.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(res.Matches))
	}
	if len(res.UnmatchedPhotos) != 1 || res.UnmatchedPhotos[0].Path != "unrelated.jpg" {
		t.Errorf("unmatched photos = %+v", res.UnmatchedPhotos)
	}
}

func TestResolvePhotosDeduplicatesPerPhoto(t *testing.T) {
	// Two tags selecting the same contact yield one entry on that photo.
	contacts := []vcard.Contact{{Name: "Zhang Wei"}}
	photos := []Photo{photo("a.jpg", "Zhang", "Zhang Wei")}

	res := ResolvePhotos(contacts, photos)

	if len(res.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(res.Matches))
	}
	if len(res.Matches[0].Contacts) != 1 {
		t.Errorf("contacts = %+v", res.Matches[0].Contacts)
	}
}

func TestResolvePhotosPrefersOrgBearingContact(t *testing.T) {
	contacts := []vcard.Contact{
		{Name: "Li"},
		{Name: "Li", Org: "ACorp"},
	}
	photos := []Photo{photo("a.jpg", "Li")}

	res := ResolvePhotos(contacts, photos)

	if len(res.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(res.Matches))
	}
	if !reflect.DeepEqual(res.Matches[0].ContactIndexes, []int{1}) {
		t.Errorf("indexes = %v, want [1]", res.Matches[0].ContactIndexes)
	}
	if len(res.UnmatchedContacts) != 1 || res.UnmatchedContacts[0].Name != "Li" {
		t.Errorf("unmatched contacts = %+v", res.UnmatchedContacts)
	}
}

func TestResolvePhotosEmptyTags(t *testing.T) {
	contacts := []vcard.Contact{{Name: "Zhang Wei"}}
	photos := []Photo{photo("untagged.jpg")}

	res := ResolvePhotos(contacts, photos)

	if len(res.Matches) != 0 {
		t.Errorf("matches = %+v", res.Matches)
	}
	if len(res.UnmatchedPhotos) != 1 {
		t.Errorf("unmatched photos = %+v", res.UnmatchedPhotos)
	}
	if len(res.UnmatchedContacts) != 1 {
		t.Errorf("unmatched contacts = %+v", res.UnmatchedContacts)
	}
}

func TestResolvePhotosSkipsBlankContactNames(t *testing.T) {
	contacts := []vcard.Contact{{Name: "  "}, {Name: "Zhang Wei"}}
	photos := []Photo{photo("a.jpg", "Zhang Wei")}

	res := ResolvePhotos(contacts, photos)

	if len(res.Matches) != 1 || res.Matches[0].ContactIndexes[0] != 1 {
		t.Fatalf("matches = %+v", res.Matches)
	}
}
