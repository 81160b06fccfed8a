package resolve

import (
	"fmt"
	"testing"

	"github.com/kozaktomas/contact-album/internal/vcard"
)

func folder(name string) Folder {
	return Folder{Path: "/photos/" + name, Name: name}
}

func TestResolveFoldersBasic(t *testing.T) {
	contacts := []vcard.Contact{
		{Name: "Zhang Wei"},
		{Name: "Li Na"},
	}
	folders := []Folder{folder("Li Na"), folder("Unknown Person")}

	res := ResolveFolders(contacts, folders)

	if len(res.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(res.Matches))
	}
	if res.Matches[0].Contact.Name != "Li Na" || res.Matches[0].ContactIndex != 1 {
		t.Errorf("match = %+v", res.Matches[0])
	}
	if len(res.UnmatchedFolders) != 1 || res.UnmatchedFolders[0].Name != "Unknown Person" {
		t.Errorf("unmatched folders = %+v", res.UnmatchedFolders)
	}
	if len(res.UnmatchedContacts) != 1 || res.UnmatchedContacts[0].Name != "Zhang Wei" {
		t.Errorf("unmatched contacts = %+v", res.UnmatchedContacts)
	}
}

func TestResolveFoldersExclusiveClaiming(t *testing.T) {
	// Two contacts with the same name, two folders with that name: each
	// folder must get its own contact, in order.
	contacts := []vcard.Contact{
		{Name: "Wang", Phones: []string{"+1"}},
		{Name: "Wang", Phones: []string{"+2"}},
	}
	folders := []Folder{folder("Wang"), folder("Wang")}

	res := ResolveFolders(contacts, folders)

	if len(res.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(res.Matches))
	}
	if res.Matches[0].ContactIndex == res.Matches[1].ContactIndex {
		t.Errorf("both folders claimed contact %d", res.Matches[0].ContactIndex)
	}
	if len(res.UnmatchedContacts) != 0 {
		t.Errorf("unmatched contacts = %+v", res.UnmatchedContacts)
	}
}

func TestResolveFoldersNoContactReuse(t *testing.T) {
	contacts := []vcard.Contact{{Name: "Wang"}}
	folders := []Folder{folder("Wang"), folder("Wang")}

	res := ResolveFolders(contacts, folders)

	if len(res.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(res.Matches))
	}
	if len(res.UnmatchedFolders) != 1 {
		t.Errorf("unmatched folders = %+v", res.UnmatchedFolders)
	}
}

func TestResolveFoldersQualifierPassRunsFirst(t *testing.T) {
	// The qualifier-less folder comes first in input order, but must not
	// steal the org-bearing contact that the qualified folder needs.
	contacts := []vcard.Contact{
		{Name: "Zhang", Org: "Beijing Office"},
		{Name: "Zhang"},
	}
	folders := []Folder{folder("Zhang"), folder("Zhang BeijingOffice")}

	res := ResolveFolders(contacts, folders)

	if len(res.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(res.Matches))
	}
	byFolder := map[string]int{}
	for _, m := range res.Matches {
		byFolder[m.Folder.Name] = m.ContactIndex
	}
	if byFolder["Zhang BeijingOffice"] != 0 {
		t.Errorf("qualified folder got contact %d, want 0", byFolder["Zhang BeijingOffice"])
	}
	if byFolder["Zhang"] != 1 {
		t.Errorf("plain folder got contact %d, want 1", byFolder["Zhang"])
	}
}

func TestResolveFoldersSubsequenceQualifier(t *testing.T) {
	contacts := []vcard.Contact{
		{Name: "Li", Org: "ACorp"},
		{Name: "Li", Org: "Zenith"},
	}
	folders := []Folder{folder("Li AcmeCorp")}

	res := ResolveFolders(contacts, folders)

	if len(res.Matches) != 1 || res.Matches[0].ContactIndex != 0 {
		t.Fatalf("matches = %+v", res.Matches)
	}
}

func TestResolveFoldersOutputOrder(t *testing.T) {
	contacts := []vcard.Contact{
		{Name: "Chen", Org: "Apex"},
		{Name: "Chen"},
		{Name: "Sun"},
	}
	// Matches must follow folder input order even though the qualified
	// folder is resolved in the earlier pass.
	folders := []Folder{folder("Sun"), folder("Chen Apex"), folder("Chen")}

	res := ResolveFolders(contacts, folders)

	if len(res.Matches) != 3 {
		t.Fatalf("matches = %d, want 3", len(res.Matches))
	}
	wantOrder := []string{"Sun", "Chen Apex", "Chen"}
	for i, m := range res.Matches {
		if m.Folder.Name != wantOrder[i] {
			t.Errorf("match %d folder = %q, want %q", i, m.Folder.Name, wantOrder[i])
		}
	}
	if res.Matches[1].ContactIndex != 0 || res.Matches[2].ContactIndex != 1 {
		t.Errorf("contact indexes = %d, %d", res.Matches[1].ContactIndex, res.Matches[2].ContactIndex)
	}
}

func TestResolveFoldersSkipsBlankNames(t *testing.T) {
	contacts := []vcard.Contact{{Name: "Zhou"}}
	folders := []Folder{folder("   "), folder("Zhou")}

	res := ResolveFolders(contacts, folders)

	if len(res.Matches) != 1 || res.Matches[0].Folder.Name != "Zhou" {
		t.Fatalf("matches = %+v", res.Matches)
	}
	if len(res.UnmatchedFolders) != 0 {
		t.Errorf("blank folder should be dropped, got %+v", res.UnmatchedFolders)
	}
}

func TestResolveFoldersDeterministic(t *testing.T) {
	contacts := []vcard.Contact{
		{Name: "Li", Org: "ACorp"},
		{Name: "Li", Org: "BCorp"},
		{Name: "Li"},
		{Name: "Wang"},
	}
	folders := []Folder{
		folder("Li BCorp"), folder("Li"), folder("Wang"), folder("Li ACorp"),
	}

	first := fmt.Sprintf("%+v", ResolveFolders(contacts, folders))
	for i := 0; i < 10; i++ {
		if got := fmt.Sprintf("%+v", ResolveFolders(contacts, folders)); got != first {
			t.Fatalf("resolution not deterministic:\n%s\n%s", first, got)
		}
	}
}
