package vcard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleRecord = `BEGIN:VCARD
VERSION:3.0
FN:Zhang Wei
ORG:Beijing Office
TITLE:Engineer
TEL;TYPE=CELL:+86 139 0000 0001
TEL;TYPE=WORK:+86 10 6500 0002
EMAIL:zhang.wei@example.com
ADR;TYPE=HOME:;;12 Chaoyang Rd;Beijing;;100020;CN
NOTE:Met at the 2023 conference
END:VCARD
`

func TestParseSingleRecord(t *testing.T) {
	contacts, err := Parse([]byte(sampleRecord))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}

	c := contacts[0]
	if c.Name != "Zhang Wei" {
		t.Errorf("name = %q, want %q", c.Name, "Zhang Wei")
	}
	if c.Org != "Beijing Office" {
		t.Errorf("org = %q, want %q", c.Org, "Beijing Office")
	}
	if c.Title != "Engineer" {
		t.Errorf("title = %q, want %q", c.Title, "Engineer")
	}
	if c.Note != "Met at the 2023 conference" {
		t.Errorf("note = %q", c.Note)
	}
	if len(c.Phones) != 2 || c.Phones[0] != "+86 139 0000 0001" {
		t.Errorf("phones = %v", c.Phones)
	}
	if len(c.Emails) != 1 || c.Emails[0] != "zhang.wei@example.com" {
		t.Errorf("emails = %v", c.Emails)
	}
	if len(c.Addresses) != 1 || c.Addresses[0] != "12 Chaoyang Rd Beijing 100020 CN" {
		t.Errorf("addresses = %v", c.Addresses)
	}
}

func TestParseMultipleRecords(t *testing.T) {
	data := sampleRecord + "BEGIN:VCARD\nFN:Li Na\nEND:VCARD\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[1].Name != "Li Na" {
		t.Errorf("second name = %q", contacts[1].Name)
	}
}

func TestParseCaseInsensitiveMarkers(t *testing.T) {
	data := "begin:vcard\nFN:Anna\nend:vcard\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Anna" {
		t.Fatalf("contacts = %+v", contacts)
	}
}

func TestParseDropsRecordWithoutEndMarker(t *testing.T) {
	data := "BEGIN:VCARD\nFN:Truncated Export\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("expected no contacts, got %+v", contacts)
	}
}

func TestParseDropsRecordWithoutName(t *testing.T) {
	data := "BEGIN:VCARD\nTEL:+420000000000\nEND:VCARD\nBEGIN:VCARD\nFN:Kept\nEND:VCARD\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Kept" {
		t.Fatalf("contacts = %+v", contacts)
	}
}

func TestParseNameFallsBackToStructuredName(t *testing.T) {
	// family;given;additional;prefix;suffix, only the first two count
	data := "BEGIN:VCARD\nN:Zhang;Wei;Alexander;Dr.;Jr.\nEND:VCARD\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Zhang Wei" {
		t.Fatalf("contacts = %+v", contacts)
	}
}

func TestParseStructuredNameSkipsEmptyComponents(t *testing.T) {
	data := "BEGIN:VCARD\nN:;Madonna;;;\nEND:VCARD\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Madonna" {
		t.Fatalf("contacts = %+v", contacts)
	}
}

func TestParsePrefersFormattedName(t *testing.T) {
	data := "BEGIN:VCARD\nN:Zhang;Wei\nFN:Wei Zhang\nEND:VCARD\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contacts[0].Name != "Wei Zhang" {
		t.Errorf("name = %q, want %q", contacts[0].Name, "Wei Zhang")
	}
}

func TestParseDeduplicatesListFields(t *testing.T) {
	data := "BEGIN:VCARD\nFN:Dup\nTEL:+1\nTEL:+1\nTEL:+2\nEMAIL:a@b.c\nEMAIL:a@b.c\nEND:VCARD\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := contacts[0]
	if len(c.Phones) != 2 || c.Phones[0] != "+1" || c.Phones[1] != "+2" {
		t.Errorf("phones = %v", c.Phones)
	}
	if len(c.Emails) != 1 {
		t.Errorf("emails = %v", c.Emails)
	}
}

func TestParseStripsCharsetPrefix(t *testing.T) {
	data := "BEGIN:VCARD\nFN:=?UTF-8?Q?encoded?=stub?Zhang Wei\nEND:VCARD\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contacts[0].Name != "Zhang Wei" {
		t.Errorf("name = %q, want %q", contacts[0].Name, "Zhang Wei")
	}
}

func TestParseMalformedLineWithoutColon(t *testing.T) {
	data := "BEGIN:VCARD\nFN;Jane Doe\nEND:VCARD\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Jane Doe" {
		t.Fatalf("contacts = %+v", contacts)
	}
}

func TestUnfold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no folds", "FN:Jane\nTEL:+1", "FN:Jane\nTEL:+1"},
		{"space continuation", "NOTE:first part\n second part", "NOTE:first partsecond part"},
		{"tab continuation", "NOTE:first\n\tsecond", "NOTE:firstsecond"},
		{"only one char stripped", "NOTE:a\n  b", "NOTE:a b"},
		{"crlf line endings", "FN:Jane\r\nTEL:+1\r\n", "FN:Jane\nTEL:+1\n"},
		{"multiple folds", "NOTE:a\n b\n c", "NOTE:abc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := unfold(tc.in); got != tc.want {
				t.Errorf("unfold(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseFoldedValue(t *testing.T) {
	data := "BEGIN:VCARD\nFN:Long Na\n me Here\nEND:VCARD\n"
	contacts, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contacts[0].Name != "Long Name Here" {
		t.Errorf("name = %q, want %q", contacts[0].Name, "Long Name Here")
	}
}

func TestSplitField(t *testing.T) {
	tests := []struct {
		line  string
		tag   string
		value string
	}{
		{"FN:Jane", "FN", "Jane"},
		{"fn:Jane", "FN", "Jane"},
		{"TEL;TYPE=CELL:+86 139", "TEL", "+86 139"},
		{"X-CUSTOM-FIELD:value", "X-CUSTOM-FIELD", "value"},
		{"ADR;TYPE=HOME:;;street", "ADR", ";;street"},
		{"NOTE:a:b:c", "NOTE", "a:b:c"},
		{"ORG;broken value", "ORG", "broken value"},
	}
	for _, tc := range tests {
		tag, value := splitField(tc.line)
		if tag != tc.tag || value != tc.value {
			t.Errorf("splitField(%q) = (%q, %q), want (%q, %q)",
				tc.line, tag, value, tc.tag, tc.value)
		}
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.vcf")
	if err := os.WriteFile(path, []byte(sampleRecord), 0644); err != nil {
		t.Fatal(err)
	}

	contacts, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Zhang Wei" {
		t.Fatalf("contacts = %+v", contacts)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.vcf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading contact file") {
		t.Errorf("error = %v", err)
	}
}
