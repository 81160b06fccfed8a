package vcard

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	beginMarker = regexp.MustCompile(`(?i)BEGIN:VCARD`)
	// Encoded-word prefix some exporters leave in front of values,
	// e.g. "=?UTF-8?Q?...?=?...?".
	charsetPrefix = regexp.MustCompile(`^=\?.*?\?=.*?\?`)
)

// ParseFile reads and parses a contact file from disk.
func ParseFile(path string) ([]Contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contact file: %w", err)
	}
	return Parse(data)
}

// Parse extracts all contacts with a derivable name from raw vCard bytes.
// Records without BEGIN/END markers or without a name are dropped silently;
// the only error is input that cannot be decoded at all.
func Parse(data []byte) ([]Contact, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	var contacts []Contact
	for _, block := range beginMarker.Split(unfold(text), -1) {
		if !strings.Contains(strings.ToUpper(block), "END:VCARD") {
			continue
		}
		if c, ok := parseRecord(block); ok {
			contacts = append(contacts, c)
		}
	}
	return contacts, nil
}

// unfold rejoins folded logical lines. A physical line starting with a
// single space or tab continues the previous line; exactly that one
// whitespace character is stripped before joining.
func unfold(text string) string {
	var lines []string
	var current strings.Builder
	started := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if started && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) {
			current.WriteString(line[1:])
			continue
		}
		if started {
			lines = append(lines, current.String())
			current.Reset()
		}
		current.WriteString(line)
		started = true
	}
	if started {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}

// recordState accumulates fields for one record while its lines stream by.
type recordState struct {
	contact        Contact
	structuredName string
}

// fieldTable maps a field tag to its extraction rule. Single-value fields
// keep the first non-empty occurrence; list fields keep every unique value
// in first-seen order.
var fieldTable = map[string]func(*recordState, string){
	"FN": func(r *recordState, v string) {
		if r.contact.Name == "" {
			r.contact.Name = stripCharsetPrefix(v)
		}
	},
	"N": func(r *recordState, v string) {
		if r.structuredName == "" {
			r.structuredName = v
		}
	},
	"ORG": func(r *recordState, v string) {
		if r.contact.Org == "" {
			r.contact.Org = stripCharsetPrefix(v)
		}
	},
	"TEL": func(r *recordState, v string) {
		r.contact.Phones = appendUnique(r.contact.Phones, v)
	},
	"EMAIL": func(r *recordState, v string) {
		r.contact.Emails = appendUnique(r.contact.Emails, v)
	},
	"ADR": func(r *recordState, v string) {
		r.contact.Addresses = appendUnique(r.contact.Addresses, joinComponents(v))
	},
	"TITLE": func(r *recordState, v string) {
		if r.contact.Title == "" {
			r.contact.Title = v
		}
	},
	"NOTE": func(r *recordState, v string) {
		if r.contact.Note == "" {
			r.contact.Note = v
		}
	},
}

// parseRecord extracts one contact from the text between record markers.
// Returns false when no name can be derived; that is the only validity gate.
func parseRecord(block string) (Contact, bool) {
	state := recordState{}

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		tag, value := splitField(line)
		if rule, ok := fieldTable[tag]; ok {
			rule(&state, value)
		}
	}

	if state.contact.Name == "" && state.structuredName != "" {
		state.contact.Name = nameFromStructured(state.structuredName)
	}
	if state.contact.Name == "" {
		return Contact{}, false
	}
	return state.contact, true
}

// splitField separates a logical line into its uppercase field tag and
// value. The value is the text after the first colon; when a malformed line
// has no colon, everything after the tag (minus stray separators) is used.
func splitField(line string) (tag, value string) {
	i := 0
	for i < len(line) {
		c := line[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '-' {
			i++
			continue
		}
		break
	}
	tag = strings.ToUpper(line[:i])

	rest := line[i:]
	if colon := strings.Index(rest, ":"); colon != -1 {
		value = rest[colon+1:]
	} else {
		value = strings.TrimLeft(rest, ";:")
	}
	return tag, strings.TrimSpace(value)
}

// nameFromStructured joins the family and given components of an N value
// (family;given;additional;prefix;suffix) with a single space, skipping
// whichever of the two is empty.
func nameFromStructured(v string) string {
	components := strings.Split(v, ";")
	if len(components) > 2 {
		components = components[:2]
	}
	var parts []string
	for _, p := range components {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// joinComponents collapses a semicolon-separated ADR value into one address
// string, dropping empty components.
func joinComponents(v string) string {
	var parts []string
	for _, p := range strings.Split(v, ";") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func stripCharsetPrefix(v string) string {
	return strings.TrimSpace(charsetPrefix.ReplaceAllString(v, ""))
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
