// Package vcard parses contact-interchange (vCard) files the way address
// book exports actually look: mixed encodings, folded lines, parameters in
// the wrong place. It extracts what it can and drops what it cannot, rather
// than enforcing the standard.
package vcard

// Contact is one parsed person. Values are immutable once parsed.
type Contact struct {
	Name      string   `json:"name"`
	Org       string   `json:"org,omitempty"`
	Title     string   `json:"title,omitempty"`
	Note      string   `json:"note,omitempty"`
	Phones    []string `json:"phones,omitempty"`
	Emails    []string `json:"emails,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
}
