package xmp

import (
	"encoding/xml"
	"html"
	"regexp"
	"strings"
)

// node is a generic XML tree element. XMP vocabularies vary too much for
// fixed structs, so strategies walk this tree by local name and attribute.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
	Text     string     `xml:",chardata"`
}

// parseTree decodes the first XML document found in the packet text.
func parseTree(text string) (*node, error) {
	// Skip any <?xpacket ...?> envelope before the root element.
	if i := strings.Index(text, "<x:xmpmeta"); i >= 0 {
		text = text[i:]
	} else if i := strings.Index(text, "<rdf:RDF"); i >= 0 {
		text = text[i:]
	}

	var root node
	dec := xml.NewDecoder(strings.NewReader(text))
	// Tag writers rarely declare every namespace or escape every entity.
	dec.Strict = false
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// walk visits every node in document order.
func (n *node) walk(visit func(*node)) {
	visit(n)
	for i := range n.Children {
		n.Children[i].walk(visit)
	}
}

// attr returns the value of the first attribute with the given local name
// whose namespace (resolved URI or raw prefix) contains nsHint. An empty
// nsHint matches any namespace.
func (n *node) attr(local, nsHint string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local != local {
			continue
		}
		if nsHint == "" || strings.Contains(strings.ToLower(a.Name.Space), nsHint) {
			return a.Value, true
		}
	}
	return "", false
}

// listItems returns the text of every rdf:li under an rdf:Bag/Seq/Alt child.
func (n *node) listItems() []string {
	var items []string
	n.walk(func(c *node) {
		if c.XMLName.Local == "li" {
			items = append(items, strings.TrimSpace(c.Text))
		}
	})
	return items
}

// collectSubjects implements strategy 1: generic dc:subject keyword entries.
// The sentinel category value and anything that looks like a tag path are
// excluded, since those describe groupings rather than people.
func (e *Extractor) collectSubjects(root *node, acc *accumulator) {
	root.walk(func(n *node) {
		if n.XMLName.Local != "subject" {
			return
		}
		for _, item := range n.listItems() {
			if item == e.sentinel || strings.ContainsAny(item, "/\\") {
				continue
			}
			acc.add(item)
		}
	})
}

// collectPersonDisplayNames implements strategy 2: the Microsoft Photo
// region schema attaches MPReg:PersonDisplayName to list items.
func (e *Extractor) collectPersonDisplayNames(root *node, acc *accumulator) {
	root.walk(func(n *node) {
		if n.XMLName.Local != "li" {
			return
		}
		if v, ok := n.attr("PersonDisplayName", ""); ok {
			acc.add(v)
		}
	})
}

// collectRegionNames implements strategy 3: MWG face regions carry an
// mwg-rs:Name attribute on rdf:Description elements.
func (e *Extractor) collectRegionNames(root *node, acc *accumulator) {
	root.walk(func(n *node) {
		if n.XMLName.Local != "Description" {
			return
		}
		if v, ok := n.attr("Name", "mwg"); ok {
			acc.add(v)
		} else if v, ok := n.attr("Name", "regions"); ok {
			acc.add(v)
		}
	})
}

// collectHierarchicalTags implements strategy 4: digiKam-style tag lists
// where person entries are prefixed with the category segment
// (e.g. "People/Jane Doe"); only the part after the prefix is kept.
func (e *Extractor) collectHierarchicalTags(root *node, acc *accumulator) {
	root.walk(func(n *node) {
		if n.XMLName.Local != "TagsList" && n.XMLName.Local != "hierarchicalSubject" {
			return
		}
		for _, item := range n.listItems() {
			if rest, ok := strings.CutPrefix(item, e.personPrefix); ok {
				acc.add(rest)
			}
		}
	})
}

var categoryInner = regexp.MustCompile(`<Category[^>]*>([^<>]+)</Category>`)

// collectCategories implements strategy 5: ACDSee stores an entity-encoded
// XML fragment in an acdsee:categories attribute; unescape it and pull the
// inner category text, skipping the sentinel category itself.
func (e *Extractor) collectCategories(root *node, acc *accumulator) {
	root.walk(func(n *node) {
		if n.XMLName.Local != "Description" {
			return
		}
		v, ok := n.attr("categories", "")
		if !ok {
			return
		}
		for _, m := range categoryInner.FindAllStringSubmatch(html.UnescapeString(v), -1) {
			if name := strings.TrimSpace(m[1]); name != e.sentinel {
				acc.add(name)
			}
		}
	})
}

// Raw-text equivalents for strategies 1-3, used when the packet is not
// well-formed XML. Strategies 4 and 5 have no textual fallback.
var (
	subjectBlock   = regexp.MustCompile(`(?is)<dc:subject>(.*?)</dc:subject>`)
	listItem       = regexp.MustCompile(`(?is)<rdf:li[^>]*>(.*?)</rdf:li>`)
	personNameAttr = regexp.MustCompile(`(?i)MPReg:PersonDisplayName\s*=\s*"([^"]+)"`)
	regionNameAttr = regexp.MustCompile(`(?i)mwg-rs:Name\s*=\s*"([^"]+)"`)
)

func (e *Extractor) fallbackSubjects(text string, acc *accumulator) {
	for _, block := range subjectBlock.FindAllStringSubmatch(text, -1) {
		for _, m := range listItem.FindAllStringSubmatch(block[1], -1) {
			item := strings.TrimSpace(m[1])
			if item == e.sentinel || strings.ContainsAny(item, "/\\") {
				continue
			}
			acc.add(item)
		}
	}
}

func (e *Extractor) fallbackPersonDisplayNames(text string, acc *accumulator) {
	for _, m := range personNameAttr.FindAllStringSubmatch(text, -1) {
		acc.add(m[1])
	}
}

func (e *Extractor) fallbackRegionNames(text string, acc *accumulator) {
	for _, m := range regionNameAttr.FindAllStringSubmatch(text, -1) {
		acc.add(m[1])
	}
}
