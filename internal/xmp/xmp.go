// Package xmp extracts person names from embedded XMP metadata packets.
// Face-tagging tools disagree about where names live, so extraction runs a
// fixed ladder of strategies over the packet and accumulates every name it
// can find. Extraction never fails: unreadable metadata simply yields no
// names, so one bad photo cannot abort a batch.
package xmp

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// packetMarkers identify a decoded blob as an XMP packet.
var packetMarkers = []string{"x:xmpmeta", "<?xpacket", "rdf:RDF"}

// Result is the outcome of extracting one photo's metadata.
// Readable distinguishes "decoded fine, nobody tagged" from "could not make
// sense of the packet"; both leave the photo unmatched downstream.
type Result struct {
	Names    []string `json:"names,omitempty"`
	Readable bool     `json:"readable"`
}

// Extractor holds the tag vocabulary knobs shared by all strategies.
type Extractor struct {
	sentinel     string // keyword value that names the category itself, not a person
	personPrefix string // hierarchical-tag prefix for person entries, e.g. "People/"
}

func NewExtractor(sentinel, personPrefix string) *Extractor {
	return &Extractor{sentinel: sentinel, personPrefix: personPrefix}
}

// Extract pulls candidate person names out of a raw metadata blob.
// Names are trimmed, duplicate-free, and kept in first-seen order.
func (e *Extractor) Extract(blob []byte) Result {
	text, ok := decodePacket(blob)
	if !ok {
		return Result{Readable: false}
	}

	acc := newAccumulator()
	if root, err := parseTree(text); err == nil {
		e.collectSubjects(root, acc)
		e.collectPersonDisplayNames(root, acc)
		e.collectRegionNames(root, acc)
		e.collectHierarchicalTags(root, acc)
		e.collectCategories(root, acc)
	} else {
		// No well-formed tree; fall back to pattern extraction over the
		// raw text for the strategies that have a textual equivalent.
		e.fallbackSubjects(text, acc)
		e.fallbackPersonDisplayNames(text, acc)
		e.fallbackRegionNames(text, acc)
	}

	return Result{Names: acc.names, Readable: true}
}

// decodePacket decodes the blob with the first encoding whose output looks
// like an XMP packet. Returns false when nothing recognizable comes out.
func decodePacket(blob []byte) (string, bool) {
	blob = bytes.TrimPrefix(blob, []byte{0xEF, 0xBB, 0xBF})

	if utf8.Valid(blob) {
		if text := strings.TrimPrefix(string(blob), "\uFEFF"); hasPacketMarker(text) {
			return text, true
		}
	}

	decoders := []encoding.Encoding{
		unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
		simplifiedchinese.GBK,
		simplifiedchinese.GB18030,
		charmap.ISO8859_1,
	}
	for _, enc := range decoders {
		out, err := enc.NewDecoder().Bytes(blob)
		if err != nil {
			continue
		}
		if text := strings.TrimPrefix(string(out), "\uFEFF"); hasPacketMarker(text) {
			return text, true
		}
	}
	return "", false
}

func hasPacketMarker(text string) bool {
	for _, m := range packetMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// accumulator keeps candidate names unique and in first-seen order. A name
// found by an earlier strategy is not re-added by a later one.
type accumulator struct {
	names []string
	seen  map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]struct{})}
}

// add records a candidate name; empty strings are ignored.
func (a *accumulator) add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, ok := a.seen[name]; ok {
		return
	}
	a.seen[name] = struct{}{}
	a.names = append(a.names, name)
}
