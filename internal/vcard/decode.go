package vcard

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// ErrUnreadable means the input could not be decoded under any supported
// encoding. It is the only fatal parser error besides a missing file.
var ErrUnreadable = errors.New("vcard: input not readable under any supported encoding")

// multiByteEncodings are tried, in order, when the input is not valid UTF-8.
// GB2312 content decodes under GBK (a superset); GB18030 covers the rest of
// the simplified Chinese exports seen in the wild.
var multiByteEncodings = []encoding.Encoding{
	simplifiedchinese.GBK,
	simplifiedchinese.GB18030,
}

// decodeText converts raw file bytes to a string, trying UTF-8 first, then
// GBK and GB18030, and finally Latin-1, which accepts any byte sequence.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, enc := range multiByteEncodings {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		// The x/text decoders substitute U+FFFD for invalid sequences
		// instead of failing; treat any substitution as a decode miss.
		if strings.ContainsRune(string(out), utf8.RuneError) {
			continue
		}
		return string(out), nil
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return string(out), nil
}
