package scan

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
)

// xmpHeader prefixes the payload of a JPEG APP1 segment that carries XMP.
const xmpHeader = "http://ns.adobe.com/xap/1.0/\x00"

// xmpKeyword prefixes a PNG iTXt chunk that carries XMP.
const xmpKeyword = "XML:com.adobe.xmp\x00"

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// XMPSegment locates the embedded XMP packet for an image file. It checks a
// sidecar .xmp file first, then the image container itself (JPEG APP1 or
// PNG iTXt). Returns nil when no packet is present; a missing packet is not
// an error.
func XMPSegment(path string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".xmp") {
		return os.ReadFile(path)
	}

	sidecar := strings.TrimSuffix(path, filepath.Ext(path)) + ".xmp"
	if data, err := os.ReadFile(sidecar); err == nil {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if packet := xmpFromJPEG(data); packet != nil {
		return packet, nil
	}
	return xmpFromPNG(data), nil
}

// xmpFromJPEG walks the JPEG marker segments up to the start of scan data
// and returns the payload of the first XMP APP1 segment.
func xmpFromJPEG(data []byte) []byte {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil
	}

	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			return nil
		}
		marker := data[i+1]
		// Standalone markers have no length field.
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD9) {
			i += 2
			continue
		}
		if marker == 0xDA {
			// Start of scan; no more header segments.
			return nil
		}
		length := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if length < 2 || i+2+length > len(data) {
			return nil
		}
		payload := data[i+4 : i+2+length]
		if marker == 0xE1 && bytes.HasPrefix(payload, []byte(xmpHeader)) {
			return payload[len(xmpHeader):]
		}
		i += 2 + length
	}
	return nil
}

// xmpFromPNG scans PNG chunks for an iTXt chunk keyed with the XMP keyword
// and returns its uncompressed text payload.
func xmpFromPNG(data []byte) []byte {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil
	}

	i := len(pngSignature)
	for i+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[i : i+4]))
		chunkType := string(data[i+4 : i+8])
		start := i + 8
		if length < 0 || start+length+4 > len(data) {
			return nil
		}
		if chunkType == "IEND" {
			return nil
		}
		if chunkType == "iTXt" {
			chunk := data[start : start+length]
			if bytes.HasPrefix(chunk, []byte(xmpKeyword)) {
				rest := chunk[len(xmpKeyword):]
				// compression flag + method, then language tag and
				// translated keyword, each NUL-terminated.
				if len(rest) < 2 || rest[0] != 0 {
					return nil
				}
				rest = rest[2:]
				for i := 0; i < 2; i++ {
					nul := bytes.IndexByte(rest, 0)
					if nul < 0 {
						return nil
					}
					rest = rest[nul+1:]
				}
				return rest
			}
		}
		i = start + length + 4 // skip payload and CRC
	}
	return nil
}
