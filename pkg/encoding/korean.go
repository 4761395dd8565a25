// Package encoding provides the single-byte legacy text encoding used
// by Ragnarok Online's wire protocol and file formats. Per the
// codec's design, the encoding is a configuration parameter passed at
// construction time, not baked into a type; see Table.
package encoding

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Table names which single-byte table a fixed-width string field is
// decoded/encoded with. The protocol's string fields (account names,
// character names, chat text) are declared against one of these; most
// are plain ASCII but character and chat text round-trip through the
// EUC-KR table the Korean client shipped with.
type Table int

const (
	// EUCKR is the extended Latin/Korean legacy single-byte table used
	// by the official client for names and chat text.
	EUCKR Table = iota
	// ASCII treats the bytes as already being UTF-8/ASCII, used for
	// fields the protocol documents as plain identifiers (map names,
	// version strings).
	ASCII
)

// FixedBytesToString decodes a fixed-width, NUL-padded byte slice
// using table. The first NUL byte (if any) terminates the string; the
// remaining padding bytes are discarded without inspection.
func FixedBytesToString(data []byte, table Table) string {
	if idx := bytes.IndexByte(data, 0); idx >= 0 {
		data = data[:idx]
	}
	switch table {
	case ASCII:
		return string(data)
	default:
		return eucKRToUTF8(data)
	}
}

// StringToFixedBytes encodes s into exactly size bytes using table,
// NUL-padding the remainder. It returns nil if the encoded form of s
// does not fit in size bytes, letting the caller raise StringTooLong.
func StringToFixedBytes(s string, size int, table Table) []byte {
	var encoded []byte
	switch table {
	case ASCII:
		encoded = []byte(s)
	default:
		encoded = utf8ToEUCKR(s)
	}
	if len(encoded) > size {
		return nil
	}
	result := make([]byte, size)
	copy(result, encoded)
	return result
}

// eucKRToUTF8 converts EUC-KR encoded bytes to a UTF-8 string,
// returning the input verbatim if it doesn't decode cleanly (some
// servers send plain ASCII through fields declared as EUC-KR).
func eucKRToUTF8(data []byte) string {
	decoder := korean.EUCKR.NewDecoder()
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// utf8ToEUCKR converts a UTF-8 string to EUC-KR encoded bytes,
// returning the input verbatim if it doesn't encode cleanly.
func utf8ToEUCKR(s string) []byte {
	encoder := korean.EUCKR.NewEncoder()
	result, _, err := transform.Bytes(encoder, []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// NormalizeServerName normalizes a character-server display name for
// case-insensitive comparisons (server lists sometimes differ only in
// case between login responses).
func NormalizeServerName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
