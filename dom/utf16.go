package dom

// UTF-16 code unit offsets are how the DOM defines character offsets for
// CharacterData, Range and Text.splitText. Go strings are UTF-8, so every
// offset a caller passes in or expects back has to be translated through
// this file rather than assumed to line up with byte offsets.

// decodeUTF8Rune decodes a single UTF-8 rune starting at data[i], without
// pulling in the unicode/utf8 package's full validation/ASCII-fast-path
// machinery (which distinguishes RuneError decode failures from an actual
// U+FFFD in the input — WTF-8 handling in stringToUTF16 needs that
// distinction to stay a private concern of this file). Returns the decoded
// rune and its width in bytes; malformed sequences decode as one
// replacement-character byte, matching the DOM's "not a well-formed string"
// tolerance rather than rejecting the input.
func decodeUTF8Rune(data []byte, i int) (r rune, size int) {
	c := data[i]
	switch {
	case c < 0x80:
		return rune(c), 1
	case c < 0xC0:
		return 0xFFFD, 1
	case c < 0xE0 && i+2 <= len(data):
		return rune(c&0x1F)<<6 | rune(data[i+1]&0x3F), 2
	case c < 0xF0 && i+3 <= len(data):
		return rune(c&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F), 3
	case c < 0xF8 && i+4 <= len(data):
		return rune(c&0x07)<<18 | rune(data[i+1]&0x3F)<<12 | rune(data[i+2]&0x3F)<<6 | rune(data[i+3]&0x3F), 4
	default:
		return 0xFFFD, 1
	}
}

// utf16UnitsForRune returns how many UTF-16 code units r occupies: 2 for a
// supplementary-plane character encoded as a surrogate pair, 1 otherwise.
func utf16UnitsForRune(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// UTF16Length returns the length of a string in UTF-16 code units, the unit
// DOM Range and CharacterData offsets are defined in.
func UTF16Length(s string) int {
	return len(stringToUTF16(s))
}

// UTF16OffsetToByteOffset converts a UTF-16 code unit offset to a byte
// offset. Returns -1 if the offset is out of bounds.
func UTF16OffsetToByteOffset(s string, utf16Offset int) int {
	if utf16Offset < 0 {
		return -1
	}

	data := []byte(s)
	utf16Count := 0
	byteOffset := 0

	for byteOffset < len(data) {
		if utf16Count >= utf16Offset {
			return byteOffset
		}
		r, size := decodeUTF8Rune(data, byteOffset)
		utf16Count += utf16UnitsForRune(r)
		byteOffset += size
	}

	if utf16Count == utf16Offset {
		return byteOffset
	}
	return -1
}

// ByteOffsetToUTF16Offset converts a byte offset to a UTF-16 code unit
// offset. Returns -1 if the byte offset is out of bounds.
func ByteOffsetToUTF16Offset(s string, byteOffset int) int {
	if byteOffset < 0 || byteOffset > len(s) {
		return -1
	}

	data := []byte(s)
	utf16Count := 0
	i := 0

	for i < len(data) && i < byteOffset {
		r, size := decodeUTF8Rune(data, i)
		utf16Count += utf16UnitsForRune(r)
		i += size
	}

	return utf16Count
}

// UTF16Substring extracts a substring using UTF-16 code unit offsets,
// handling multi-byte UTF-8 characters by converting offsets first.
func UTF16Substring(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}

	startByte := UTF16OffsetToByteOffset(s, start)
	if startByte < 0 {
		return ""
	}

	endByte := UTF16OffsetToByteOffset(s, end)
	if endByte < 0 {
		endByte = len(s)
	}

	return s[startByte:endByte]
}

// UTF16SliceFrom returns the substring from a UTF-16 offset to the end.
func UTF16SliceFrom(s string, start int) string {
	startByte := UTF16OffsetToByteOffset(s, start)
	if startByte < 0 {
		return ""
	}
	return s[startByte:]
}

// UTF16SliceTo returns the substring from the beginning to a UTF-16 offset.
func UTF16SliceTo(s string, end int) string {
	if end <= 0 {
		return ""
	}
	endByte := UTF16OffsetToByteOffset(s, end)
	if endByte < 0 {
		return s
	}
	return s[:endByte]
}

// stringToUTF16 converts a Go string to UTF-16 code units, recognizing
// WTF-8 encoded lone surrogates (CESU-8/WTF-8's ED A0-BF 80-BF range) along
// the way rather than replacing them with U+FFFD the way strict UTF-8
// decoding would.
func stringToUTF16(s string) []uint16 {
	result := make([]uint16, 0, len(s))
	data := []byte(s)

	for i := 0; i < len(data); {
		if i+2 < len(data) && data[i] == 0xED {
			b1, b2 := data[i+1], data[i+2]
			if (b1 >= 0xA0 && b1 <= 0xBF) && (b2 >= 0x80 && b2 <= 0xBF) {
				cu := uint16((uint32(0xED&0x0F) << 12) | (uint32(b1&0x3F) << 6) | uint32(b2&0x3F))
				result = append(result, cu)
				i += 3
				continue
			}
		}

		r, size := decodeUTF8Rune(data, i)
		if r >= 0x10000 {
			r -= 0x10000
			result = append(result, uint16(0xD800+(r>>10)))
			result = append(result, uint16(0xDC00+(r&0x3FF)))
		} else {
			result = append(result, uint16(r))
		}
		i += size
	}
	return result
}
