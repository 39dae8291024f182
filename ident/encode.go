package ident

import "strings"

const hexDigits = "0123456789ABCDEF"

// Encode percent-escapes every byte of s that may not appear in an IRI
// fragment. '%' is always escaped, so distinct keys never share an encoding.
func Encode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case fragmentSafe(c):
			sb.WriteByte(c)
		default:
			sb.WriteByte('%')
			sb.WriteByte(hexDigits[c>>4])
			sb.WriteByte(hexDigits[c&0x0F])
		}
	}
	return sb.String()
}

// fragmentSafe reports whether c is an unreserved character, a sub-delimiter
// or one of ":@/?" as allowed by RFC 3986 in a fragment.
func fragmentSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!$&'()*+,;=:@/?", c) >= 0
}
