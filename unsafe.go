package xmlcore

import "unsafe"

// unsafeString performs an _unsafe_ no-copy string conversion from buf.
// https://github.com/golang/go/issues/25484 has more info on this.
//
// Used internally by Range.String so a caller can read a token's text
// without an allocation, on the assumption the buffer it was scanned from
// stays alive and unmutated for as long as the returned string is used.
func unsafeString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}
