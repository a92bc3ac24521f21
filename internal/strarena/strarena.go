// Package strarena implements the Writer's growable, LIFO-truncated byte
// arena for element names and namespace strings (spec §9's design note:
// strings are stored with leading NUL separators so a StringIndex can be
// a plain integer offset, and the stored slice is read until the next
// NUL). Closing an element truncates the arena back to that element's
// name offset, releasing everything it and its children staged.
//
// No example repo in the retrieved pack needed an arena like this one;
// it is new code, but it follows the same "growable slice, integer
// handles, truncate on pop" discipline ucarion/c14n's internal/stack
// applies to its own namespace maps, here applied to bytes instead of
// structs.
package strarena

// Arena is a single growable byte buffer. Strings are appended with a
// leading NUL separator and addressed by the integer offset of their
// first byte.
type Arena struct {
	buf []byte
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{buf: make([]byte, 0, 256)}
}

// Put appends s (preceded by a NUL separator, except for the very first
// entry) and returns the offset at which s itself begins.
func (a *Arena) Put(s string) int {
	if len(a.buf) > 0 {
		a.buf = append(a.buf, 0)
	}
	off := len(a.buf)
	a.buf = append(a.buf, s...)
	return off
}

// Get reads the string starting at off, up to the next NUL or the end of
// the arena.
func (a *Arena) Get(off int) string {
	end := off
	for end < len(a.buf) && a.buf[end] != 0 {
		end++
	}
	return string(a.buf[off:end])
}

// Mark returns a handle to the arena's current length, to later Truncate
// back to.
func (a *Arena) Mark() int {
	return len(a.buf)
}

// Truncate discards everything appended since mark, reclaiming the
// space (LIFO reuse) without any allocation.
func (a *Arena) Truncate(mark int) {
	a.buf = a.buf[:mark]
}

// Len returns the arena's current length, mainly for tests.
func (a *Arena) Len() int {
	return len(a.buf)
}
