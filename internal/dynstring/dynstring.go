// Package dynstring implements a growable byte buffer. No other
// package of the compiler imports it: the scanner builds lexemes with
// strings.Builder and the symbol table keys on plain Go strings.
package dynstring

// DynString is a growable byte buffer modelled on the original
// implementation's dstring_t. It grows through Go's append and does
// no capacity management of its own.
type DynString struct {
	data []byte
}

// New returns an empty DynString.
func New() *DynString {
	return &DynString{data: make([]byte, 0, 8)}
}

// NewFromString returns a DynString initialized with s.
func NewFromString(s string) *DynString {
	d := New()
	d.AddStr(s)
	return d
}

// Clear resets the buffer to empty without releasing capacity.
func (d *DynString) Clear() {
	d.data = d.data[:0]
}

// AddChar appends a single byte.
func (d *DynString) AddChar(c byte) {
	d.data = append(d.data, c)
}

// AddStr appends a Go string.
func (d *DynString) AddStr(s string) {
	d.data = append(d.data, s...)
}

// AddDynString appends the contents of another DynString.
func (d *DynString) AddDynString(src *DynString) {
	d.data = append(d.data, src.data...)
}

// String returns the buffer's contents as a Go string.
func (d *DynString) String() string {
	return string(d.data)
}

// Len returns the number of bytes currently stored.
func (d *DynString) Len() int {
	return len(d.data)
}

// Copy returns a deep copy of d.
func (d *DynString) Copy() *DynString {
	cp := &DynString{data: make([]byte, len(d.data))}
	copy(cp.data, d.data)
	return cp
}

// Equal reports whether d and other hold identical contents.
func (d *DynString) Equal(other *DynString) bool {
	return d.String() == other.String()
}

// EqualString reports whether d holds exactly s.
func (d *DynString) EqualString(s string) bool {
	return d.String() == s
}
