package oid

// OID uniquely identifies a draft across its successive saves.
// The identifier survives edits: a draft keeps its OID for life.
type OID string

const Nil = OID("")

func (o OID) IsNil() bool {
	return string(o) == ""
}

// String returns the OID as a string.
func (o OID) String() string {
	return string(o)
}

/* Constructors */

func New() OID {
	return generator.New()
}
func NewFromBytes(b []byte) OID {
	return generator.NewFromBytes(b)
}

// ParseOrNil parses an OID or returns Nil.
func ParseOrNil(s string) OID {
	if len(s) != 40 {
		return Nil
	}
	return OID(s)
}
