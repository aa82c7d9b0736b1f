package oid

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var generator Generator = &UniqueGenerator{}

/* Generator */

type Generator interface {
	New() OID
	NewFromBytes(b []byte) OID
}

// Reset restores the original unique OID generator.
// Useful in tests with a defer after overriding the default generator.
func Reset() {
	generator = &UniqueGenerator{}
}

/*
 * UniqueGenerator
 */

// UniqueGenerator is a production-grade Generator returning unique, random OIDs.
type UniqueGenerator struct{}

// New generates a new unique OID on every call.
func (g *UniqueGenerator) New() OID {
	// 40 hexadecimal characters, assembled from two UUIDv4 with the dashes removed
	return OID(strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")[0:40])
}

// NewFromBytes generates an OID based on bytes.
// The same bytes will generate the same OID.
func (g *UniqueGenerator) NewFromBytes(b []byte) OID {
	h := sha1.New()
	h.Write(b)
	return OID(fmt.Sprintf("%x", h.Sum(nil)))
}

/*
 * FixedGenerator
 */

// FixedGenerator returns always the same OID.
// This generator is useful for tests when OIDs are relevant for the test case.
type FixedGenerator struct {
	oid OID
}

func NewFixedGenerator(oid OID) *FixedGenerator {
	return &FixedGenerator{oid: oid}
}

func (g *FixedGenerator) New() OID {
	return g.oid
}

func (g *FixedGenerator) NewFromBytes(b []byte) OID {
	return g.oid
}

/*
 * SequenceGenerator
 */

// SequenceGenerator returns numbered OIDs in a predictable format.
// This generator is useful for tests when checking different drafts.
type SequenceGenerator struct {
	count int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{count: 0}
}

func (g *SequenceGenerator) New() OID {
	g.count++
	return OID(fmt.Sprintf("%040d", g.count))
}

func (g *SequenceGenerator) NewFromBytes(b []byte) OID {
	return g.New()
}
