// Package bloom provides the registry's optional probabilistic
// pre-filter (spec.md "new components beyond the distilled spec" in
// SPEC_FULL.md): a quick, possibly-false-positive check of whether a
// normalized token might belong to a known bad word, letting the detector
// skip a language's exact matcher on a negative answer (the phrase and
// fuzzy stages still run). Grounded
// on the teacher's internal/pkg/bloom, generalized with a pluggable
// BitSet so the default path never leaves the process.
package bloom

import (
	"context"
	"errors"

	"github.com/spaolacci/murmur3"
)

// ErrTooLargeOffset mirrors the teacher's bloom.ErrTooLargeOffset: an
// offset computed from a hash exceeded the bit-set's size.
var ErrTooLargeOffset = errors.New("bloom: offset exceeds bit set size")

// BitSet is the storage abstraction a Filter is built on. InMemory is the
// only backend the default (I/O-free) Detector ever constructs; RedisBacked
// exists for fleets that want to share one filter across instances and is
// never reached unless a caller opts in.
type BitSet interface {
	Set(ctx context.Context, offsets []uint) error
	Check(ctx context.Context, offsets []uint) (bool, error)
}

// Filter is a standard k-hash-function Bloom filter.
type Filter struct {
	bitSet BitSet
	bits   uint
	k      uint
}

// NewInMemory creates a Filter backed by an in-process bit set. This is
// the default, I/O-free backend.
func NewInMemory(bits uint, k uint) *Filter {
	return &Filter{bitSet: newMemoryBitSet(bits), bits: bits, k: k}
}

// NewWithBitSet creates a Filter over a caller-supplied BitSet, e.g. a
// RedisBacked one for a distributed deployment.
func NewWithBitSet(bitSet BitSet, bits uint, k uint) *Filter {
	return &Filter{bitSet: bitSet, bits: bits, k: k}
}

func (f *Filter) locations(data []byte) []uint {
	locations := make([]uint, f.k)
	for i := uint(0); i < f.k; i++ {
		salted := append(append([]byte(nil), data...), byte(i))
		locations[i] = uint(murmur3.Sum64(salted) % uint64(f.bits))
	}
	return locations
}

// Add records data as present.
func (f *Filter) Add(ctx context.Context, data []byte) error {
	return f.bitSet.Set(ctx, f.locations(data))
}

// MayContain reports whether data may have been added. False means
// definitely not present; true means possibly present.
func (f *Filter) MayContain(ctx context.Context, data []byte) (bool, error) {
	return f.bitSet.Check(ctx, f.locations(data))
}
