// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ UNIQUE-KEY HASH MAP
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: Ready-Made Key Capabilities
//
// Description:
//   Zero-allocation hash and equality pairs for the common key types. The mixers are
//   xxHash-style: branch-cheap multiply/rotate rounds with a full avalanche finisher,
//   so every input bit reaches the low bits the table masks on.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package mapidx

import (
	"math/bits"
	"unsafe"
)

const (
	prime64_1 = 0x9E3779B185EBCA87
	prime64_2 = 0xC2B2AE3D27D4EB4F
)

// mix64 finishes a hash with a full avalanche so the masked low bits depend on
// every input bit.
//
//go:inline
func mix64(h uint64) uint64 {
	h ^= h >> 33
	h *= prime64_2
	h ^= h >> 29
	h *= prime64_1
	h ^= h >> 32
	return h
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// UINT64 KEYS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// HashUint64 avalanches an integer key. Sequential keys would otherwise land in
// sequential buckets and probe as one long run.
//
//go:inline
func HashUint64(k uint64) uint64 {
	return mix64(k * prime64_1)
}

// EqualUint64 is the equality capability for integer keys.
//
//go:inline
func EqualUint64(a, b uint64) bool { return a == b }

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// STRING KEYS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// HashString hashes a string without allocating: 8-byte words are read straight
// off the string data, the sub-word tail byte by byte.
//
//go:nosplit
func HashString(s string) uint64 {
	n := len(s)
	h := uint64(n) * prime64_1
	if n == 0 {
		return mix64(h)
	}
	p := unsafe.Pointer(unsafe.StringData(s))
	for ; n >= 8; n -= 8 {
		v := *(*uint64)(p)
		h ^= bits.RotateLeft64(v*prime64_2, 31)
		h = bits.RotateLeft64(h, 27) * prime64_1
		p = unsafe.Add(p, 8)
	}
	if n > 0 {
		var tail uint64
		for i := 0; i < n; i++ {
			tail |= uint64(*(*byte)(unsafe.Add(p, i))) << (8 * i)
		}
		h ^= bits.RotateLeft64(tail*prime64_2, 11)
		h = bits.RotateLeft64(h, 7) * prime64_1
	}
	return mix64(h)
}

// EqualString is the equality capability for string keys.
//
//go:inline
func EqualString(a, b string) bool { return a == b }

// HashBytes is HashString for raw byte slices; the caller must keep the slice
// immutable for the duration of the call.
//
//go:nosplit
func HashBytes(b []byte) uint64 {
	if len(b) == 0 {
		return mix64(0)
	}
	return HashString(unsafe.String(&b[0], len(b)))
}
