// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ TABLE SNAPSHOT ADAPTER
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Robin Hood Hash Table Engine
// Component: JSON Codec
//
// Description:
//   Serializes flattened tables to JSON and back. Hashes travel as decimal
//   strings: JSON numbers round-trip through float64 in most decoders and a
//   64-bit hash does not survive that.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package snapshot

import (
	"strconv"

	"github.com/sugawarayuuta/sonnet"

	"main/rhtable"
)

// Image is the wire shape of a flattened table. Hashes and Values are
// parallel and sorted by hash.
type Image[V any] struct {
	Hashes []string `json:"hashes"`
	Values []V      `json:"values"`
}

// MarshalJSON flattens the table and encodes the image.
func MarshalJSON[V any](t *rhtable.Table[V]) ([]byte, error) {
	hashes, vals, err := Flatten(t)
	if err != nil {
		return nil, err
	}
	img := Image[V]{
		Hashes: make([]string, len(hashes)),
		Values: vals,
	}
	for i, h := range hashes {
		img.Hashes[i] = strconv.FormatUint(h, 10)
	}
	return sonnet.Marshal(img)
}

// UnmarshalJSON decodes an image and restores it into the table, replacing
// its contents.
func UnmarshalJSON[V any](t *rhtable.Table[V], data []byte) error {
	var img Image[V]
	if err := sonnet.Unmarshal(data, &img); err != nil {
		return err
	}
	if len(img.Hashes) != len(img.Values) {
		return ErrLengthMismatch
	}
	hashes := make([]uint64, len(img.Hashes))
	for i, s := range img.Hashes {
		h, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		hashes[i] = h
	}
	return Restore(t, hashes, img.Values)
}
