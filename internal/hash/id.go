package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given name.
//
// Register and device names are short and stable, so a 64-bit hash gives the
// index maps fixed-size keys without retaining per-entry strings.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
