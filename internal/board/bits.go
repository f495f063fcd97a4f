package board

import "math/bits"

// popcnt and trailingZeros wrap math/bits: the teacher repo references its
// own assembly-backed popcnt/logN pair but the implementing file was not
// part of the retrieved snapshot, and no third-party bit-twiddling library
// appears anywhere in the pack, so this is the one place the core falls
// back to the standard library.
func popcnt(x uint64) int { return bits.OnesCount64(x) }

func trailingZeros(x uint64) int { return bits.TrailingZeros64(x) }
