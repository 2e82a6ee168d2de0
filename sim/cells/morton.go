// Package cells provides the neighbour cell list (spec.md §4.2): a 3D
// grid of integer-coordinate cells addressed by a Morton (Z-order)
// dilated integer, plus the GCells/GCellsShearing Global capabilities
// that drive cell-transition events. Grounded on
// original_source/src/dynamo/dynamo/globals/cellsShearing.cpp and its
// (uninstrumented but referenced) base GCells.
package cells

// dilate3 spreads the low 21 bits of x so that each original bit sits
// three bits apart, leaving room to interleave two more axes (spec.md §9
// "Morton dilation": 21 bits per axis suffices for any realistic grid).
func dilate3(x uint64) uint64 {
	x &= 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249
	return x
}

// undilate3 is dilate3's inverse: extracts every third bit back into a
// contiguous integer.
func undilate3(x uint64) uint64 {
	x &= 0x1249249249249249
	x = (x | (x >> 2)) & 0x10c30c30c30c30c3
	x = (x | (x >> 4)) & 0x100f00f00f00f00f
	x = (x | (x >> 8)) & 0x1f0000ff0000ff
	x = (x | (x >> 16)) & 0x1f00000000ffff
	x = (x | (x >> 32)) & 0x1fffff
	return x
}

// mortonEncode interleaves three non-negative cell coordinates into a
// single Z-order key, used as the CellList's map key. Neighbour cells are
// found by decoding a key, offsetting the coordinates and encoding the
// result again.
func mortonEncode(ix, iy, iz int) uint64 {
	return dilate3(uint64(ix)) | (dilate3(uint64(iy)) << 1) | (dilate3(uint64(iz)) << 2)
}

func mortonDecode(key uint64) (ix, iy, iz int) {
	return int(undilate3(key)), int(undilate3(key >> 1)), int(undilate3(key >> 2))
}
