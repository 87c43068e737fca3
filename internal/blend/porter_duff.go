// Package blend implements the Porter-Duff source-over operator used to merge
// grid layers.
//
// All blend operations work with premultiplied alpha values in the range 0-255.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// blendSourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := inv255(sa)
	return addDiv255(sr, mulDiv255(dr, invSa)),
		addDiv255(sg, mulDiv255(dg, invSa)),
		addDiv255(sb, mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

// SourceOverSpan blends a row of premultiplied RGBA8 source pixels over dst
// in place. Both slices are tightly packed 4 bytes per pixel; the shorter
// length wins.
//
// Opaque and empty source pixels are short-circuited. Glyph layers are mostly
// one or the other.
func SourceOverSpan(dst, src []byte) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		switch sa := src[i+3]; sa {
		case 0:
			continue
		case 255:
			copy(dst[i:i+4], src[i:i+4])
		default:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = blendSourceOver(
				src[i], src[i+1], src[i+2], sa,
				dst[i], dst[i+1], dst[i+2], dst[i+3])
		}
	}
}
