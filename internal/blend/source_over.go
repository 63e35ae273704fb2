package blend

// SourceOver composites the straight-alpha color (r, g, b, a) scaled by
// coverage onto the 4-byte straight-alpha pixel px.
//
//	Sa' = a*coverage
//	Ra  = Sa' + Da*(1-Sa')
//	Rc  = (Sc*Sa' + Dc*Da*(1-Sa')) / Ra
//
// px must have length >= 4. Zero effective alpha leaves px untouched.
func SourceOver(px []uint8, r, g, b, a, coverage uint8) {
	sa := uint32(MulDiv255(a, coverage))
	if sa == 0 {
		return
	}
	if sa == 255 {
		px[0], px[1], px[2], px[3] = r, g, b, 255
		return
	}

	da := uint32(px[3])
	inv := 255 - sa
	// Destination weight in premultiplied space, scaled by 255.
	dw := da * inv
	outA := sa*255 + dw // alpha * 255
	if outA == 0 {
		px[0], px[1], px[2], px[3] = 0, 0, 0, 0
		return
	}

	px[0] = channel(uint32(r), uint32(px[0]), sa, dw, outA)
	px[1] = channel(uint32(g), uint32(px[1]), sa, dw, outA)
	px[2] = channel(uint32(b), uint32(px[2]), sa, dw, outA)
	px[3] = uint8((outA + 127) / 255)
}

// channel blends one color component. sa and dw are the source and
// destination weights; outA is their sum.
func channel(sc, dc, sa, dw, outA uint32) uint8 {
	num := sc*sa*255 + dc*dw
	v := (num + outA/2) / outA
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// Threshold maps coverage to fully on or off at the half-way point. Used for
// aliased rendering.
func Threshold(coverage uint8) uint8 {
	if coverage >= 128 {
		return 255
	}
	return 0
}
