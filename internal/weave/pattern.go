package weave

// Factors returns the signed shift multipliers for the tile at (col, row).
// xFactor varies with row and yFactor with col, so neighbouring bands move
// in alternating or cycling directions.
func (p Pattern) Factors(col, row int) (xFactor, yFactor float64) {
	switch p {
	case Twill:
		return twill(row), twill(col)
	case Satin:
		return satin(row), satin(col)
	case Basket:
		return basket(row), basket(col)
	default:
		return plain(row), plain(col)
	}
}

func plain(i int) float64 {
	if i%2 == 0 {
		return 1
	}
	return -1
}

// twill cycles through -2.25, -0.75, 0.75, 2.25.
func twill(i int) float64 {
	return (float64(i%4) - 1.5) * 1.5
}

// satin steps by 3 mod 5, giving -2, 1, -1, 2, 0.
func satin(i int) float64 {
	return float64((i*3)%5) - 2
}

// basket alternates in pairs.
func basket(i int) float64 {
	if (i/2)%2 == 0 {
		return 1
	}
	return -1
}
