package common

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Approach moves v toward zero by step without crossing it.
func Approach(v, step float64) float64 {
	if v > 0 {
		v -= step
		if v < 0 {
			return 0
		}
		return v
	}
	if v < 0 {
		v += step
		if v > 0 {
			return 0
		}
	}
	return v
}

func Sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func MaxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

type Vec2 struct {
	X float64
	Y float64
}
