package lightmodel

import "math"

// XY is a point in the CIE 1931 color space.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gamut is the triangle of colors a light can reproduce.
type Gamut struct {
	Name  string `json:"name"`
	Red   XY     `json:"red"`
	Green XY     `json:"green"`
	Blue  XY     `json:"blue"`
}

// Philips color gamuts.
var (
	GamutA = Gamut{Name: "A", Red: XY{0.704, 0.296}, Green: XY{0.2151, 0.7106}, Blue: XY{0.138, 0.08}}
	GamutB = Gamut{Name: "B", Red: XY{0.675, 0.322}, Green: XY{0.409, 0.518}, Blue: XY{0.167, 0.04}}
	GamutC = Gamut{Name: "C", Red: XY{0.692, 0.308}, Green: XY{0.17, 0.7}, Blue: XY{0.153, 0.048}}
)

// Contains reports whether p lies inside the triangle (edges included).
func (g Gamut) Contains(p XY) bool {
	v1 := XY{g.Green.X - g.Red.X, g.Green.Y - g.Red.Y}
	v2 := XY{g.Blue.X - g.Red.X, g.Blue.Y - g.Red.Y}
	q := XY{p.X - g.Red.X, p.Y - g.Red.Y}

	d := cross(v1, v2)
	if d == 0 {
		return false
	}
	s := cross(q, v2) / d
	t := cross(v1, q) / d

	const eps = 1e-9
	return s >= -eps && t >= -eps && s+t <= 1+eps
}

// Closest returns p when it is inside the gamut, otherwise the nearest point
// on the triangle's edges.
func (g Gamut) Closest(p XY) XY {
	if g.Contains(p) {
		return p
	}

	candidates := [3]XY{
		closestOnSegment(g.Red, g.Green, p),
		closestOnSegment(g.Blue, g.Red, p),
		closestOnSegment(g.Green, g.Blue, p),
	}

	best := candidates[0]
	bestDist := distance(best, p)
	for _, c := range candidates[1:] {
		if d := distance(c, p); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func cross(a, b XY) float64 {
	return a.X*b.Y - a.Y*b.X
}

func distance(a, b XY) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func closestOnSegment(a, b, p XY) XY {
	ab := XY{b.X - a.X, b.Y - a.Y}
	ap := XY{p.X - a.X, p.Y - a.Y}

	denom := ab.X*ab.X + ab.Y*ab.Y
	if denom == 0 {
		return a
	}
	t := (ap.X*ab.X + ap.Y*ab.Y) / denom
	t = math.Max(0, math.Min(1, t))

	return XY{a.X + ab.X*t, a.Y + ab.Y*t}
}

// rgbToXY converts 8-bit sRGB to an unclamped xy point using the wide gamut
// D65 matrix. Black maps to the zero point.
func rgbToXY(r, g, b uint8) XY {
	red := gammaCorrect(float64(r) / 255)
	green := gammaCorrect(float64(g) / 255)
	blue := gammaCorrect(float64(b) / 255)

	x := red*0.664511 + green*0.154324 + blue*0.162028
	y := red*0.283881 + green*0.668433 + blue*0.047685
	z := red*0.000088 + green*0.072310 + blue*0.986039

	sum := x + y + z
	if sum == 0 {
		return XY{}
	}
	return XY{X: x / sum, Y: y / sum}
}

func gammaCorrect(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}
