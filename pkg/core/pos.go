package core

import (
	"fmt"
	"math"
)

// Pos is a 2D integer cell coordinate. It doubles as an integer vector.
type Pos struct {
	X int
	Y int
}

// P is shorthand for Pos{X: x, Y: y}.
func P(x, y int) Pos { return Pos{X: x, Y: y} }

// Add returns the component-wise sum.
func (p Pos) Add(o Pos) Pos { return Pos{X: p.X + o.X, Y: p.Y + o.Y} }

// Sub returns the component-wise difference.
func (p Pos) Sub(o Pos) Pos { return Pos{X: p.X - o.X, Y: p.Y - o.Y} }

// Mul returns the component-wise product.
func (p Pos) Mul(o Pos) Pos { return Pos{X: p.X * o.X, Y: p.Y * o.Y} }

// Div returns the component-wise integer quotient. A zero component in o panics.
func (p Pos) Div(o Pos) Pos { return Pos{X: p.X / o.X, Y: p.Y / o.Y} }

// Mod returns the component-wise remainder. A zero component in o panics.
func (p Pos) Mod(o Pos) Pos { return Pos{X: p.X % o.X, Y: p.Y % o.Y} }

// AddAssign adds o to p in place.
func (p *Pos) AddAssign(o Pos) { *p = p.Add(o) }

// SubAssign subtracts o from p in place.
func (p *Pos) SubAssign(o Pos) { *p = p.Sub(o) }

// MulAssign multiplies p by o in place.
func (p *Pos) MulAssign(o Pos) { *p = p.Mul(o) }

// DivAssign divides p by o in place.
func (p *Pos) DivAssign(o Pos) { *p = p.Div(o) }

// ModAssign replaces p with p mod o in place.
func (p *Pos) ModAssign(o Pos) { *p = p.Mod(o) }

// Magnitude returns the Euclidean length of the vector.
func (p Pos) Magnitude() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Normalize returns the unit vector components. The origin yields NaN.
func (p Pos) Normalize() (float64, float64) {
	m := p.Magnitude()
	return float64(p.X) / m, float64(p.Y) / m
}

// ToIndex maps the position onto a row-major slice of the given width.
// No bounds check is performed.
func (p Pos) ToIndex(width int) int { return p.X + p.Y*width }

// Equal reports exact coordinate equality.
func (p Pos) Equal(o Pos) bool { return p == o }

// Less orders positions by magnitude only, not lexicographically. Two distinct
// positions with the same magnitude are neither Less nor Greater.
func (p Pos) Less(o Pos) bool { return p.Magnitude() < o.Magnitude() }

// Greater orders positions by magnitude only. See Less.
func (p Pos) Greater(o Pos) bool { return p.Magnitude() > o.Magnitude() }

// Wrap applies toroidal wrapping for a w*h grid.
func (p Pos) Wrap(w, h int) Pos {
	return Pos{X: (p.X%w + w) % w, Y: (p.Y%h + h) % h}
}

// In reports whether p lies inside a w*h grid.
func (p Pos) In(w, h int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
