package md

import (
	"fmt"
	"math"
)

// TypeID is the dense index of a type name within one roster.
type TypeID int

// NoType marks the unused slot of a single-type key.
const NoType TypeID = -1

// Kind selects which type roster a name is resolved against.
type Kind int

const (
	KindParticle Kind = iota
	KindBond
	KindImproper
)

func (k Kind) String() string {
	switch k {
	case KindParticle:
		return "particle"
	case KindBond:
		return "bond"
	case KindImproper:
		return "improper"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TypeKey indexes a coefficient table. Pair keys are stored with A <= B so
// (A,B) and (B,A) compare equal.
type TypeKey struct {
	A, B TypeID
	Pair bool
}

// SingleKey is the key of a bond or improper type.
func SingleKey(t TypeID) TypeKey {
	return TypeKey{A: t, B: NoType}
}

// PairKey is the canonical key of the unordered pair (a, b).
func PairKey(a, b TypeID) TypeKey {
	if b < a {
		a, b = b, a
	}
	return TypeKey{A: a, B: b, Pair: true}
}

func (k TypeKey) String() string {
	if k.Pair {
		return fmt.Sprintf("(%d,%d)", k.A, k.B)
	}
	return fmt.Sprintf("%d", k.A)
}

// Label renders the key with human-readable type names.
func (k TypeKey) Label(name func(TypeID) string) string {
	if k.Pair {
		return fmt.Sprintf("(%s,%s)", name(k.A), name(k.B))
	}
	return name(k.A)
}

// SingleKeys enumerates one key per type.
func SingleKeys(ntypes int) []TypeKey {
	keys := make([]TypeKey, 0, ntypes)
	for i := 0; i < ntypes; i++ {
		keys = append(keys, SingleKey(TypeID(i)))
	}
	return keys
}

// PairKeys enumerates every unordered pair, self pairs included.
func PairKeys(ntypes int) []TypeKey {
	keys := make([]TypeKey, 0, ntypes*(ntypes+1)/2)
	for i := 0; i < ntypes; i++ {
		for j := i; j < ntypes; j++ {
			keys = append(keys, PairKey(TypeID(i), TypeID(j)))
		}
	}
	return keys
}

// Vec3 is a position, separation or force in three dimensions.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}
func (v Vec3) Norm2() float64 { return v.Dot(v) }
func (v Vec3) Norm() float64  { return math.Sqrt(v.Norm2()) }

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Box is an orthorhombic periodic box centred on the origin.
type Box struct {
	L Vec3
}

func NewBox(lx, ly, lz float64) Box {
	return Box{L: Vec3{lx, ly, lz}}
}

// MinImage wraps a separation vector to its nearest periodic image. Zero
// length dimensions are treated as non-periodic.
func (b Box) MinImage(d Vec3) Vec3 {
	d.X = wrap(d.X, b.L.X)
	d.Y = wrap(d.Y, b.L.Y)
	d.Z = wrap(d.Z, b.L.Z)
	return d
}

func (b Box) Volume() float64 {
	return b.L.X * b.L.Y * b.L.Z
}

func wrap(x, l float64) float64 {
	if l <= 0 {
		return x
	}
	return x - l*math.Round(x/l)
}
