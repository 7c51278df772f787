package world

import "math"

// Bounds is an axis-aligned box in some local space
type Bounds struct {
	Center Vec3
	Size   Vec3
}

// NewBounds creates bounds from a center and full size
func NewBounds(center, size Vec3) Bounds {
	return Bounds{Center: center, Size: size.Abs()}
}

// Min returns the lowest corner
func (b Bounds) Min() Vec3 {
	return b.Center.Sub(b.Size.Scale(0.5))
}

// Max returns the highest corner
func (b Bounds) Max() Vec3 {
	return b.Center.Add(b.Size.Scale(0.5))
}

// IsZero reports whether the bounds enclose no volume at all
func (b Bounds) IsZero() bool {
	return b.Size == Vec3{}
}

// Encapsulate grows b so it also contains o
func (b Bounds) Encapsulate(o Bounds) Bounds {
	if b.IsZero() {
		return o
	}
	lo, hi := b.Min(), b.Max()
	olo, ohi := o.Min(), o.Max()
	lo = Vec3{math.Min(lo.X, olo.X), math.Min(lo.Y, olo.Y), math.Min(lo.Z, olo.Z)}
	hi = Vec3{math.Max(hi.X, ohi.X), math.Max(hi.Y, ohi.Y), math.Max(hi.Z, ohi.Z)}
	return Bounds{Center: lo.Add(hi).Scale(0.5), Size: hi.Sub(lo)}
}

// Expand grows the size by amount on every axis (half on each side).
// A negative amount shrinks it; sizes never go below zero.
func (b Bounds) Expand(amount float64) Bounds {
	size := Vec3{
		X: math.Max(0, b.Size.X+amount),
		Y: math.Max(0, b.Size.Y+amount),
		Z: math.Max(0, b.Size.Z+amount),
	}
	return Bounds{Center: b.Center, Size: size}
}

// In places the local bounds into the space described by t
func (b Bounds) In(t Transform) Box {
	return Box{
		Center:      t.Apply(b.Center),
		HalfExtents: b.Size.Scale(0.5),
		Yaw:         t.Yaw,
	}
}

// Box is an oriented box: an axis-aligned box turned by Yaw around its center
type Box struct {
	Center      Vec3
	HalfExtents Vec3
	Yaw         float64
}

// Shrink pulls every face of the box inward by margin/2, matching Bounds.Expand(-margin)
func (b Box) Shrink(margin float64) Box {
	half := margin / 2
	b.HalfExtents = Vec3{
		X: math.Max(0, b.HalfExtents.X-half),
		Y: math.Max(0, b.HalfExtents.Y-half),
		Z: math.Max(0, b.HalfExtents.Z-half),
	}
	return b
}

// axes returns the box's local X and Z axes projected on the horizontal plane as (x, z) pairs
func (b Box) axes() [2][2]float64 {
	x := Vec3{X: 1}.RotateY(b.Yaw)
	z := Vec3{Z: 1}.RotateY(b.Yaw)
	return [2][2]float64{{x.X, x.Z}, {z.X, z.Z}}
}

// radius returns the half-length of the box's footprint projected on axis
func (b Box) radius(axis [2]float64) float64 {
	ax := b.axes()
	return b.HalfExtents.X*math.Abs(ax[0][0]*axis[0]+ax[0][1]*axis[1]) +
		b.HalfExtents.Z*math.Abs(ax[1][0]*axis[0]+ax[1][1]*axis[1])
}

// Extents returns the world axis-aligned box enclosing b
func (b Box) Extents() (lo, hi Vec3) {
	rx := b.radius([2]float64{1, 0})
	rz := b.radius([2]float64{0, 1})
	ext := Vec3{X: rx, Y: b.HalfExtents.Y, Z: rz}
	return b.Center.Sub(ext), b.Center.Add(ext)
}

// Intersects reports whether two oriented boxes share any volume. Boxes that
// only touch along a face count as intersecting; callers shrink first when
// touching is allowed.
func (b Box) Intersects(o Box) bool {
	if math.Abs(b.Center.Y-o.Center.Y) > b.HalfExtents.Y+o.HalfExtents.Y {
		return false
	}
	d := [2]float64{o.Center.X - b.Center.X, o.Center.Z - b.Center.Z}
	ba, oa := b.axes(), o.axes()
	for _, axis := range [][2]float64{ba[0], ba[1], oa[0], oa[1]} {
		dist := math.Abs(d[0]*axis[0] + d[1]*axis[1])
		if dist > b.radius(axis)+o.radius(axis) {
			return false
		}
	}
	return true
}

// ContainsXZ reports whether the point (x, z) lies on the box's footprint
func (b Box) ContainsXZ(x, z float64) bool {
	local := Vec3{X: x - b.Center.X, Z: z - b.Center.Z}.RotateY(-b.Yaw)
	return math.Abs(local.X) <= b.HalfExtents.X && math.Abs(local.Z) <= b.HalfExtents.Z
}
