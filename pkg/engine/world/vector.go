// Package world provides the spatial primitives the level engine works with:
// vectors, yaw-only transforms, oriented boxes and an in-memory physics space
// answering box overlap queries.
package world

import (
	"fmt"
	"math"
)

// Vec3 is a point or offset in world units. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// V creates a vector
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale multiplies every component by s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Abs returns the component-wise absolute value
func (v Vec3) Abs() Vec3 {
	return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// Length returns the euclidean length
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ApproxEqual compares two vectors with an absolute tolerance
func (v Vec3) ApproxEqual(o Vec3, tolerance float64) bool {
	return math.Abs(v.X-o.X) <= tolerance &&
		math.Abs(v.Y-o.Y) <= tolerance &&
		math.Abs(v.Z-o.Z) <= tolerance
}

// RotateY rotates v clockwise (seen from above) by yaw degrees around the up axis.
func (v Vec3) RotateY(yaw float64) Vec3 {
	sin, cos := math.Sincos(yaw * math.Pi / 180)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// Forward returns the unit vector facing yaw degrees from +Z
func Forward(yaw float64) Vec3 {
	return Vec3{Z: 1}.RotateY(yaw)
}

// NormalizeYaw wraps an angle into [0, 360)
func NormalizeYaw(yaw float64) float64 {
	yaw = math.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	// -0.0000001 mod 360 + 360 rounds to 360
	if yaw >= 360 {
		yaw -= 360
	}
	return yaw
}

// DeltaAngle returns the shortest signed difference from current to target
// in degrees, in the range (-180, 180].
func DeltaAngle(current, target float64) float64 {
	delta := NormalizeYaw(target - current)
	if delta > 180 {
		delta -= 360
	}
	return delta
}
