package world

import "fmt"

// Transform is a pose restricted to translation plus rotation around the up axis.
// Rooms in a level only ever turn around Y, so a full quaternion is not needed.
type Transform struct {
	Position Vec3
	Yaw      float64 // degrees, [0, 360)
}

// Identity is the canonical pose
var Identity = Transform{}

// NewTransform creates a transform with a normalized yaw
func NewTransform(position Vec3, yaw float64) Transform {
	return Transform{Position: position, Yaw: NormalizeYaw(yaw)}
}

// Apply maps a point from local space into the space of t
func (t Transform) Apply(local Vec3) Vec3 {
	return t.Position.Add(local.RotateY(t.Yaw))
}

// Compose returns the pose of a child whose pose relative to t is local
func (t Transform) Compose(local Transform) Transform {
	return NewTransform(t.Apply(local.Position), t.Yaw+local.Yaw)
}

// Forward returns the facing vector of t
func (t Transform) Forward() Vec3 {
	return Forward(t.Yaw)
}

// ApproxEqual compares positions and yaw with an absolute tolerance
func (t Transform) ApproxEqual(o Transform, tolerance float64) bool {
	dy := DeltaAngle(t.Yaw, o.Yaw)
	if dy < 0 {
		dy = -dy
	}
	return t.Position.ApproxEqual(o.Position, tolerance) && dy <= tolerance
}

func (t Transform) String() string {
	return fmt.Sprintf("%v yaw %.1f", t.Position, t.Yaw)
}
