package world

import (
	"fmt"
	"strings"
)

// Direction represents a cardinal facing on the horizontal plane
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Yaw returns the heading in degrees, clockwise from North (+Z) seen from above
func (d Direction) Yaw() float64 {
	if !d.IsValid() {
		return 0
	}
	return float64(d) * 90
}

// Forward returns the unit vector the direction faces
func (d Direction) Forward() Vec3 {
	return Forward(d.Yaw())
}

// ParseDirection reads a direction name such as "north" (case-insensitive)
func ParseDirection(s string) (Direction, error) {
	for _, d := range AllDirections() {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return North, fmt.Errorf("invalid direction %q", s)
}

// DirectionFromYaw snaps a yaw angle to the nearest cardinal direction
func DirectionFromYaw(yaw float64) Direction {
	quarter := int(NormalizeYaw(yaw+45) / 90)
	return Direction(quarter % 4)
}

// MarshalText encodes the direction as its lower-case name
func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(strings.ToLower(d.String())), nil
}

// UnmarshalText decodes a direction name
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
