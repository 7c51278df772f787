package generator

import (
	"floorforge/pkg/engine/world"
	"floorforge/pkg/game/level"
)

// overlaps reports whether r, shrunk by margin so neighbours may touch,
// intersects the volume of any other placed room.
func overlaps(p world.Physics, r *level.Room, margin float64) bool {
	p.SyncTransforms()
	box := r.Box().Shrink(margin)
	for _, hit := range p.OverlapBox(box.Center, box.HalfExtents, box.Yaw, world.LayerRoom) {
		if hit.Owner() == r.ID {
			continue
		}
		return true
	}
	return false
}

// duplicateDoorways counts the open doorways whose volume meets a doorway of
// another room. The count is informational only.
func duplicateDoorways(p world.Physics, l *level.Level) int {
	p.SyncTransforms()
	n := 0
	for _, f := range l.Floors {
		for _, d := range f.Frontier.Snapshot() {
			box := d.Box()
			for _, hit := range p.OverlapBox(box.Center, box.HalfExtents, box.Yaw, world.LayerDoorway) {
				if hit.Owner() != d.Room.ID {
					n++
					break
				}
			}
		}
	}
	return n
}
