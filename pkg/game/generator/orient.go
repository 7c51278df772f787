package generator

import (
	"floorforge/pkg/engine/world"
	"floorforge/pkg/game/level"
)

// orient poses room so that roomDoorway sits on target, facing it. The room
// is reset to the identity pose first, so repeated calls give the same result.
func orient(room *level.Room, roomDoorway, target *level.Doorway) {
	room.SetPose(world.Identity)

	targetPose := target.WorldPose()
	delta := world.DeltaAngle(roomDoorway.Local.Yaw, targetPose.Yaw)
	yaw := delta + 180

	offset := roomDoorway.Local.Position.RotateY(yaw)
	room.SetPose(world.NewTransform(targetPose.Position.Sub(offset), yaw))
}
