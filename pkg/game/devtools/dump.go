// Package devtools provides developer tools for inspecting generated levels.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"floorforge/pkg/engine/world"
	"floorforge/pkg/game/items"
	"floorforge/pkg/game/level"
)

const levelDumpFilename = "level.txt"

// DefaultPlanWidth is the widest floor plan drawn, in characters
const DefaultPlanWidth = 100

const roomSymbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DumpOptions adds optional sections to a level dump
type DumpOptions struct {
	Items     []items.Placement
	PlanWidth int
}

// roomSymbol returns the plan symbol of the i-th room of a floor
func roomSymbol(i int) rune {
	if i < len(roomSymbols) {
		return rune(roomSymbols[i])
	}
	return '*'
}

// doorwayState names the state a doorway is in once generation is done
func doorwayState(f *level.Floor, d *level.Doorway) string {
	switch {
	case f.Frontier.Has(d):
		return "open"
	case d.Peer == nil:
		return "sealed"
	case d.Peer.Room.Floor > d.Room.Floor:
		return "up"
	case d.Peer.Room.Floor < d.Room.Floor:
		return "down"
	default:
		return "connected"
	}
}

func doorwaySymbol(state string) rune {
	switch state {
	case "open":
		return 'o'
	case "sealed":
		return 'x'
	case "up":
		return '^'
	case "down":
		return 'v'
	default:
		return '='
	}
}

// writePlan draws a top-down plan of the floor, north up. Each character
// covers a square of the floor; wide floors use larger squares.
func writePlan(w io.Writer, f *level.Floor, maxWidth int) {
	rooms := f.AllRooms()
	if len(rooms) == 0 {
		fmt.Fprintln(w, "(no rooms)")
		return
	}

	lo := world.V(math.Inf(1), 0, math.Inf(1))
	hi := world.V(math.Inf(-1), 0, math.Inf(-1))
	for _, r := range rooms {
		rlo, rhi := r.Box().Extents()
		lo.X, lo.Z = math.Min(lo.X, rlo.X), math.Min(lo.Z, rlo.Z)
		hi.X, hi.Z = math.Max(hi.X, rhi.X), math.Max(hi.Z, rhi.Z)
	}

	scale := 1.0
	if maxWidth > 0 && hi.X-lo.X > float64(maxWidth) {
		scale = (hi.X - lo.X) / float64(maxWidth)
	}
	cols := max(1, int(math.Ceil((hi.X-lo.X)/scale)))
	rows := max(1, int(math.Ceil((hi.Z-lo.Z)/scale)))

	plan := make([][]rune, rows)
	for row := range plan {
		plan[row] = make([]rune, cols)
		z := hi.Z - (float64(row)+0.5)*scale
		for col := range plan[row] {
			x := lo.X + (float64(col)+0.5)*scale
			plan[row][col] = '.'
			for i, r := range rooms {
				if r.Box().ContainsXZ(x, z) {
					plan[row][col] = roomSymbol(i)
					break
				}
			}
		}
	}

	for _, r := range rooms {
		for _, d := range r.Doorways {
			p := d.WorldPose().Position
			row := min(rows-1, max(0, int((hi.Z-p.Z)/scale)))
			col := min(cols-1, max(0, int((p.X-lo.X)/scale)))
			plan[row][col] = doorwaySymbol(doorwayState(f, d))
		}
	}

	for _, line := range plan {
		fmt.Fprintln(w, string(line))
	}
}

// WriteLevelDump writes a full debug dump of l: metadata, legend, a plan of
// every floor and detailed room, doorway, spawn point and item lists.
// The format is sections of aligned key and value columns.
func WriteLevelDump(w io.Writer, l *level.Level, opts DumpOptions) error {
	if l == nil {
		return fmt.Errorf("no level")
	}
	planWidth := opts.PlanWidth
	if planWidth == 0 {
		planWidth = DefaultPlanWidth
	}

	bw := bufio.NewWriter(w)
	rooms := l.Rooms()

	openDoorways, storerooms := 0, 0
	for _, f := range l.Floors {
		openDoorways += f.Frontier.Len()
		storerooms += len(f.Storerooms)
	}

	// --- Metadata ---
	fmt.Fprintln(bw, "=== LEVEL DUMP (floors, rooms, doorways, spawn points) ===")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "--- Metadata ---")
	meta := newTable("key", "value")
	meta.addf("seed\t%d", l.Seed)
	meta.addf("attempts\t%d", l.Attempts)
	meta.addf("floors\t%d", len(l.Floors))
	meta.addf("rooms\t%d", len(rooms))
	meta.addf("storerooms\t%d", storerooms)
	meta.addf("open_doorways\t%d", openDoorways)
	meta.addf("duplicate_doorways\t%d", l.DuplicateDoorways)
	if spawn, ok := l.PlayerSpawn(); ok {
		meta.addf("player_spawn\t%v", spawn)
	} else {
		meta.add("player_spawn", "none")
	}
	meta.write(bw, "", 0)
	fmt.Fprintln(bw, "")

	// --- Legend ---
	fmt.Fprintln(bw, "--- Legend (plan symbols) ---")
	fmt.Fprintln(bw, "A-Z a-z 0-9 = room (see Rooms)  . = empty  o = open doorway  = = connected doorway  x = sealed doorway  ^ = stairs up  v = stairs down")
	fmt.Fprintln(bw, "")

	// --- Plans ---
	for _, f := range l.Floors {
		fmt.Fprintf(bw, "--- Floor %d plan (north up) ---\n", f.Number)
		writePlan(bw, f, planWidth)
		fmt.Fprintln(bw, "")
	}

	// --- Rooms ---
	fmt.Fprintln(bw, "--- Rooms ---")
	rt := newTable("floor", "symbol", "name", "kind", "position", "yaw", "scenery", "id")
	for _, f := range l.Floors {
		for i, r := range f.AllRooms() {
			scenery := "none"
			if s := r.ActiveScenery(); s != nil {
				scenery = s.Name
			}
			kind := string(r.Template.Kind)
			if r.Storeroom {
				kind += " (storeroom)"
			}
			rt.addf("%d\t%c\t%s\t%s\t%v\t%.0f\t%s\t%s", f.Number, roomSymbol(i), r.Template.Name, kind, r.Pose().Position, r.Pose().Yaw, scenery, r.ID)
		}
	}
	rt.write(bw, "  ", 0)
	fmt.Fprintln(bw, "")

	// --- Doorways ---
	fmt.Fprintln(bw, "--- Doorways ---")
	dt := newTable("floor", "doorway", "state", "openable", "peer", "position")
	for _, f := range l.Floors {
		for _, r := range f.AllRooms() {
			for _, d := range r.Doorways {
				peer := "-"
				if d.Peer != nil {
					peer = d.Peer.String()
				}
				dt.addf("%d\t%s\t%s\t%v\t%s\t%v", f.Number, d, doorwayState(f, d), d.Openable, peer, d.WorldPose().Position)
			}
		}
	}
	dt.write(bw, "  ", 0)
	fmt.Fprintln(bw, "")

	// --- Spawn points ---
	fmt.Fprintln(bw, "--- Item spawn points ---")
	st := newTable("floor", "room", "position")
	for _, f := range l.Floors {
		for _, p := range f.ItemSpawnPoints {
			st.addf("%d\t%s\t%v", f.Number, p.Room, p.Position)
		}
	}
	for _, p := range l.StoreroomSpawnPoints {
		st.addf("%d\t%s (storeroom)\t%v", p.Room.Floor, p.Room, p.Position)
	}
	st.write(bw, "  ", 0)
	fmt.Fprintln(bw, "")

	// --- Items ---
	if len(opts.Items) > 0 {
		fmt.Fprintln(bw, "--- Items ---")
		it := newTable("floor", "kind", "name", "room", "position")
		for _, p := range opts.Items {
			it.addf("%d\t%s\t%s\t%s\t%v", p.Floor, p.Kind, p.Name, p.Room, p.Position)
		}
		it.write(bw, "  ", 0)
		fmt.Fprintln(bw, "")
	}

	fmt.Fprintln(bw, "=== END LEVEL DUMP ===")
	return bw.Flush()
}

// DumpLevelToFile writes the level dump to path (level.txt when empty) and
// returns the absolute path written.
func DumpLevelToFile(l *level.Level, path string, opts DumpOptions) (string, error) {
	if path == "" {
		path = levelDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteLevelDump(f, l, opts); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
