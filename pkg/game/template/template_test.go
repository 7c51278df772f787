package template

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"floorforge/pkg/engine/world"
)

const sampleLibrary = `{
  "name": "sample",
  "templates": [
    {"name": "hall", "kind": "start",
     "pieces": [{"name": "shell", "material": "stone", "center": {"x": 0, "y": 1.5, "z": 0}, "size": {"x": 8, "y": 3, "z": 8}}],
     "doorways": [{"position": {"x": 0, "y": 0, "z": 4}, "facing": "north"}],
     "player_spawn": {"x": 0, "y": 0, "z": -2}},
    {"name": "corridor", "kind": "connecting",
     "pieces": [{"name": "shell", "material": "stone", "center": {"x": 0, "y": 1.5, "z": 0}, "size": {"x": 4, "y": 3, "z": 10}}],
     "doorways": [
       {"position": {"x": 0, "y": 0, "z": -5}, "facing": "South"},
       {"position": {"x": 0, "y": 0, "z": 5}, "facing": "north"}
     ],
     "scenery": [{"name": "crates", "spawns": [{"x": 1, "y": 0, "z": 0}]}]}
  ]
}`

func TestParse(t *testing.T) {
	lib, err := Parse([]byte(sampleLibrary))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(lib.Templates) != 2 {
		t.Fatalf("len(Templates) = %d, want 2", len(lib.Templates))
	}

	corridor, ok := lib.Get("corridor")
	if !ok {
		t.Fatal("Get(corridor) not found")
	}
	if corridor.Doorways[0].Facing != world.South {
		t.Errorf("doorway 0 facing %v, want South", corridor.Doorways[0].Facing)
	}
	if got := corridor.Bounds().Size; got != world.V(4, 3, 10) {
		t.Errorf("Bounds().Size = %v, want (4, 3, 10)", got)
	}

	reg := lib.Registry()
	if reg.Start == nil || reg.Start.Name != "hall" {
		t.Errorf("Registry().Start = %v, want hall", reg.Start)
	}
	if len(reg.Connecting) != 1 || reg.Exit != nil || reg.Stairwell != nil {
		t.Errorf("Registry() = %+v, want one connecting template and no exit or stairwell", reg)
	}
	if reg.Start.PlayerSpawn == nil || *reg.Start.PlayerSpawn != world.V(0, 0, -2) {
		t.Errorf("PlayerSpawn = %v, want (0, 0, -2)", reg.Start.PlayerSpawn)
	}
}

func TestParseRejects(t *testing.T) {
	piece := `"pieces": [{"name": "p", "material": "m", "center": {"x": 0, "y": 0, "z": 0}, "size": {"x": 1, "y": 1, "z": 1}}]`
	door := `{"position": {"x": 0, "y": 0, "z": 0}, "facing": "north"}`

	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"malformed", `{"templates": [`, "parse"},
		{"bad facing", `{"templates": [{"name": "a", "kind": "connecting", ` + piece + `, "doorways": [{"facing": "up"}]}]}`, "invalid direction"},
		{"bad kind", `{"templates": [{"name": "a", "kind": "attic", ` + piece + `, "doorways": [` + door + `]}]}`, "invalid kind"},
		{"no doorways", `{"templates": [{"name": "a", "kind": "connecting", ` + piece + `}]}`, "doorway"},
		{"no pieces", `{"templates": [{"name": "a", "kind": "connecting", "doorways": [` + door + `]}]}`, "piece"},
		{"one-door stairwell", `{"templates": [{"name": "a", "kind": "stairwell", ` + piece + `, "doorways": [` + door + `]}]}`, "stairwell"},
		{"duplicate name", `{"templates": [
			{"name": "a", "kind": "connecting", ` + piece + `, "doorways": [` + door + `]},
			{"name": "a", "kind": "unique", ` + piece + `, "doorways": [` + door + `]}]}`, "duplicate"},
		{"two exits", `{"templates": [
			{"name": "a", "kind": "exit", ` + piece + `, "doorways": [` + door + `]},
			{"name": "b", "kind": "exit", ` + piece + `, "doorways": [` + door + `]}]}`, "at most 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDoorwayBounds(t *testing.T) {
	tests := []struct {
		facing world.Direction
		want   world.Vec3
	}{
		{world.North, world.V(1.5, 2.5, 0.2)},
		{world.South, world.V(1.5, 2.5, 0.2)},
		{world.East, world.V(0.2, 2.5, 1.5)},
		{world.West, world.V(0.2, 2.5, 1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.facing.String(), func(t *testing.T) {
			d := Doorway{Position: world.V(1, 0, 2), Facing: tt.facing}
			b := d.Bounds()
			if b.Size != tt.want {
				t.Errorf("Bounds().Size = %v, want %v", b.Size, tt.want)
			}
			if b.Center != world.V(1, 1.25, 2) {
				t.Errorf("Bounds().Center = %v, want (1, 1.25, 2)", b.Center)
			}
		})
	}
}

func TestDirectionJSON(t *testing.T) {
	data, err := json.Marshal(Doorway{Facing: world.West})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"facing":"west"`) {
		t.Errorf("Marshal() = %s, want facing west", data)
	}

	var d Doorway
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.Facing != world.West {
		t.Errorf("Facing = %v, want West", d.Facing)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	if err := os.WriteFile(path, []byte(sampleLibrary), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if lib.Name != "sample" {
		t.Errorf("Name = %q, want sample", lib.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}
