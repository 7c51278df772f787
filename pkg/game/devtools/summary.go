package devtools

import (
	"fmt"
	"io"

	"floorforge/pkg/game/console"
	"floorforge/pkg/game/level"
)

// WriteSummary prints one line per floor with translated column headers,
// cut to width characters (0 for no limit)
func WriteSummary(w io.Writer, l *level.Level, width int) {
	t := newTable(console.T("Floor"), console.T("Rooms"), console.T("Storerooms"), console.T("Open doorways"), console.T("Spawn points"))
	for _, f := range l.Floors {
		t.add(
			fmt.Sprint(f.Number),
			fmt.Sprint(len(f.Rooms)),
			fmt.Sprint(len(f.Storerooms)),
			fmt.Sprint(f.Frontier.Len()),
			fmt.Sprint(len(f.ItemSpawnPoints)),
		)
	}
	t.write(w, "", width)
}
