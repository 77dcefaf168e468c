package logline

import (
	"fmt"
	"strings"

	"github.com/relaforg/fly-in/scheduler"
)

// Render serializes h into the movement-log text format: one line per
// turn, each line the space-separated `D<id>-<location>` tokens for every
// drone that moved that turn, in drone-ID order.
//
// Render never returns an error: a History with fewer than two states
// (including nil) renders as the empty string, and turns beyond the
// initial state are always well-formed since scheduler.Run only appends
// complete States.
func Render(h scheduler.History) string {
	var b strings.Builder
	for turn := 1; turn < len(h); turn++ {
		writeLine(&b, h.Moves(turn))
	}

	return b.String()
}

func writeLine(b *strings.Builder, moves []scheduler.Move) {
	for i, m := range moves {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "%s-%s", m.DroneID, m.NewLocation)
	}
	b.WriteByte('\n')
}
