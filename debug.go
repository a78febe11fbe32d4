package notefall

import (
	"fmt"
	"os"
)

// Diagnostics counts the stabilizer's and validity guard's interventions.
// None of these are user-visible errors; they exist so a host can watch for
// a misbehaving solver.
type Diagnostics struct {
	// Recoveries is the number of non-finite transforms reverted to the last
	// known-good snapshot.
	Recoveries int
	// FloorCorrections is the number of below-floor positions hard-corrected.
	FloorCorrections int
	// Settles is the number of settlement transitions performed.
	Settles int
}

// Diagnostics returns the board's intervention counters.
func (b *Board) Diagnostics() Diagnostics { return b.diag }

// debugRecovery logs a validity-guard recovery to stderr when debug mode is
// on.
func (b *Board) debugRecovery(n *Note) {
	if !b.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[notefall] non-finite transform on note %d (%s), reverting to last valid snapshot\n",
		n.ID, n.state)
}
