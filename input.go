package notefall

import "github.com/hajimehoshi/ebiten/v2"

// inputState tracks the mouse between polls so press and release edges can
// be detected from ebiten's level-triggered API.
type inputState struct {
	down         bool
	lastX, lastY float64
}

// PollInput reads the mouse once and feeds the board's pointer protocol.
// Call it once per ebiten Update, after the solver step and Board.Update.
//
// Events are delivered to the board unconditionally — not gated on any hit
// area — which gives drags global capture: a gesture keeps receiving moves
// even after the pointer leaves the note it started on.
func (b *Board) PollInput() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	st := &b.input
	switch {
	case pressed && !st.down:
		st.down = true
		b.PointerDown(sx, sy)
	case !pressed && st.down:
		st.down = false
		b.PointerUp(sx, sy)
	case sx != st.lastX || sy != st.lastY:
		b.PointerMove(sx, sy)
	}
	st.lastX, st.lastY = sx, sy
}
