// Package notefall is the interactive manipulation layer for rigid planar
// notes in a real-time physics scene: picking notes up, dragging them on a
// camera-facing plane, dropping them back under solver control, and settling
// them at the floor without jitter, z-fighting, or visible discontinuities.
//
// The package does not render and does not simulate. Rendering, the
// rigid-body solver, and the raw input source are external collaborators:
// the solver is reached only through the [Body] contract, the renderer reads
// whatever state the layer sets, and input arrives as plain pointer events.
// The [rigid] subpackage provides a small reference solver for examples and
// tests.
//
// # Quick start
//
//	world := rigid.NewWorld()
//	world.SetFloor(notefall.DefaultFloorY)
//
//	cam := notefall.NewCamera(notefall.Rect{Width: 960, Height: 540})
//	board := notefall.NewBoard(notefall.BoardConfig{
//		Camera: cam,
//		NewBody: func(pos, half mgl64.Vec3) notefall.Body {
//			return world.NewBody(pos, half, 1)
//		},
//	})
//	board.AddNote(mgl64.Vec3{0, 0, 0}, notefall.ColorWhite)
//
// Then, once per frame and in this order:
//
//	world.Step(dt)     // solver proposes positions
//	board.Update(dt)   // stabilizer and animations react to them
//	board.PollInput()  // pointer writes override the proposals
//
// The fixed order is the package's concurrency model: everything runs on one
// goroutine, snapshots are pulled rather than pushed, and a drag write always
// lands after the solver's last proposal for that note.
//
// # Gestures
//
// Pressing on a note grabs it: the note turns kinematic (mass zero) and
// slides on a plane fixed at grab time, facing the camera. Releasing re-arms
// physics and lets it fall. Pressing on a note's corner hot-zone instead
// spawns a pending note — a bodiless ghost that tracks the pointer on a
// horizontal plane — and a later click commits it into the world as a real
// falling note. The board exposes the whole of this as PointerDown,
// PointerMove, and PointerUp; [Board.PollInput] adapts an ebiten mouse to
// those calls.
package notefall
