package pad

import (
	"SignPad/internal/geometry"
)

// Surface is the pad as seen by a hosting UI or a remote peer: the input
// events, the controller operations and a way to observe render state.
type Surface interface {
	PointerDown(p geometry.Point)
	PointerMove(p geometry.Point)
	PointerUp()

	HoldPress()
	HoldRelease()

	Erase()
	Undo()
	Play()
	Stop()

	// Snapshot returns the latest published state. It is never nil.
	Snapshot() *Snapshot
	// Subscribe registers fn for new snapshots until cancel is called. A
	// slow fn may miss intermediate snapshots but always sees the latest.
	Subscribe(fn func(*Snapshot)) (cancel func())
}
