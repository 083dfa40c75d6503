//////////////////////////////////////////////////////
// timecontrol.go
// the external time-control collaborator boundary
//////////////////////////////////////////////////////

package shogi

import "time"

// TimeControl tracks a single player's clock: remaining main time,
// byoyomi (a fixed per-move grace period once main time is
// exhausted), and a per-move increment (Fischer-style). It is a
// collaborator, not part of move legality: Position never reads or
// writes one. A driver layered on top of this library is expected to
// own a TimeControl per side and call Consume after every move it
// relays into a Position.
type TimeControl struct {
	Main      time.Duration
	Byoyomi   time.Duration
	Increment time.Duration

	remaining time.Duration
	inByoyomi bool
}

// NewTimeControl returns a TimeControl with remaining initialized to
// main.
func NewTimeControl(main, byoyomi, increment time.Duration) *TimeControl {
	return &TimeControl{Main: main, Byoyomi: byoyomi, Increment: increment, remaining: main}
}

// Remaining returns the time left on the clock.
func (tc *TimeControl) Remaining() time.Duration {
	return tc.remaining
}

// InByoyomi reports whether main time is exhausted and the clock is
// now running on the fixed byoyomi grace period.
func (tc *TimeControl) InByoyomi() bool {
	return tc.inByoyomi
}

// Consume deducts elapsed from the clock. Once remaining reaches
// zero it switches to byoyomi (if any) rather than going negative;
// while in byoyomi, remaining is reset to the full byoyomi duration
// at the start of each move by the caller via IncrementAfterMove.
func (tc *TimeControl) Consume(elapsed time.Duration) {
	if tc.inByoyomi {
		tc.remaining -= elapsed
		return
	}
	tc.remaining -= elapsed
	if tc.remaining <= 0 {
		if tc.Byoyomi > 0 {
			tc.inByoyomi = true
			tc.remaining = tc.Byoyomi
		}
	}
}

// IncrementAfterMove adds the per-move increment, or (while in
// byoyomi) resets remaining to a fresh byoyomi allotment.
func (tc *TimeControl) IncrementAfterMove() {
	if tc.inByoyomi {
		tc.remaining = tc.Byoyomi
		return
	}
	tc.remaining += tc.Increment
}

// IsFlagFallen reports whether the clock has run out with no byoyomi
// left to fall back on.
func (tc *TimeControl) IsFlagFallen() bool {
	return tc.remaining <= 0
}
