// Package wheel implements the scroll physics of a single picker column:
// drag tracking, wheel ticks, inertia after a flick, and snapping to the
// nearest item.
//
// A Wheel never schedules anything itself. Operations that need a follow-up
// return a Step naming a delay and a generation; the host calls Advance with
// that generation once the delay has elapsed. Any newer interaction bumps the
// generation so stale follow-ups become no-ops.
package wheel

import (
	"math"
	"time"
)

const (
	// DefaultExtent is the height of one item in scroll units.
	DefaultExtent = 56.0

	// WheelMultiplier scales discrete wheel-tick deltas.
	WheelMultiplier = 2.5

	// FlickThreshold is the release speed (units/ms) that starts inertia.
	FlickThreshold = 0.3
	// Friction is applied to the velocity once per frame.
	Friction = 0.95
	// MinVelocity ends an inertia run.
	MinVelocity = 0.1

	FrameInterval    = 16 * time.Millisecond
	SettleDelay      = 150 * time.Millisecond
	SnapSteps        = 20
	SnapStepInterval = 10 * time.Millisecond

	sampleWindow = 100 * time.Millisecond
	maxSamples   = 5
)

// Phase is the wheel's interaction state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseInertia
	PhaseSettleWait
	PhaseSnapping
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseInertia:
		return "inertia"
	case PhaseSettleWait:
		return "settle-wait"
	case PhaseSnapping:
		return "snapping"
	default:
		return "idle"
	}
}

// Item is one selectable row.
type Item struct {
	Value int
	Label string
}

// Step tells the host what the wheel needs next.
type Step struct {
	// After is the delay before Advance should be called. Zero means nothing
	// is pending.
	After time.Duration
	Gen   uint64
	// Settled is set when the selection was committed at an item boundary.
	Settled bool
}

// Pending reports whether the host must schedule an Advance.
func (s Step) Pending() bool { return s.After > 0 }

type sample struct {
	pos float64
	at  time.Time
}

// Wheel is the state of one scrollable column.
type Wheel struct {
	items    []Item
	extent   float64
	offset   float64
	selected int

	phase    Phase
	gen      uint64
	velocity float64

	lastPos float64
	samples []sample

	snapTo   float64
	snapStep float64
	snapN    int
}

// New returns an idle wheel resting on index 0. A non-positive extent uses
// DefaultExtent.
func New(items []Item, extent float64) *Wheel {
	if extent <= 0 {
		extent = DefaultExtent
	}
	w := &Wheel{extent: extent}
	w.items = append([]Item(nil), items...)
	return w
}

func (w *Wheel) Items() []Item { return w.items }
func (w *Wheel) Len() int { return len(w.items) }
func (w *Wheel) Extent() float64 { return w.extent }
func (w *Wheel) Offset() float64 { return w.offset }
func (w *Wheel) Selected() int { return w.selected }
func (w *Wheel) Phase() Phase { return w.phase }
func (w *Wheel) Gen() uint64 { return w.gen }
func (w *Wheel) Velocity() float64 { return w.velocity }

// SelectedItem returns the item at the selected index.
func (w *Wheel) SelectedItem() (Item, bool) {
	if w.selected < 0 || w.selected >= len(w.items) {
		return Item{}, false
	}
	return w.items[w.selected], true
}

// IndexOf returns the index of the first item with value v, or -1.
func (w *Wheel) IndexOf(v int) int {
	for i, it := range w.items {
		if it.Value == v {
			return i
		}
	}
	return -1
}

// Aligned reports whether the offset sits exactly on an item boundary.
func (w *Wheel) Aligned() bool {
	return w.offset == float64(w.selected)*w.extent
}

func (w *Wheel) maxOffset() float64 {
	if len(w.items) == 0 {
		return 0
	}
	return float64(len(w.items)-1) * w.extent
}

// clampOffset keeps the offset inside the item range. It reports whether the
// offset had to be clamped.
func (w *Wheel) clampOffset() bool {
	if w.offset < 0 {
		w.offset = 0
		return true
	}
	if hi := w.maxOffset(); w.offset > hi {
		w.offset = hi
		return true
	}
	return false
}

// nearestIndex rounds an offset to an item index; exactly half an extent
// rounds down.
func (w *Wheel) nearestIndex(off float64) int {
	idx := int(math.Floor(off / w.extent))
	if rem := off - float64(idx)*w.extent; rem > w.extent/2 {
		idx++
	}
	return w.clampIndex(idx)
}

func (w *Wheel) clampIndex(i int) int {
	if i < 0 || len(w.items) == 0 {
		return 0
	}
	if i >= len(w.items) {
		return len(w.items) - 1
	}
	return i
}

func (w *Wheel) track() {
	w.selected = w.nearestIndex(w.offset)
}

// cancel invalidates any pending follow-up and zeroes momentum.
func (w *Wheel) cancel() {
	w.gen++
	w.velocity = 0
	w.samples = w.samples[:0]
}

// Press starts a drag at pointer position pos.
func (w *Wheel) Press(pos float64, at time.Time) {
	w.cancel()
	w.phase = PhaseDragging
	w.lastPos = pos
	w.samples = append(w.samples, sample{pos: pos, at: at})
}

// Move follows the pointer 1:1. Moves outside a drag are ignored.
func (w *Wheel) Move(pos float64, at time.Time) {
	if w.phase != PhaseDragging {
		return
	}
	w.offset += w.lastPos - pos
	w.clampOffset()
	w.track()
	w.lastPos = pos
	w.samples = append(w.samples, sample{pos: pos, at: at})
	if len(w.samples) > maxSamples {
		w.samples = append(w.samples[:0], w.samples[len(w.samples)-maxSamples:]...)
	}
}

// Release ends a drag. A fast enough release starts inertia; otherwise the
// wheel waits SettleDelay and snaps.
func (w *Wheel) Release(at time.Time) Step {
	if w.phase != PhaseDragging {
		return Step{}
	}
	w.velocity = w.releaseVelocity(at)
	w.samples = w.samples[:0]
	if math.Abs(w.velocity) > FlickThreshold {
		w.phase = PhaseInertia
		return Step{After: FrameInterval, Gen: w.gen}
	}
	w.velocity = 0
	w.phase = PhaseSettleWait
	return Step{After: SettleDelay, Gen: w.gen}
}

// releaseVelocity is the trailing displacement/time over samples no older
// than sampleWindow. A zero time span yields zero.
func (w *Wheel) releaseVelocity(at time.Time) float64 {
	var kept []sample
	for _, s := range w.samples {
		if at.Sub(s.at) <= sampleWindow {
			kept = append(kept, s)
		}
	}
	if len(kept) < 2 {
		return 0
	}
	first, last := kept[0], kept[len(kept)-1]
	dt := float64(last.at.Sub(first.at)) / float64(time.Millisecond)
	if dt <= 0 {
		return 0
	}
	return (first.pos - last.pos) / dt
}

// Fling starts an inertia run with velocity v (units/ms) without a drag.
func (w *Wheel) Fling(v float64) Step {
	w.cancel()
	w.velocity = v
	if math.Abs(v) <= MinVelocity {
		return w.beginSnap()
	}
	w.phase = PhaseInertia
	return Step{After: FrameInterval, Gen: w.gen}
}

// Scroll applies one discrete wheel tick of delta units and (re)starts the
// settle timer.
func (w *Wheel) Scroll(delta float64) Step {
	w.cancel()
	w.offset += delta * WheelMultiplier
	w.clampOffset()
	w.track()
	w.phase = PhaseSettleWait
	return Step{After: SettleDelay, Gen: w.gen}
}

// Advance runs the follow-up scheduled by a previous Step. Steps from an
// older generation are ignored.
func (w *Wheel) Advance(gen uint64) Step {
	if gen != w.gen {
		return Step{}
	}
	switch w.phase {
	case PhaseInertia:
		return w.inertiaFrame()
	case PhaseSettleWait:
		return w.beginSnap()
	case PhaseSnapping:
		return w.snapFrame()
	default:
		return Step{}
	}
}

func (w *Wheel) inertiaFrame() Step {
	frameMS := float64(FrameInterval) / float64(time.Millisecond)
	w.offset += w.velocity * frameMS
	if w.clampOffset() {
		w.velocity = 0
	}
	w.track()
	w.velocity *= Friction
	if math.Abs(w.velocity) > MinVelocity {
		return Step{After: FrameInterval, Gen: w.gen}
	}
	w.velocity = 0
	return w.beginSnap()
}

func (w *Wheel) beginSnap() Step {
	target := float64(w.nearestIndex(w.offset)) * w.extent
	if w.offset == target {
		return w.commit()
	}
	w.phase = PhaseSnapping
	w.snapTo = target
	w.snapStep = (target - w.offset) / SnapSteps
	w.snapN = 0
	return Step{After: SnapStepInterval, Gen: w.gen}
}

func (w *Wheel) snapFrame() Step {
	w.snapN++
	w.offset += w.snapStep
	w.track()
	if w.offset != w.snapTo && w.snapN < SnapSteps {
		return Step{After: SnapStepInterval, Gen: w.gen}
	}
	w.offset = w.snapTo
	return w.commit()
}

func (w *Wheel) commit() Step {
	w.track()
	w.offset = float64(w.selected) * w.extent
	w.phase = PhaseIdle
	w.velocity = 0
	return Step{Gen: w.gen, Settled: true}
}

// Target is the index a running snap will land on, or Selected otherwise.
func (w *Wheel) Target() int {
	if w.phase == PhaseSnapping {
		return w.nearestIndex(w.snapTo)
	}
	return w.selected
}

// SnapTo animates to index i through the regular snap path.
func (w *Wheel) SnapTo(i int) Step {
	w.cancel()
	i = w.clampIndex(i)
	target := float64(i) * w.extent
	if w.offset == target {
		return w.commit()
	}
	w.phase = PhaseSnapping
	w.snapTo = target
	w.snapStep = (target - w.offset) / SnapSteps
	w.snapN = 0
	return Step{After: SnapStepInterval, Gen: w.gen}
}

// Jump selects index i immediately, without animation.
func (w *Wheel) Jump(i int) {
	w.cancel()
	w.selected = w.clampIndex(i)
	w.offset = float64(w.selected) * w.extent
	w.phase = PhaseIdle
}

// SetItems replaces the items and jumps to index i.
func (w *Wheel) SetItems(items []Item, i int) {
	w.items = append(w.items[:0:0], items...)
	w.Jump(i)
}
