package wheel

// Tier is the visual emphasis of a row relative to the selection.
type Tier struct {
	Opacity float64
	Scale   float64
}

var tiers = [...]Tier{
	{Opacity: 1, Scale: 1},
	{Opacity: 0.6, Scale: 0.9},
	{Opacity: 0.3, Scale: 0.8},
	{Opacity: 0.1, Scale: 0.7},
}

// Emphasis returns the tier for a row distance rows away from the selection.
func Emphasis(distance int) Tier {
	if distance < 0 {
		distance = -distance
	}
	if distance >= len(tiers) {
		distance = len(tiers) - 1
	}
	return tiers[distance]
}

// EmphasisAt is Emphasis for item index i of w.
func (w *Wheel) EmphasisAt(i int) Tier {
	return Emphasis(i - w.selected)
}
