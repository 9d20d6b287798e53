package gesture

// Aggregator synchronizes both sticks into completed inputs. It feeds each
// stick's classified sample to a per-stick Recognizer and emits one Input per
// episode: exactly when both sticks are simultaneously back at Center and at
// least one of them produced a non-empty gesture since the last emission.
//
// The sticks may activate and settle independently; a finalized gesture is
// held pending until the other stick settles too. If a stick re-activates
// before the episode completes, its newer finalized gesture replaces the
// pending one.
type Aggregator struct {
	left  *Recognizer
	right *Recognizer

	pendingLeft  Gesture
	pendingRight Gesture
}

// NewAggregator returns an aggregator whose recognizers share one length cap.
func NewAggregator(maxLen int) *Aggregator {
	return &Aggregator{
		left:  NewRecognizer(maxLen),
		right: NewRecognizer(maxLen),
	}
}

// Feed advances both recognizers with one tick's classified samples and
// reports a completed Input when the episode settles. A tick where neither
// stick ever left Center emits nothing: that is the steady neutral state.
func (a *Aggregator) Feed(left, right Sector) (Input, bool) {
	if g, done := a.left.Observe(left); done && len(g) > 0 {
		a.pendingLeft = g
	}
	if g, done := a.right.Observe(right); done && len(g) > 0 {
		a.pendingRight = g
	}
	if a.left.Active() || a.right.Active() {
		return Input{}, false
	}
	if len(a.pendingLeft) == 0 && len(a.pendingRight) == 0 {
		return Input{}, false
	}
	in := Input{Left: a.pendingLeft, Right: a.pendingRight}
	a.pendingLeft = nil
	a.pendingRight = nil
	return in, true
}

// Reset discards all transient per-stick state, e.g. on interruption.
func (a *Aggregator) Reset() {
	a.left.Reset()
	a.right.Reset()
	a.pendingLeft = nil
	a.pendingRight = nil
}
