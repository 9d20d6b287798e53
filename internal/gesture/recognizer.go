package gesture

// Recognizer is the per-stick state machine. It goes active when the stick
// first leaves Center, records each sector change while active, and finalizes
// the accumulated sequence into a Gesture when the stick returns to Center.
//
// The sequence length is capped: once maxLen distinct sectors are recorded,
// further sector changes are ignored until the stick re-centers. This bounds
// gesture complexity without aborting the episode.
type Recognizer struct {
	maxLen int
	active bool
	seq    []Sector
}

// NewRecognizer returns a recognizer with the given gesture length cap.
func NewRecognizer(maxLen int) *Recognizer {
	if maxLen <= 0 {
		maxLen = 1
	}
	return &Recognizer{maxLen: maxLen}
}

// Observe advances the state machine with one classified sample. When the
// stick returns to Center it reports the finalized Gesture and true; on all
// other ticks it reports nil and false.
func (r *Recognizer) Observe(s Sector) (Gesture, bool) {
	if !r.active {
		if s == Center {
			return nil, false
		}
		r.active = true
		r.seq = append(r.seq[:0], s)
		return nil, false
	}
	if s == Center {
		g := Encode(r.seq, r.maxLen)
		r.active = false
		r.seq = r.seq[:0]
		return g, true
	}
	if s != r.seq[len(r.seq)-1] && len(r.seq) < r.maxLen {
		r.seq = append(r.seq, s)
	}
	return nil, false
}

// Active reports whether the stick is currently outside the Center threshold.
func (r *Recognizer) Active() bool {
	return r.active
}

// Reset discards any transient accumulator state, returning to Idle.
func (r *Recognizer) Reset() {
	r.active = false
	r.seq = r.seq[:0]
}
