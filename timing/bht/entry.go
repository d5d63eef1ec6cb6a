package bht

// Entry is a single slot of the Branch History Table: the last few actual
// outcomes, a one-bit prediction, and the counts of correct and incorrect
// predictions made from this slot.
type Entry struct {
	// history[0] is the oldest outcome, history[len-1] the most recent.
	history    []bool
	prediction bool

	correct   uint64
	incorrect uint64
}

// newEntry creates an entry whose history and prediction all hold bias.
func newEntry(historyLength int, bias bool) *Entry {
	history := make([]bool, historyLength)
	for i := range history {
		history[i] = bias
	}

	return &Entry{
		history:    history,
		prediction: bias,
	}
}

// Predict returns the current prediction.
func (e *Entry) Predict() bool {
	return e.prediction
}

// Update records the actual outcome of a branch that used this entry.
//
// The outcome is shifted into the history. A correct prediction only bumps
// the correct counter. A misprediction bumps the incorrect counter and flips
// the prediction when every recorded outcome now equals the new one, so a
// length-1 history flips on every miss and a length-2 history needs two
// agreeing misses in a row.
func (e *Entry) Update(taken bool) {
	copy(e.history, e.history[1:])
	e.history[len(e.history)-1] = taken

	if taken == e.prediction {
		e.correct++
		return
	}

	e.incorrect++
	for _, h := range e.history {
		if h != taken {
			return
		}
	}
	e.prediction = taken
}

// History returns a copy of the recorded outcomes, oldest first.
func (e *Entry) History() []bool {
	history := make([]bool, len(e.history))
	copy(history, e.history)
	return history
}

// Correct returns the number of correct predictions.
func (e *Entry) Correct() uint64 {
	return e.correct
}

// Incorrect returns the number of incorrect predictions.
func (e *Entry) Incorrect() uint64 {
	return e.incorrect
}

// Precision returns the percentage of correct predictions, or 0 if the entry
// has never been updated.
func (e *Entry) Precision() float64 {
	total := e.correct + e.incorrect
	if total == 0 {
		return 0
	}
	return float64(e.correct) / float64(total) * 100
}
