package app

import (
	"context"

	"shieldhero-quiz/internal/domain"
)

// Key is a keyboard action understood by the quiz screen.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
)

// HandleKey maps keyboard navigation onto the machine. Keys outside the quiz screen are ignored.
func (m *Machine) HandleKey(ctx context.Context, k Key) error {
	if m.state != StateInProgress {
		return nil
	}
	switch k {
	case KeyDown:
		_, err := m.CycleOption(1)
		return err
	case KeyUp:
		_, err := m.CycleOption(-1)
		return err
	case KeyRight:
		if m.session.CurrentIndex < len(m.questions)-1 {
			return m.Advance(ctx)
		}
	case KeyLeft:
		return m.Retreat()
	case KeyEnter:
		return m.Advance(ctx)
	}
	return nil
}

// CycleOption moves the selection of the current question by one option with
// wraparound. With nothing selected, forward picks the first and backward the last.
func (m *Machine) CycleOption(delta int) (string, error) {
	if m.state != StateInProgress {
		return "", domain.ErrInvalidTransition
	}
	idx := m.session.CurrentIndex
	q := m.questions[idx]
	n := len(q.Options)
	if n == 0 {
		return "", domain.ErrOptionNotFound
	}
	cur := q.OptionIndex(m.session.Answer(idx))
	next := 0
	if delta >= 0 {
		if cur < n-1 {
			next = cur + 1
		}
	} else {
		next = n - 1
		if cur > 0 {
			next = cur - 1
		}
	}
	value := q.Options[next]
	return value, m.SelectAnswer(idx, value)
}

// SelectOption picks the option at position i (0-based) of the current question.
func (m *Machine) SelectOption(i int) error {
	if m.state != StateInProgress {
		return domain.ErrInvalidTransition
	}
	q := m.questions[m.session.CurrentIndex]
	if i < 0 || i >= len(q.Options) {
		return domain.ErrOptionNotFound
	}
	return m.SelectAnswer(m.session.CurrentIndex, q.Options[i])
}
