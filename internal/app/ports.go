package app

import (
	"context"

	"shieldhero-quiz/internal/domain"
	"shieldhero-quiz/internal/loop"
)

// Store abstracts the durable key-value storage (in-memory, file, Redis).
// A missing key reports ok=false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Scheduler arms timer callbacks on the quiz thread.
type Scheduler = loop.Scheduler

// QuestionView is what the render layer needs to draw the current question.
type QuestionView struct {
	Question        domain.Question
	Index           int
	Total           int
	Selected        string
	IsLast          bool
	CanRetreat      bool
	ProgressPercent int
}

// Renderer is the presentation layer bound to the core's notifications.
type Renderer interface {
	RenderIdle(stats domain.StatsRecord)
	RenderQuestion(view QuestionView)
	RenderAnswerSelected(index int, value string)
	RenderTimer(remaining int, lowTime bool)
	RenderResults(results domain.Results)
	RenderThemeChanged(mode domain.Mode, palette domain.Palette)
	ShowValidationError(message string)
}

// Audio plays cues and looping theme music.
type Audio interface {
	PlayCue(kind domain.Cue)
	PlayThemeMusic(mode domain.Mode)
	StopThemeMusic()
}

// Effects is the particle layer driven by theme changes and high scores.
type Effects interface {
	SetMode(mode domain.Mode)
	Burst(mode domain.Mode, origin domain.Point)
}

// ModeSource exposes the committed theme mode.
type ModeSource interface {
	Mode() domain.Mode
}

type nopRenderer struct{}

func (nopRenderer) RenderIdle(domain.StatsRecord)                  {}
func (nopRenderer) RenderQuestion(QuestionView)                    {}
func (nopRenderer) RenderAnswerSelected(int, string)               {}
func (nopRenderer) RenderTimer(int, bool)                          {}
func (nopRenderer) RenderResults(domain.Results)                   {}
func (nopRenderer) RenderThemeChanged(domain.Mode, domain.Palette) {}
func (nopRenderer) ShowValidationError(string)                     {}

type nopAudio struct{}

func (nopAudio) PlayCue(domain.Cue)         {}
func (nopAudio) PlayThemeMusic(domain.Mode) {}
func (nopAudio) StopThemeMusic()            {}

type nopEffects struct{}

func (nopEffects) SetMode(domain.Mode)             {}
func (nopEffects) Burst(domain.Mode, domain.Point) {}

type fixedMode domain.Mode

func (m fixedMode) Mode() domain.Mode { return domain.Mode(m) }
