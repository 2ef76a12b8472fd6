package app_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shieldhero-quiz/internal/app"
	"shieldhero-quiz/internal/domain"
	"shieldhero-quiz/internal/infra/memory"
	"shieldhero-quiz/internal/loop"
)

var epoch = time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)

type renderRecorder struct {
	idle      []domain.StatsRecord
	questions []app.QuestionView
	selected  []string
	ticks     []int
	lowTicks  []int
	results   []domain.Results
	themes    []domain.Mode
	errors    []string
}

func (r *renderRecorder) RenderIdle(stats domain.StatsRecord) {
	r.idle = append(r.idle, stats)
}
func (r *renderRecorder) RenderQuestion(view app.QuestionView) {
	r.questions = append(r.questions, view)
}
func (r *renderRecorder) RenderAnswerSelected(index int, value string) {
	r.selected = append(r.selected, fmt.Sprintf("%d:%s", index, value))
}
func (r *renderRecorder) RenderTimer(remaining int, low bool) {
	r.ticks = append(r.ticks, remaining)
	if low {
		r.lowTicks = append(r.lowTicks, remaining)
	}
}
func (r *renderRecorder) RenderResults(res domain.Results) {
	r.results = append(r.results, res)
}
func (r *renderRecorder) RenderThemeChanged(mode domain.Mode, _ domain.Palette) {
	r.themes = append(r.themes, mode)
}
func (r *renderRecorder) ShowValidationError(msg string) {
	r.errors = append(r.errors, msg)
}

type audioRecorder struct {
	cues  []domain.Cue
	music []domain.Mode
	stops int
}

func (a *audioRecorder) PlayCue(kind domain.Cue) {
	a.cues = append(a.cues, kind)
}
func (a *audioRecorder) PlayThemeMusic(mode domain.Mode) {
	a.music = append(a.music, mode)
}
func (a *audioRecorder) StopThemeMusic() {
	a.stops++
}

func (a *audioRecorder) count(kind domain.Cue) int {
	n := 0
	for _, c := range a.cues {
		if c == kind {
			n++
		}
	}
	return n
}

type effectsRecorder struct {
	modes  []domain.Mode
	bursts []domain.Mode
	origin []domain.Point
}

func (e *effectsRecorder) SetMode(mode domain.Mode) {
	e.modes = append(e.modes, mode)
}
func (e *effectsRecorder) Burst(mode domain.Mode, origin domain.Point) {
	e.bursts = append(e.bursts, mode)
	e.origin = append(e.origin, origin)
}

// failingStore rejects every call, like a storage quota or privacy block.
type failingStore struct{}

var errBlocked = errors.New("blocked")

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, errBlocked)
}

func (failingStore) Set(context.Context, string, string) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, errBlocked)
}

type harness struct {
	sched    *loop.ManualScheduler
	store    *memory.KVStore
	stats    *app.StatsStore
	renderer *renderRecorder
	audio    *audioRecorder
	effects  *effectsRecorder
	machine  *app.Machine
}

func newHarness(opts ...app.Option) *harness {
	h := &harness{
		sched:    loop.NewManualScheduler(epoch),
		store:    memory.NewKVStore(),
		renderer: &renderRecorder{},
		audio:    &audioRecorder{},
		effects:  &effectsRecorder{},
	}
	h.stats = app.NewStatsStoreWithClock(h.store, nil, h.sched.Now)
	base := []app.Option{
		app.WithRenderer(h.renderer),
		app.WithAudio(h.audio),
		app.WithEffects(h.effects, func() domain.Point { return domain.Point{X: 400, Y: 300} }),
		app.WithIDGenerator(func() string { return "session-1" }),
	}
	h.machine = app.NewMachine(h.sched, h.stats, append(base, opts...)...)
	return h
}

// answerAll answers every question with pick(i) and submits it.
func (h *harness) answerAll(ctx context.Context, pick func(q domain.Question) string) error {
	for h.machine.State() == app.StateInProgress {
		q := h.machine.CurrentQuestion()
		if err := h.machine.SelectAnswer(q.Index, pick(q)); err != nil {
			return err
		}
		if err := h.machine.Advance(ctx); err != nil {
			return err
		}
	}
	return nil
}

func correct(q domain.Question) string { return q.CorrectAnswer }

func wrong(q domain.Question) string {
	for _, opt := range q.Options {
		if opt != q.CorrectAnswer {
			return opt
		}
	}
	return q.Options[0]
}
