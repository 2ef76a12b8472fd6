package app

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shieldhero-quiz/internal/domain"
)

// State is the screen the quiz is on.
type State int

const (
	StateIdle State = iota
	StateInProgress
	StateResults
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateResults:
		return "results"
	default:
		return "idle"
	}
}

// Machine is the quiz state machine. It owns the session, the question timer
// and the transition side effects. All methods must run on one thread.
type Machine struct {
	questions []domain.Question
	timer     *Timer
	stats     *StatsStore
	renderer  Renderer
	audio     Audio
	effects   Effects
	modes     ModeSource
	origin    func() domain.Point
	validate  *validator.Validate
	log       *zap.Logger
	now       func() time.Time
	newID     func() string

	state   State
	session domain.Session
	results *domain.Results
}

// Option customizes a Machine.
type Option func(*Machine)

func WithRenderer(r Renderer) Option {
	return func(m *Machine) {
		if r != nil {
			m.renderer = r
		}
	}
}

func WithAudio(a Audio) Option {
	return func(m *Machine) {
		if a != nil {
			m.audio = a
		}
	}
}

// WithEffects sets the particle layer used for the high-score burst.
func WithEffects(e Effects, origin func() domain.Point) Option {
	return func(m *Machine) {
		if e != nil {
			m.effects = e
		}
		if origin != nil {
			m.origin = origin
		}
	}
}

// WithModeSource tells the machine which theme music to start.
func WithModeSource(src ModeSource) Option {
	return func(m *Machine) {
		if src != nil {
			m.modes = src
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(m *Machine) {
		if log != nil {
			m.log = log
		}
	}
}

// WithQuestions replaces the built-in question bank.
func WithQuestions(qs []domain.Question) Option {
	return func(m *Machine) {
		if len(qs) > 0 {
			m.questions = qs
		}
	}
}

// WithIDGenerator is test-only for deterministic session IDs.
func WithIDGenerator(gen func() string) Option {
	return func(m *Machine) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// NewMachine creates an idle machine whose timer and clock come from sched.
func NewMachine(sched Scheduler, stats *StatsStore, opts ...Option) *Machine {
	m := &Machine{
		questions: domain.Questions(),
		stats:     stats,
		renderer:  nopRenderer{},
		audio:     nopAudio{},
		effects:   nopEffects{},
		modes:     fixedMode(domain.ModeWrath),
		origin:    func() domain.Point { return domain.Point{} },
		validate:  validator.New(),
		log:       zap.NewNop(),
		now:       sched.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.stats == nil {
		m.stats = NewStatsStore(nil, m.log)
	}
	m.timer = NewTimer(sched,
		func(remaining int, low bool) { m.renderer.RenderTimer(remaining, low) },
		func() { m.TimeoutAdvance(context.Background()) },
	)
	return m
}

type startRequest struct {
	Name       string `validate:"required"`
	Difficulty string `validate:"required,oneof=easy medium hard"`
}

// Start begins a session at question 0 with the difficulty's time limit.
func (m *Machine) Start(name string, difficulty domain.Difficulty) error {
	if m.state != StateIdle {
		return domain.ErrInvalidTransition
	}
	name = strings.TrimSpace(name)
	if err := m.validateStart(startRequest{Name: name, Difficulty: string(difficulty)}); err != nil {
		return m.reject(err)
	}

	m.session = domain.Session{
		ID:         m.newID(),
		PlayerName: name,
		Difficulty: difficulty,
		StartedAt:  m.now(),
		Answers:    make([]string, len(m.questions)),
	}
	m.results = nil
	m.state = StateInProgress
	m.log.Info("quiz started",
		zap.String("session", m.session.ID),
		zap.String("difficulty", string(difficulty)),
	)

	m.audio.PlayThemeMusic(m.modes.Mode())
	m.audio.PlayCue(domain.CueSuccess)
	m.enterQuestion()
	return nil
}

func (m *Machine) validateStart(req startRequest) error {
	err := m.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if fieldErrs[0].Field() == "Name" {
			return domain.NewValidationError("name", domain.MsgNameRequired)
		}
		return domain.NewValidationError("difficulty", domain.MsgDifficultyRequired)
	}
	return err
}

// SelectAnswer records value for question index. It never advances.
func (m *Machine) SelectAnswer(index int, value string) error {
	if m.state != StateInProgress {
		return domain.ErrInvalidTransition
	}
	if index < 0 || index >= len(m.questions) {
		return domain.ErrQuestionNotFound
	}
	if !m.questions[index].HasOption(value) {
		return domain.ErrOptionNotFound
	}
	m.session.Answers[index] = value
	m.audio.PlayCue(domain.CueClick)
	m.renderer.RenderAnswerSelected(index, value)
	return nil
}

// Advance submits the current question. It fails with a ValidationError when
// the question has no answer, leaving the index unchanged.
func (m *Machine) Advance(ctx context.Context) error {
	if m.state != StateInProgress {
		return domain.ErrInvalidTransition
	}
	if m.session.Answer(m.session.CurrentIndex) == "" {
		return m.reject(domain.NewValidationError("answer", domain.MsgAnswerRequired))
	}
	m.audio.PlayCue(domain.CueTransition)
	m.moveForward(ctx)
	return nil
}

// TimeoutAdvance moves on when the countdown expires, answered or not.
func (m *Machine) TimeoutAdvance(ctx context.Context) {
	if m.state != StateInProgress {
		return
	}
	m.log.Debug("question timed out",
		zap.String("session", m.session.ID),
		zap.Int("question", m.session.CurrentIndex),
		zap.Bool("answered", m.session.Answer(m.session.CurrentIndex) != ""),
	)
	m.moveForward(ctx)
}

// Retreat goes back one question and re-arms the full time limit. No-op at 0.
func (m *Machine) Retreat() error {
	if m.state != StateInProgress {
		return domain.ErrInvalidTransition
	}
	if m.session.CurrentIndex == 0 {
		return nil
	}
	m.audio.PlayCue(domain.CueTransition)
	m.timer.Stop()
	m.session.CurrentIndex--
	m.enterQuestion()
	return nil
}

// Restart cancels any countdown and returns to a fresh Idle state.
func (m *Machine) Restart() {
	m.timer.Stop()
	if m.state != StateIdle {
		m.log.Info("quiz restarted", zap.String("session", m.session.ID))
	}
	m.session = domain.Session{}
	m.results = nil
	m.state = StateIdle
	m.renderer.RenderIdle(m.stats.Current())
}

func (m *Machine) moveForward(ctx context.Context) {
	m.timer.Stop()
	if m.session.CurrentIndex >= len(m.questions)-1 {
		m.finish(ctx)
		return
	}
	m.session.CurrentIndex++
	m.enterQuestion()
}

func (m *Machine) enterQuestion() {
	m.renderer.RenderQuestion(m.view())
	m.timer.Start(m.session.Difficulty.TimeLimit())
}

func (m *Machine) finish(ctx context.Context) {
	m.timer.Stop()
	res := m.ComputeResults()
	m.session.Score = res.Score
	m.results = &res
	m.state = StateResults
	m.log.Info("quiz completed",
		zap.String("session", m.session.ID),
		zap.Int("score", res.Score),
		zap.Int("elapsed_seconds", res.ElapsedSeconds),
	)

	m.renderer.RenderResults(res)
	m.audio.PlayCue(domain.CueSuccess)
	if res.Celebrate {
		m.effects.Burst(m.modes.Mode(), m.origin())
	}
	m.stats.Record(ctx, res.Score)
}

// ComputeResults scores the recorded answers against the answer key.
func (m *Machine) ComputeResults() domain.Results {
	total := len(m.questions)
	correct := make([]bool, total)
	answers := make([]string, total)
	score := 0
	for i, q := range m.questions {
		answers[i] = m.session.Answer(i)
		if answers[i] == q.CorrectAnswer {
			correct[i] = true
			score++
		}
	}

	elapsed := 0
	if !m.session.StartedAt.IsZero() {
		elapsed = int(m.now().Sub(m.session.StartedAt) / time.Second)
	}
	if elapsed < 0 {
		elapsed = 0
	}
	percent := domain.Percent(score, total)
	return domain.Results{
		SessionID:      m.session.ID,
		PlayerName:     m.session.PlayerName,
		Difficulty:     m.session.Difficulty,
		Score:          score,
		Total:          total,
		ElapsedSeconds: elapsed,
		Correct:        correct,
		Answers:        answers,
		Percentage:     percent,
		Message:        domain.ScoreMessage(score),
		AvgSecondsPerQ: int(math.Round(float64(elapsed) / float64(total))),
		Achievements:   domain.Achievements(score, total, elapsed),
		Celebrate:      percent >= 80,
	}
}

func (m *Machine) reject(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		m.renderer.ShowValidationError(ve.Message)
		m.audio.PlayCue(domain.CueError)
		m.log.Debug("validation failed", zap.String("field", ve.Field))
	}
	return err
}

func (m *Machine) view() QuestionView {
	idx := m.session.CurrentIndex
	total := len(m.questions)
	return QuestionView{
		Question:        m.questions[idx],
		Index:           idx,
		Total:           total,
		Selected:        m.session.Answer(idx),
		IsLast:          idx == total-1,
		CanRetreat:      idx > 0,
		ProgressPercent: domain.Percent(idx+1, total),
	}
}

// State returns the current screen.
func (m *Machine) State() State {
	return m.state
}

// Session returns a copy of the active session.
func (m *Machine) Session() domain.Session {
	s := m.session
	if s.Answers != nil {
		s.Answers = append([]string(nil), s.Answers...)
	}
	return s
}

// CurrentIndex returns the index of the question on screen.
func (m *Machine) CurrentIndex() int {
	return m.session.CurrentIndex
}

// CurrentQuestion returns the question on screen.
func (m *Machine) CurrentQuestion() domain.Question {
	return m.questions[m.session.CurrentIndex]
}

// Results returns the outcome once the machine reached StateResults.
func (m *Machine) Results() (domain.Results, bool) {
	if m.results == nil {
		return domain.Results{}, false
	}
	return *m.results, true
}

// TimeRemaining returns the seconds left on the active question.
func (m *Machine) TimeRemaining() int {
	return m.timer.Remaining()
}

// TimerRunning reports whether a countdown is armed.
func (m *Machine) TimerRunning() bool {
	return m.timer.Running()
}

// QuestionCount returns the length of the bank in use.
func (m *Machine) QuestionCount() int {
	return len(m.questions)
}

// Stats exposes the stats store fed by completed sessions.
func (m *Machine) Stats() *StatsStore {
	return m.stats
}
