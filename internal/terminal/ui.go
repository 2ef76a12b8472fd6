// Package terminal binds the quiz core to a tcell screen: it is the render
// layer, the particle canvas, the audio output and the input surface.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"shieldhero-quiz/internal/app"
	"shieldhero-quiz/internal/domain"
	"shieldhero-quiz/internal/particles"
)

// Each cell stands for a CellWidth x CellHeight block of the particle canvas.
const (
	CellWidth  = 8
	CellHeight = 16
)

const flashDuration = 3 * time.Second

type screenKind int

const (
	screenIdle screenKind = iota
	screenQuestion
	screenResults
)

// UI keeps the last state pushed by the core and redraws it over the particle layer.
type UI struct {
	screen tcell.Screen
	log    *zap.Logger
	now    func() time.Time

	kind     screenKind
	mode     domain.Mode
	palette  domain.Palette
	stats    domain.StatsRecord
	question app.QuestionView
	timeLeft int
	lowTime  bool
	results  domain.Results

	name       string
	difficulty domain.Difficulty
	soundOn    bool
	track      domain.Mode

	flash      string
	flashUntil time.Time

	dots    []particles.Dot
	missing bool
}

// NewUI wraps an initialized screen. A nil screen turns every call into a no-op.
func NewUI(screen tcell.Screen, log *zap.Logger, now func() time.Time) *UI {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &UI{
		screen:     screen,
		log:        log,
		now:        now,
		mode:       domain.ModeWrath,
		palette:    domain.PaletteFor(domain.ModeWrath),
		difficulty: domain.DifficultyMedium,
		soundOn:    true,
	}
}

// Bounds returns the particle canvas size covered by the screen.
func (u *UI) Bounds() particles.Bounds {
	if u.screen == nil {
		return particles.Bounds{}
	}
	w, h := u.screen.Size()
	return particles.Bounds{W: float64(w * CellWidth), H: float64(h * CellHeight)}
}

// SetForm updates the start screen inputs.
func (u *UI) SetForm(name string, difficulty domain.Difficulty) {
	u.name = name
	u.difficulty = difficulty
	u.Draw()
}

// SetSound updates the mute indicator.
func (u *UI) SetSound(enabled bool) {
	u.soundOn = enabled
	u.Draw()
}

func (u *UI) RenderIdle(stats domain.StatsRecord) {
	u.kind = screenIdle
	u.stats = stats
	u.flash = ""
	u.Draw()
}

func (u *UI) RenderQuestion(view app.QuestionView) {
	u.kind = screenQuestion
	u.question = view
	u.flash = ""
	u.Draw()
}

func (u *UI) RenderAnswerSelected(index int, value string) {
	if u.question.Index == index {
		u.question.Selected = value
	}
	u.flash = ""
	u.Draw()
}

func (u *UI) RenderTimer(remaining int, low bool) {
	u.timeLeft = remaining
	u.lowTime = low
	u.Draw()
}

func (u *UI) RenderResults(res domain.Results) {
	u.kind = screenResults
	u.results = res
	u.flash = ""
	u.Draw()
}

func (u *UI) RenderThemeChanged(mode domain.Mode, palette domain.Palette) {
	u.mode = mode
	u.palette = palette
	u.Draw()
}

func (u *UI) ShowValidationError(message string) {
	u.flash = message
	u.flashUntil = u.now().Add(flashDuration)
	u.Draw()
}

// PlayCue rings the terminal bell for errors; other cues have no terminal sound.
func (u *UI) PlayCue(kind domain.Cue) {
	if kind == domain.CueError && u.screen != nil {
		_ = u.screen.Beep()
	}
	u.log.Debug("cue", zap.String("kind", string(kind)))
}

func (u *UI) PlayThemeMusic(mode domain.Mode) {
	u.track = mode
	u.log.Debug("theme music", zap.String("mode", string(mode)))
	u.Draw()
}

func (u *UI) StopThemeMusic() {
	u.track = ""
	u.Draw()
}

// Clear drops the particle layer of the previous frame.
func (u *UI) Clear() {
	u.dots = u.dots[:0]
}

// Dot queues one particle for the next Draw.
func (u *UI) Dot(d particles.Dot) {
	u.dots = append(u.dots, d)
}

// Sync repaints the whole terminal after a resize.
func (u *UI) Sync() {
	if u.screen != nil {
		u.screen.Sync()
	}
}

// Draw composes the particle layer and the current screen, then shows it.
func (u *UI) Draw() {
	if u.screen == nil {
		if !u.missing {
			u.missing = true
			u.log.Warn("no screen attached, rendering disabled", zap.Error(domain.ErrRenderTargetMissing))
		}
		return
	}
	u.screen.Clear()
	u.drawParticles()
	switch u.kind {
	case screenQuestion:
		u.drawQuestion()
	case screenResults:
		u.drawResults()
	default:
		u.drawIdle()
	}
	u.drawFlash()
	u.screen.Show()
}

func (u *UI) drawParticles() {
	w, h := u.screen.Size()
	for _, d := range u.dots {
		x, y := int(d.X)/CellWidth, int(d.Y)/CellHeight
		if d.X < 0 || d.Y < 0 || x >= w || y >= h {
			continue
		}
		st := tcell.StyleDefault.Foreground(tcell.GetColor(d.Color))
		if d.Alpha < 0.4 {
			st = st.Dim(true)
		}
		u.screen.SetContent(x, y, glyph(d), nil, st)
	}
}

var (
	fireGlyphs = []rune{'.', '\'', '^', '*'}
	iceGlyphs  = []rune{'.', ':', '+', '*'}
)

func glyph(d particles.Dot) rune {
	set := fireGlyphs
	if d.Variant == particles.Ice {
		set = iceGlyphs
	}
	i := int(d.Alpha * float64(len(set)))
	if i >= len(set) {
		i = len(set) - 1
	}
	if i < 0 {
		i = 0
	}
	return set[i]
}

func (u *UI) primary() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.GetColor(u.palette.Primary)).Bold(true)
}

func (u *UI) accent() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.GetColor(u.palette.Accent))
}

func (u *UI) header(y int) int {
	w, _ := u.screen.Size()
	drawCentered(u.screen, w/2, y, "THE RISING OF THE SHIELD HERO QUIZ", u.primary())
	sound := "off"
	if u.soundOn {
		sound = "on"
	}
	status := fmt.Sprintf("%s mode [F2]  sound %s [F3]", modeLabel(u.mode), sound)
	if u.track != "" {
		status += "  ♪ " + modeLabel(u.track)
	}
	drawCentered(u.screen, w/2, y+1, status, u.accent())
	return y + 3
}

func (u *UI) drawIdle() {
	y := u.header(1)
	plain := tcell.StyleDefault
	drawText(u.screen, 2, y, "Hero name: "+u.name+"_", plain)
	label := string(u.difficulty)
	if s, ok := u.difficulty.Setting(); ok {
		label = fmt.Sprintf("%s (%ds per question)", s.Label, s.TimeLimitSeconds)
	}
	drawText(u.screen, 2, y+1, "Difficulty: < "+label+" >  [Tab]", plain)
	drawText(u.screen, 2, y+3, fmt.Sprintf("Best score: %d/%d   Attempts: %d",
		u.stats.BestScore, domain.QuestionCount, u.stats.TotalAttempts), u.accent())
	if !u.stats.LastPlayed.IsZero() {
		drawText(u.screen, 2, y+4, "Last played: "+u.stats.LastPlayed.Local().Format("2006-01-02 15:04"), plain)
	}
	drawText(u.screen, 2, y+6, "Enter to begin your journey, Esc to quit", plain.Dim(true))
}

func (u *UI) drawQuestion() {
	y := u.header(1)
	w, _ := u.screen.Size()
	q := u.question
	drawText(u.screen, 2, y, fmt.Sprintf("Question %d/%d", q.Index+1, q.Total), u.primary())
	drawText(u.screen, 20, y, progressBar(q.ProgressPercent, 20), u.accent())

	timer := fmt.Sprintf("%ds", u.timeLeft)
	timerStyle := tcell.StyleDefault
	if u.lowTime {
		timerStyle = timerStyle.Foreground(tcell.ColorRed).Bold(true)
	}
	drawText(u.screen, w-2-runewidth.StringWidth(timer), y, timer, timerStyle)

	drawText(u.screen, 2, y+2, q.Question.Prompt, tcell.StyleDefault.Bold(true))
	for i, opt := range q.Question.Options {
		marker := "  "
		st := tcell.StyleDefault
		if opt == q.Selected {
			marker = "> "
			st = u.primary()
		}
		drawText(u.screen, 2, y+4+i, fmt.Sprintf("%s%d) %s", marker, i+1, opt), st)
	}

	next := "Next"
	if q.IsLast {
		next = "Finish"
	}
	nav := "Enter " + next + "  Up/Down choose  1-4 pick"
	if q.CanRetreat {
		nav = "Left Previous  " + nav
	}
	drawText(u.screen, 2, y+5+len(q.Question.Options), nav, tcell.StyleDefault.Dim(true))
}

func (u *UI) drawResults() {
	y := u.header(1)
	w, _ := u.screen.Size()
	r := u.results
	drawCentered(u.screen, w/2, y, r.Message, u.primary())
	drawCentered(u.screen, w/2, y+1, fmt.Sprintf("%s scored %d/%d (%d%%)", r.PlayerName, r.Score, r.Total, r.Percentage), tcell.StyleDefault.Bold(true))
	drawCentered(u.screen, w/2, y+2, fmt.Sprintf("Time %s   Avg %ds per question", r.TimeTaken(), r.AvgSecondsPerQ), u.accent())

	badges := make([]string, 0, len(r.Achievements))
	for _, a := range r.Achievements {
		badges = append(badges, a.Icon+" "+a.Name)
	}
	if len(badges) > 0 {
		drawCentered(u.screen, w/2, y+3, strings.Join(badges, "  "), u.accent())
	}

	for i, correct := range r.Correct {
		mark, st := "x", tcell.StyleDefault.Foreground(tcell.ColorRed)
		if correct {
			mark, st = "v", tcell.StyleDefault.Foreground(tcell.ColorGreen)
		}
		answer := "(no answer)"
		if i < len(r.Answers) && r.Answers[i] != "" {
			answer = r.Answers[i]
		}
		drawText(u.screen, 2, y+5+i, fmt.Sprintf("%s %2d. %s", mark, i+1, answer), st)
	}
	drawText(u.screen, 2, y+6+len(r.Correct), "R or Enter to play again, Esc to quit", tcell.StyleDefault.Dim(true))
}

func (u *UI) drawFlash() {
	if u.flash == "" || u.now().After(u.flashUntil) {
		return
	}
	w, h := u.screen.Size()
	st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed).Bold(true)
	drawCentered(u.screen, w/2, h-2, " "+u.flash+" ", st)
}

func modeLabel(m domain.Mode) string {
	if m == domain.ModeShield {
		return "Shield"
	}
	return "Wrath"
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + fmt.Sprintf("] %d%%", percent)
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, ch := range text {
		rw := runewidth.RuneWidth(ch)
		if rw == 0 {
			continue
		}
		s.SetContent(x, y, ch, nil, st)
		x += rw
	}
}

func drawCentered(s tcell.Screen, cx, cy int, text string, st tcell.Style) {
	x := cx - runewidth.StringWidth(text)/2
	if x < 0 {
		x = 0
	}
	drawText(s, x, cy, text, st)
}
