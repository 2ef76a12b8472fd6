package domain

import (
	"fmt"
	"math"
	"time"
)

// Difficulty selects the per-question time limit.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultySetting is the immutable configuration of one difficulty preset.
type DifficultySetting struct {
	TimeLimitSeconds int
	Label            string
}

var difficultySettings = map[Difficulty]DifficultySetting{
	DifficultyEasy:   {TimeLimitSeconds: 45, Label: "Easy"},
	DifficultyMedium: {TimeLimitSeconds: 30, Label: "Medium"},
	DifficultyHard:   {TimeLimitSeconds: 20, Label: "Hard"},
}

// Difficulties lists the presets in display order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Setting returns the preset for d; ok is false for unknown values.
func (d Difficulty) Setting() (DifficultySetting, bool) {
	s, ok := difficultySettings[d]
	return s, ok
}

// TimeLimit returns the per-question limit in seconds, or 0 for unknown values.
func (d Difficulty) TimeLimit() int {
	return difficultySettings[d].TimeLimitSeconds
}

// Valid reports whether d is one of the known presets.
func (d Difficulty) Valid() bool {
	_, ok := difficultySettings[d]
	return ok
}

// Question is an immutable multiple-choice question. Options hold the answer values.
type Question struct {
	Index         int      `json:"index"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// HasOption reports whether value is one of the question's options.
func (q Question) HasOption(value string) bool {
	return q.OptionIndex(value) >= 0
}

// OptionIndex returns the position of value in Options, or -1.
func (q Question) OptionIndex(value string) int {
	for i, opt := range q.Options {
		if opt == value {
			return i
		}
	}
	return -1
}

// Session is one attempt at the quiz. An empty entry in Answers means unset.
type Session struct {
	ID           string
	PlayerName   string
	Difficulty   Difficulty
	StartedAt    time.Time
	CurrentIndex int
	Answers      []string
	Score        int
}

// Answer returns the recorded answer for index, or "" when unset or out of range.
func (s Session) Answer(index int) string {
	if index < 0 || index >= len(s.Answers) {
		return ""
	}
	return s.Answers[index]
}

// Achievement is a badge earned on the results screen.
type Achievement struct {
	Icon string `json:"icon"`
	Name string `json:"name"`
}

// Results is the outcome of a completed session.
type Results struct {
	SessionID      string        `json:"sessionId"`
	PlayerName     string        `json:"playerName"`
	Difficulty     Difficulty    `json:"difficulty"`
	Score          int           `json:"score"`
	Total          int           `json:"total"`
	ElapsedSeconds int           `json:"elapsedSeconds"`
	Correct        []bool        `json:"correct"`
	Answers        []string      `json:"answers"`
	Percentage     int           `json:"percentage"`
	Message        string        `json:"message"`
	AvgSecondsPerQ int           `json:"avgSecondsPerQuestion"`
	Achievements   []Achievement `json:"achievements"`
	Celebrate      bool          `json:"celebrate"`
}

// TimeTaken formats ElapsedSeconds as M:SS.
func (r Results) TimeTaken() string {
	return FormatDuration(r.ElapsedSeconds)
}

var scoreMessages = []struct {
	min  int
	text string
}{
	{min: 15, text: "🏆 Perfect! True Shield Hero!"},
	{min: 12, text: "⭐ Excellent work, hero!"},
	{min: 8, text: "💪 Good effort!"},
	{min: 4, text: "📖 Keep training!"},
	{min: 0, text: "🔥 Try again, hero!"},
}

// ScoreMessage returns the headline shown for a final score.
func ScoreMessage(score int) string {
	for _, m := range scoreMessages {
		if score >= m.min {
			return m.text
		}
	}
	return scoreMessages[len(scoreMessages)-1].text
}

// SpeedDemonSeconds is the elapsed time under which the speed badge is granted.
const SpeedDemonSeconds = 300

// Achievements lists the badges earned for a score out of total and the elapsed time.
func Achievements(score, total, elapsedSeconds int) []Achievement {
	var out []Achievement
	if score == total {
		out = append(out, Achievement{Icon: "🏆", Name: "Perfect Score!"})
	}
	if score >= 12 {
		out = append(out, Achievement{Icon: "⭐", Name: "Excellent!"})
	}
	if elapsedSeconds < SpeedDemonSeconds {
		out = append(out, Achievement{Icon: "⚡", Name: "Speed Demon"})
	}
	if score >= 8 {
		out = append(out, Achievement{Icon: "💪", Name: "Persistent"})
	}
	return out
}

// Percent returns round(part/total*100); 0 when total is not positive.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// FormatDuration renders whole seconds as M:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// StatsRecord is the persisted cross-session summary.
type StatsRecord struct {
	BestScore     int       `json:"bestScore"`
	TotalAttempts int       `json:"totalAttempts"`
	LastPlayed    time.Time `json:"lastPlayed,omitempty"`
}

// Mode is the active presentation theme.
type Mode string

const (
	// ModeWrath is the primary (fire) theme.
	ModeWrath Mode = "wrath"
	// ModeShield is the secondary (ice) theme.
	ModeShield Mode = "shield"
)

// ParseMode maps a stored token to a Mode, defaulting to ModeWrath.
func ParseMode(raw string) Mode {
	if Mode(raw) == ModeShield {
		return ModeShield
	}
	return ModeWrath
}

// Toggled returns the other mode.
func (m Mode) Toggled() Mode {
	if m == ModeShield {
		return ModeWrath
	}
	return ModeShield
}

// Palette holds the named color tokens resolved for a mode.
type Palette struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

// PaletteFor resolves the color tokens of mode.
func PaletteFor(mode Mode) Palette {
	if mode == ModeShield {
		return Palette{Primary: "#00b8b8", Accent: "#00ffaa"}
	}
	return Palette{Primary: "#ff4444", Accent: "#ff8800"}
}

// Cue is a discrete sound effect.
type Cue string

const (
	CueClick      Cue = "click"
	CueSuccess    Cue = "success"
	CueError      Cue = "error"
	CueTransition Cue = "transition"
)

// Point is a position on the particle canvas.
type Point struct {
	X float64
	Y float64
}
