package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shieldhero-quiz/internal/app"
	"shieldhero-quiz/internal/domain"
)

func TestStartArmsDifficultyLimit(t *testing.T) {
	for _, d := range domain.Difficulties() {
		t.Run(string(d), func(t *testing.T) {
			h := newHarness()
			require.NoError(t, h.machine.Start("Naofumi", d))

			assert.Equal(t, app.StateInProgress, h.machine.State())
			assert.Equal(t, 0, h.machine.CurrentIndex())
			assert.Equal(t, d.TimeLimit(), h.machine.TimeRemaining())
			assert.True(t, h.machine.TimerRunning())
			assert.Equal(t, "session-1", h.machine.Session().ID)
		})
	}
}

func TestStartValidation(t *testing.T) {
	cases := []struct {
		name       string
		player     string
		difficulty domain.Difficulty
		field      string
		message    string
	}{
		{name: "empty name", player: "", difficulty: domain.DifficultyEasy, field: "name", message: domain.MsgNameRequired},
		{name: "blank name", player: "   ", difficulty: domain.DifficultyHard, field: "name", message: domain.MsgNameRequired},
		{name: "no difficulty", player: "Raphtalia", difficulty: "", field: "difficulty", message: domain.MsgDifficultyRequired},
		{name: "unknown difficulty", player: "Raphtalia", difficulty: "nightmare", field: "difficulty", message: domain.MsgDifficultyRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			err := h.machine.Start(tc.player, tc.difficulty)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, []string{tc.message}, h.renderer.errors)
			assert.Equal(t, 1, h.audio.count(domain.CueError))
			assert.Equal(t, app.StateIdle, h.machine.State())
			assert.False(t, h.machine.TimerRunning())
		})
	}
}

func TestStartTrimsName(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.machine.Start("  Filo  ", domain.DifficultyEasy))
	assert.Equal(t, "Filo", h.machine.Session().PlayerName)
}

func TestStartOutsideIdleIsRejected(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyMedium))
	assert.ErrorIs(t, h.machine.Start("Naofumi", domain.DifficultyMedium), domain.ErrInvalidTransition)
}

func TestSelectAnswerDoesNotAdvance(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyMedium))

	q := h.machine.CurrentQuestion()
	require.NoError(t, h.machine.SelectAnswer(0, q.Options[1]))
	require.NoError(t, h.machine.SelectAnswer(0, q.Options[2]))

	assert.Equal(t, 0, h.machine.CurrentIndex())
	assert.Equal(t, q.Options[2], h.machine.Session().Answer(0))
	assert.Equal(t, 2, h.audio.count(domain.CueClick))
	assert.Len(t, h.renderer.selected, 2)

	assert.ErrorIs(t, h.machine.SelectAnswer(99, q.Options[0]), domain.ErrQuestionNotFound)
	assert.ErrorIs(t, h.machine.SelectAnswer(0, "Sword of Greed"), domain.ErrOptionNotFound)
	require.NoError(t, h.machine.Advance(ctx))
	assert.Equal(t, 1, h.machine.CurrentIndex())
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyMedium))
	h.sched.Advance(3 * time.Second)

	err := h.machine.Advance(context.Background())

	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, h.machine.CurrentIndex())
	assert.Equal(t, []string{domain.MsgAnswerRequired}, h.renderer.errors)
	assert.Equal(t, 27, h.machine.TimeRemaining())
	assert.True(t, h.machine.TimerRunning())
}

func TestAdvanceRestartsTimer(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyHard))
	h.sched.Advance(7 * time.Second)
	require.Equal(t, 13, h.machine.TimeRemaining())

	q := h.machine.CurrentQuestion()
	require.NoError(t, h.machine.SelectAnswer(q.Index, q.CorrectAnswer))
	require.NoError(t, h.machine.Advance(context.Background()))

	assert.Equal(t, 1, h.machine.CurrentIndex())
	assert.Equal(t, 20, h.machine.TimeRemaining())
	assert.Equal(t, 1, h.audio.count(domain.CueTransition))
}

func TestTimeoutOnUnansweredQuestionAdvances(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyMedium))

	h.sched.Advance(30 * time.Second)

	assert.Equal(t, 1, h.machine.CurrentIndex())
	assert.Equal(t, 30, h.machine.TimeRemaining())
	assert.Equal(t, "", h.machine.Session().Answer(0))
	assert.Empty(t, h.renderer.errors)
	assert.Equal(t, 1, h.sched.Pending())
}

func TestTimeoutReportsLowTime(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyHard))
	h.sched.Advance(20 * time.Second)

	assert.Equal(t, []int{5, 4, 3, 2, 1}, h.renderer.lowTicks)
}

func TestTimeoutOnLastQuestionFinishes(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyHard))

	h.sched.Advance(time.Duration(domain.QuestionCount*20) * time.Second)

	require.Equal(t, app.StateResults, h.machine.State())
	res, ok := h.machine.Results()
	require.True(t, ok)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, domain.QuestionCount*20, res.ElapsedSeconds)
	assert.False(t, h.machine.TimerRunning())
	assert.Equal(t, 0, h.sched.Pending())
	assert.Equal(t, 1, h.stats.Current().TotalAttempts)
}

func TestTimeoutAdvanceIsSafeOutsideQuiz(t *testing.T) {
	h := newHarness()
	h.machine.TimeoutAdvance(context.Background())
	assert.Equal(t, app.StateIdle, h.machine.State())
}

func TestRetreat(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyEasy))

	require.NoError(t, h.machine.Retreat())
	assert.Equal(t, 0, h.machine.CurrentIndex())
	assert.Zero(t, h.audio.count(domain.CueTransition))

	q := h.machine.CurrentQuestion()
	require.NoError(t, h.machine.SelectAnswer(0, q.CorrectAnswer))
	require.NoError(t, h.machine.Advance(ctx))
	h.sched.Advance(10 * time.Second)
	require.Equal(t, 35, h.machine.TimeRemaining())

	require.NoError(t, h.machine.Retreat())
	assert.Equal(t, 0, h.machine.CurrentIndex())
	assert.Equal(t, 45, h.machine.TimeRemaining())
	last := h.renderer.questions[len(h.renderer.questions)-1]
	assert.Equal(t, q.CorrectAnswer, last.Selected)
	assert.False(t, last.CanRetreat)
}

func TestStaleTimerIsCancelledOnTransition(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyHard))

	for i := 0; i < 3; i++ {
		h.sched.Advance(19 * time.Second)
		q := h.machine.CurrentQuestion()
		require.NoError(t, h.machine.SelectAnswer(q.Index, q.CorrectAnswer))
		require.NoError(t, h.machine.Advance(ctx))
	}

	assert.Equal(t, 3, h.machine.CurrentIndex())
	assert.Equal(t, 1, h.sched.Pending())
	h.sched.Advance(19 * time.Second)
	assert.Equal(t, 3, h.machine.CurrentIndex())
	assert.Equal(t, 1, h.machine.TimeRemaining())
}

func TestPerfectRun(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyMedium))

	for h.machine.State() == app.StateInProgress {
		h.sched.Advance(10 * time.Second)
		q := h.machine.CurrentQuestion()
		require.NoError(t, h.machine.SelectAnswer(q.Index, q.CorrectAnswer))
		require.NoError(t, h.machine.Advance(ctx))
	}

	res, ok := h.machine.Results()
	require.True(t, ok)
	assert.Equal(t, 15, res.Score)
	assert.Equal(t, 15, res.Total)
	assert.Equal(t, 100, res.Percentage)
	assert.Equal(t, "🏆 Perfect! True Shield Hero!", res.Message)
	assert.Equal(t, 150, res.ElapsedSeconds)
	assert.Equal(t, "2:30", res.TimeTaken())
	assert.Equal(t, 10, res.AvgSecondsPerQ)
	assert.True(t, res.Celebrate)
	assert.Equal(t, []domain.Achievement{
		{Icon: "🏆", Name: "Perfect Score!"},
		{Icon: "⭐", Name: "Excellent!"},
		{Icon: "⚡", Name: "Speed Demon"},
		{Icon: "💪", Name: "Persistent"},
	}, res.Achievements)

	require.Len(t, h.renderer.results, 1)
	assert.Equal(t, []domain.Mode{domain.ModeWrath}, h.effects.bursts)
	assert.Equal(t, domain.Point{X: 400, Y: 300}, h.effects.origin[0])

	stats := h.stats.Current()
	assert.Equal(t, 15, stats.BestScore)
	assert.Equal(t, 1, stats.TotalAttempts)
	assert.True(t, stats.LastPlayed.Equal(epoch.Add(150*time.Second)))
	assert.False(t, h.machine.TimerRunning())
}

func TestScoreCountsCorrectAnswers(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyEasy))

	n := 0
	require.NoError(t, h.answerAll(ctx, func(q domain.Question) string {
		n++
		if n%2 == 0 {
			return wrong(q)
		}
		return q.CorrectAnswer
	}))

	res, ok := h.machine.Results()
	require.True(t, ok)
	assert.Equal(t, 8, res.Score)
	for i, c := range res.Correct {
		assert.Equal(t, i%2 == 0, c, "question %d", i)
	}
	assert.Equal(t, "💪 Good effort!", res.Message)
	assert.Equal(t, 53, res.Percentage)
	assert.False(t, res.Celebrate)
	assert.Empty(t, h.effects.bursts)
}

func TestStatsRecordedOncePerSession(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyEasy))
	require.NoError(t, h.answerAll(ctx, wrong))
	assert.Equal(t, 1, h.stats.Current().TotalAttempts)

	h.machine.Restart()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyEasy))
	require.NoError(t, h.answerAll(ctx, correct))

	stats := h.stats.Current()
	assert.Equal(t, 2, stats.TotalAttempts)
	assert.Equal(t, 15, stats.BestScore)

	reloaded := app.NewStatsStore(h.store, nil).Load(ctx)
	assert.Equal(t, stats.BestScore, reloaded.BestScore)
	assert.Equal(t, stats.TotalAttempts, reloaded.TotalAttempts)
}

func TestRestartReturnsToIdle(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyMedium))
	q := h.machine.CurrentQuestion()
	require.NoError(t, h.machine.SelectAnswer(0, q.CorrectAnswer))
	require.NoError(t, h.machine.Advance(ctx))

	h.machine.Restart()

	assert.Equal(t, app.StateIdle, h.machine.State())
	assert.False(t, h.machine.TimerRunning())
	assert.Equal(t, 0, h.sched.Pending())
	_, ok := h.machine.Results()
	assert.False(t, ok)
	assert.Empty(t, h.machine.Session().Answers)
	require.Len(t, h.renderer.idle, 1)

	require.NoError(t, h.machine.Start("Melty", domain.DifficultyHard))
	assert.Equal(t, 0, h.machine.CurrentIndex())
	assert.Equal(t, "", h.machine.Session().Answer(0))
	assert.Equal(t, 20, h.machine.TimeRemaining())
}

func TestRestartFromResults(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyMedium))
	require.NoError(t, h.answerAll(ctx, correct))
	require.Equal(t, app.StateResults, h.machine.State())

	h.machine.Restart()

	assert.Equal(t, app.StateIdle, h.machine.State())
	require.Len(t, h.renderer.idle, 1)
	assert.Equal(t, 15, h.renderer.idle[0].BestScore)
}

func TestStartPlaysMusicForCurrentTheme(t *testing.T) {
	h := newHarness()
	theme := app.NewThemeController(h.store)
	require.NoError(t, h.store.Set(context.Background(), app.KeyTheme, "shield"))
	theme.Init(context.Background())

	m := app.NewMachine(h.sched, h.stats, app.WithAudio(h.audio), app.WithModeSource(theme))
	require.NoError(t, m.Start("Naofumi", domain.DifficultyEasy))

	assert.Equal(t, []domain.Mode{domain.ModeShield}, h.audio.music)
	assert.Equal(t, 1, h.audio.count(domain.CueSuccess))
}

func TestCustomQuestionBank(t *testing.T) {
	bank := []domain.Question{
		{Index: 0, Prompt: "Who carries the shield?", Options: []string{"Naofumi", "Motoyasu"}, CorrectAnswer: "Naofumi"},
		{Index: 1, Prompt: "Which hero wields the spear?", Options: []string{"Ren", "Motoyasu"}, CorrectAnswer: "Motoyasu"},
	}
	h := newHarness(app.WithQuestions(bank))
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyEasy))
	require.NoError(t, h.answerAll(context.Background(), correct))

	res, ok := h.machine.Results()
	require.True(t, ok)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Score)
	assert.Contains(t, res.Achievements, domain.Achievement{Icon: "🏆", Name: "Perfect Score!"})
}

func TestQuestionViewProgress(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.machine.Start("Naofumi", domain.DifficultyEasy))

	require.Len(t, h.renderer.questions, 1)
	v := h.renderer.questions[0]
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, 15, v.Total)
	assert.Equal(t, 7, v.ProgressPercent)
	assert.False(t, v.IsLast)
	assert.False(t, v.CanRetreat)
}
