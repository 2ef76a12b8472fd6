package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficultyTimeLimits(t *testing.T) {
	assert.Equal(t, 45, DifficultyEasy.TimeLimit())
	assert.Equal(t, 30, DifficultyMedium.TimeLimit())
	assert.Equal(t, 20, DifficultyHard.TimeLimit())
	assert.Equal(t, 0, Difficulty("nightmare").TimeLimit())
	assert.False(t, Difficulty("").Valid())

	s, ok := DifficultyMedium.Setting()
	require.True(t, ok)
	assert.Equal(t, "Medium", s.Label)
}

func TestQuestionBank(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, QuestionCount)
	key := AnswerKey()
	require.Len(t, key, QuestionCount)

	for i, q := range qs {
		assert.Equal(t, i, q.Index)
		assert.Len(t, q.Options, 4, "question %d", i)
		assert.True(t, q.HasOption(q.CorrectAnswer), "question %d", i)
		assert.Equal(t, key[i], q.CorrectAnswer)
	}

	qs[0].Options[0] = "changed"
	assert.NotEqual(t, "changed", Questions()[0].Options[0])
}

func TestScoreMessage(t *testing.T) {
	cases := map[int]string{
		15: "🏆 Perfect! True Shield Hero!",
		14: "⭐ Excellent work, hero!",
		12: "⭐ Excellent work, hero!",
		11: "💪 Good effort!",
		8:  "💪 Good effort!",
		7:  "📖 Keep training!",
		4:  "📖 Keep training!",
		3:  "🔥 Try again, hero!",
		0:  "🔥 Try again, hero!",
	}
	for score, want := range cases {
		assert.Equal(t, want, ScoreMessage(score), "score %d", score)
	}
}

func TestAchievements(t *testing.T) {
	assert.Empty(t, Achievements(3, 15, 600))
	assert.Equal(t, []Achievement{{Icon: "⚡", Name: "Speed Demon"}}, Achievements(0, 15, 299))
	assert.Equal(t, []Achievement{
		{Icon: "⭐", Name: "Excellent!"},
		{Icon: "💪", Name: "Persistent"},
	}, Achievements(12, 15, 300))
	assert.Len(t, Achievements(15, 15, 10), 4)
}

func TestPercentAndDuration(t *testing.T) {
	assert.Equal(t, 80, Percent(12, 15))
	assert.Equal(t, 7, Percent(1, 15))
	assert.Equal(t, 0, Percent(3, 0))

	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "2:05", FormatDuration(125))
	assert.Equal(t, "15:00", FormatDuration(900))
	assert.Equal(t, "0:00", FormatDuration(-4))
}

func TestModes(t *testing.T) {
	assert.Equal(t, ModeShield, ParseMode("shield"))
	assert.Equal(t, ModeWrath, ParseMode("wrath"))
	assert.Equal(t, ModeWrath, ParseMode(""))
	assert.Equal(t, ModeWrath, ParseMode("SHIELD"))
	assert.Equal(t, ModeShield, ModeWrath.Toggled())
	assert.Equal(t, ModeWrath, ModeShield.Toggled())
	assert.NotEqual(t, PaletteFor(ModeWrath), PaletteFor(ModeShield))
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("start: %w", NewValidationError("name", MsgNameRequired))
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(errors.New("boom")))
	assert.EqualError(t, NewValidationError("answer", MsgAnswerRequired),
		"validation error on field 'answer': Please select an answer!")
}
