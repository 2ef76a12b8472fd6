package terminal

import (
	"context"
	"errors"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"shieldhero-quiz/internal/app"
	"shieldhero-quiz/internal/domain"
	"shieldhero-quiz/internal/particles"
)

const maxNameLength = 24

// Controller maps terminal events onto the quiz core and drives animation frames.
// Every method runs on the loop goroutine.
type Controller struct {
	ui      *UI
	machine *app.Machine
	theme   *app.ThemeController
	sound   *app.Sound
	effects *particles.System
	log     *zap.Logger

	initDelay     time.Duration
	frameInterval time.Duration

	name       []rune
	difficulty domain.Difficulty
	cancels    []func()
}

// Deps are the collaborators a Controller drives.
type Deps struct {
	UI      *UI
	Machine *app.Machine
	Theme   *app.ThemeController
	Sound   *app.Sound
	Effects *particles.System
	Log     *zap.Logger

	Difficulty    domain.Difficulty
	InitDelay     time.Duration
	FrameInterval time.Duration
}

func NewController(d Deps) *Controller {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if !d.Difficulty.Valid() {
		d.Difficulty = domain.DifficultyMedium
	}
	if d.FrameInterval <= 0 {
		d.FrameInterval = time.Second / 60
	}
	return &Controller{
		ui:            d.UI,
		machine:       d.Machine,
		theme:         d.Theme,
		sound:         d.Sound,
		effects:       d.Effects,
		log:           d.Log,
		initDelay:     d.InitDelay,
		frameInterval: d.FrameInterval,
		difficulty:    d.Difficulty,
	}
}

// Boot loads the persisted preferences, shows the start screen and arms the
// delayed particle init and the frame ticker on sched.
func (c *Controller) Boot(ctx context.Context, sched app.Scheduler) {
	c.theme.Init(ctx)
	c.ui.SetSound(c.sound.Load(ctx))
	c.machine.Stats().Load(ctx)
	c.ui.SetForm(string(c.name), c.difficulty)
	c.machine.Restart()

	c.cancels = append(c.cancels,
		sched.After(c.initDelay, func() { c.effects.Init(c.ui.Bounds()) }),
		sched.Every(c.frameInterval, func() { c.Frame(sched.Now()) }),
	)
}

// Shutdown cancels the frame ticker, the countdown and the music.
func (c *Controller) Shutdown() {
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
	c.machine.Restart()
	c.sound.StopThemeMusic()
}

// Frame advances and redraws the particle layer. It no-ops before the pools exist.
func (c *Controller) Frame(now time.Time) {
	if !c.effects.Ready() {
		return
	}
	c.effects.Frame(now, c.ui)
	c.ui.Draw()
}

// HandleEvent applies one terminal event. It reports true when the player quits.
func (c *Controller) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		c.ui.Sync()
		c.effects.Resize(c.ui.Bounds())
		c.ui.Draw()
	case *tcell.EventKey:
		return c.handleKey(ctx, e)
	}
	return false
}

func (c *Controller) handleKey(ctx context.Context, e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyF2:
		c.theme.Toggle(ctx)
		return false
	case tcell.KeyF3:
		c.ui.SetSound(c.sound.Toggle(ctx, c.theme.Mode()))
		return false
	}

	var err error
	switch c.machine.State() {
	case app.StateIdle:
		err = c.idleKey(e)
	case app.StateInProgress:
		err = c.quizKey(ctx, e)
	case app.StateResults:
		if e.Key() == tcell.KeyEnter || (e.Key() == tcell.KeyRune && unicode.ToLower(e.Rune()) == 'r') {
			c.name = c.name[:0]
			c.machine.Restart()
			c.ui.SetForm("", c.difficulty)
		}
	}
	if err != nil && !domain.IsValidation(err) {
		c.log.Debug("key rejected", zap.Error(err))
	}
	return false
}

func (c *Controller) idleKey(e *tcell.EventKey) error {
	switch e.Key() {
	case tcell.KeyEnter:
		return c.machine.Start(string(c.name), c.difficulty)
	case tcell.KeyTab, tcell.KeyDown:
		c.cycleDifficulty(1)
	case tcell.KeyBacktab, tcell.KeyUp:
		c.cycleDifficulty(-1)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(c.name) > 0 {
			c.name = c.name[:len(c.name)-1]
		}
	case tcell.KeyRune:
		if unicode.IsPrint(e.Rune()) && len(c.name) < maxNameLength {
			c.name = append(c.name, e.Rune())
		}
	default:
		return nil
	}
	c.ui.SetForm(string(c.name), c.difficulty)
	return nil
}

func (c *Controller) cycleDifficulty(delta int) {
	all := domain.Difficulties()
	cur := 0
	for i, d := range all {
		if d == c.difficulty {
			cur = i
		}
	}
	c.difficulty = all[(cur+delta+len(all))%len(all)]
}

var quizKeys = map[tcell.Key]app.Key{
	tcell.KeyUp:    app.KeyUp,
	tcell.KeyDown:  app.KeyDown,
	tcell.KeyLeft:  app.KeyLeft,
	tcell.KeyRight: app.KeyRight,
	tcell.KeyEnter: app.KeyEnter,
}

func (c *Controller) quizKey(ctx context.Context, e *tcell.EventKey) error {
	if k, ok := quizKeys[e.Key()]; ok {
		return c.machine.HandleKey(ctx, k)
	}
	if e.Key() == tcell.KeyRune && e.Rune() >= '1' && e.Rune() <= '9' {
		err := c.machine.SelectOption(int(e.Rune() - '1'))
		if errors.Is(err, domain.ErrOptionNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// Name returns the hero name typed so far.
func (c *Controller) Name() string {
	return string(c.name)
}

// Difficulty returns the difficulty selected on the start screen.
func (c *Controller) Difficulty() domain.Difficulty {
	return c.difficulty
}
