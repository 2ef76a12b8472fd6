package app

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"shieldhero-quiz/internal/domain"
)

// ThemeController owns the persisted theme mode and fans every change out to
// the particle layer, the render layer and the audio collaborator.
type ThemeController struct {
	store    Store
	renderer Renderer
	audio    Audio
	effects  Effects
	origin   func() domain.Point
	log      *zap.Logger

	mode atomic.Value // domain.Mode
}

// ThemeOption customizes a ThemeController.
type ThemeOption func(*ThemeController)

func WithThemeRenderer(r Renderer) ThemeOption {
	return func(c *ThemeController) {
		if r != nil {
			c.renderer = r
		}
	}
}

func WithThemeAudio(a Audio) ThemeOption {
	return func(c *ThemeController) {
		if a != nil {
			c.audio = a
		}
	}
}

func WithThemeEffects(e Effects) ThemeOption {
	return func(c *ThemeController) {
		if e != nil {
			c.effects = e
		}
	}
}

// WithBurstOrigin sets where the toggle burst is emitted.
func WithBurstOrigin(origin func() domain.Point) ThemeOption {
	return func(c *ThemeController) {
		if origin != nil {
			c.origin = origin
		}
	}
}

func WithThemeLogger(log *zap.Logger) ThemeOption {
	return func(c *ThemeController) {
		if log != nil {
			c.log = log
		}
	}
}

// NewThemeController creates a controller in the primary mode.
func NewThemeController(store Store, opts ...ThemeOption) *ThemeController {
	c := &ThemeController{
		store:    store,
		renderer: nopRenderer{},
		audio:    nopAudio{},
		effects:  nopEffects{},
		origin:   func() domain.Point { return domain.Point{} },
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mode.Store(domain.ModeWrath)
	return c
}

// Init reads the persisted preference once and applies it without a burst or music change.
func (c *ThemeController) Init(ctx context.Context) domain.Mode {
	mode := domain.ModeWrath
	if c.store != nil {
		raw, _, err := c.store.Get(ctx, KeyTheme)
		if err != nil {
			c.log.Warn("theme preference unavailable, using default", zap.Error(err))
		} else {
			mode = domain.ParseMode(raw)
		}
	}
	c.commit(mode)
	c.renderer.RenderThemeChanged(mode, domain.PaletteFor(mode))
	return mode
}

// Toggle flips the mode, persists it and emits the theme-changed fan-out once.
func (c *ThemeController) Toggle(ctx context.Context) domain.Mode {
	mode := c.Mode().Toggled()
	c.commit(mode)
	if c.store != nil {
		if err := c.store.Set(ctx, KeyTheme, string(mode)); err != nil {
			c.log.Warn("persist theme failed, kept in memory", zap.Error(err))
		}
	}
	c.renderer.RenderThemeChanged(mode, domain.PaletteFor(mode))
	c.audio.PlayThemeMusic(mode)
	c.effects.Burst(mode, c.origin())
	c.log.Debug("theme toggled", zap.String("mode", string(mode)))
	return mode
}

// commit publishes mode and selects the matching particle variant in one step.
func (c *ThemeController) commit(mode domain.Mode) {
	c.mode.Store(mode)
	c.effects.SetMode(mode)
}

// Mode returns the latest committed mode.
func (c *ThemeController) Mode() domain.Mode {
	return c.mode.Load().(domain.Mode)
}
