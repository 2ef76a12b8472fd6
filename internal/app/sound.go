package app

import (
	"context"

	"go.uber.org/zap"

	"shieldhero-quiz/internal/domain"
)

const (
	soundEnabled  = "enabled"
	soundDisabled = "disabled"
)

// Sound gates every cue and music call behind the persisted mute flag.
type Sound struct {
	out     Audio
	store   Store
	log     *zap.Logger
	enabled bool
}

// NewSound wraps out. Sound starts enabled until Load reads the preference.
func NewSound(out Audio, store Store, log *zap.Logger) *Sound {
	if out == nil {
		out = nopAudio{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sound{out: out, store: store, log: log, enabled: true}
}

// Load reads the preference; anything but "disabled" means enabled.
func (s *Sound) Load(ctx context.Context) bool {
	s.enabled = true
	if s.store == nil {
		return s.enabled
	}
	raw, _, err := s.store.Get(ctx, KeySound)
	if err != nil {
		s.log.Warn("sound preference unavailable, defaulting to enabled", zap.Error(err))
		return s.enabled
	}
	s.enabled = raw != soundDisabled
	return s.enabled
}

// Toggle flips the flag, resumes or stops music for mode, and persists the choice.
func (s *Sound) Toggle(ctx context.Context, mode domain.Mode) bool {
	s.enabled = !s.enabled
	value := soundDisabled
	if s.enabled {
		value = soundEnabled
		s.out.PlayThemeMusic(mode)
	} else {
		s.out.StopThemeMusic()
	}
	if s.store != nil {
		if err := s.store.Set(ctx, KeySound, value); err != nil {
			s.log.Warn("persist sound preference failed", zap.Error(err))
		}
	}
	s.PlayCue(domain.CueClick)
	return s.enabled
}

// Enabled reports the mute flag.
func (s *Sound) Enabled() bool {
	return s.enabled
}

func (s *Sound) PlayCue(kind domain.Cue) {
	if s.enabled {
		s.out.PlayCue(kind)
	}
}

func (s *Sound) PlayThemeMusic(mode domain.Mode) {
	if s.enabled {
		s.out.PlayThemeMusic(mode)
	}
}

// StopThemeMusic is not gated by the mute flag.
func (s *Sound) StopThemeMusic() {
	s.out.StopThemeMusic()
}
