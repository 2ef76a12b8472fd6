package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"shieldhero-quiz/internal/domain"
	"shieldhero-quiz/internal/particles"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

const defaultStorePath = "~/.shieldhero/store.yaml"

type Config struct {
	Storage struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"storage"`
	Quiz struct {
		DefaultDifficulty string `yaml:"default_difficulty"`
	} `yaml:"quiz"`
	Particles struct {
		FireCount           int    `yaml:"fire_count"`
		IceCount            int    `yaml:"ice_count"`
		LowPerformanceLimit int    `yaml:"low_performance_limit"`
		BurstSize           int    `yaml:"burst_size"`
		MaxTransient        int    `yaml:"max_transient"`
		FrameBudget         string `yaml:"frame_budget"`
		SlowFrameThreshold  int    `yaml:"slow_frame_threshold"`
		InitDelay           string `yaml:"init_delay"`
		FPS                 int    `yaml:"fps"`
	} `yaml:"particles"`
	Log struct {
		Env  string `yaml:"env"`
		Path string `yaml:"path"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Storage.Backend = BackendFile
	cfg.Storage.Path = defaultStorePath
	cfg.Storage.Redis.Addr = "localhost:6379"
	cfg.Storage.Redis.Prefix = "shieldhero:"
	cfg.Storage.CacheTTL = "1m"
	cfg.Quiz.DefaultDifficulty = string(domain.DifficultyMedium)

	p := particles.DefaultConfig()
	cfg.Particles.FireCount = p.FireCount
	cfg.Particles.IceCount = p.IceCount
	cfg.Particles.LowPerformanceLimit = p.LowPerformanceLimit
	cfg.Particles.BurstSize = p.BurstSize
	cfg.Particles.MaxTransient = p.MaxTransient
	cfg.Particles.FrameBudget = "16.67ms"
	cfg.Particles.SlowFrameThreshold = p.SlowFrameThreshold
	cfg.Particles.InitDelay = "1s"
	cfg.Particles.FPS = 60

	cfg.Log.Env = "production"
	cfg.Log.Path = "shieldhero.log"
	return cfg
}

// Load reads YAML config from path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// Difficulty returns the configured preselection, falling back to medium.
func (c Config) Difficulty() domain.Difficulty {
	d := domain.Difficulty(strings.ToLower(strings.TrimSpace(c.Quiz.DefaultDifficulty)))
	if !d.Valid() {
		return domain.DifficultyMedium
	}
	return d
}

// ParticleConfig converts the particles section, keeping defaults for unset values.
func (c Config) ParticleConfig() particles.Config {
	p := particles.DefaultConfig()
	positive := func(v int, dst *int) {
		if v > 0 {
			*dst = v
		}
	}
	positive(c.Particles.FireCount, &p.FireCount)
	positive(c.Particles.IceCount, &p.IceCount)
	positive(c.Particles.LowPerformanceLimit, &p.LowPerformanceLimit)
	positive(c.Particles.BurstSize, &p.BurstSize)
	positive(c.Particles.MaxTransient, &p.MaxTransient)
	positive(c.Particles.SlowFrameThreshold, &p.SlowFrameThreshold)
	p.FrameBudget = TTLDuration(c.Particles.FrameBudget, p.FrameBudget)
	return p
}

// InitDelay is how long the particle pools wait before the first fill.
func (c Config) InitDelay() time.Duration {
	return TTLDuration(c.Particles.InitDelay, time.Second)
}

// FrameInterval is the animation period derived from fps.
func (c Config) FrameInterval() time.Duration {
	fps := c.Particles.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// CacheTTL is the lifetime of read-through cache entries over redis.
func (c Config) CacheTTL() time.Duration {
	return TTLDuration(c.Storage.CacheTTL, time.Minute)
}

// StorePath expands a leading ~ in the file backend path.
func (c Config) StorePath() string {
	path := c.Storage.Path
	if path == "" {
		path = defaultStorePath
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".shieldhero", "store.yaml")
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
