package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shieldhero-quiz/internal/app"
	"shieldhero-quiz/internal/domain"
	"shieldhero-quiz/internal/logger"
	"shieldhero-quiz/internal/loop"
	"shieldhero-quiz/internal/particles"
	"shieldhero-quiz/internal/terminal"
)

// NewPlayCmd builds the subcommand that runs the quiz in the terminal.
func NewPlayCmd(configPath, storage *string) *cobra.Command {
	var difficulty string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, *storage, difficulty)
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "preselected difficulty: easy, medium or hard")
	return cmd
}

func runPlay(ctx context.Context, configPath, storage, difficulty string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := loadEnvironment(ctx, configPath, storage, logger.New)
	if err != nil {
		return err
	}
	defer env.close()

	preselect := env.cfg.Difficulty()
	if difficulty != "" {
		preselect = domain.Difficulty(difficulty)
		if !preselect.Valid() {
			return fmt.Errorf("unknown difficulty %q", difficulty)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	screen.HideCursor()

	lp := loop.New(256)
	ctrl := buildController(env, lp, screen, preselect)
	env.log.Info("session opened", zap.String("storage", env.cfg.Storage.Backend))
	return ctrl.Run(ctx, lp, screen)
}

func buildController(env *environment, lp *loop.Loop, screen tcell.Screen, preselect domain.Difficulty) *terminal.Controller {
	ui := terminal.NewUI(screen, env.log, lp.Now)
	effects := particles.NewSystem(env.cfg.ParticleConfig(), nil)
	sound := app.NewSound(ui, env.store, env.log)
	theme := app.NewThemeController(env.store,
		app.WithThemeRenderer(ui),
		app.WithThemeAudio(sound),
		app.WithThemeEffects(effects),
		app.WithBurstOrigin(effects.Center),
		app.WithThemeLogger(env.log),
	)
	stats := app.NewStatsStore(env.store, env.log)
	machine := app.NewMachine(lp, stats,
		app.WithRenderer(ui),
		app.WithAudio(sound),
		app.WithEffects(effects, effects.Center),
		app.WithModeSource(theme),
		app.WithLogger(env.log),
	)
	return terminal.NewController(terminal.Deps{
		UI:            ui,
		Machine:       machine,
		Theme:         theme,
		Sound:         sound,
		Effects:       effects,
		Log:           env.log,
		Difficulty:    preselect,
		InitDelay:     env.cfg.InitDelay(),
		FrameInterval: env.cfg.FrameInterval(),
	})
}
