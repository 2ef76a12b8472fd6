package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"shieldhero-quiz/internal/app"
)

// NewSoundCmd prints the persisted sound preference; `sound toggle` flips it.
func NewSoundCmd(configPath, storage *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sound",
		Short: "Show whether sound is enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd.Context(), *configPath, *storage, nil)
			if err != nil {
				return err
			}
			defer env.close()

			fmt.Fprintln(cmd.OutOrStdout(), soundLabel(app.NewSound(nil, env.store, env.log).Load(cmd.Context())))
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Mute or unmute sound",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd.Context(), *configPath, *storage, nil)
			if err != nil {
				return err
			}
			defer env.close()

			ctx := cmd.Context()
			sound := app.NewSound(nil, env.store, env.log)
			sound.Load(ctx)
			mode := app.NewThemeController(env.store).Init(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), soundLabel(sound.Toggle(ctx, mode)))
			return nil
		},
	})
	return cmd
}

func soundLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
