package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"shieldhero-quiz/internal/app"
)

// NewThemeCmd prints the persisted theme; `theme toggle` flips it.
func NewThemeCmd(configPath, storage *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the persisted theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd.Context(), *configPath, *storage, nil)
			if err != nil {
				return err
			}
			defer env.close()

			mode := app.NewThemeController(env.store, app.WithThemeLogger(env.log)).Init(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), mode)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between wrath and shield mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd.Context(), *configPath, *storage, nil)
			if err != nil {
				return err
			}
			defer env.close()

			theme := app.NewThemeController(env.store, app.WithThemeLogger(env.log))
			theme.Init(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), theme.Toggle(cmd.Context()))
			return nil
		},
	})
	return cmd
}
