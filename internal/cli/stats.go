package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"shieldhero-quiz/internal/app"
	"shieldhero-quiz/internal/domain"
)

// NewStatsCmd prints the persisted best score and attempt count.
func NewStatsCmd(configPath, storage *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show best score and attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd.Context(), *configPath, *storage, nil)
			if err != nil {
				return err
			}
			defer env.close()

			rec := app.NewStatsStore(env.store, env.log).Load(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Best score: %d/%d\n", rec.BestScore, domain.QuestionCount)
			fmt.Fprintf(out, "Attempts:   %d\n", rec.TotalAttempts)
			if rec.LastPlayed.IsZero() {
				fmt.Fprintln(out, "Last played: never")
			} else {
				fmt.Fprintf(out, "Last played: %s\n", rec.LastPlayed.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
