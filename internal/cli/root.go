package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	storageKind string
)

// Execute runs the CLI.
func Execute() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("SHIELDHERO_CONFIG")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envStorage := os.Getenv("SHIELDHERO_STORAGE")

	cmd := &cobra.Command{
		Use:          "shieldhero",
		Short:        "The Rising of the Shield Hero trivia quiz in your terminal",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&storageKind, "storage", envStorage, "storage backend: memory, file or redis")
	cmd.AddCommand(NewPlayCmd(&configPath, &storageKind))
	cmd.AddCommand(NewStatsCmd(&configPath, &storageKind))
	cmd.AddCommand(NewThemeCmd(&configPath, &storageKind))
	cmd.AddCommand(NewSoundCmd(&configPath, &storageKind))
	return cmd
}
