package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abworrall/eclipsifier/pkg/eclipse"
)

const version = "0.3.0"

// app carries the loaded configuration down to the subcommands.
type app struct {
	configFile string
	baseDir    string
	verbose    bool

	cfg eclipse.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "eclipsifier",
		Short: "Align a sequence of eclipse photos, and tile them into a collage",
		Long: `Eclipsifier centers, rotates, zooms and color adjusts each photo of a total
solar eclipse (settings are kept in a .yml file next to each photo), and then
tiles the aligned photos into one big collage image.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			log.SetDefault(newLogger(os.Stderr, level))

			cfg, err := eclipse.LoadConfig(a.configFile)
			if err != nil {
				return err
			}
			if a.baseDir != "" {
				cfg.BaseDir = a.baseDir
				if err := cfg.Finalize(); err != nil {
					return err
				}
			}
			a.cfg = cfg

			log.Debugf("Final configuration:-\n\n%s", a.cfg.AsYaml())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "config.yml", "config file (yaml)")
	cmd.PersistentFlags().StringVarP(&a.baseDir, "dir", "d", "", "directory of eclipse photos (overrides base_dir)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newPreviewCmd(a))
	cmd.AddCommand(newCollageCmd(a))
	cmd.AddCommand(newTimelineCmd(a))

	return cmd
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
