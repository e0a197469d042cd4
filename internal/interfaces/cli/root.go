// Package cli implements the planwise command line interface.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwise-nz/planwise/internal/config"
	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  logging.Logger
}

// NewRootCommand builds the planwise command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "planwise",
		Short:         "Property development rule assessment for the Auckland Unitary Plan",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "path to config file")

	root.AddCommand(
		newZoneCommand(a),
		newOverlayCommand(a),
		newAssessCommand(a),
		newDocsCommand(a),
	)
	return root
}

func (a *app) initialize() error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	a.logger, err = logging.NewLogger(a.cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logging.SetDefault(a.logger)
	return nil
}

// printJSON writes v to the command's stdout, indented.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
