package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planwise-nz/planwise/internal/domain/zone"
)

func newZoneCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Zone catalog lookups",
	}
	cmd.AddCommand(newZoneLookupCommand(), newZoneResolveCommand(a), newZoneListCommand())
	return cmd
}

func newZoneLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <code>",
		Short: "Look up a zone by its plan code (e.g. H3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := zone.Lookup(args[0])
			if !ok {
				return fmt.Errorf("no zone with code %q", args[0])
			}
			return printJSON(cmd, info)
		},
	}
}

func newZoneResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a free-text zone name to a catalog entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			info, ok := zone.NewResolver(a.logger).Resolve(name)
			if !ok {
				return fmt.Errorf("could not resolve %q to a zone", name)
			}
			return printJSON(cmd, info)
		},
	}
}

func newZoneListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every catalog zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, zone.All())
		},
	}
}
