package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planwise-nz/planwise/internal/domain/overlay"
)

func newOverlayCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Overlay classification",
	}
	cmd.AddCommand(newOverlayClassifyCommand(), newOverlayTypesCommand())
	return cmd
}

func newOverlayClassifyCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "classify [json]",
		Short: "Classify raw geodata feature records",
		Long: `Classify reads a JSON array of feature attribute records, either as an
argument or from --file, and reports which overlay each record maps to.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading %s: %w", file, err)
				}
				raw = data
			case len(args) == 1:
				raw = []byte(args[0])
			default:
				return fmt.Errorf("provide a JSON array argument or --file")
			}

			var records []overlay.Record
			if err := json.Unmarshal(raw, &records); err != nil {
				return fmt.Errorf("parsing records: %w", err)
			}

			type result struct {
				Classified   []overlay.Info   `json:"classified"`
				Unclassified []overlay.Record `json:"unclassified,omitempty"`
			}
			var out result
			var ordered []overlay.Classified
			for _, record := range records {
				info, ok := overlay.Classify(record)
				if !ok {
					out.Unclassified = append(out.Unclassified, record)
					continue
				}
				ordered = append(ordered, overlay.Classified{Info: info, SourceRecord: record})
			}
			for _, item := range overlay.OrderByPrecedence(ordered) {
				out.Classified = append(out.Classified, item.Info)
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a JSON file of feature records")
	return cmd
}

func newOverlayTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the known overlay types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, overlay.AllTypes())
		},
	}
}
