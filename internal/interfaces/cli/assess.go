package cli

import (
	"github.com/spf13/cobra"

	"github.com/planwise-nz/planwise/internal/application/advisor"
	"github.com/planwise-nz/planwise/internal/bootstrap"
)

func newAssessCommand(a *app) *cobra.Command {
	var (
		req        advisor.Request
		showPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess the planning rules applying to a property",
		Long: `Assess resolves the property's zone and overlays, fetches the relevant
operative plan chapters, and reports the extracted rules.  Identify the
property either by --zone or by --lat and --lng (requires a configured
geodata provider).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := bootstrap.NewDocumentService(a.cfg, a.logger, nil)
			if err != nil {
				return err
			}
			locator := bootstrap.NewLocator(a.cfg, a.logger, nil)
			aggregator := bootstrap.NewAggregator(a.cfg, docs, locator, nil, a.logger, nil)

			result := aggregator.Assess(cmd.Context(), req)
			if showPrompt {
				cmd.Println(advisor.BuildPromptContext(result))
				return nil
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&req.Address, "address", "", "property address, for the report only")
	cmd.Flags().StringVar(&req.ZoneName, "zone", "", "zone code or name (skips the geodata lookup)")
	cmd.Flags().StringVar(&req.ProjectType, "project", "", "project type, e.g. garage, deck, extension")
	cmd.Flags().Float64Var(&req.Latitude, "lat", 0, "property latitude (WGS84)")
	cmd.Flags().Float64Var(&req.Longitude, "lng", 0, "property longitude (WGS84)")
	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "print the generator prompt context instead of JSON")
	return cmd
}
