package cli

import (
	"github.com/spf13/cobra"

	"github.com/planwise-nz/planwise/internal/application/prefetch"
	"github.com/planwise-nz/planwise/internal/bootstrap"
)

func newDocsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Planning document cache operations",
	}
	cmd.AddCommand(newDocsPrefetchCommand(a), newDocsListCommand(), newDocsClearCommand(a))
	return cmd
}

func newDocsClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached document (redis backend only does anything useful)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := bootstrap.NewDocumentService(a.cfg, a.logger, nil)
			if err != nil {
				return err
			}
			if err := docs.ClearCache(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("document cache cleared")
			return nil
		},
	}
}

func newDocsPrefetchCommand(a *app) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "prefetch",
		Short: "Warm the document cache with every catalog reference document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := bootstrap.NewDocumentService(a.cfg, a.logger, nil)
			if err != nil {
				return err
			}
			if concurrency <= 0 {
				concurrency = a.cfg.Worker.Concurrency
			}
			failed := prefetch.NewWarmer(docs, concurrency, a.logger).Run(cmd.Context())
			cmd.Printf("warmed %d documents, %d failed\n",
				len(prefetch.CatalogURLs())-failed, failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel downloads (defaults from config)")
	return cmd
}

func newDocsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every catalog reference document URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, url := range prefetch.CatalogURLs() {
				cmd.Println(url)
			}
			return nil
		},
	}
}
