package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"library-circulation/library"
)

func main() {
	var (
		configPath string
		seedPath   string
	)

	root := &cobra.Command{
		Use:           "circdesk",
		Short:         "Interactive library circulation desk",
		Long:          "circdesk runs an interactive circulation desk: catalog browsing,\nmember login, book issue/return, and overdue reporting for staff.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := library.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger := library.NewLogger(cfg.Log)

			catalog := library.NewCatalog()
			registry := library.NewRegistry()
			ledger := library.NewLedger()

			seed := library.DefaultSeed()
			if seedPath == "" {
				seedPath = cfg.Seed.Path
			}
			if seedPath != "" {
				if seed, err = library.LoadSeedFile(seedPath); err != nil {
					return err
				}
			}
			creds, err := library.ApplySeed(seed, catalog, registry)
			if err != nil {
				return err
			}
			logger.Info("library seeded",
				"books", len(seed.Books), "members", len(seed.Members))

			svc := library.NewCirculationService(
				catalog, registry, ledger,
				cfg.Loan.PeriodDays, cfg.Loan.DailyFineRate, logger)

			sh := newShell(svc, catalog, registry, ledger, creds, cfg.Loan.DailyFineRate)
			sh.run()
			return nil
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	root.Flags().StringVar(&seedPath, "seed", "", "path to JSON seed file (overrides config)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
