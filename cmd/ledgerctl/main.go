package main

import (
	"fmt"
	"os"
	"time"

	"erp-ledger/internal/config"
	"erp-ledger/internal/database"
	"erp-ledger/internal/repository"
	"erp-ledger/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operational tooling for the accounting posting engine",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newAuditCommand())
	rootCmd.AddCommand(newTrialBalanceCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect() (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	db, err := database.NewMySQL(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return cfg, db, nil
}

func newSeedCommand() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the default chart of accounts and fiscal period",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			seeder := service.NewSeedService(
				repository.NewAccountRepository(db),
				repository.NewPeriodRepository(db),
			)
			if err := seeder.SeedChart(); err != nil {
				return err
			}
			if err := seeder.SeedPeriod(year); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "seed complete")
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year for the fiscal period")
	return cmd
}

func newAuditCommand() *cobra.Command {
	var asOfStr string
	var docs service.DocumentCounts

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run the read-only ledger integrity checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := time.Parse("2006-01-02", asOfStr)
			if err != nil {
				return fmt.Errorf("parse --as-of: %w", err)
			}

			_, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			accountRepo := repository.NewAccountRepository(db)
			entryRepo := repository.NewEntryRepository(db)
			chart := service.NewChartService(accountRepo)
			periods := service.NewPeriodService(repository.NewPeriodRepository(db))
			auditor := service.NewAuditService(entryRepo, chart, periods, service.DefaultRoleCatalog)

			report, err := auditor.Run(asOf, docs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "audit as of %s: %d entries checked\n", report.AsOf.Format("2006-01-02"), report.EntriesChecked)
			for _, f := range report.Findings {
				fmt.Fprintf(out, "[%s] %s: %s\n", f.Severity, f.Check, f.Message)
			}
			if n := report.Violations(); n > 0 {
				return fmt.Errorf("%d violations found", n)
			}
			fmt.Fprintln(out, "no violations")
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfStr, "as-of", time.Now().Format("2006-01-02"), "reference date for the period check")
	cmd.Flags().IntVar(&docs.Sales, "sales", 0, "sale document count for coverage")
	cmd.Flags().IntVar(&docs.Purchases, "purchases", 0, "purchase document count for coverage")
	cmd.Flags().IntVar(&docs.Checks, "checks", 0, "check document count for heuristic coverage")
	cmd.Flags().IntVar(&docs.Receipts, "receipts", 0, "receipt document count for heuristic coverage")
	cmd.Flags().IntVar(&docs.CashMovements, "cash-movements", 0, "cash movement count for heuristic coverage")
	return cmd
}

func newTrialBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Print per-account debit/credit totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			reports := service.NewReportService(repository.NewEntryRepository(db))
			rows, totalDebit, totalCredit, err := reports.TrialBalance()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, row := range rows {
				fmt.Fprintf(out, "%-12s %-32s %14s %14s\n",
					row.AccountCode, row.AccountName,
					row.TotalDebit.StringFixed(2), row.TotalCredit.StringFixed(2))
			}
			fmt.Fprintf(out, "%-45s %14s %14s\n", "TOTAL", totalDebit.StringFixed(2), totalCredit.StringFixed(2))
			return nil
		},
	}
}
