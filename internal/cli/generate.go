package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coloctools/sepacollect/internal/adapter/repository/postgres"
	"github.com/coloctools/sepacollect/internal/config"
	"github.com/coloctools/sepacollect/internal/domain"
	"github.com/coloctools/sepacollect/internal/usecase/generator"
)

var (
	rentFlag            string
	rentalExpensesFlag  string
	currentExpensesFlag string
	outputDirFlag       string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one collection and write the pain.008 file",
	Long: `generate reads the creditor configuration and roommate list, builds the
three payment batches for the requested amounts, writes the collection file
and records the emitted transactions in the history table.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		amounts, err := parseAmounts()
		if err != nil {
			fmt.Fprintln(os.Stderr, domain.UserMessage(err))
			return err
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			logger.Error("failed to load configuration", zap.Error(err))
			fmt.Fprintln(os.Stderr, domain.InternalErrorMessage)
			return err
		}
		if outputDirFlag != "" {
			cfg.OutputDir = outputDirFlag
		}

		db, err := postgres.NewDB(cfg.Database.ConnString())
		if err != nil {
			logger.Error("failed to connect to database", zap.Error(err))
			fmt.Fprintln(os.Stderr, domain.InternalErrorMessage)
			return err
		}
		defer db.Close()

		service := generator.NewService(
			postgres.NewConfigRepository(db),
			postgres.NewDebtorRepository(db),
			postgres.NewHistoryRepository(db),
		)
		service.HistoryBatchSize = cfg.HistoryBatchSize

		result, err := service.GenerateCollectionBatch(cmd.Context(), amounts)
		if err != nil {
			// The full chain goes to the operator log; the user only sees
			// the aggregated violations or the generic internal notice
			logger.Error("collection run failed", zap.Error(err))
			fmt.Fprintln(os.Stderr, domain.UserMessage(err))
			return err
		}

		path := filepath.Join(cfg.OutputDir, result.Filename)
		if err := os.WriteFile(path, result.Document, 0o644); err != nil {
			logger.Error("failed to write collection file", zap.String("path", path), zap.Error(err))
			fmt.Fprintln(os.Stderr, domain.InternalErrorMessage)
			return err
		}

		logger.Info("collection file generated",
			zap.String("path", path),
			zap.Int("batches", len(result.Batches)),
			zap.Int("transactions", result.TransactionCount()),
		)
		fmt.Println(path)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&rentFlag, "rent", "", "rent amount per roommate (EUR)")
	generateCmd.Flags().StringVar(&rentalExpensesFlag, "rental-expenses", "", "rental expenses amount per roommate (EUR)")
	generateCmd.Flags().StringVar(&currentExpensesFlag, "current-expenses", "", "current expenses amount per roommate (EUR)")
	generateCmd.Flags().StringVar(&outputDirFlag, "output", "", "directory for the generated file (defaults to the configured output_dir)")

	generateCmd.MarkFlagRequired("rent")
	generateCmd.MarkFlagRequired("rental-expenses")
	generateCmd.MarkFlagRequired("current-expenses")

	rootCmd.AddCommand(generateCmd)
}

// parseAmounts turns the three amount flags into RequestedAmounts, reporting
// unparseable values as validation errors
func parseAmounts() (domain.RequestedAmounts, error) {
	violations := []string{}

	parse := func(value, label string) decimal.Decimal {
		d, err := decimal.NewFromString(value)
		if err != nil {
			violations = append(violations, fmt.Sprintf("le montant %s est invalide,", label))
			return decimal.Zero
		}
		return d
	}

	amounts := domain.RequestedAmounts{
		Rent:            parse(rentFlag, "du loyer"),
		RentalExpenses:  parse(rentalExpensesFlag, "des charges locatives"),
		CurrentExpenses: parse(currentExpensesFlag, "des frais courants"),
	}

	if len(violations) > 0 {
		return amounts, domain.NewValidationError(append([]string{"Erreur(s) dans les montants:"}, violations...)...)
	}
	return amounts, nil
}
