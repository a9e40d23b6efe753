package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	sanctionsdom "github.com/turtacn/FinCrime-Intelligence/internal/domain/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// ReferenceLoader parses the sanctions CSV and embeds record names.
type ReferenceLoader interface {
	LoadFile(ctx context.Context, path string) ([]sanctionsdom.Record, error)
}

// SanctionsChecker screens a single name against the reference set.
type SanctionsChecker interface {
	Score(ctx context.Context, name string) (entity.SanctionsRiskResult, error)
}

// NewSanctionsCmd creates the sanctions command group: prepare validates and
// embeds the reference CSV, check screens a single name.
func NewSanctionsCmd(loader ReferenceLoader, checker SanctionsChecker, opts *RootOptions, log logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sanctions",
		Short: "Manage and query the sanctions reference set",
	}

	var csvPath string
	prepareCmd := &cobra.Command{
		Use:   "prepare",
		Short: "Parse the reference CSV and precompute name embeddings",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loader.LoadFile(cmd.Context(), csvPath)
			if err != nil {
				log.Error("sanctions preparation failed", logging.Err(err))
				return err
			}

			embedded := 0
			for _, r := range records {
				if len(r.Embedding) > 0 {
					embedded++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d sanctions records (%d embedded) from %s\n",
				len(records), embedded, csvPath)
			return nil
		},
	}
	prepareCmd.Flags().StringVar(&csvPath, "csv", "", "sanctions reference CSV path (required)")
	_ = prepareCmd.MarkFlagRequired("csv")

	var name string
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Screen a single name against the sanctions reference set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checker == nil {
				return errors.New(errors.ErrCodeSanctionsSetUnavailable, "sanctions index is not configured")
			}

			result, err := checker.Score(cmd.Context(), name)
			if err != nil {
				log.Error("sanctions check failed", logging.String("name", name), logging.Err(err))
				return err
			}

			if opts.OutputFormat == "json" {
				return printJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sanctions risk for %q: %.3f (confidence %.3f)\n",
				name, result.RiskScore, result.ConfidenceScore)
			if result.Reason != "" {
				fmt.Fprintf(out, "  %s\n", result.Reason)
			}
			return nil
		},
	}
	checkCmd.Flags().StringVar(&name, "name", "", "entity name to screen (required)")
	_ = checkCmd.MarkFlagRequired("name")

	cmd.AddCommand(prepareCmd, checkCmd)
	return cmd
}
