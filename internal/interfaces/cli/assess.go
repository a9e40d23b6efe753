package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// TransactionAssessor runs the risk pipeline over a transaction's entities.
type TransactionAssessor interface {
	AssessTransaction(ctx context.Context, entities []entity.ExtractedEntity) (*entity.TransactionRisk, error)
}

// assessInput is the accepted file shape: either a bare entity array or an
// object wrapping one under "entities".
type assessInput struct {
	Entities []entity.ExtractedEntity `json:"entities"`
}

// NewAssessCmd creates the assess command.  It reads transaction entities
// from a JSON file and prints the blended risk verdict.
func NewAssessCmd(assessor TransactionAssessor, opts *RootOptions, log logging.Logger) *cobra.Command {
	var (
		filePath string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess money-laundering risk for a transaction's entities",
		Long: "Reads a JSON file of extracted transaction entities and runs the full risk\n" +
			"pipeline: graph matching, network exposure, sanctions screening, and\n" +
			"reputation scoring.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ents, err := readEntitiesFile(filePath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			risk, err := assessor.AssessTransaction(ctx, ents)
			if err != nil {
				log.Error("assessment failed", logging.Err(err))
				return err
			}

			if opts.OutputFormat == "json" {
				return printJSON(cmd, risk)
			}
			printRiskSummary(cmd, risk)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "JSON file with transaction entities (required)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "assessment timeout")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readEntitiesFile parses the input file, accepting a bare array or the
// wrapped form.
func readEntitiesFile(path string) ([]entity.ExtractedEntity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest,
			fmt.Sprintf("cannot read entities file %q", path))
	}

	var bare []entity.ExtractedEntity
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var wrapped assessInput
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest,
			fmt.Sprintf("entities file %q is not valid JSON", path))
	}
	return wrapped.Entities, nil
}

// printRiskSummary writes the human-readable verdict.
func printRiskSummary(cmd *cobra.Command, risk *entity.TransactionRisk) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Assessment %s\n", risk.ID)
	fmt.Fprintf(out, "Transaction risk: %.3f (confidence %.3f)\n", risk.RiskScore, risk.ConfidenceScore)
	for _, er := range risk.EntityRisks {
		fmt.Fprintf(out, "  %-30s risk %.3f  confidence %.3f", er.Name, er.OverallRisk, er.OverallConfidence)
		if er.ValidationError != "" {
			fmt.Fprintf(out, "  (invalid: %s)", er.ValidationError)
		}
		fmt.Fprintln(out)
	}
}
