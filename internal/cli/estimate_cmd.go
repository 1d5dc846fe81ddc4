package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/cli/formatter"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

func newEstimateCmd(s *rootState) *cobra.Command {
	var (
		dryRun      bool
		title       string
		description string
		kindFlag    string
		createdBy   string
		source      string
	)

	cmd := &cobra.Command{
		Use:   "estimate [<kind> <id>]",
		Short: "Generate an AI effort estimate",
		Long: `Estimate a stored issue or action item and save it as a new version.

With --dry-run, estimate free text given by --title and --description
without touching the database.`,
		Example: `  tracker estimate issues 42
  tracker estimate --dry-run --title "Add CSV export" --description "Export the report table as CSV with filters applied"`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {

			if dryRun {
				if len(args) > 0 {
					return errors.New("--dry-run estimates --title/--description, not a stored item")
				}
				req := contract.EstimateRequest{Title: title, Description: description}
				if kindFlag != "" {
					kind, err := domain.ParseItemKind(kindFlag)
					if err != nil {
						return err
					}
					req.ItemKind = kind
				}
				res, err := s.app.Estimates.Preview(cmd.Context(), req)
				if err != nil {
					return err
				}
				return s.print(cmd, res, func() string { return formatter.FormatEstimate(res) })
			}

			kind, id, err := parseItemRef(args)
			if err != nil {
				return err
			}
			out, err := s.app.Estimates.GenerateEstimateFromItem(cmd.Context(), kind, id, contract.EstimateOptions{
				Source:    domain.EstimateSource(source),
				CreatedBy: createdBy,
				UserID:    createdBy,
			})
			if err != nil {
				return err
			}
			return s.print(cmd, out, func() string { return formatter.FormatPersistedEstimate(out) })
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "estimate free text without saving")
	cmd.Flags().StringVar(&title, "title", "", "title for --dry-run")
	cmd.Flags().StringVar(&description, "description", "", "description for --dry-run")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "item kind hint for --dry-run")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "author recorded on the history entry")
	cmd.Flags().StringVar(&source, "source", string(domain.SourceManualRegenerate), "source recorded on the history entry")
	return cmd
}

func newHistoryCmd(s *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "history <kind> <id>",
		Short: "List saved estimate versions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseItemRef(args)
			if err != nil {
				return err
			}
			entries, err := s.app.Estimates.ListEstimateHistory(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			return s.print(cmd, entries, func() string { return formatter.FormatHistory(entries) })
		},
	}
}
