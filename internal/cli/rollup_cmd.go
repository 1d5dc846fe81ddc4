package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/cli/formatter"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

func newRollupCmd(s *rootState) *cobra.Command {
	var update bool
	cmd := &cobra.Command{
		Use:   "rollup <kind> <id>",
		Short: "Sum descendant estimates for one parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseItemRef(args)
			if err != nil {
				return err
			}
			res, err := s.app.Rollups.CalculateRollupEffort(cmd.Context(), kind, id, contract.RollupOptions{UpdateParent: update})
			if err != nil {
				return err
			}
			return s.print(cmd, res, func() string { return formatter.FormatRollup(res) })
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "write the total onto the parent")
	return cmd
}

func newRollupAllCmd(s *rootState) *cobra.Command {
	var projectID int64
	cmd := &cobra.Command{
		Use:   "rollup-all <kind>",
		Short: "Recompute every parent in a project, deepest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseItemKind(args[0])
			if err != nil {
				return err
			}
			if projectID <= 0 {
				return errors.New("--project is required")
			}
			res, err := s.app.Rollups.UpdateAllParentEfforts(cmd.Context(), kind, projectID)
			if err != nil {
				return err
			}
			return s.print(cmd, res, func() string { return formatter.FormatBatchRollup(res) })
		},
	}
	cmd.Flags().Int64Var(&projectID, "project", 0, "project id")
	return cmd
}

func newBufferCmd(s *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "buffer <kind> <id>",
		Short: "Effort plus a buffer for open prerequisites",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseItemRef(args)
			if err != nil {
				return err
			}
			res, err := s.app.Buffers.EstimateWithDependencies(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			return s.print(cmd, res, func() string { return formatter.FormatDependencyEstimate(res) })
		},
	}
}

func newHierarchyCmd(s *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "hierarchy <kind> <id>",
		Short: "Show the tree containing an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseItemRef(args)
			if err != nil {
				return err
			}
			res, err := s.app.Hierarchy.GetHierarchicalBreakdown(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			return s.print(cmd, res, func() string { return formatter.FormatHierarchy(res) })
		},
	}
}
