package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/archivist/internal/rollback"
)

// NewRollbackCommand creates the rollback command
func NewRollbackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback <journal-file>",
		Short: "Undo an organize run from its journal",
		Long: `Replay the journal in reverse, moving every file that is still at its
recorded target back to its original location. Targets that have since
disappeared are skipped; the journal itself is never modified.

Example:
  archivist rollback .archivist/journal.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: rollbackCommand,
	}

	cmd.Flags().Bool("verbose", false, "Show each restored file")

	return cmd
}

func rollbackCommand(cmd *cobra.Command, args []string) error {
	result, err := rollback.New(newLogger(cmd)).Run(args[0])
	if err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rollback complete: %d restored, %d skipped\n",
		result.Restored, result.Skipped)
	return nil
}
