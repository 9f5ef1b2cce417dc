package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for archivist
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archivist",
		Short: "Scan, classify, and reorganize scattered project files",
		Long: `Archivist inventories loose files across directories, classifies them
into role buckets with weighted rules, groups them into inferred projects,
and relocates them into a uniform target layout.

Every move is recorded in an append-only journal so a run can always be
rolled back. The stages compose through artifacts under .archivist/:
scan writes the document cache, rules writes scores, cluster writes the
project grouping, and organize executes the plan.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewRulesCommand())
	cmd.AddCommand(NewClusterCommand())
	cmd.AddCommand(NewOrganizeCommand())
	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewRollbackCommand())

	return cmd
}
