package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/archivist/internal/cluster"
	"github.com/harrison/archivist/internal/config"
	"github.com/harrison/archivist/internal/report"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a summary of an organize run",
		Long: `Aggregate the journal under the cluster result and write an HTML
summary page plus JSON and CSV artifacts alongside it.

Example:
  archivist report --out reports/projects_summary.html`,
		RunE: reportCommand,
	}

	cmd.Flags().String("projects", config.DefaultProjectsPath, "Cluster result path")
	cmd.Flags().String("journal", config.DefaultJournalPath, "Journal path")
	cmd.Flags().String("out", config.DefaultReportPath, "HTML output path")
	cmd.Flags().Bool("verbose", false, "Show aggregation detail")

	return cmd
}

func reportCommand(cmd *cobra.Command, args []string) error {
	projectsPath, _ := cmd.Flags().GetString("projects")
	journalPath, _ := cmd.Flags().GetString("journal")
	outPath, _ := cmd.Flags().GetString("out")

	clusters, err := cluster.ReadResult(projectsPath)
	if err != nil {
		return fmt.Errorf("load cluster result: %w", err)
	}

	paths := report.Paths{
		HTML: outPath,
		JSON: swapExt(outPath, ".json"),
		CSV:  swapExt(outPath, ".csv"),
	}
	summary, err := report.NewGenerator(newLogger(cmd)).Generate(clusters, journalPath, paths)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d projects, %d moves)\n",
		paths.HTML, len(summary.Projects), len(summary.Moves))
	return nil
}

// swapExt replaces the final extension of path with ext, appending when
// path has none.
func swapExt(path, ext string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndexAny(path, `/\`) {
		return path[:i] + ext
	}
	return path + ext
}
