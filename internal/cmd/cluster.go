package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/archivist/internal/classifier"
	"github.com/harrison/archivist/internal/cluster"
	"github.com/harrison/archivist/internal/config"
	"github.com/harrison/archivist/internal/store"
)

// NewClusterCommand creates the cluster command
func NewClusterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Group classified documents into inferred projects",
		Long: `Group documents by the project label inferred from their directory,
using the rules file's project hints when a path segment matches one.

Project ids are assigned in sorted label order, so the same input always
produces the same grouping.

Example:
  archivist cluster --rules rules.yml`,
		RunE: clusterCommand,
	}

	cmd.Flags().String("rules", "", "Rules configuration supplying project hints (optional)")
	cmd.Flags().String("cache", config.DefaultCachePath, "Document cache path")
	cmd.Flags().String("scores", config.DefaultScoresPath, "Score file path")
	cmd.Flags().String("out", config.DefaultProjectsPath, "Cluster result output path")
	cmd.Flags().Bool("verbose", false, "Show per-project membership")

	return cmd
}

func clusterCommand(cmd *cobra.Command, args []string) error {
	rulesPath, _ := cmd.Flags().GetString("rules")
	cachePath, _ := cmd.Flags().GetString("cache")
	scoresPath, _ := cmd.Flags().GetString("scores")
	outPath, _ := cmd.Flags().GetString("out")

	log := newLogger(cmd)

	// Hints are optional: without a rules file the directory-derived labels
	// stand on their own.
	var hints []string
	if rulesPath != "" {
		if _, err := os.Stat(rulesPath); err == nil {
			ruleCfg, err := config.LoadRuleConfig(rulesPath)
			if err != nil {
				return fmt.Errorf("load rules config: %w", err)
			}
			hints = ruleCfg.ProjectHints
		}
	}

	db, err := store.Open(cachePath)
	if err != nil {
		return fmt.Errorf("open document cache: %w", err)
	}
	defer db.Close()

	docs, skipped, err := db.All()
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	if skipped > 0 {
		log.Warnf("cache %s: skipped %d corrupt rows", cachePath, skipped)
	}

	scores, err := classifier.ReadScores(scoresPath)
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}

	result := cluster.New(hints).Cluster(docs, classifier.BucketMap(scores))
	for _, project := range result.Projects {
		log.Debugf("%s (%s): %d documents", project.ProjectID, project.ProjectLabel, len(project.DocIDs))
	}

	if err := cluster.WriteResult(outPath, result); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Clustered %d projects into %s\n", len(result.Projects), outPath)
	return nil
}
