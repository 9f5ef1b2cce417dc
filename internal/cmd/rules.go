package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/archivist/internal/classifier"
	"github.com/harrison/archivist/internal/config"
	"github.com/harrison/archivist/internal/store"
)

// NewRulesCommand creates the rules command
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Classify scanned documents into role buckets",
		Long: `Score every document in the cache against the weighted rule
configuration and emit one bucket verdict per document.

The highest-scoring bucket wins; ties keep the bucket listed first in the
rules file, and documents matching nothing fall back to archive.

Example:
  archivist rules --config rules.yml`,
		RunE: rulesCommand,
	}

	cmd.Flags().String("config", "", "Path to the rules configuration")
	cmd.Flags().String("cache", config.DefaultCachePath, "Document cache path")
	cmd.Flags().String("emit", config.DefaultScoresPath, "Score output path")
	cmd.Flags().Bool("verbose", false, "Show per-document verdicts")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func rulesCommand(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cachePath, _ := cmd.Flags().GetString("cache")
	emitPath, _ := cmd.Flags().GetString("emit")

	ruleCfg, err := config.LoadRuleConfig(configPath)
	if err != nil {
		return fmt.Errorf("load rules config: %w", err)
	}

	log := newLogger(cmd)

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
	if len(docs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No scan data found in %s\n", cachePath)
		return nil
	}

	scores := classifier.ScoreAll(docs, ruleCfg)
	for _, score := range scores {
		log.Debugf("%s", classifier.Describe(score))
	}

	if err := classifier.WriteScores(emitPath, scores); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Classified %d files into %s\n", len(scores), emitPath)
	return nil
}
