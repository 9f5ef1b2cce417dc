package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/archivist/internal/classifier"
	"github.com/harrison/archivist/internal/cluster"
	"github.com/harrison/archivist/internal/config"
	"github.com/harrison/archivist/internal/executor"
	"github.com/harrison/archivist/internal/journal"
	"github.com/harrison/archivist/internal/models"
	"github.com/harrison/archivist/internal/planner"
	"github.com/harrison/archivist/internal/store"
)

// NewOrganizeCommand creates the organize command
func NewOrganizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Relocate clustered documents into the target layout",
		Long: `Build one relocation plan per clustered document and execute it,
moving or copying each file into <target-root>/<project>/<bucket-dir>/.

Colliding names get a deterministic digest-derived suffix. Every executed
plan is appended to the journal, including sources that went missing since
the scan, so the run can be rolled back or reported on later.

Examples:
  archivist organize --schema schema.yml --target /srv/projects
  archivist organize --schema schema.yml --mode copy --dry-run`,
		RunE: organizeCommand,
	}

	cmd.Flags().String("schema", "", "Path to the target schema configuration")
	cmd.Flags().String("target", "", "Target root (overrides the schema file)")
	cmd.Flags().String("mode", "", "Execution mode: move or copy (overrides the schema file)")
	cmd.Flags().String("projects", config.DefaultProjectsPath, "Cluster result path")
	cmd.Flags().String("cache", config.DefaultCachePath, "Document cache path")
	cmd.Flags().String("scores", config.DefaultScoresPath, "Score file path")
	cmd.Flags().String("journal", config.DefaultJournalPath, "Journal output path")
	cmd.Flags().Bool("dry-run", false, "Print the plan without touching any files")
	cmd.Flags().Bool("verbose", false, "Show each executed plan")

	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func organizeCommand(cmd *cobra.Command, args []string) error {
	schemaPath, _ := cmd.Flags().GetString("schema")
	targetFlag, _ := cmd.Flags().GetString("target")
	modeFlag, _ := cmd.Flags().GetString("mode")
	projectsPath, _ := cmd.Flags().GetString("projects")
	cachePath, _ := cmd.Flags().GetString("cache")
	scoresPath, _ := cmd.Flags().GetString("scores")
	journalPath, _ := cmd.Flags().GetString("journal")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	schema, err := config.LoadSchemaConfig(schemaPath)
	if err != nil {
		return fmt.Errorf("load schema config: %w", err)
	}
	if targetFlag != "" {
		schema.TargetRoot = targetFlag
	}
	if modeFlag != "" {
		mode, err := models.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		schema.Mode = mode
	}
	if err := schema.Validate(); err != nil {
		return fmt.Errorf("invalid schema configuration: %w", err)
	}

	log := newLogger(cmd)

	clusters, err := cluster.ReadResult(projectsPath)
	if err != nil {
		return fmt.Errorf("load cluster result: %w", err)
	}

	db, err := store.Open(cachePath)
	if err != nil {
		return fmt.Errorf("open document cache: %w", err)
	}
	defer db.Close()

	scanIndex, skipped, err := db.Index()
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

	plans, err := planner.BuildPlans(clusters, schema, classifier.BucketMap(scores), scanIndex)
	if err != nil {
		return fmt.Errorf("build plans: %w", err)
	}

	if dryRun {
		for _, plan := range plans {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", plan.SourcePath, plan.TargetPath)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d planned relocations, nothing executed\n", len(plans))
		return nil
	}

	exec := executor.New(schema.Mode, journal.NewWriter(journalPath), log)
	result, err := exec.Execute(plans)
	if err != nil {
		return fmt.Errorf("execute plans: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Organized %d files (%d missing), journal at %s\n",
		result.Executed, result.Missing, journalPath)
	return nil
}
