package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhartley/compass/internal/facade"
	"github.com/mhartley/compass/internal/logger"
	"github.com/mhartley/compass/internal/scoring"
)

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "Competency graph and assessment reasoning engine",
	Long: "Compass loads a competency framework (skills, levels, roles and their\n" +
		"relations), answers reasoning queries over it, and scores portfolio\n" +
		"evidence against a target skill and level.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("ontology", "o", "", "Path to a framework JSON document to load (or set COMPASS_ONTOLOGY)")
	rootCmd.PersistentFlags().String("log", "error", "Log level: debug, info, warn, error, off")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(roleCmd)
	rootCmd.AddCommand(gapCmd)
	rootCmd.AddCommand(pathwaysCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	mode, _ := cmd.Flags().GetString("log")
	if mode == "off" {
		return logger.Nop(), nil
	}
	return logger.New(mode)
}

// resolveOntologyPath returns the framework document path: the --ontology
// flag wins, then COMPASS_ONTOLOGY.
func resolveOntologyPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("ontology"); p != "" {
		return p
	}
	return os.Getenv("COMPASS_ONTOLOGY")
}

// newEngine builds a facade engine and loads the ontology document. When
// require is set, a missing document path is an error; reasoning commands
// are useless over an empty graph.
func newEngine(cmd *cobra.Command, opts facade.Options, require bool) (*facade.Engine, error) {
	engine := facade.New(opts)

	path := resolveOntologyPath(cmd)
	if path == "" {
		if require {
			return nil, fmt.Errorf("no framework document: pass --ontology or set COMPASS_ONTOLOGY")
		}
		return engine, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ontology: %w", err)
	}
	if _, err := engine.LoadOntology(cmd.Context(), raw, false); err != nil {
		return nil, err
	}
	return engine, nil
}

// resolveRubric loads the rubric override file if --rubric is set,
// otherwise the embedded defaults.
func resolveRubric(cmd *cobra.Command) (scoring.Rubric, error) {
	if p, _ := cmd.Flags().GetString("rubric"); p != "" {
		return scoring.LoadRubric(p)
	}
	return scoring.DefaultRubric(), nil
}

func readJSONFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}
