package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhartley/compass/internal/facade"
	"github.com/mhartley/compass/internal/reasoning"
)

var teamCmd = &cobra.Command{
	Use:   "team <role-code> <candidates.json>",
	Short: "Greedily assign candidates to a role's requirements",
	Long: "Reads a JSON array of candidates ({\"id\": ..., \"skills\": {code: level}})\n" +
		"and reports which candidate covers which requirement, plus any\n" +
		"requirements no candidate can cover.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		engine, err := newEngine(cmd, facade.Options{Log: log}, true)
		if err != nil {
			return err
		}

		raw, err := readJSONFile(args[1])
		if err != nil {
			return err
		}
		var candidates []reasoning.Candidate
		if err := json.Unmarshal(raw, &candidates); err != nil {
			return fmt.Errorf("parse candidates: %w", err)
		}

		cfg := reasoning.DefaultTeamMatchConfig()
		if cmd.Flags().Changed("missing-penalty") {
			cfg.MissingPenalty, _ = cmd.Flags().GetFloat64("missing-penalty")
		}

		match, err := engine.MatchTeam(args[0], candidates, cfg)
		if err != nil {
			return err
		}

		for _, a := range match.Assignments {
			fmt.Printf("%-16s  score %5.2f  covers: %s\n",
				a.CandidateID, a.Score, strings.Join(a.Covered, ", "))
		}
		if len(match.Uncovered) > 0 {
			fmt.Printf("\nUncovered: %s\n", strings.Join(match.Uncovered, ", "))
		}
		return nil
	},
}

func init() {
	teamCmd.Flags().Float64("missing-penalty", reasoning.DefaultMissingPenalty,
		"Score penalty per required skill a candidate does not hold")
}
