package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhartley/compass/internal/audit"
	"github.com/mhartley/compass/internal/facade"
	"github.com/mhartley/compass/internal/judge"
	"github.com/mhartley/compass/internal/llm"
	"github.com/mhartley/compass/internal/logger"
	"github.com/mhartley/compass/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score <request.json>",
	Short: "Score a portfolio of evidence against a target skill and level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		rubric, err := resolveRubric(cmd)
		if err != nil {
			return err
		}
		j, err := resolveJudge(cmd, log)
		if err != nil {
			return err
		}

		opts := facade.Options{
			Scorer: scoring.NewEngine(j, scoring.DefaultConfig(), log),
			Rubric: rubric,
			Log:    log,
		}

		if noAudit, _ := cmd.Flags().GetBool("no-audit"); !noAudit {
			dbPath, err := audit.DefaultDBPath()
			if err != nil {
				return err
			}
			store, err := audit.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			opts.Audit = store
		}

		engine, err := newEngine(cmd, opts, true)
		if err != nil {
			return err
		}

		raw, err := readJSONFile(args[0])
		if err != nil {
			return err
		}
		var req scoring.Request
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("parse request: %w", err)
		}

		res, err := engine.ScorePortfolio(cmd.Context(), req)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		printResult(res)
		return nil
	},
}

func printResult(res *scoring.AssessmentResult) {
	fmt.Printf("Subject %s — %s level %d\n\n", res.SubjectID, res.SkillCode, res.TargetLevel)
	fmt.Printf("Technical   %6.2f / 64\n", res.Technical)
	fmt.Printf("Reflection  %6.2f / 36\n", res.Reflection)
	fmt.Printf("Total       %6.2f / 100\n\n", res.Total)

	fmt.Printf("Coverage %.0f%%, multi-entry %.0f%%, verified %.0f%%\n",
		res.Coverage.CoveragePct, res.Coverage.MultiEntryPct, res.Coverage.VerifiedPct)
	fmt.Printf("Responsibility: %d distinct, %d instances (%d core)",
		res.Responsibility.CoreCount, res.Responsibility.TotalInstances, res.Responsibility.CoreInstances)
	if res.Responsibility.Passed {
		fmt.Println(" — passed")
	} else {
		fmt.Println(" — NOT met")
	}

	fmt.Printf("\nVerdict: %s", res.Verdict)
	if res.PassStatus {
		fmt.Println(" (pass)")
	} else {
		fmt.Println(" (no pass)")
	}

	if len(res.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range res.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}
}

// resolveJudge picks the reflection judge: the deterministic heuristic by
// default, or an LLM-backed judge when --judge=model and provider
// credentials are discoverable in the environment.
func resolveJudge(cmd *cobra.Command, log *logger.Logger) (judge.Judge, error) {
	name, _ := cmd.Flags().GetString("judge")
	switch name {
	case "heuristic":
		return judge.NewHeuristicJudge(), nil
	case "model":
		cfg, err := llm.ResolveConfig()
		if err != nil {
			return nil, err
		}
		provider, err := llm.NewProvider(cmd.Context(), cfg, log)
		if err != nil {
			return nil, err
		}
		return judge.NewModelJudge(provider, judge.DefaultModelJudgeConfig()), nil
	default:
		return nil, fmt.Errorf("unknown judge %q (want heuristic or model)", name)
	}
}

func init() {
	scoreCmd.Flags().String("judge", "heuristic", "Reflection judge: heuristic or model")
	scoreCmd.Flags().String("rubric", "", "Path to a YAML rubric override")
	scoreCmd.Flags().Bool("json", false, "Print the full result as JSON")
	scoreCmd.Flags().Bool("no-audit", false, "Skip recording the assessment in the audit log")
}
