package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhartley/compass/internal/facade"
)

var gapCmd = &cobra.Command{
	Use:   "gap <role-code> [SKILL=LEVEL ...]",
	Short: "Show the skill gaps between a current skill set and a role",
	Args:  cobra.MinimumNArgs(1),
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

		current, err := parseSkillLevels(args[1:])
		if err != nil {
			return err
		}

		gaps, err := engine.Gap(args[0], current)
		if err != nil {
			return err
		}
		if len(gaps) == 0 {
			fmt.Println("No gaps: all requirements met.")
			return nil
		}

		fmt.Printf("%-12s  %-32s  %8s  %8s  %6s  %s\n",
			"Code", "Skill", "Required", "Current", "Delta", "Essential")
		fmt.Println(strings.Repeat("─", 85))
		for _, g := range gaps {
			ess := ""
			if g.Essential {
				ess = "yes"
			}
			fmt.Printf("%-12s  %-32s  %8d  %8d  %6d  %s\n",
				g.SkillCode, g.SkillName, g.Required, g.Current, g.Delta, ess)
		}
		fmt.Printf("\n%d gaps\n", len(gaps))
		return nil
	},
}

// parseSkillLevels parses "CODE=LEVEL" pairs.
func parseSkillLevels(args []string) (map[string]int, error) {
	current := make(map[string]int, len(args))
	for _, a := range args {
		code, lv, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("expected SKILL=LEVEL, got %q", a)
		}
		n, err := strconv.Atoi(lv)
		if err != nil {
			return nil, fmt.Errorf("level in %q is not an integer", a)
		}
		current[code] = n
	}
	return current, nil
}
