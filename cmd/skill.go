package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhartley/compass/internal/facade"
	"github.com/mhartley/compass/internal/graph"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the competency graph's skills",
}

var skillListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"find"},
	Short:   "List skills (optionally filtered by category, level, or keyword)",
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

		f := graph.Filter{}
		f.Category, _ = cmd.Flags().GetString("category")
		f.Level, _ = cmd.Flags().GetInt("level")
		f.Keyword, _ = cmd.Flags().GetString("keyword")
		limit, _ := cmd.Flags().GetInt("limit")

		skills := engine.FindSkills(f, limit)
		if len(skills) == 0 {
			return fmt.Errorf("no skills match the filter")
		}

		// Header.
		fmt.Printf("%-12s  %-40s  %-20s  %s\n", "Code", "Name", "Category", "Levels")
		fmt.Println(strings.Repeat("─", 90))

		for _, s := range skills {
			name := s.Name
			if len(name) > 40 {
				name = name[:37] + "..."
			}
			fmt.Printf("%-12s  %-40s  %-20s  %s\n",
				s.Code, name, s.Category, levelRange(s.AvailableLevels))
		}

		fmt.Printf("\n%d skills\n", len(skills))
		return nil
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <code>",
	Short: "Show a skill with its level descriptors and relations",
	Args:  cobra.ExactArgs(1),
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

		sk, levels, err := engine.GetSkill(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s — %s\n", sk.Code, sk.Name)
		fmt.Printf("Category: %s", sk.Category)
		if sk.Subcategory != "" {
			fmt.Printf(" / %s", sk.Subcategory)
		}
		fmt.Println()
		if sk.Description != "" {
			fmt.Println(sk.Description)
		}
		fmt.Println()
		for _, sl := range levels {
			fmt.Printf("  Level %d: %s\n", sl.Level, sl.Description)
		}

		snap := engine.Store().Snapshot()
		if cs := snap.Complements(sk.Code); len(cs) > 0 {
			fmt.Printf("\nComplements: %s\n", strings.Join(cs, ", "))
		}
		return nil
	},
}

func levelRange(levels []int) string {
	parts := make([]string, len(levels))
	for i, lv := range levels {
		parts[i] = fmt.Sprint(lv)
	}
	return strings.Join(parts, ",")
}

func init() {
	skillListCmd.Flags().String("category", "", "Filter by category")
	skillListCmd.Flags().Int("level", 0, "Only skills defined at this level")
	skillListCmd.Flags().String("keyword", "", "Case-insensitive match on name or description")
	skillListCmd.Flags().Int("limit", 0, "Stop after this many results (0 for all)")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
}
