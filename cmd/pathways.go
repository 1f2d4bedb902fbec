package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhartley/compass/internal/facade"
)

var pathwaysCmd = &cobra.Command{
	Use:   "pathways <role-code>",
	Short: "Find roles sharing required skills with the given role",
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

		minShared, _ := cmd.Flags().GetInt("min-shared")
		pathways, err := engine.Pathways(args[0], minShared)
		if err != nil {
			return err
		}
		if len(pathways) == 0 {
			fmt.Println("No adjacent roles found.")
			return nil
		}

		for _, p := range pathways {
			fmt.Printf("%-16s  %-40s  %d shared: %s\n",
				p.RoleCode, p.RoleName, p.SharedCount, strings.Join(p.SharedSkills, ", "))
		}
		return nil
	},
}

func init() {
	pathwaysCmd.Flags().Int("min-shared", 0, "Minimum shared skills (default 3)")
}
