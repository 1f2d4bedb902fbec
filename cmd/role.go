package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhartley/compass/internal/facade"
	"github.com/mhartley/compass/internal/framework"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Browse roles and their competency profiles",
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all roles",
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

		roles := engine.Store().Snapshot().Roles()
		for _, r := range roles {
			fmt.Printf("%-16s  %-40s  %d requirements\n", r.Code, r.Name, len(r.Requirements))
		}
		fmt.Printf("\n%d roles\n", len(roles))
		return nil
	},
}

var roleShowCmd = &cobra.Command{
	Use:   "show <code>",
	Short: "Show a role's essential and desirable requirements",
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

		role, profile, err := engine.GetRole(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s — %s\n\n", role.Code, role.Name)
		printRequirements("Essential", profile.Essential)
		printRequirements("Desirable", profile.Desirable)
		return nil
	},
}

func printRequirements(heading string, reqs []framework.Requirement) {
	if len(reqs) == 0 {
		return
	}
	fmt.Printf("%s:\n", heading)
	for _, req := range reqs {
		fmt.Printf("  %-12s  level %d+\n", req.SkillCode, req.MinLevel)
	}
	fmt.Println()
}

func init() {
	roleCmd.AddCommand(roleListCmd)
	roleCmd.AddCommand(roleShowCmd)
}
