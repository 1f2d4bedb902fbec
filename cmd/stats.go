package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhartley/compass/internal/facade"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show counts for the loaded competency graph",
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

		st := engine.Statistics()
		fmt.Printf("skills        %d\n", st.Skills)
		fmt.Printf("levels        %d\n", st.Levels)
		fmt.Printf("attributes    %d\n", st.Attributes)
		fmt.Printf("skill levels  %d\n", st.SkillLevels)
		fmt.Printf("roles         %d\n", st.Roles)
		fmt.Printf("prerequisites %d\n", st.Prerequisites)
		fmt.Printf("complements   %d\n", st.Complements)
		return nil
	},
}
