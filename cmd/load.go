package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhartley/compass/internal/facade"
	"github.com/mhartley/compass/internal/ontology"
)

var loadCmd = &cobra.Command{
	Use:   "load <document.json>",
	Short: "Validate a framework document and report what it defines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		raw, err := readJSONFile(args[0])
		if err != nil {
			return err
		}

		// Parse alone catches shape and version problems; loading into a
		// fresh engine additionally runs full graph validation.
		if _, err := ontology.Parse(raw); err != nil {
			return err
		}
		engine := facade.New(facade.Options{Log: log})
		res, err := engine.LoadOntology(cmd.Context(), raw, false)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s: valid\n", res.Framework, res.Version)
		st := res.Statistics
		fmt.Printf("  skills        %d\n", st.Skills)
		fmt.Printf("  levels        %d\n", st.Levels)
		fmt.Printf("  attributes    %d\n", st.Attributes)
		fmt.Printf("  skill levels  %d\n", st.SkillLevels)
		fmt.Printf("  roles         %d\n", st.Roles)
		fmt.Printf("  prerequisites %d\n", st.Prerequisites)
		fmt.Printf("  complements   %d\n", st.Complements)
		return nil
	},
}
