package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/mastery"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery per subject for the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		active := env.services.Profiles.Active()
		fmt.Printf("Profile: %s\n\n", active.Name)

		if len(active.Subjects) == 0 {
			fmt.Println("No subjects yet. Import one with: quizdeck import <file.json>")
			return nil
		}

		for _, subj := range active.Subjects {
			pct := mastery.SubjectPercent(subj, active.Progress)
			var mastered int
			for _, q := range subj.Questions() {
				if p := active.Progress.Question(subj.ID, q.TopicID, q.ID); p != nil && p.Mastered {
					mastered++
				}
			}
			fmt.Printf("%-32s %3d%%  (%d/%d mastered)\n",
				subj.Name, pct, mastered, len(subj.Questions()))
			for _, topic := range subj.Topics {
				fmt.Printf("  %-30s %3d%%\n",
					topic.Name, mastery.TopicPercent(subj.ID, topic, active.Progress))
			}
		}
		return nil
	},
}
