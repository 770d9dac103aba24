package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [subject id]",
	Short: "Reset progress, or wipe all stored state",
	Long: "With a subject ID, erases the active profile's progress for that " +
		"subject. Without arguments, wipes the entire state database: every " +
		"profile, subject, and attachment.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		yes, _ := cmd.Flags().GetBool("yes")

		if len(args) == 1 {
			subj := env.services.Profiles.Active().Subject(args[0])
			if subj == nil {
				return fmt.Errorf("active profile has no subject %q", args[0])
			}
			if !yes && !confirm(fmt.Sprintf("Reset all progress for %q?", subj.Name)) {
				return nil
			}
			env.services.Machine.ResetSubjectProgress(subj.ID)
			if err := saveProfiles(env); err != nil {
				return err
			}
			fmt.Printf("Progress for %q reset.\n", subj.Name)
			return nil
		}

		if !yes && !confirm("Wipe ALL profiles, subjects, and progress?") {
			return nil
		}
		if err := env.wipe(cmd.Context()); err != nil {
			return fmt.Errorf("wipe state: %w", err)
		}
		fmt.Println("All state wiped.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
