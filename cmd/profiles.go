package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/profile"
	"github.com/abhisek/quizdeck/internal/store"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage learner profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		activeID := env.services.Profiles.ActiveID()
		for _, p := range env.services.Profiles.List() {
			marker := " "
			if p.ID == activeID {
				marker = "*"
			}
			fmt.Printf("%s %-24s %s  (%d subjects)\n", marker, p.Name, p.ID, len(p.Subjects))
		}
		return nil
	},
}

var profilesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a profile and make it active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		p := env.services.Profiles.Create(args[0])
		if err := saveProfiles(env); err != nil {
			return err
		}
		fmt.Printf("Created profile %q (%s).\n", p.Name, p.ID)
		return nil
	},
}

var profilesSwitchCmd = &cobra.Command{
	Use:   "switch <id or name>",
	Short: "Make a profile active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		p := findProfile(env.services.Profiles, args[0])
		if p == nil {
			return fmt.Errorf("no profile %q", args[0])
		}
		env.services.Profiles.Switch(p.ID)
		if err := saveProfiles(env); err != nil {
			return err
		}
		fmt.Printf("Active profile: %s\n", p.Name)
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <id or name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		p := findProfile(env.services.Profiles, args[0])
		if p == nil {
			return fmt.Errorf("no profile %q", args[0])
		}
		env.services.Profiles.Delete(p.ID)
		if err := saveProfiles(env); err != nil {
			return err
		}
		fmt.Printf("Deleted profile %q.\n", p.Name)
		return nil
	},
}

var profilesExportCmd = &cobra.Command{
	Use:   "export <id or name> <out.json>",
	Short: "Export a profile's subjects and progress to JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		p := findProfile(env.services.Profiles, args[0])
		if p == nil {
			return fmt.Errorf("no profile %q", args[0])
		}
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[1], err)
		}
		fmt.Printf("Exported %q to %s.\n", p.Name, args[1])
		return nil
	},
}

var profilesImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a previously exported profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		var p profile.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode profile: %w", err)
		}
		env.services.Profiles.ImportProfile(&p)
		if err := saveProfiles(env); err != nil {
			return err
		}
		fmt.Printf("Imported profile %q.\n", p.Name)
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesCreateCmd)
	profilesCmd.AddCommand(profilesSwitchCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	profilesCmd.AddCommand(profilesExportCmd)
	profilesCmd.AddCommand(profilesImportCmd)
}

// findProfile matches by ID first, then by name.
func findProfile(s *profile.Store, key string) *profile.Profile {
	if p := s.Get(key); p != nil {
		return p
	}
	for _, p := range s.List() {
		if p.Name == key {
			return p
		}
	}
	return nil
}

func saveProfiles(env *appEnv) error {
	err := env.services.Persister.Save(store.NewDocument(env.services.Profiles, env.services.Settings))
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
