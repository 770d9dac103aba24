package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/importer"
	"github.com/abhisek/quizdeck/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json> [media file or directory...]",
	Short: "Import subjects from a JSON file",
	Long: "Import subjects from a JSON file into the active profile. Extra " +
		"arguments name media files or directories; questions whose media " +
		"source matches a relative path are rewritten to stored attachments.",
	Args: cobra.MinimumNArgs(1),
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

		subjects, err := importer.Parse(data)
		if err != nil {
			return fmt.Errorf("invalid import file:\n%w", err)
		}

		files, err := collectMediaFiles(args[1:])
		if err != nil {
			return err
		}
		if len(files) > 0 {
			if err := importer.ResolveMedia(cmd.Context(), subjects, files, env.blobs); err != nil {
				return fmt.Errorf("store media: %w", err)
			}
		}

		profiles := env.services.Profiles
		targetID := profiles.ActiveID()
		if name, _ := cmd.Flags().GetString("profile"); name != "" {
			targetID = ""
			for _, p := range profiles.List() {
				if p.ID == name || p.Name == name {
					targetID = p.ID
					break
				}
			}
			if targetID == "" {
				return fmt.Errorf("no profile named %q", name)
			}
		}

		if replace, _ := cmd.Flags().GetBool("replace"); replace {
			profiles.SetSubjects(targetID, subjects)
		} else {
			profiles.ImportSubjects(targetID, subjects)
		}

		if err := env.services.Persister.Save(store.NewDocument(profiles, env.services.Settings)); err != nil {
			return fmt.Errorf("save state: %w", err)
		}

		var topics, questions int
		for _, s := range subjects {
			topics += len(s.Topics)
			questions += len(s.Questions())
		}
		fmt.Printf("Imported %d subject(s), %d topic(s), %d question(s).\n",
			len(subjects), topics, questions)
		return nil
	},
}

func init() {
	importCmd.Flags().String("profile", "", "Target profile ID or name (default: active profile)")
	importCmd.Flags().Bool("replace", false, "Replace matching subjects instead of merging")
}

// collectMediaFiles reads the named files and directories into a map
// keyed the way import documents reference them: directory entries by
// their path relative to the directory, plain files by their argument
// path and base name.
func collectMediaFiles(args []string) (map[string][]byte, error) {
	files := make(map[string][]byte)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			data, err := os.ReadFile(arg)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", arg, err)
			}
			files[filepath.ToSlash(filepath.Clean(arg))] = data
			files[filepath.Base(arg)] = data
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(arg, path)
			if err != nil {
				return err
			}
			files[filepath.ToSlash(rel)] = data
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return files, nil
}
