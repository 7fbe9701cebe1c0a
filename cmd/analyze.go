package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"storyshot/internal/pkg/shottools"
	"storyshot/internal/pkg/storage"
	"storyshot/internal/pkg/storage/local"
	shotService "storyshot/internal/service/shot"
)

var analyzeDuration float64

var analyzeCmd = &cobra.Command{
	Use:   "analyze <shots.json>",
	Short: "Extract characters and image descriptions from an existing shot list",
	Long: `Read a previously generated shot list and write {name}_characters.json and
{name}_descriptions.json next to it. No provider call is made.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Float64VarP(&analyzeDuration, "duration", "d", 0,
		"originally requested length in minutes (0 derives it from the shot count)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	useStderrLogs(GetConfig())

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	shots, err := shottools.ParseShots(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	svc := shotService.NewShotService(shotService.Deps{})
	analysis, err := svc.AnalyzeShots(cmd.Context(), shots, analyzeDuration)
	if err != nil {
		return err
	}

	set, err := shotService.BuildArtifacts(nil, analysis.Characters, analysis.ImageDescriptions)
	if err != nil {
		return err
	}

	st, err := local.NewLocalStorage(filepath.Dir(path), "")
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	charFile, err := st.Upload(cmd.Context(), base+"_characters.json", bytes.NewReader(set.Characters), storage.ContentTypeJSON)
	if err != nil {
		return err
	}
	descFile, err := st.Upload(cmd.Context(), base+"_descriptions.json", bytes.NewReader(set.Descriptions), storage.ContentTypeJSON)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Unique characters in the movie (%d):\n", len(analysis.Characters))
	for _, c := range analysis.Characters {
		fmt.Fprintf(out, "- %s\n", c)
	}

	fmt.Fprintf(out, "\nImage descriptions (%d):\n", len(analysis.ImageDescriptions))
	for i, d := range analysis.ImageDescriptions {
		if i == 3 {
			break
		}
		fmt.Fprintf(out, "\n%d. %s\n", i+1, d)
	}

	fmt.Fprintf(out, "\nCharacter list saved to %s\n", charFile)
	fmt.Fprintf(out, "Image descriptions saved to %s\n", descFile)

	s := analysis.Statistics
	fmt.Fprintf(out, "\nSummary Statistics:\n")
	fmt.Fprintf(out, "- Total shots: %d\n", s.ActualShots)
	fmt.Fprintf(out, "- Number of scenes: %d\n", s.SceneCount)
	fmt.Fprintf(out, "- Number of unique characters: %d\n", s.CharacterCount)
	return nil
}
