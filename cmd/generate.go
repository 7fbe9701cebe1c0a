package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"storyshot/internal/config"
	"storyshot/internal/pkg/logger"
	"storyshot/internal/pkg/shottools/providers"
	"storyshot/internal/pkg/storage/local"
	shotService "storyshot/internal/service/shot"
)

// defaultStory 未提供故事时使用的示例
const defaultStory = "Once upon a time, there was a brave knight who set out to slay a dragon threatening the kingdom. " +
	"After a long journey through dark forests and treacherous mountains, the knight arrived at the dragon's cave. " +
	"To the knight's surprise, the dragon was not evil but merely misunderstood and lonely. " +
	"Instead of fighting, they became friends and together protected the kingdom from a real threat - " +
	"an army of shadow creatures approaching from the north."

var generateOpts struct {
	storyFile   string
	duration    float64
	style       string
	outputDir   string
	printStream bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a shot list from a story",
	Long: `Generate a shot list from a story and write three JSON files to the output directory:
  shot_output_{N}min_{style}.json, characters_{N}min_{style}.json, image_descriptions_{N}min_{style}.json

The story is read from --story-file ("-" for stdin). Without it the built-in knight and dragon story is used.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringVarP(&generateOpts.storyFile, "story-file", "f", "", `story text file ("-" reads stdin)`)
	flags.Float64VarP(&generateOpts.duration, "duration", "d", 1.0, "video length in minutes")
	flags.StringVarP(&generateOpts.style, "style", "s", "anime", "visual style")
	flags.StringVarP(&generateOpts.outputDir, "output-dir", "o", ".", "directory for the generated JSON files")
	flags.BoolVar(&generateOpts.printStream, "print-stream", false, "print model output as it streams")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.ValidateGeneration(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	useStderrLogs(cfg)

	story, err := readStory(cmd.InOrStdin(), generateOpts.storyFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := providers.NewStreamProvider(ctx, &cfg.AI)
	if err != nil {
		return err
	}

	// 产物直接写到输出目录，不使用 runs/{run_id} 前缀
	svc := shotService.NewShotService(shotService.Deps{
		Provider: provider,
		Generate: cfg.Generation,
	})

	out := cmd.OutOrStdout()
	var onFragment func(string)
	if generateOpts.printStream {
		onFragment = func(fragment string) { fmt.Fprint(out, fragment) }
	}

	run, err := svc.GenerateShots(ctx, &shotService.GenerateShotsInput{
		StoryText:       story,
		DurationMinutes: generateOpts.duration,
		Style:           generateOpts.style,
	}, onFragment)
	if err != nil {
		return err
	}
	if generateOpts.printStream {
		fmt.Fprintln(out)
	}

	st, err := local.NewLocalStorage(generateOpts.outputDir, "")
	if err != nil {
		return err
	}
	set, err := shotService.BuildArtifacts(run.Shots, run.Characters, run.ImageDescriptions)
	if err != nil {
		return err
	}
	files, err := shotService.SaveArtifacts(ctx, st, "", run.DurationMinutes, run.Style, set)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nUnique characters in the movie (%d):\n", len(run.Characters))
	for _, c := range run.Characters {
		fmt.Fprintf(out, "- %s\n", c)
	}
	for _, kind := range []string{shotService.ArtifactShots, shotService.ArtifactCharacters, shotService.ArtifactDescriptions} {
		name := shotService.ArtifactFileName(kind, run.DurationMinutes, run.Style)
		fmt.Fprintf(out, "Saved %s\n", files[name])
	}

	s := run.Statistics
	fmt.Fprintf(out, "\nSummary Statistics:\n")
	fmt.Fprintf(out, "- Total video length: %v minutes\n", s.RequestedDurationMinutes)
	fmt.Fprintf(out, "- Expected shots: %d\n", s.ExpectedShots)
	fmt.Fprintf(out, "- Generated shots: %d\n", s.ActualShots)
	fmt.Fprintf(out, "- Number of scenes: %d\n", s.SceneCount)
	fmt.Fprintf(out, "- Number of unique characters: %d\n", s.CharacterCount)
	return nil
}

// readStory 读取故事文本，未指定文件时返回示例故事
func readStory(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return defaultStory, nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read story: %w", err)
	}
	return string(data), nil
}

// useStderrLogs 结果输出到 stdout 时，日志改写到 stderr
func useStderrLogs(cfg *config.Config) {
	if cfg.Log.Output != "" && cfg.Log.Output != "stdout" {
		return
	}
	logCfg := cfg.Log
	logCfg.Output = "stderr"
	_ = logger.Init(&logCfg)
}
