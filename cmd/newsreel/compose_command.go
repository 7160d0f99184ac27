package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsreel/internal/pipeline"
	"newsreel/internal/runs"
)

func newComposeCommand(ctx *commandContext) *cobra.Command {
	var (
		title      string
		wordsPath  string
		planPath   string
		quotesPath string
		assetsPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Run the full pipeline and write a timeline document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := runs.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer store.Close()

			runner, err := pipeline.NewRunner(cfg, store, ctx.ensureLogger())
			if err != nil {
				return err
			}

			result, err := runner.Compose(cmd.Context(), pipeline.Request{
				Title:      title,
				WordsPath:  wordsPath,
				PlanPath:   planPath,
				QuotesPath: quotesPath,
				AssetsPath: assetsPath,
				OutputDir:  outputDir,
			})
			if err != nil {
				if pipeline.Recoverable(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Transient failure; rerun compose to retry.")
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s completed\n", result.RunID)
			fmt.Fprintf(out, "Timeline: %s\n", result.TimelinePath)
			if result.StripPath != "" {
				fmt.Fprintf(out, "Ticker strip: %s\n", result.StripPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title recorded on the run and timeline")
	cmd.Flags().StringVar(&wordsPath, "words", "", "Word-level transcript JSON (required)")
	cmd.Flags().StringVar(&planPath, "plan", "", "Narration plan JSON; omit to scene-segment the transcript")
	cmd.Flags().StringVar(&quotesPath, "quotes", "", "Market quote feed JSON for the bottom ticker")
	cmd.Flags().StringVar(&assetsPath, "assets", "", "Visual asset manifest JSON")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: per-title dir under paths.output_dir)")
	_ = cmd.MarkFlagRequired("words")
	return cmd
}
