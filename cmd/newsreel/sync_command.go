package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newsreel/internal/timeline"
	"newsreel/internal/transcript"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var (
		wordsPath  string
		planPath   string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize a narration plan against a word transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			words, err := transcript.Load(wordsPath)
			if err != nil {
				return err
			}
			plan, err := timeline.LoadPlan(planPath)
			if err != nil {
				return err
			}

			synchronizer := timeline.NewSynchronizer(ctx.ensureLogger(), timeline.Options{
				AnchorTokens:         cfg.Timeline.AnchorTokens,
				FallbackAdvanceWords: cfg.Timeline.FallbackAdvanceWords,
				MinSegmentSeconds:    cfg.Timeline.MinSegmentSeconds,
			})
			synced, err := synchronizer.Sync(plan.Segments, words.Words)
			if err != nil {
				return err
			}

			return writeJSONOutput(cmd, outputPath, struct {
				Title    string                   `json:"title,omitempty"`
				Segments []timeline.SyncedSegment `json:"segments"`
			}{Title: plan.Title, Segments: synced})
		},
	}

	cmd.Flags().StringVar(&wordsPath, "words", "", "Word-level transcript JSON (required)")
	cmd.Flags().StringVar(&planPath, "plan", "", "Narration plan JSON (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write JSON here instead of stdout")
	_ = cmd.MarkFlagRequired("words")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func writeJSONOutput(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
