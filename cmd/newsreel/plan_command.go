package main

import (
	"github.com/spf13/cobra"

	"newsreel/internal/scenes"
	"newsreel/internal/transcript"
	"newsreel/internal/visuals"
)

// planOutput is the scene plan document: scenes with their assigned visuals.
type planOutput struct {
	Duration float64              `json:"duration"`
	Scenes   []scenes.Scene       `json:"scenes"`
	Visuals  []visuals.Assignment `json:"visuals,omitempty"`
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var (
		wordsPath  string
		assetsPath string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Scene-segment a transcript and assign visuals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			words, err := transcript.Load(wordsPath)
			if err != nil {
				return err
			}
			sceneList, err := scenes.Segment(words.Words, scenes.Options{
				PauseThresholdSeconds: cfg.Scenes.PauseThresholdSeconds,
				MaxSceneSeconds:       cfg.Scenes.MaxSceneSeconds,
			})
			if err != nil {
				return err
			}

			output := planOutput{
				Duration: words.Duration(),
				Scenes:   sceneList,
			}
			if assetsPath != "" {
				manifest, err := visuals.LoadManifest(assetsPath)
				if err != nil {
					return err
				}
				manifest = manifest.Resolve(cfg.Paths.AssetDir)
				assigner := visuals.NewAssigner(manifest.Assets, nil, ctx.ensureLogger())
				output.Visuals = assigner.Assign(len(sceneList))
			}

			return writeJSONOutput(cmd, outputPath, output)
		},
	}

	cmd.Flags().StringVar(&wordsPath, "words", "", "Word-level transcript JSON (required)")
	cmd.Flags().StringVar(&assetsPath, "assets", "", "Visual asset manifest JSON")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write JSON here instead of stdout")
	_ = cmd.MarkFlagRequired("words")
	return cmd
}
