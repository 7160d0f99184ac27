package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"newsreel/internal/assetcache"
	"newsreel/internal/compose"
	"newsreel/internal/fileutil"
	"newsreel/internal/preview"
	"newsreel/internal/quotes"
	"newsreel/internal/ticker"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var (
		timelinePath string
		quotesPath   string
		at           float64
		fps          float64
		workers      int
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Rasterize preview frames from a timeline document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(timelinePath)
			if err != nil {
				return fmt.Errorf("read timeline: %w", err)
			}
			var doc compose.Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parse timeline: %w", err)
			}

			// The strip is re-rendered from the quote feed rather than
			// re-read from disk so preview works on a bare timeline too.
			var strip *ticker.Strip
			if quotesPath != "" {
				feed, err := quotes.Load(quotesPath)
				if err != nil {
					return err
				}
				strip, err = ticker.Render(feed, doc.Width, ticker.Options{
					Height:        cfg.Ticker.Height,
					FontSize:      cfg.Ticker.FontSize,
					Speed:         cfg.Ticker.Speed,
					StripMultiple: cfg.Ticker.StripMultiple,
				})
				if err != nil {
					return err
				}
			}

			renderer, err := preview.New(&doc, assetcache.New(), strip, ctx.ensureLogger(), preview.Options{
				CaptionFontSize: cfg.Captions.FontSize,
			})
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("fps") {
				if fps <= 0 {
					fps = cfg.Video.FPS
				}
				dir := outputPath
				if dir == "" {
					dir = "preview_frames"
				}
				total, err := renderer.RenderSequence(cmd.Context(), dir, fps, workers)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames to %s\n", total, dir)
				return nil
			}

			frame, err := renderer.FrameAt(at)
			if err != nil {
				return err
			}
			target := outputPath
			if target == "" {
				target = fmt.Sprintf("frame_%.2fs.png", at)
			}
			if dir := filepath.Dir(target); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := fileutil.WritePNG(target, frame); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&timelinePath, "timeline", "", "Composed timeline JSON (required)")
	cmd.Flags().StringVar(&quotesPath, "quotes", "", "Quote feed JSON to re-render the ticker band")
	cmd.Flags().Float64Var(&at, "at", 0, "Timestamp of the single frame to render")
	cmd.Flags().Float64Var(&fps, "fps", 0, "Render a full frame sequence instead; 0 uses video.fps from config")
	cmd.Flags().IntVar(&workers, "workers", preview.DefaultWorkers, "Concurrent frame renders for --fps")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Frame file or sequence directory")
	_ = cmd.MarkFlagRequired("timeline")
	return cmd
}
