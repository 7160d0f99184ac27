package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsreel/internal/fileutil"
	"newsreel/internal/quotes"
	"newsreel/internal/ticker"
)

func newTickerCommand(ctx *commandContext) *cobra.Command {
	var (
		quotesPath string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "ticker",
		Short: "Render a scrolling quote strip image",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			feed, err := quotes.Load(quotesPath)
			if err != nil {
				return err
			}
			strip, err := ticker.Render(feed, cfg.Video.Width, ticker.Options{
				Height:        cfg.Ticker.Height,
				FontSize:      cfg.Ticker.FontSize,
				Speed:         cfg.Ticker.Speed,
				StripMultiple: cfg.Ticker.StripMultiple,
			})
			if err != nil {
				return err
			}

			if err := fileutil.WritePNG(outputPath, strip.Image); err != nil {
				return fmt.Errorf("write strip: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d, cycle %dpx, full pass %.1fs)\n",
				outputPath, strip.Image.Bounds().Dx(), strip.Image.Bounds().Dy(),
				strip.CycleWidth, strip.PassSeconds())
			return nil
		},
	}

	cmd.Flags().StringVar(&quotesPath, "quotes", "", "Market quote feed JSON (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "ticker_strip.png", "Strip image destination")
	_ = cmd.MarkFlagRequired("quotes")
	return cmd
}
