package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/stylepress/export"
	"github.com/ByLCY/stylepress/preview"
	htmlrenderer "github.com/ByLCY/stylepress/renderer/html"
)

type previewOpts struct {
	output string
	design string
	title  string
	minify bool
}

func newPreviewCmd() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the live preview as a standalone HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			if !cmd.Flags().Changed("minify") {
				opts.minify = s.HTML.Minify
			}
			if opts.title == "" {
				opts.title = s.HTML.Title
			}
			return runPreview(cmd.Context(), s, opts, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.design, "design", "d", "", "design image to preview instead of the sample page")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().BoolVar(&opts.minify, "minify", true, "minify the HTML output")
	return cmd
}

func runPreview(ctx context.Context, s Settings, opts previewOpts, stdout io.Writer) error {
	cfg, err := loadState(s.State.Config)
	if err != nil {
		return err
	}
	design, err := loadDesign(opts.design)
	if err != nil {
		return err
	}
	html, err := htmlrenderer.Render(preview.Project(cfg, previewContent(design)), htmlrenderer.Options{
		Title:  opts.title,
		Minify: opts.minify,
	})
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err = stdout.Write(html)
		return err
	}
	if err := export.WriteFileAtomic(opts.output, html); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("HTML 预览", "bytes", len(html))
	printFile(opts.output)
	return nil
}
