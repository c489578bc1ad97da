package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/graphcodec/internal/render"
	"github.com/born-ml/graphcodec/internal/serialization"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output   string // .dot, .svg or .png; DOT to stdout when empty
	rankDir  string // Graphviz rank direction
	literals bool   // draw inline payloads as nodes
}

func (a *app) newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <doc>",
		Short: "Draw a document as a Graphviz diagram",
		Long: `Render a document as DOT, SVG or PNG. The output format follows the
extension of --output. Without --output the DOT source is printed.

References to tensors the document does not define are drawn as dashed
external nodes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("rankdir") {
				opts.rankDir = a.cfg.Render.RankDir
			}
			if !cmd.Flags().Changed("literals") {
				opts.literals = a.cfg.Render.Literals
			}
			if !validRankDir(opts.rankDir) {
				return fmt.Errorf("invalid rankdir: %s (must be TB, LR, BT or RL)", opts.rankDir)
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file: .dot, .svg or .png (default DOT to stdout)")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "TB", "rank direction: TB, LR, BT, RL")
	cmd.Flags().BoolVar(&opts.literals, "literals", false, "draw inline payloads as nodes")

	return cmd
}

func runRender(ctx context.Context, stdout io.Writer, path string, opts *renderOpts) error {
	doc, err := readDocumentFile(path)
	if err != nil {
		return err
	}
	if err := serialization.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	dot := render.ToDOT(doc, render.Options{
		RankDir:  strings.ToUpper(opts.rankDir),
		Literals: opts.literals,
	})
	if opts.output == "" {
		_, err := io.WriteString(stdout, dot)
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	var data []byte
	switch ext := strings.ToLower(filepath.Ext(opts.output)); ext {
	case ".dot", ".gv":
		data = []byte(dot)
	case ".svg":
		data, err = render.RenderSVG(ctx, dot)
	case ".png":
		data, err = render.RenderPNG(ctx, dot)
	default:
		return fmt.Errorf("unsupported output extension %q (must be .dot, .svg or .png)", ext)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil { //nolint:gosec // diagrams are not secret
		return err
	}
	prog.done("rendered " + opts.output)

	p := printer{w: stdout}
	p.success("rendered %s", path)
	p.file(opts.output)
	return nil
}
