package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/graphcodec/internal/serialization"
)

// convertOpts holds the flags of the convert command.
type convertOpts struct {
	output    string // output path, stdout when empty
	format    string // "json" or "yaml"
	normalize bool   // rebase ids so the first node is 0
}

func (a *app) newConvertCmd() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <doc>",
		Short: "Decode a document and encode it again",
		Long: `Decode a self-contained document into a graph and encode the graph again,
optionally switching between JSON and YAML and renumbering ids.

The output format is taken from --format, then from the extension of
--output, then from the configuration file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("normalize") {
				opts.normalize = a.cfg.Output.NormalizeIDs
			}
			format, err := a.outputFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			return runConvert(cmd.Context(), cmd.OutOrStdout(), args[0], format, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json, yaml")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", true, "rebase ids so the first node has id 0")

	return cmd
}

// outputFormat resolves the document format for convert.
func (a *app) outputFormat(flag, output string) (serialization.Format, error) {
	switch {
	case flag != "":
		return serialization.ParseFormat(flag)
	case output != "":
		return serialization.FormatForPath(output), nil
	default:
		return serialization.ParseFormat(a.cfg.Output.Format)
	}
}

func runConvert(ctx context.Context, stdout io.Writer, path string, format serialization.Format, opts *convertOpts) error {
	logger := loggerFromContext(ctx)

	ws, err := loadWorkspace(ctx, []string{path})
	if err != nil {
		return err
	}
	doc := serialization.Encode(ws.results[0].Graph, serialization.WithNormalizedIDs(opts.normalize))
	logger.Debug("encoded", "records", len(doc), "format", format, "normalize", opts.normalize)

	if opts.output == "" {
		return serialization.WriteDocument(stdout, doc, format)
	}
	if err := writeDocumentFile(opts.output, doc, format); err != nil {
		return err
	}
	printer{w: stdout}.success("converted %s", path)
	printer{w: stdout}.file(opts.output)
	return nil
}

func writeDocumentFile(path string, doc serialization.Document, format serialization.Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := serialization.WriteDocument(f, doc, format); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
