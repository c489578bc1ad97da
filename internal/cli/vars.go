package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/graphcodec/internal/serialization"
)

func (a *app) newVarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Export and show variable files",
	}
	cmd.AddCommand(a.newVarsExportCmd())
	cmd.AddCommand(a.newVarsShowCmd())
	return cmd
}

func (a *app) newVarsExportCmd() *cobra.Command {
	var (
		output   string
		metadata []string
	)

	cmd := &cobra.Command{
		Use:   "export <doc>...",
		Short: "Write the variable values of documents to a .born file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			meta, err := parseMetadata(metadata)
			if err != nil {
				return err
			}
			return runVarsExport(cmd.Context(), cmd.OutOrStdout(), args, output, meta)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "variable file to write")
	cmd.Flags().StringArrayVar(&metadata, "meta", nil, "metadata entry as key=value (repeatable)")

	return cmd
}

func (a *app) newVarsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file.born>",
		Short: "Print the header and tensors of a variable file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVarsShow(cmd.OutOrStdout(), args[0])
		},
	}
}

func runVarsExport(ctx context.Context, stdout io.Writer, paths []string, output string, meta map[string]string) error {
	ws, err := loadWorkspace(ctx, paths)
	if err != nil {
		return err
	}
	values := serialization.VariableValues(ws.variables)
	if len(values) < len(ws.variables) {
		loggerFromContext(ctx).Warn("skipping variables without a literal value",
			"skipped", len(ws.variables)-len(values))
	}
	if err := serialization.SaveVariables(output, ws.variables, meta); err != nil {
		return err
	}

	p := printer{w: stdout}
	p.success("exported %d variables", len(values))
	p.file(output)
	return nil
}

func runVarsShow(stdout io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	values, header, err := serialization.ReadVariables(f, serialization.DefaultReaderOptions)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	p := printer{w: stdout}
	p.title("%s", path)
	p.keyValue("format", fmt.Sprintf("v%d", header.FormatVersion))
	p.keyValue("producer", header.Producer)
	p.keyValue("content", header.Content)
	if !header.CreatedAt.IsZero() {
		p.keyValue("created", header.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	for _, key := range slices.Sorted(maps.Keys(header.Metadata)) {
		p.keyValue("meta."+key, header.Metadata[key])
	}

	p.title("tensors")
	for _, meta := range header.Tensors {
		p.keyValue(meta.Name, fmt.Sprintf("%s %v %v", meta.DType, meta.Shape, values[meta.Name].Values()))
	}
	return nil
}

func parseMetadata(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q (want key=value)", entry)
		}
		meta[key] = value
	}
	return meta, nil
}
