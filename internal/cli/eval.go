package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/graphcodec/internal/eval"
	"github.com/born-ml/graphcodec/internal/serialization"
	"github.com/born-ml/graphcodec/internal/tensor"
)

// evalOpts holds the flags of the eval command.
type evalOpts struct {
	tensor string   // variable or placeholder to evaluate
	feeds  []string // name=v1,v2,... placeholder values
	vars   string   // variable file applied before evaluation
}

func (a *app) newEvalCmd() *cobra.Command {
	var opts evalOpts

	cmd := &cobra.Command{
		Use:   "eval <doc>...",
		Short: "Evaluate a named tensor",
		Long: `Decode documents in order and evaluate a variable or placeholder by name.
Placeholders reached by the evaluation must be fed with --feed. Values are
given in row-major order and take the placeholder's shape.`,
		Example: `  graphcodec eval base.json head.json --tensor result
  graphcodec eval net.json --tensor cost --feed x=1,2,3 --feed y=0,1
  graphcodec eval net.json --tensor out --vars trained.born --feed x=0.5,1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.tensor == "" {
				return fmt.Errorf("--tensor is required")
			}
			return runEval(cmd.Context(), cmd.OutOrStdout(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.tensor, "tensor", "t", "", "variable or placeholder to evaluate")
	cmd.Flags().StringArrayVar(&opts.feeds, "feed", nil, "placeholder value as name=v1,v2,... (repeatable)")
	cmd.Flags().StringVar(&opts.vars, "vars", "", "variable file to load before evaluating")

	return cmd
}

func runEval(ctx context.Context, stdout io.Writer, paths []string, opts *evalOpts) error {
	logger := loggerFromContext(ctx)

	ws, err := loadWorkspace(ctx, paths)
	if err != nil {
		return err
	}
	if opts.vars != "" {
		header, err := serialization.LoadVariables(opts.vars, ws.variables)
		if err != nil {
			return err
		}
		logger.Debug("loaded variables", "file", opts.vars, "tensors", len(header.Tensors))
	}

	target, err := ws.lookup(opts.tensor)
	if err != nil {
		return err
	}
	feeds := make(eval.Feeds, len(opts.feeds))
	for _, entry := range opts.feeds {
		name, raw, err := parseFeed(ws, entry)
		if err != nil {
			return err
		}
		feeds[ws.placeholders[name]] = raw
	}

	prog := newProgress(logger)
	result, err := eval.NewSession().Eval(target, feeds)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", opts.tensor, err)
	}
	prog.done("evaluated " + opts.tensor)

	p := printer{w: stdout}
	p.title("%s", opts.tensor)
	p.keyValue("shape", fmt.Sprint(result.Shape()))
	p.keyValue("dtype", result.DType().String())
	p.keyValue("values", fmt.Sprint(result.Values()))
	return nil
}

// parseFeed parses name=v1,v2,... into a value shaped like the placeholder.
func parseFeed(ws *workspace, entry string) (string, *tensor.RawTensor, error) {
	name, list, ok := strings.Cut(entry, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid feed %q (want name=v1,v2,...)", entry)
	}
	ph, ok := ws.placeholders[name]
	if !ok {
		return "", nil, fmt.Errorf("feed %q: no placeholder named %q", entry, name)
	}

	var values []float64
	for field := range strings.SplitSeq(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("feed %s: %w", name, err)
		}
		values = append(values, v)
	}
	raw, err := tensor.FromValues(ph.Shape(), tensor.Float32, values)
	if err != nil {
		return "", nil, fmt.Errorf("feed %s: %w", name, err)
	}
	return name, raw, nil
}
