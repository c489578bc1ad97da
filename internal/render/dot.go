// Package render draws graph documents as Graphviz diagrams.
package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/born-ml/graphcodec/internal/serialization"
)

// Options configures diagram output.
type Options struct {
	// RankDir is the Graphviz rank direction: "TB" (default) or "LR".
	RankDir string
	// Literals draws inline payload inputs as separate nodes.
	Literals bool
}

// ToDOT converts a document to Graphviz DOT source. Each record becomes a
// node labelled with its kind, name and output shape. References to ids the
// document does not define (tensors of another graph) are drawn as dashed
// external nodes.
func ToDOT(doc serialization.Document, opts Options) string {
	rankDir := opts.RankDir
	if rankDir == "" {
		rankDir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankDir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	defined := make(map[int64]bool, len(doc))
	for _, rec := range doc {
		defined[rec.Output.ID] = true
	}

	external := make(map[int64]bool)
	var edges []string
	for i, rec := range doc {
		to := nodeID(rec.Output.ID)
		fmt.Fprintf(&buf, "  %q [%s];\n", to, strings.Join(recordAttrs(rec), ", "))

		if rec.Data != nil && rec.Data.IsReference() {
			edges = append(edges, edge(*rec.Data.ID, to, "data", defined, external))
		}
		for _, name := range slices.Sorted(maps.Keys(rec.Inputs)) {
			ref := rec.Inputs[name]
			if ref == nil {
				continue
			}
			if ref.IsReference() {
				edges = append(edges, edge(*ref.ID, to, name, defined, external))
				continue
			}
			if opts.Literals {
				lit := fmt.Sprintf("lit%d_%s", i, name)
				fmt.Fprintf(&buf, "  %q [label=%q, shape=note, fillcolor=\"#f4f4f4\"];\n", lit, ref.String())
				edges = append(edges, fmt.Sprintf("  %q -> %q [label=%q];", lit, to, name))
			}
		}
	}

	for _, id := range slices.Sorted(maps.Keys(external)) {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\"];\n", nodeID(id), fmt.Sprintf("external #%d", id))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int64) string {
	return fmt.Sprintf("t%d", id)
}

func edge(from int64, to, label string, defined, external map[int64]bool) string {
	if !defined[from] {
		external[from] = true
	}
	return fmt.Sprintf("  %q -> %q [label=%q];", nodeID(from), to, label)
}

func recordAttrs(rec serialization.Record) []string {
	lines := []string{strings.TrimSuffix(rec.Type, "Node")}
	if rec.Name != "" {
		lines = append(lines, rec.Name)
	}
	lines = append(lines, fmt.Sprintf("#%d %v", rec.Output.ID, rec.Output.Shape))

	attrs := []string{fmt.Sprintf("label=%q", strings.Join(lines, "\n"))}
	switch rec.Type {
	case "PlaceholderNode":
		attrs = append(attrs, "fillcolor=\"#dbeafe\"")
	case "VariableNode":
		attrs = append(attrs, "fillcolor=\"#dcfce7\"")
	case "ConstantNode":
		attrs = append(attrs, "fillcolor=\"#f4f4f4\"")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG)
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
