package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/born-ml/graphcodec/internal/graph"
)

func (a *app) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <doc>...",
		Short: "Summarize graph documents",
		Long: `Decode documents in order, sharing one tensor table, and print the node
kinds of each document plus the placeholders and variables they register.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd.Context(), args)
			if err != nil {
				return err
			}
			printInspect(printer{w: cmd.OutOrStdout()}, ws)
			return nil
		},
	}
}

func printInspect(p printer, ws *workspace) {
	for i, res := range ws.results {
		p.title("%s", ws.paths[i])
		p.detail("%d records, %d nodes", len(ws.docs[i]), res.Graph.Len())

		counts := make(map[graph.Kind]int)
		for _, n := range res.Graph.Nodes() {
			counts[n.Kind()]++
		}
		for _, kind := range graph.AllKinds() {
			if c := counts[kind]; c > 0 {
				p.keyValue(kind.TypeName(), fmt.Sprint(c))
			}
		}
	}

	printRegistry(p, "placeholders", ws.placeholders)
	printRegistry(p, "variables", ws.variables)
}

func printRegistry(p printer, title string, reg map[string]*graph.Tensor) {
	if len(reg) == 0 {
		return
	}
	p.title("%s", title)
	for _, name := range slices.Sorted(maps.Keys(reg)) {
		t := reg[name]
		p.keyValue(name, fmt.Sprintf("#%d %v", t.ID(), t.Shape()))
	}
}
