package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/born-ml/graphcodec/internal/graph"
	"github.com/born-ml/graphcodec/internal/serialization"
)

// workspace holds documents decoded in command-line order. Each document is
// seeded with the tensor table of the ones before it, so later documents can
// refer to tensors of earlier ones.
type workspace struct {
	paths        []string
	docs         []serialization.Document
	results      []*serialization.Result
	tensors      serialization.Table
	placeholders map[string]*graph.Tensor
	variables    map[string]*graph.Tensor
}

// readDocumentFile reads a document, picking the format from the extension.
func readDocumentFile(path string) (serialization.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := serialization.ReadDocument(f, serialization.FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// loadWorkspace validates and decodes the documents at paths in order.
// Later registrations of a name replace earlier ones.
func loadWorkspace(ctx context.Context, paths []string) (*workspace, error) {
	logger := loggerFromContext(ctx)
	ws := &workspace{
		tensors:      serialization.Table{},
		placeholders: make(map[string]*graph.Tensor),
		variables:    make(map[string]*graph.Tensor),
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prog := newProgress(logger)

		doc, err := readDocumentFile(path)
		if err != nil {
			return nil, err
		}
		if err := serialization.Validate(doc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		res, err := serialization.Decode(doc, ws.tensors)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		ws.paths = append(ws.paths, path)
		ws.docs = append(ws.docs, doc)
		ws.results = append(ws.results, res)
		ws.tensors = res.Tensors
		maps.Copy(ws.placeholders, res.Placeholders)
		maps.Copy(ws.variables, res.Variables)

		prog.done(fmt.Sprintf("decoded %s: %d records", path, len(doc)))
	}
	return ws, nil
}

// lookup finds a named tensor. Variables shadow placeholders of the same name.
func (ws *workspace) lookup(name string) (*graph.Tensor, error) {
	if v, ok := ws.variables[name]; ok {
		return v, nil
	}
	if p, ok := ws.placeholders[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("no variable or placeholder named %q (have %v)", name, ws.names())
}

func (ws *workspace) names() []string {
	names := slices.Collect(maps.Keys(ws.variables))
	for name := range ws.placeholders {
		if _, ok := ws.variables[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
