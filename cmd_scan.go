package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"swiftgraph/internal/discover"
	"swiftgraph/internal/export"
	"swiftgraph/internal/graph"
	"swiftgraph/internal/model"
	"swiftgraph/internal/parse"
	"swiftgraph/internal/ranking"
)

const defaultMaxFileSize = 1_000_000 // 1 MB

func newScanCmd() *cobra.Command {
	var (
		format       string
		output       string
		minAccess    string
		top          int
		includeTests bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Build and export the type graph for a Swift codebase",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			if minAccess != "" {
				if _, ok := accessLevels[minAccess]; !ok {
					return fmt.Errorf("unknown access level %q", minAccess)
				}
			}

			store, err := buildGraph(root, includeTests)
			if err != nil {
				return err
			}

			nodes, rels := store.Nodes(), store.Relationships()
			if minAccess != "" {
				nodes, rels = export.Filter(nodes, rels, model.AccessLevel(minAccess))
			}
			ranks := ranking.Rank(nodes, rels)
			if top > 0 {
				nodes, rels = ranking.Top(nodes, rels, ranks, top)
			}
			payload := export.Build(nodes, rels, ranks)

			var data []byte
			switch format {
			case "dot":
				data = []byte(export.DOT(payload))
			case "json":
				data, err = export.JSON(payload)
			case "html":
				data, err = export.HTML(payload)
			default:
				return fmt.Errorf("unknown format %q (want dot, json, or html)", format)
			}
			if err != nil {
				return err
			}

			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, json, or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&minAccess, "min-access", "", "drop declarations below this access level")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "keep only the n highest-ranked types")
	cmd.Flags().BoolVar(&includeTests, "include-tests", false, "also scan test sources")
	return cmd
}

var accessLevels = map[string]struct{}{
	"private": {}, "fileprivate": {}, "internal": {}, "public": {}, "open": {},
}

// buildGraph runs the full pipeline: discover, parse in parallel, ingest,
// analyze. Parsing fans out one tree-sitter parser per worker; declaration
// batches funnel back to the single goroutine that owns the store.
func buildGraph(root string, includeTests bool) (*graph.Store, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	files, err := discover.Files(root)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	if !includeTests {
		kept := files[:0]
		for _, f := range files {
			if !discover.IsTestFile(f) {
				kept = append(kept, f)
			}
		}
		files = kept
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Swift files found under %s", root)
	}

	type batch struct {
		path  string
		decls []model.Declaration
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(files) {
		workers = len(files)
	}

	work := make(chan string)
	batches := make(chan batch, workers)

	var eg errgroup.Group
	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			parser := parse.NewParser()
			for path := range work {
				data, err := os.ReadFile(filepath.Join(root, path))
				if err != nil {
					slog.Warn("skipping unreadable file", "path", path, "err", err)
					continue
				}
				if len(data) > defaultMaxFileSize {
					slog.Warn("skipping oversized file", "path", path, "bytes", len(data))
					continue
				}
				batches <- batch{path: path, decls: parse.File(parser, data, path)}
			}
			return nil
		})
	}
	go func() {
		for _, f := range files {
			work <- f
		}
		close(work)
		_ = eg.Wait()
		close(batches)
	}()

	store := graph.New(slog.Default())
	total := 0
	var ingest func(d model.Declaration)
	ingest = func(d model.Declaration) {
		store.AddDeclaration(d)
		total++
		for _, nested := range d.Nested {
			ingest(nested)
		}
	}
	for b := range batches {
		for _, d := range b.decls {
			ingest(d)
		}
	}
	store.Analyze()

	slog.Debug("scan complete", "files", len(files), "declarations", total,
		"nodes", len(store.Nodes()), "edges", len(store.Relationships()))
	return store, nil
}

func writeOutput(cmd *cobra.Command, output string, data []byte) error {
	if output == "" || output == "-" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	slog.Info("wrote output", "path", output, "bytes", len(data))
	return nil
}
