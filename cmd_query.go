package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"swiftgraph/internal/export"
	"swiftgraph/internal/graph"
	"swiftgraph/internal/model"
	"swiftgraph/internal/query"
)

func newQueryCmd() *cobra.Command {
	var (
		path         string
		depth        int
		mode         string
		descendants  bool
		format       string
		includeTests bool
	)

	cmd := &cobra.Command{
		Use:   "query <type>",
		Short: "Show the focused neighborhood of one type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := queryModes[mode]
			if !ok {
				return fmt.Errorf("unknown mode %q (want standard, inheritance, composition, or protocol)", mode)
			}

			store, err := buildGraph(path, includeTests)
			if err != nil {
				return err
			}

			nodes := query.Related(store, args[0], query.Options{
				MaxDepth:           depth,
				Mode:               m,
				IncludeDescendants: descendants,
			})
			if nodes == nil {
				return fmt.Errorf("type %q not found", args[0])
			}

			// Restrict edges to the neighborhood.
			keep := make(map[string]struct{}, len(nodes))
			for _, n := range nodes {
				keep[n.Decl.Name] = struct{}{}
			}
			var rels []model.Relationship
			for _, r := range store.Relationships() {
				if _, ok := keep[r.From]; !ok {
					continue
				}
				if _, ok := keep[r.To]; !ok {
					continue
				}
				rels = append(rels, r)
			}

			switch format {
			case "text":
				return printNeighborhood(cmd, args[0], nodes, rels)
			case "dot":
				return writeOutput(cmd, "", []byte(export.DOT(export.Build(nodes, rels, nil))))
			case "json":
				data, err := export.JSON(export.Build(nodes, rels, nil))
				if err != nil {
					return err
				}
				return writeOutput(cmd, "", data)
			default:
				return fmt.Errorf("unknown format %q (want text, dot, or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", ".", "codebase to scan")
	cmd.Flags().IntVarP(&depth, "depth", "d", 2, "traversal cost budget")
	cmd.Flags().StringVarP(&mode, "mode", "m", "standard", "traversal mode: standard, inheritance, composition, or protocol")
	cmd.Flags().BoolVar(&descendants, "descendants", false, "include subtypes in inheritance mode")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, dot, or json")
	cmd.Flags().BoolVar(&includeTests, "include-tests", false, "also scan test sources")
	return cmd
}

var queryModes = map[string]query.Mode{
	"standard":    query.ModeStandard,
	"inheritance": query.ModeInheritance,
	"composition": query.ModeComposition,
	"protocol":    query.ModeProtocol,
}

// printNeighborhood writes the node table and the edges between them.
func printNeighborhood(cmd *cobra.Command, root string, nodes []graph.Node, rels []model.Relationship) error {
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tLOCATION")
	for _, n := range nodes {
		loc := n.Decl.Location.File
		if loc != "" && !n.Decl.IsPhantom {
			loc = fmt.Sprintf("%s:%d", n.Decl.Location.File, n.Decl.Location.Line)
		}
		name := n.Decl.Name
		if name == root {
			name = "* " + name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, n.Decl.Kind, loc)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(rels) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	for _, r := range rels {
		if r.Details != "" {
			fmt.Fprintf(out, "%s -[%s %s]-> %s\n", r.From, r.Kind, r.Details, r.To)
		} else {
			fmt.Fprintf(out, "%s -[%s]-> %s\n", r.From, r.Kind, r.To)
		}
	}
	return nil
}
