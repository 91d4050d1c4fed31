package export

import (
	"fmt"
	"sort"
	"strings"
)

// kindStyles maps declaration kinds to Graphviz node attributes.
var kindStyles = map[string]string{
	"class":     `shape=box, style="filled", fillcolor="#dae8fc"`,
	"struct":    `shape=box, style="filled,rounded", fillcolor="#d5e8d4"`,
	"protocol":  `shape=ellipse, style="filled", fillcolor="#ffe6cc"`,
	"enum":      `shape=diamond, style="filled", fillcolor="#fff2cc"`,
	"actor":     `shape=hexagon, style="filled", fillcolor="#e1d5e7"`,
	"extension": `shape=note, style="filled", fillcolor="#f5f5f5"`,
}

// DOT renders the payload as a Graphviz digraph. Parallel edges between
// the same pair collapse into one arrow labeled with the merged kinds.
func DOT(p Payload) string {
	var b strings.Builder
	b.WriteString("digraph swiftgraph {\n")
	b.WriteString("  rankdir=BT;\n")
	b.WriteString("  node [fontname=\"Helvetica\", fontsize=11];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=9, color=\"#666666\"];\n\n")

	for _, n := range p.Nodes {
		attrs := kindStyles[n.Kind]
		if attrs == "" {
			attrs = `shape=box`
		}
		if n.Phantom {
			attrs += `, style="dashed", fillcolor="", fontcolor="#888888", color="#888888"`
		}
		fmt.Fprintf(&b, "  %s [label=%s, %s];\n", quote(n.Name), quote(n.Name), attrs)
	}
	b.WriteString("\n")

	type pair struct{ from, to string }
	merged := make(map[pair]map[string]struct{})
	var order []pair
	for _, e := range p.Edges {
		k := pair{e.From, e.To}
		if merged[k] == nil {
			merged[k] = make(map[string]struct{})
			order = append(order, k)
		}
		merged[k][e.Kind] = struct{}{}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].from != order[j].from {
			return order[i].from < order[j].from
		}
		return order[i].to < order[j].to
	})

	for _, k := range order {
		kinds := make([]string, 0, len(merged[k]))
		for kind := range merged[k] {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		fmt.Fprintf(&b, "  %s -> %s [label=%s];\n",
			quote(k.from), quote(k.to), quote(strings.Join(kinds, "\\n")))
	}

	b.WriteString("}\n")
	return b.String()
}

// quote wraps a DOT identifier in double quotes, escaping embedded ones.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
