package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const (
	sentinelStart = "<!-- swiftgraph:start -->"
	sentinelEnd   = "<!-- swiftgraph:end -->"
)

// newInitCmd writes (or updates) a swiftgraph usage section in a CLAUDE.md
// file. The section is wrapped in sentinel comments so later runs update it
// in place without touching surrounding content.
func newInitCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init [path-to-CLAUDE.md]",
		Short: "Write a swiftgraph usage section to a CLAUDE.md file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := generateSection()

			// --dry-run with no path: just print the section itself.
			if dryRun && len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), section)
				return nil
			}

			path := "CLAUDE.md"
			if len(args) > 0 {
				path = args[0]
			}

			existing, _ := os.ReadFile(path)
			updated := applySection(string(existing), section)

			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), updated)
				return nil
			}

			if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote swiftgraph section to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")
	return cmd
}

// generateSection returns the full sentinel-wrapped documentation block.
func generateSection() string {
	body := `## swiftgraph: Swift Type Dependency Graph

Run ` + "`swiftgraph scan`" + ` at the start of any task on an unfamiliar Swift
codebase. It builds a graph of every class, struct, protocol, enum, and
actor with their inheritance, conformance, composition, and injection
relationships.

**Availability:** Check with ` + "`swiftgraph --version`" + ` first; skip gracefully
if not found.

**Run it:**
` + "```" + `bash
swiftgraph scan                       # current directory, DOT to stdout
swiftgraph scan --format json .       # JSON payload for tooling
swiftgraph scan --format html -o g.html   # interactive page
swiftgraph scan --top 25              # only the 25 most central types
swiftgraph query CartViewModel        # focused neighborhood of one type
swiftgraph query Cart -m inheritance --descendants
` + "```" + `

**How to use the output:**

1. **Start from the highest-ranked types.** Nodes carry a PageRank score;
   the most referenced types are where the architecture lives.

2. **Use ` + "`query`" + ` instead of Grep to trace relationships.** Before
   searching for conformances or subclasses by text, ask the graph:
   ` + "`swiftgraph query SomeProtocol -m protocol`" + `.

3. **Dashed nodes are external.** Framework types (UIKit, Foundation,
   SwiftUI) appear as phantom nodes; their files are not in this repo.`

	return sentinelStart + "\n" + body + "\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}
