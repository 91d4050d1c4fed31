// Package classify guesses the kind and owning module of type names that
// were referenced but never declared in the scanned sources. The heuristics
// live in an embedded YAML rule table rather than code, so they can be
// revised (or replaced by a precise symbol table) without touching the
// graph algorithms.
package classify

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"swiftgraph/internal/model"
)

//go:embed rules.yaml
var rulesData []byte

// rule matches external names by exact name, prefix, or suffix, in that
// priority order across the whole table.
type rule struct {
	Module   string   `yaml:"module"`
	Kind     string   `yaml:"kind"`
	Names    []string `yaml:"names,omitempty"`
	Prefixes []string `yaml:"prefixes,omitempty"`
	Suffixes []string `yaml:"suffixes,omitempty"`
}

type ruleFile struct {
	Rules    []rule              `yaml:"rules"`
	Chains   map[string][]string `yaml:"chains"`
	Wrappers []string            `yaml:"wrappers"`
}

var table ruleFile

func init() {
	if err := yaml.Unmarshal(rulesData, &table); err != nil {
		panic(fmt.Sprintf("classify: embedded rules.yaml: %v", err))
	}
}

// External returns the presumed kind and owning module of an unresolved
// name. Names missing from the rule table fall back to naming conventions:
// protocol-style suffixes, then leading-uppercase ⇒ class, else struct.
func External(name string) (model.DeclKind, string) {
	for _, r := range table.Rules {
		for _, n := range r.Names {
			if name == n {
				return model.DeclKind(r.Kind), r.Module
			}
		}
	}
	for _, r := range table.Rules {
		for _, p := range r.Prefixes {
			if strings.HasPrefix(name, p) {
				return model.DeclKind(r.Kind), r.Module
			}
		}
	}
	for _, r := range table.Rules {
		for _, s := range r.Suffixes {
			if strings.HasSuffix(name, s) {
				return model.DeclKind(r.Kind), r.Module
			}
		}
	}

	if LooksLikeProtocol(name) {
		return model.KindProtocol, ""
	}
	if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
		return model.KindClass, ""
	}
	return model.KindStruct, ""
}

// protocolSuffixes are naming-convention endings that mark a name as a
// probable protocol even when no rule matches it.
var protocolSuffixes = []string{
	"Protocol", "Delegate", "DataSource", "able", "ible",
}

// LooksLikeProtocol reports whether a name matches protocol naming
// conventions. Used both as the classification fallback and by the
// injection-detection pass.
func LooksLikeProtocol(name string) bool {
	for _, s := range protocolSuffixes {
		if len(name) > len(s) && strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// KnownBaseChain returns the ordered immediate-to-root ancestor names for
// well-known external framework classes. Unknown names return nil: no
// ancestry is synthesized for them.
func KnownBaseChain(name string) []string {
	chain := table.Chains[name]
	if len(chain) == 0 {
		return nil
	}
	out := make([]string, len(chain))
	copy(out, chain)
	return out
}

// IsPropertyWrapper reports whether an attribute name is a recognized
// property-wrapper attribute.
func IsPropertyWrapper(attr string) bool {
	for _, w := range table.Wrappers {
		if attr == w {
			return true
		}
	}
	return false
}
