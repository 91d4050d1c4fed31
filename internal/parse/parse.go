// Package parse extracts type declarations from Swift source using
// tree-sitter. Extraction is best-effort: unrecognized syntax is skipped,
// and an unparseable file yields zero declarations rather than an error.
package parse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"

	"swiftgraph/internal/model"
)

// NewParser creates a fresh tree-sitter parser for Swift. Each goroutine
// must use its own parser (not thread-safe).
func NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(swift.GetLanguage())
	return p
}

// File parses Swift source and returns the type declarations it contains.
// filePath is used only for source locations and should be repo-relative.
func File(parser *sitter.Parser, source []byte, filePath string) []model.Declaration {
	if len(source) == 0 {
		return nil
	}
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil
	}
	defer tree.Close()

	var decls []model.Declaration
	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if d, ok := extractDecl(child, source, filePath); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// isDeclNode reports whether a node is a type-level declaration. The
// tree-sitter-swift grammar folds class, struct, enum, actor, and
// extension into class_declaration; protocols are separate.
func isDeclNode(nodeType string) bool {
	switch nodeType {
	case "class_declaration", "protocol_declaration", "extension_declaration",
		"actor_declaration", "enum_declaration", "struct_declaration":
		return true
	}
	return false
}

// extractDecl turns a declaration node into a Declaration. The header
// (everything before the body brace) is parsed from text, which keeps the
// extraction stable across grammar revisions; the body is walked node by
// node for members.
func extractDecl(node *sitter.Node, source []byte, filePath string) (model.Declaration, bool) {
	if !isDeclNode(node.Type()) {
		return model.Declaration{}, false
	}

	header := parseHeader(headerText(nodeText(node, source)))
	if header.name == "" || header.kind == "" {
		return model.Declaration{}, false
	}

	d := model.Declaration{
		Name:          header.name,
		Kind:          header.kind,
		Access:        header.access,
		Attributes:    header.attributes,
		GenericParams: header.generics,
		Location: model.SourceLocation{
			File: filePath,
			Line: int(node.StartPoint().Row) + 1,
		},
	}
	d.InheritedTypes, d.ConformedProtocols = splitClause(header.kind, header.clause)

	if body := bodyNode(node); body != nil {
		walkBody(&d, body, source, filePath)
	}
	return d, true
}

// bodyNode finds the declaration's body among direct children.
func bodyNode(node *sitter.Node) *sitter.Node {
	if b := node.ChildByFieldName("body"); b != nil {
		return b
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if strings.HasSuffix(c.Type(), "_body") {
			return c
		}
	}
	return nil
}

// walkBody dispatches body members by node type. Protocol bodies record
// requirements; concrete bodies record members directly.
func walkBody(d *model.Declaration, body *sitter.Node, source []byte, filePath string) {
	isProtocol := d.Kind == model.KindProtocol

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		text := nodeText(member, source)
		mtype := member.Type()

		switch {
		case isDeclNode(mtype):
			if nested, ok := extractDecl(member, source, filePath); ok {
				d.Nested = append(d.Nested, nested)
			}

		case strings.Contains(mtype, "associatedtype"):
			if at, ok := parseAssociatedType(text); ok {
				d.AssociatedTypes = append(d.AssociatedTypes, at)
			}

		case strings.Contains(mtype, "typealias"):
			if ta, ok := parseTypeAlias(text); ok {
				d.TypeAliases = append(d.TypeAliases, ta)
			}

		case strings.Contains(mtype, "property"):
			if p, ok := parseProperty(headerText(text)); ok {
				if isProtocol {
					d.Requirements = append(d.Requirements, model.Requirement{
						Name:  p.Name,
						Kind:  model.RequirementProperty,
						Types: []string{p.Type},
					})
				} else {
					d.Properties = append(d.Properties, p)
				}
			}

		case strings.Contains(mtype, "init"):
			if m, ok := parseFunction(headerText(text)); ok {
				d.Initializers = append(d.Initializers, m)
			}

		case strings.Contains(mtype, "subscript"):
			if m, ok := parseFunction(headerText(text)); ok {
				d.Subscripts = append(d.Subscripts, model.Subscript{
					Parameters: m.Parameters,
					ReturnType: m.ReturnType,
				})
			}

		case strings.Contains(mtype, "function"):
			m, ok := parseFunction(headerText(text))
			if !ok {
				break
			}
			if m.Name == "init" {
				d.Initializers = append(d.Initializers, m)
				break
			}
			if isProtocol {
				var types []string
				for _, p := range m.Parameters {
					types = append(types, p.Type)
				}
				if m.ReturnType != "" {
					types = append(types, m.ReturnType)
				}
				d.Requirements = append(d.Requirements, model.Requirement{
					Name:  m.Name,
					Kind:  model.RequirementMethod,
					Types: types,
				})
			} else {
				d.Methods = append(d.Methods, m)
			}
		}
	}
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
