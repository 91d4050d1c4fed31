package parse

import (
	"strings"

	"swiftgraph/internal/classify"
	"swiftgraph/internal/model"
	"swiftgraph/internal/typeexpr"
)

// declHeader is the parsed form of a declaration line, everything between
// the leading attributes and the body brace.
type declHeader struct {
	attributes []string
	access     model.AccessLevel
	kind       model.DeclKind
	name       string
	generics   []model.GenericParam
	clause     []string // inheritance clause entries, in source order
}

var declKeywords = map[string]model.DeclKind{
	"class":     model.KindClass,
	"struct":    model.KindStruct,
	"protocol":  model.KindProtocol,
	"enum":      model.KindEnum,
	"actor":     model.KindActor,
	"extension": model.KindExtension,
}

var accessKeywords = map[string]model.AccessLevel{
	"open":        model.AccessOpen,
	"public":      model.AccessPublic,
	"internal":    model.AccessInternal,
	"fileprivate": model.AccessFilePrivate,
	"private":     model.AccessPrivate,
}

// headerText cuts a declaration's text at its body: the first '{' outside
// any bracket nesting. Single-line text without a body passes through.
func headerText(s string) string {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case '{':
			if depth == 0 {
				return strings.TrimSpace(s[:i])
			}
		}
	}
	return strings.TrimSpace(s)
}

// parseHeader parses "@Attr public final class Name<T: C>: Base, Proto"
// into its parts. The where clause, when present, is discarded.
func parseHeader(text string) declHeader {
	h := declHeader{access: model.AccessInternal}

	text, h.attributes = stripAttributes(text)

	// Modifier words precede the kind keyword.
	for {
		word, rest := nextWord(text)
		if word == "" {
			return h
		}
		if kind, ok := declKeywords[word]; ok {
			h.kind = kind
			text = rest
			break
		}
		if lvl, ok := accessKeywords[trimSetter(word)]; ok {
			h.access = lvl
		}
		text = rest
	}

	// Name, then optional generic parameter list.
	end := len(text)
	for i := 0; i < len(text); i++ {
		if c := text[i]; c == '<' || c == ':' || c == ' ' || c == '\n' || c == '\t' {
			end = i
			break
		}
	}
	h.name = strings.TrimSpace(text[:end])
	text = strings.TrimSpace(text[end:])

	if strings.HasPrefix(text, "<") {
		if close := matchAngle(text); close > 0 {
			for _, g := range typeexpr.SplitTopLevel(text[1:close]) {
				name, constraint := splitFirstColon(g)
				h.generics = append(h.generics, model.GenericParam{
					Name:       name,
					Constraint: constraint,
				})
			}
			text = strings.TrimSpace(text[close+1:])
		}
	}

	if strings.HasPrefix(text, ":") {
		clause := strings.TrimSpace(text[1:])
		if i := whereIndex(clause); i >= 0 {
			clause = strings.TrimSpace(clause[:i])
		}
		h.clause = typeexpr.SplitTopLevel(clause)
	}
	return h
}

// splitClause divides an inheritance clause into superclass names and
// protocol conformances. Only classes can have a superclass, and Swift
// requires it first; everything else in the clause is a conformance.
// Protocol clauses are pure inheritance, extension clauses pure conformance.
func splitClause(kind model.DeclKind, clause []string) (inherited, conformed []string) {
	if len(clause) == 0 {
		return nil, nil
	}
	switch kind {
	case model.KindProtocol:
		return clause, nil
	case model.KindClass:
		first := typeexpr.Decompose(clause[0]).Base
		k, _ := classify.External(first)
		if k == model.KindClass && !classify.LooksLikeProtocol(first) {
			return clause[:1], clause[1:]
		}
		return nil, clause
	default:
		return nil, clause
	}
}

// parseProperty parses a stored or computed property header such as
// "@Published private static var items: [Item] = []".
func parseProperty(text string) (model.Property, bool) {
	var p model.Property
	text, p.Attributes = stripAttributes(text)

	for {
		word, rest := nextWord(text)
		switch {
		case word == "var":
			p.Mutable = true
		case word == "let":
		case word == "static" || word == "class":
			p.Static = true
			text = rest
			continue
		case word == "lazy":
			p.Lazy = true
			text = rest
			continue
		case word == "weak":
			p.Weak = true
			text = rest
			continue
		case word == "unowned":
			p.Unowned = true
			text = rest
			continue
		case word == "":
			return model.Property{}, false
		case word == "final" || word == "override" || word == "dynamic":
			text = rest
			continue
		default:
			if _, ok := accessKeywords[trimSetter(word)]; ok {
				text = rest
				continue
			}
			return model.Property{}, false
		}
		text = rest
		break
	}

	colon := topLevelIndex(text, ':')
	eq := topLevelIndex(text, '=')
	switch {
	case colon >= 0 && (eq < 0 || colon < eq):
		p.Name = strings.TrimSpace(text[:colon])
		rest := text[colon+1:]
		if e := topLevelIndex(rest, '='); e >= 0 {
			p.Type = strings.TrimSpace(rest[:e])
			p.DefaultValue = strings.TrimSpace(rest[e+1:])
		} else {
			p.Type = strings.TrimSpace(rest)
		}
	case eq >= 0:
		// Inferred type: "let shared = Service()". The type stays empty.
		p.Name = strings.TrimSpace(text[:eq])
		p.DefaultValue = strings.TrimSpace(text[eq+1:])
	default:
		p.Name = strings.TrimSpace(text)
	}

	// Multiple bindings keep only the first name.
	if i := strings.IndexByte(p.Name, ','); i >= 0 {
		p.Name = strings.TrimSpace(p.Name[:i])
	}
	if p.Name == "" {
		return model.Property{}, false
	}
	return p, true
}

// parseFunction parses func, init, and subscript headers into a Method.
// Initializers get the name "init", subscripts "subscript".
func parseFunction(text string) (model.Method, bool) {
	var m model.Method
	text, _ = stripAttributes(text)

	for {
		word, rest := nextWord(text)
		switch {
		case word == "func":
			text = rest
			m.Name = funcName(text)
		case strings.HasPrefix(word, "init"):
			m.Name = "init"
		case strings.HasPrefix(word, "subscript"):
			m.Name = "subscript"
		case word == "":
			return model.Method{}, false
		default:
			if _, ok := accessKeywords[trimSetter(word)]; !ok {
				switch word {
				case "static", "class", "final", "override", "mutating",
					"nonmutating", "required", "convenience", "optional":
				default:
					return model.Method{}, false
				}
			}
			text = rest
			continue
		}
		break
	}
	if m.Name == "" {
		return model.Method{}, false
	}

	open := strings.IndexByte(text, '(')
	if open < 0 {
		return m, true
	}
	close := matchParen(text[open:])
	if close < 0 {
		return model.Method{}, false
	}
	close += open

	for _, raw := range typeexpr.SplitTopLevel(text[open+1 : close]) {
		if p, ok := parseParameter(raw); ok {
			m.Parameters = append(m.Parameters, p)
		}
	}

	suffix := text[close+1:]
	ret := ""
	if a := arrowIndex(suffix); a >= 0 {
		ret = strings.TrimSpace(suffix[a+2:])
		suffix = suffix[:a]
	}
	m.ReturnType = ret
	for _, word := range strings.Fields(suffix) {
		switch word {
		case "async", "reasync":
			m.Async = true
		case "throws", "rethrows":
			m.Throws = true
		}
	}
	return m, true
}

// parseParameter parses "label name: Type = default". A single identifier
// before the colon serves as both label and name; "_" clears the label.
func parseParameter(raw string) (model.Parameter, bool) {
	colon := topLevelIndex(raw, ':')
	if colon < 0 {
		return model.Parameter{}, false
	}
	var p model.Parameter
	names := strings.Fields(raw[:colon])
	switch len(names) {
	case 1:
		p.Label, p.Name = names[0], names[0]
	case 2:
		p.Label, p.Name = names[0], names[1]
	default:
		return model.Parameter{}, false
	}
	if p.Label == "_" {
		p.Label = ""
	}

	rest := raw[colon+1:]
	if e := topLevelIndex(rest, '='); e >= 0 {
		p.Default = strings.TrimSpace(rest[e+1:])
		rest = rest[:e]
	}
	p.Type = strings.TrimSpace(rest)
	return p, true
}

// parseTypeAlias parses "typealias Element = User".
func parseTypeAlias(text string) (model.TypeAlias, bool) {
	text, _ = stripAttributes(text)
	text = dropModifiers(text, "typealias")
	if text == "" {
		return model.TypeAlias{}, false
	}
	eq := topLevelIndex(text, '=')
	if eq < 0 {
		return model.TypeAlias{}, false
	}
	ta := model.TypeAlias{
		Name:   strings.TrimSpace(text[:eq]),
		Target: strings.TrimSpace(text[eq+1:]),
	}
	if ta.Name == "" || ta.Target == "" {
		return model.TypeAlias{}, false
	}
	// A generic alias keeps only the bare name.
	if i := strings.IndexByte(ta.Name, '<'); i >= 0 {
		ta.Name = ta.Name[:i]
	}
	return ta, true
}

// parseAssociatedType parses "associatedtype Entity: Identifiable = User".
func parseAssociatedType(text string) (model.AssociatedType, bool) {
	text, _ = stripAttributes(text)
	text = dropModifiers(text, "associatedtype")
	if text == "" {
		return model.AssociatedType{}, false
	}
	var at model.AssociatedType
	if i := whereIndex(text); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	if eq := topLevelIndex(text, '='); eq >= 0 {
		at.Default = strings.TrimSpace(text[eq+1:])
		text = strings.TrimSpace(text[:eq])
	}
	at.Name, at.Constraint = splitFirstColon(text)
	if at.Name == "" {
		return model.AssociatedType{}, false
	}
	return at, true
}

// stripAttributes peels leading "@Name" or "@Name(...)" attributes off a
// declaration and returns the bare names.
func stripAttributes(text string) (string, []string) {
	var attrs []string
	text = strings.TrimSpace(text)
	for strings.HasPrefix(text, "@") {
		end := 1
		for end < len(text) && !strings.ContainsRune(" \t\n(", rune(text[end])) {
			end++
		}
		attrs = append(attrs, text[1:end])
		if end < len(text) && text[end] == '(' {
			if c := matchParen(text[end:]); c >= 0 {
				end += c + 1
			}
		}
		text = strings.TrimSpace(text[end:])
	}
	return text, attrs
}

// dropModifiers skips access and other modifier words until (and including)
// the given keyword, returning what follows it. Returns "" if the keyword
// never appears.
func dropModifiers(text, keyword string) string {
	for {
		word, rest := nextWord(text)
		if word == "" {
			return ""
		}
		text = rest
		if word == keyword {
			return strings.TrimSpace(text)
		}
	}
}

// funcName extracts the identifier after "func", stopping at the generic
// list or parameter list. Operator declarations pass through as-is.
func funcName(text string) string {
	for i := 0; i < len(text); i++ {
		if c := text[i]; c == '<' || c == '(' || c == ' ' || c == '\n' || c == '\t' {
			return strings.TrimSpace(text[:i])
		}
	}
	return strings.TrimSpace(text)
}

func nextWord(text string) (word, rest string) {
	text = strings.TrimSpace(text)
	for i := 0; i < len(text); i++ {
		if c := text[i]; c == ' ' || c == '\t' || c == '\n' {
			return text[:i], strings.TrimSpace(text[i:])
		}
	}
	return text, ""
}

// whereIndex finds the start of a top-level "where" clause, or -1.
func whereIndex(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			if s[i] == '>' && i > 0 && s[i-1] == '-' {
				continue
			}
			if depth > 0 {
				depth--
			}
		case 'w':
			if depth != 0 || !strings.HasPrefix(s[i:], "where") {
				continue
			}
			before := i == 0 || s[i-1] == ' ' || s[i-1] == '\t' || s[i-1] == '\n'
			after := i+5 == len(s) || s[i+5] == ' ' || s[i+5] == '\t' || s[i+5] == '\n'
			if before && after {
				return i
			}
		}
	}
	return -1
}

// trimSetter reduces "private(set)" to "private".
func trimSetter(word string) string {
	if i := strings.IndexByte(word, '('); i >= 0 {
		return word[:i]
	}
	return word
}

func splitFirstColon(s string) (left, right string) {
	if i := topLevelIndex(s, ':'); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return strings.TrimSpace(s), ""
}

// topLevelIndex finds the first occurrence of c outside angle, paren, and
// bracket nesting. The "->" arrow does not close an angle bracket, and a
// "==" comparison never reads as an assignment.
func topLevelIndex(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			if ch == '>' && i > 0 && s[i-1] == '-' {
				continue
			}
			if depth > 0 {
				depth--
			}
		}
		if ch != c || depth != 0 {
			continue
		}
		if c == '=' && (i+1 < len(s) && s[i+1] == '=' || i > 0 && (s[i-1] == '=' || s[i-1] == '!' || s[i-1] == '<' || s[i-1] == '>')) {
			continue
		}
		return i
	}
	return -1
}

// arrowIndex finds the first top-level "->" in s, or -1.
func arrowIndex(s string) int {
	depth := 0
	for i := 0; i+1 < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case '-':
			if s[i+1] == '>' && depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchParen returns the index of the ')' matching the '(' at s[0], or -1.
func matchParen(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchAngle returns the index of the '>' matching the '<' at s[0], or -1.
func matchAngle(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if i > 0 && s[i-1] == '-' {
				continue
			}
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
