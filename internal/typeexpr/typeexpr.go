// Package typeexpr decomposes raw Swift type expressions into a normalized
// shape: base name, optionality, array-ness, and generic arguments. All
// functions are pure and never fail; unparseable input degrades to "Any".
package typeexpr

import "strings"

// Decomposed is the normalized shape of a type expression.
type Decomposed struct {
	Base        string
	IsOptional  bool
	IsArray     bool
	GenericArgs []string
}

// Fallback is the base name returned for empty or unparseable input.
const Fallback = "Any"

// Decompose normalizes a raw type expression. Examples:
//
//	"Foo?"                   → {Base: "Foo", IsOptional: true}
//	"[Foo]"                  → {Base: "Foo", IsArray: true}
//	"[Key: Value]"           → {Base: "Dictionary", GenericArgs: [Key Value]}
//	"Dictionary<String, V>"  → {Base: "Dictionary", GenericArgs: [String V]}
//	"(A, B) -> C"            → {Base: "Closure"}
//	"Mod.Type"               → {Base: "Type"}
func Decompose(raw string) Decomposed {
	raw = clean(raw)
	if raw == "" {
		return Decomposed{Base: Fallback}
	}

	// Optional (and implicitly-unwrapped) suffix strips one level and
	// recurses, OR-ing with any deeper optional flag.
	if strings.HasSuffix(raw, "?") || strings.HasSuffix(raw, "!") {
		d := Decompose(raw[:len(raw)-1])
		d.IsOptional = true
		return d
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		inner := strings.TrimSpace(raw[1 : len(raw)-1])
		if key, value, ok := splitDictionary(inner); ok {
			return Decomposed{Base: "Dictionary", GenericArgs: []string{key, value}}
		}
		d := Decompose(inner)
		d.IsArray = true
		return d
	}

	if _, _, ok := Closure(raw); ok {
		return Decomposed{Base: "Closure"}
	}

	if open := indexTopLevel(raw, '<'); open > 0 && strings.HasSuffix(raw, ">") {
		base := stripModule(strings.TrimSpace(raw[:open]))
		args := SplitTopLevel(raw[open+1 : len(raw)-1])
		if base == "" {
			return Decomposed{Base: Fallback}
		}
		return Decomposed{Base: base, GenericArgs: args}
	}

	// Parenthesized, non-closure: unwrap single-element groups, treat
	// multi-element tuples as the builtin Tuple.
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		elems := SplitTopLevel(raw[1 : len(raw)-1])
		switch len(elems) {
		case 0:
			return Decomposed{Base: "Void"}
		case 1:
			return Decompose(elems[0])
		default:
			return Decomposed{Base: "Tuple", GenericArgs: elems}
		}
	}

	base := stripModule(raw)
	if base == "" || !isIdentifier(base) {
		return Decomposed{Base: Fallback}
	}
	return Decomposed{Base: base}
}

// SplitTopLevel splits a comma-separated argument list on top-level commas
// only: a depth counter increments on '<', '(' and '[' and decrements on
// the matching closers. Reused for generic argument and closure parameter
// lists.
func SplitTopLevel(args string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			// "->" is an arrow, not a closer.
			if args[i] == '>' && i > 0 && args[i-1] == '-' {
				continue
			}
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if piece := strings.TrimSpace(args[start:i]); piece != "" {
					out = append(out, piece)
				}
				start = i + 1
			}
		}
	}
	if piece := strings.TrimSpace(args[start:]); piece != "" {
		out = append(out, piece)
	}
	return out
}

// Closure detects function types by a top-level "->" and splits them into
// parameter type expressions and a return type expression. A Void-equivalent
// return yields ret == "". Optional wrappers and the parenthesization they
// force ("((Order) -> Void)?") are peeled off first, so wrapped closures
// split the same way as bare ones.
func Closure(raw string) (params []string, ret string, ok bool) {
	raw = clean(raw)
	for arrowTopLevel(raw) < 0 {
		for strings.HasSuffix(raw, "?") || strings.HasSuffix(raw, "!") {
			raw = strings.TrimSpace(raw[:len(raw)-1])
		}
		if arrowTopLevel(raw) >= 0 {
			break
		}
		if !strings.HasPrefix(raw, "(") || !strings.HasSuffix(raw, ")") {
			return nil, "", false
		}
		elems := SplitTopLevel(raw[1 : len(raw)-1])
		if len(elems) != 1 || elems[0] == raw {
			return nil, "", false
		}
		raw = elems[0]
	}
	arrow := arrowTopLevel(raw)

	left := strings.TrimSpace(raw[:arrow])
	right := strings.TrimSpace(raw[arrow+2:])

	if strings.HasPrefix(left, "(") && strings.HasSuffix(left, ")") {
		params = SplitTopLevel(left[1 : len(left)-1])
	} else if left != "" {
		params = []string{left}
	}

	if right == "" || right == "Void" || right == "()" {
		return params, "", true
	}
	return params, right, true
}

// IsPrimitive reports whether a base type name is a builtin or otherwise
// uninteresting as a relationship target: numeric, text, boolean, date,
// identifier, and collection-literal names are excluded from edges.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

var primitives = map[string]struct{}{
	"Int": {}, "Int8": {}, "Int16": {}, "Int32": {}, "Int64": {},
	"UInt": {}, "UInt8": {}, "UInt16": {}, "UInt32": {}, "UInt64": {},
	"Float": {}, "Double": {}, "CGFloat": {}, "Decimal": {},
	"Bool": {},
	"String": {}, "Character": {}, "Substring": {}, "StaticString": {},
	"Date": {}, "TimeInterval": {}, "Data": {}, "UUID": {}, "URL": {},
	"Any": {}, "AnyObject": {}, "Void": {}, "Never": {}, "Self": {},
	"Array": {}, "Dictionary": {}, "Set": {}, "Optional": {},
	"Tuple": {}, "Closure": {},
}

// clean strips whitespace, attributes such as @escaping, and the inout
// modifier from a type expression.
func clean(raw string) string {
	raw = strings.TrimSpace(raw)
	for {
		switch {
		case strings.HasPrefix(raw, "@"):
			end := 1
			for end < len(raw) && raw[end] != ' ' {
				// Attributes may carry arguments: @Sendable, @MainActor(...)
				if raw[end] == '(' {
					depth := 0
					for end < len(raw) {
						if raw[end] == '(' {
							depth++
						} else if raw[end] == ')' {
							depth--
							if depth == 0 {
								end++
								break
							}
						}
						end++
					}
					break
				}
				end++
			}
			raw = strings.TrimSpace(raw[end:])
		case strings.HasPrefix(raw, "inout "):
			raw = strings.TrimSpace(raw[len("inout "):])
		case strings.HasPrefix(raw, "some "):
			raw = strings.TrimSpace(raw[len("some "):])
		case strings.HasPrefix(raw, "any "):
			raw = strings.TrimSpace(raw[len("any "):])
		default:
			return raw
		}
	}
}

// splitDictionary finds a top-level colon inside bracket sugar, marking
// "[K: V]" dictionary syntax.
func splitDictionary(inner string) (key, value string, ok bool) {
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			if inner[i] == '>' && i > 0 && inner[i-1] == '-' {
				continue
			}
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				return strings.TrimSpace(inner[:i]), strings.TrimSpace(inner[i+1:]), true
			}
		}
	}
	return "", "", false
}

// arrowTopLevel returns the index of the first top-level "->", or -1.
func arrowTopLevel(s string) int {
	depth := 0
	for i := 0; i < len(s)-1; i++ {
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
		case '-':
			if s[i+1] == '>' && depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexTopLevel returns the index of the first occurrence of c outside any
// bracket nesting, or -1.
func indexTopLevel(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		if s[i] == c && depth == 0 {
			return i
		}
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		}
	}
	return -1
}

// stripModule reduces "Mod.Type" qualification to the last component.
func stripModule(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return len(s) > 0
}
