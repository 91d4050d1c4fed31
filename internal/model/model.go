// Package model defines the declaration and relationship data structures
// shared by the parser, graph engine, and export backends.
package model

// DeclKind is the syntactic kind of a declaration.
type DeclKind string

const (
	KindClass     DeclKind = "class"
	KindStruct    DeclKind = "struct"
	KindProtocol  DeclKind = "protocol"
	KindEnum      DeclKind = "enum"
	KindActor     DeclKind = "actor"
	KindExtension DeclKind = "extension"
)

// AccessLevel is a Swift access modifier, ordered from most restrictive
// to most permissive.
type AccessLevel string

const (
	AccessPrivate     AccessLevel = "private"
	AccessFilePrivate AccessLevel = "fileprivate"
	AccessInternal    AccessLevel = "internal"
	AccessPublic      AccessLevel = "public"
	AccessOpen        AccessLevel = "open"
)

var accessRank = map[AccessLevel]int{
	AccessPrivate:     0,
	AccessFilePrivate: 1,
	AccessInternal:    2,
	AccessPublic:      3,
	AccessOpen:        4,
}

// AtLeast reports whether a is at least as permissive as min.
// Unknown levels are treated as internal.
func (a AccessLevel) AtLeast(min AccessLevel) bool {
	ra, ok := accessRank[a]
	if !ok {
		ra = accessRank[AccessInternal]
	}
	rm, ok := accessRank[min]
	if !ok {
		rm = accessRank[AccessInternal]
	}
	return ra >= rm
}

// SourceLocation identifies where a declaration was found.
type SourceLocation struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// ExternalLocation is the sentinel location carried by phantom nodes.
var ExternalLocation = SourceLocation{File: "<external>"}

// Property is a stored or computed property declaration.
type Property struct {
	Name         string
	Type         string // raw type expression, e.g. "[String: Foo]?"
	Mutable      bool   // var (true) vs let (false)
	Static       bool
	Lazy         bool
	Weak         bool
	Unowned      bool
	Attributes   []string // attached attribute names, without "@"
	DefaultValue string
}

// Parameter is a single function, initializer, or subscript parameter.
type Parameter struct {
	Label   string // external argument label; "" when omitted or "_"
	Name    string
	Type    string // raw type expression
	Default string
}

// Method is a function or initializer declaration. Initializers use the
// name "init" and have no return type.
type Method struct {
	Name       string
	Parameters []Parameter
	ReturnType string // raw type expression; "" for none
	Async      bool
	Throws     bool
}

// Subscript is a subscript declaration.
type Subscript struct {
	Parameters []Parameter
	ReturnType string
}

// TypeAlias is a typealias declaration.
type TypeAlias struct {
	Name   string
	Target string // raw type expression
}

// AssociatedType is a protocol associated-type requirement.
type AssociatedType struct {
	Name       string
	Constraint string // inherited-type constraint, "" for none
	Default    string // default type, "" for none
}

// RequirementKind distinguishes protocol member requirements.
type RequirementKind string

const (
	RequirementMethod   RequirementKind = "method"
	RequirementProperty RequirementKind = "property"
)

// Requirement is a protocol member requirement: a property or method a
// conforming type must provide. Types lists the raw type expressions the
// requirement references (property type, parameter and return types).
type Requirement struct {
	Name  string
	Kind  RequirementKind
	Types []string
}

// GenericParam is a generic parameter with an optional constraint,
// e.g. the "T: Codable" in "struct Box<T: Codable>".
type GenericParam struct {
	Name       string
	Constraint string
}

// Declaration is one ingested type or extension record: the unit of input
// the graph store consumes.
type Declaration struct {
	Name               string
	Kind               DeclKind
	Access             AccessLevel
	Module             string // presumed owning module; "" for project types
	InheritedTypes     []string
	ConformedProtocols []string
	Properties         []Property
	Methods            []Method
	Initializers       []Method
	Subscripts         []Subscript
	TypeAliases        []TypeAlias
	Nested             []Declaration
	AssociatedTypes    []AssociatedType
	Requirements       []Requirement
	GenericParams      []GenericParam
	Attributes         []string
	Location           SourceLocation

	// IsPhantom marks nodes synthesized as edge endpoints rather than
	// supplied by the declaration producer.
	IsPhantom bool
}
