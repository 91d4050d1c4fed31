package model

// RelKind identifies the kind of a relationship edge.
type RelKind string

const (
	// Structural: derived directly from a declaration's own shape.
	RelInherits   RelKind = "inherits"
	RelConforms   RelKind = "conforms"
	RelComposes   RelKind = "composes"   // owned mutable property
	RelAggregates RelKind = "aggregates" // owned immutable property
	RelDependsOn  RelKind = "depends_on" // parameter or return type use

	// Protocol implementation.
	RelImplements          RelKind = "implements"
	RelProtocolInherits    RelKind = "protocol_inherits"
	RelInjectedVia         RelKind = "injected_via"
	RelFulfillsRequirement RelKind = "fulfills_requirement"

	// Deep type structure.
	RelGenericParameter  RelKind = "generic_parameter"
	RelGenericConstraint RelKind = "generic_constraint"
	RelWrappedBy         RelKind = "wrapped_by"
	RelElementType       RelKind = "element_type"

	// Protocol internal structure.
	RelAssociatedType         RelKind = "associated_type"
	RelTypeConstraint         RelKind = "type_constraint"
	RelRequiresMethod         RelKind = "requires_method"
	RelRequiresProperty       RelKind = "requires_property"
	RelResolvesAssociatedType RelKind = "resolves_associated_type"
)

// RelFamily groups relationship kinds for mode-filtered traversal.
type RelFamily string

const (
	FamilyStructural       RelFamily = "structural"
	FamilyProtocolImpl     RelFamily = "protocol_implementation"
	FamilyDeepType         RelFamily = "deep_type"
	FamilyProtocolInternal RelFamily = "protocol_internal"
)

var relFamilies = map[RelKind]RelFamily{
	RelInherits:   FamilyStructural,
	RelConforms:   FamilyStructural,
	RelComposes:   FamilyStructural,
	RelAggregates: FamilyStructural,
	RelDependsOn:  FamilyStructural,

	RelImplements:          FamilyProtocolImpl,
	RelProtocolInherits:    FamilyProtocolImpl,
	RelInjectedVia:         FamilyProtocolImpl,
	RelFulfillsRequirement: FamilyProtocolImpl,

	RelGenericParameter:  FamilyDeepType,
	RelGenericConstraint: FamilyDeepType,
	RelWrappedBy:         FamilyDeepType,
	RelElementType:       FamilyDeepType,

	RelAssociatedType:         FamilyProtocolInternal,
	RelTypeConstraint:         FamilyProtocolInternal,
	RelRequiresMethod:         FamilyProtocolInternal,
	RelRequiresProperty:       FamilyProtocolInternal,
	RelResolvesAssociatedType: FamilyProtocolInternal,
}

// Family returns the family a relationship kind belongs to.
func (k RelKind) Family() RelFamily {
	return relFamilies[k]
}

// Relationship is a directed edge between two named nodes. The full tuple,
// Details included, is the identity used for deduplication: two properties
// of the same two types produce two distinct edges.
type Relationship struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Kind    RelKind `json:"kind"`
	Details string  `json:"details,omitempty"`
}

// Less orders relationships for deterministic output.
func (r Relationship) Less(o Relationship) bool {
	if r.From != o.From {
		return r.From < o.From
	}
	if r.To != o.To {
		return r.To < o.To
	}
	if r.Kind != o.Kind {
		return r.Kind < o.Kind
	}
	return r.Details < o.Details
}
