package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftgraph/internal/model"
)

func TestParseHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want declHeader
	}{
		{
			name: "plain class",
			in:   "class Cart",
			want: declHeader{access: model.AccessInternal, kind: model.KindClass, name: "Cart"},
		},
		{
			name: "modifiers and clause",
			in:   "public final class OrderService: NSObject, Codable",
			want: declHeader{
				access: model.AccessPublic, kind: model.KindClass, name: "OrderService",
				clause: []string{"NSObject", "Codable"},
			},
		},
		{
			name: "generic struct",
			in:   "struct Box<T: Codable>: Equatable",
			want: declHeader{
				access: model.AccessInternal, kind: model.KindStruct, name: "Box",
				generics: []model.GenericParam{{Name: "T", Constraint: "Codable"}},
				clause:   []string{"Equatable"},
			},
		},
		{
			name: "attributed actor",
			in:   "@MainActor public actor ImageCache",
			want: declHeader{
				attributes: []string{"MainActor"},
				access:     model.AccessPublic, kind: model.KindActor, name: "ImageCache",
			},
		},
		{
			name: "extension with conformance",
			in:   "extension Cart: Equatable",
			want: declHeader{
				access: model.AccessInternal, kind: model.KindExtension, name: "Cart",
				clause: []string{"Equatable"},
			},
		},
		{
			name: "where clause dropped",
			in:   "extension Array: Summable where Element: Numeric",
			want: declHeader{
				access: model.AccessInternal, kind: model.KindExtension, name: "Array",
				clause: []string{"Summable"},
			},
		},
		{
			name: "protocol inheritance",
			in:   "protocol Repository: AnyObject, Resettable",
			want: declHeader{
				access: model.AccessInternal, kind: model.KindProtocol, name: "Repository",
				clause: []string{"AnyObject", "Resettable"},
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseHeader(tt.in))
		})
	}
}

func TestSplitClause(t *testing.T) {
	t.Parallel()

	// A class clause leads with the superclass when the first entry
	// classifies as a class.
	inh, conf := splitClause(model.KindClass, []string{"UIViewController", "Codable"})
	assert.Equal(t, []string{"UIViewController"}, inh)
	assert.Equal(t, []string{"Codable"}, conf)

	// All-protocol class clauses stay pure conformance.
	inh, conf = splitClause(model.KindClass, []string{"Codable", "Equatable"})
	assert.Empty(t, inh)
	assert.Equal(t, []string{"Codable", "Equatable"}, conf)

	// Structs cannot inherit.
	inh, conf = splitClause(model.KindStruct, []string{"Codable"})
	assert.Empty(t, inh)
	assert.Equal(t, []string{"Codable"}, conf)

	// Protocol clauses are protocol inheritance.
	inh, conf = splitClause(model.KindProtocol, []string{"AnyObject"})
	assert.Equal(t, []string{"AnyObject"}, inh)
	assert.Empty(t, conf)

	// Extensions only add conformances.
	inh, conf = splitClause(model.KindExtension, []string{"Equatable"})
	assert.Empty(t, inh)
	assert.Equal(t, []string{"Equatable"}, conf)
}

func TestParseProperty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want model.Property
	}{
		{
			in:   "var items: [Item] = []",
			want: model.Property{Name: "items", Type: "[Item]", Mutable: true, DefaultValue: "[]"},
		},
		{
			in:   "let id: UUID",
			want: model.Property{Name: "id", Type: "UUID"},
		},
		{
			in: "@Published private var settings: Settings",
			want: model.Property{
				Name: "settings", Type: "Settings", Mutable: true,
				Attributes: []string{"Published"},
			},
		},
		{
			in:   "static let shared = Service()",
			want: model.Property{Name: "shared", Static: true, DefaultValue: "Service()"},
		},
		{
			in:   "lazy var loader: DataLoader = DataLoader()",
			want: model.Property{Name: "loader", Type: "DataLoader", Mutable: true, Lazy: true, DefaultValue: "DataLoader()"},
		},
		{
			in:   "weak var delegate: FeedDelegate?",
			want: model.Property{Name: "delegate", Type: "FeedDelegate?", Mutable: true, Weak: true},
		},
		{
			in:   "private(set) var count: Int",
			want: model.Property{Name: "count", Type: "Int", Mutable: true},
		},
		{
			in:   "var byID: [String: Product] = [:]",
			want: model.Property{Name: "byID", Type: "[String: Product]", Mutable: true, DefaultValue: "[:]"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := parseProperty(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFunction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want model.Method
	}{
		{
			in: "func submit(order: Order) -> Result<Receipt, OrderError>",
			want: model.Method{
				Name:       "submit",
				Parameters: []model.Parameter{{Label: "order", Name: "order", Type: "Order"}},
				ReturnType: "Result<Receipt, OrderError>",
			},
		},
		{
			in: "public func fetch(for id: UUID, limit: Int = 10) async throws -> [Order]",
			want: model.Method{
				Name: "fetch",
				Parameters: []model.Parameter{
					{Label: "for", Name: "id", Type: "UUID"},
					{Label: "limit", Name: "limit", Type: "Int", Default: "10"},
				},
				ReturnType: "[Order]",
				Async:      true,
				Throws:     true,
			},
		},
		{
			in: "init(gateway: PaymentHandling)",
			want: model.Method{
				Name:       "init",
				Parameters: []model.Parameter{{Label: "gateway", Name: "gateway", Type: "PaymentHandling"}},
			},
		},
		{
			in: "required init?(coder: NSCoder)",
			want: model.Method{
				Name:       "init",
				Parameters: []model.Parameter{{Label: "coder", Name: "coder", Type: "NSCoder"}},
			},
		},
		{
			in: "func run(_ task: Task, completion: @escaping (Result<Void, Error>) -> Void)",
			want: model.Method{
				Name: "run",
				Parameters: []model.Parameter{
					{Label: "", Name: "task", Type: "Task"},
					{Label: "completion", Name: "completion", Type: "@escaping (Result<Void, Error>) -> Void"},
				},
			},
		},
		{
			in:   "override func viewDidLoad()",
			want: model.Method{Name: "viewDidLoad"},
		},
		{
			in: "subscript(index: Int) -> Element",
			want: model.Method{
				Name:       "subscript",
				Parameters: []model.Parameter{{Label: "index", Name: "index", Type: "Int"}},
				ReturnType: "Element",
			},
		},
		{
			in: "func map<U>(_ transform: (T) -> U) -> Box<U>",
			want: model.Method{
				Name:       "map",
				Parameters: []model.Parameter{{Label: "", Name: "transform", Type: "(T) -> U"}},
				ReturnType: "Box<U>",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := parseFunction(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTypeAliasAndAssociatedType(t *testing.T) {
	t.Parallel()

	ta, ok := parseTypeAlias("typealias Element = User")
	require.True(t, ok)
	assert.Equal(t, model.TypeAlias{Name: "Element", Target: "User"}, ta)

	ta, ok = parseTypeAlias("public typealias Handler = (Result<Data, Error>) -> Void")
	require.True(t, ok)
	assert.Equal(t, "Handler", ta.Name)
	assert.Equal(t, "(Result<Data, Error>) -> Void", ta.Target)

	_, ok = parseTypeAlias("typealias Broken")
	assert.False(t, ok)

	at, ok := parseAssociatedType("associatedtype Entity: Identifiable = User")
	require.True(t, ok)
	assert.Equal(t, model.AssociatedType{Name: "Entity", Constraint: "Identifiable", Default: "User"}, at)

	at, ok = parseAssociatedType("associatedtype Item")
	require.True(t, ok)
	assert.Equal(t, model.AssociatedType{Name: "Item"}, at)

	at, ok = parseAssociatedType("associatedtype Value: Hashable where Value: Sendable")
	require.True(t, ok)
	assert.Equal(t, model.AssociatedType{Name: "Value", Constraint: "Hashable"}, at)
}

func TestHeaderTextCutsAtBody(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "var total: Double",
		headerText("var total: Double { items.map(\\.price).reduce(0, +) }"))
	assert.Equal(t, "class Cart: Codable", headerText("class Cart: Codable {\n  var x = 1\n}"))
	assert.Equal(t, "let id: UUID", headerText("let id: UUID"))
}
