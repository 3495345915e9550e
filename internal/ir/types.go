package ir

// Schema is the language-agnostic representation of a set of SDL documents.
// It is built once per run by Transform and is read-only afterwards.
type Schema struct {
	Enums         []*EnumDef       `json:"enums"`
	Types         []*ObjectTypeDef `json:"types"`
	Inputs        []*InputTypeDef  `json:"inputs"`
	Unions        []*UnionDef      `json:"unions"`
	Queries       []*OperationDef  `json:"queries"`
	Mutations     []*OperationDef  `json:"mutations"`
	Subscriptions []*OperationDef  `json:"subscriptions"`
}

// TypeInfo is a possibly-list, possibly-nullable reference to a named type.
// ItemNullable is only meaningful when IsList is set.
type TypeInfo struct {
	Name         string `json:"name"`
	Nullable     bool   `json:"nullable"`
	IsList       bool   `json:"isList"`
	ItemNullable bool   `json:"itemNullable"`
}

type FieldDef struct {
	Name         string   `json:"name"`
	Type         TypeInfo `json:"type"`
	Description  string   `json:"description,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty"`
}

type ArgumentDef struct {
	Name         string   `json:"name"`
	Type         TypeInfo `json:"type"`
	Description  string   `json:"description,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty"`
}

type EnumDef struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Values      []string `json:"values"`
	Platform    Platform `json:"platform,omitempty"`
}

type ObjectTypeDef struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Fields      []*FieldDef `json:"fields"`
	// ImplementsUnions is derived from union membership after all files are merged.
	ImplementsUnions []string `json:"implementsUnions"`
	Platform         Platform `json:"platform,omitempty"`
}

type InputTypeDef struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Fields      []*FieldDef `json:"fields"`
	Platform    Platform    `json:"platform,omitempty"`
}

type UnionDef struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
	Platform    Platform `json:"platform,omitempty"`
}

type OperationDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Args        []*ArgumentDef `json:"args"`
	ReturnType  TypeInfo       `json:"returnType"`
	Platform    Platform       `json:"platform,omitempty"`
}

// OperationKind names the root container an operation was declared on.
type OperationKind string

const (
	OperationQuery        OperationKind = "query"
	OperationMutation     OperationKind = "mutation"
	OperationSubscription OperationKind = "subscription"
)

// OperationKinds returns the kinds in declaration order of a schema definition.
func OperationKinds() []OperationKind {
	return []OperationKind{OperationQuery, OperationMutation, OperationSubscription}
}

// String renders the type reference back to SDL, e.g. "[String!]" or "Int!".
func (t TypeInfo) String() string {
	s := t.Name
	if t.IsList {
		if !t.ItemNullable {
			s += "!"
		}
		s = "[" + s + "]"
	}
	if !t.Nullable {
		s += "!"
	}
	return s
}

// Operations returns the bucket for kind.
func (s *Schema) Operations(kind OperationKind) []*OperationDef {
	switch kind {
	case OperationQuery:
		return s.Queries
	case OperationMutation:
		return s.Mutations
	case OperationSubscription:
		return s.Subscriptions
	}
	return nil
}

// Object returns the last object type named name, or nil.
func (s *Schema) Object(name string) *ObjectTypeDef {
	for i := len(s.Types) - 1; i >= 0; i-- {
		if s.Types[i].Name == name {
			return s.Types[i]
		}
	}
	return nil
}

// Union returns the last union named name, or nil.
func (s *Schema) Union(name string) *UnionDef {
	for i := len(s.Unions) - 1; i >= 0; i-- {
		if s.Unions[i].Name == name {
			return s.Unions[i]
		}
	}
	return nil
}

// Enum returns the last enum named name, or nil.
func (s *Schema) Enum(name string) *EnumDef {
	for i := len(s.Enums) - 1; i >= 0; i-- {
		if s.Enums[i].Name == name {
			return s.Enums[i]
		}
	}
	return nil
}

// Input returns the last input type named name, or nil.
func (s *Schema) Input(name string) *InputTypeDef {
	for i := len(s.Inputs) - 1; i >= 0; i-- {
		if s.Inputs[i].Name == name {
			return s.Inputs[i]
		}
	}
	return nil
}
