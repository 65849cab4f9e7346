package types

import "strings"

// SymbolKind classifies the declaration a Symbol was extracted from.
type SymbolKind string

const (
	KindFunction  SymbolKind = "Function"
	KindMethod    SymbolKind = "Method"
	KindClass     SymbolKind = "Class"
	KindStruct    SymbolKind = "Struct"
	KindEnum      SymbolKind = "Enum"
	KindInterface SymbolKind = "Interface"
	KindTrait     SymbolKind = "Trait"
	KindModule    SymbolKind = "Module"
	KindVariable  SymbolKind = "Variable"
	KindConstant  SymbolKind = "Constant"
	KindType      SymbolKind = "Type"
	KindProperty  SymbolKind = "Property"
	KindField     SymbolKind = "Field"
	KindParameter SymbolKind = "Parameter"
)

// tag is the short, stable token used inside a Symbol ID. Kept distinct from
// the display string so renaming a SymbolKind's display text never changes
// existing IDs.
func (k SymbolKind) tag() string {
	if t, ok := kindTags[k]; ok {
		return t
	}
	return "sym"
}

var kindTags = map[SymbolKind]string{
	KindFunction:  "func",
	KindMethod:    "method",
	KindClass:     "class",
	KindStruct:    "struct",
	KindEnum:      "enum",
	KindInterface: "iface",
	KindTrait:     "trait",
	KindModule:    "module",
	KindVariable:  "var",
	KindConstant:  "const",
	KindType:      "type",
	KindProperty:  "prop",
	KindField:     "field",
	KindParameter: "param",
}

// Visibility is the declaration's access level, defaulting to Public when a
// language has no visibility keywords (or none were found) so that nothing
// named without a modifier silently disappears from symbol search.
type Visibility string

const (
	VisPublic    Visibility = "Public"
	VisProtected Visibility = "Protected"
	VisPrivate   Visibility = "Private"
	VisInternal  Visibility = "Internal"
	VisPackage   Visibility = "Package"
)

// SymbolID is the canonical identity of a Symbol: file_path + ':' + kind_tag
// + ':' + name. It is the key into every map in the semantic index and the
// vertex identity in the call/inheritance/import graphs.
type SymbolID string

// NewSymbolID builds the canonical identifier for a declaration.
func NewSymbolID(filePath string, kind SymbolKind, name string) SymbolID {
	var b strings.Builder
	b.Grow(len(filePath) + len(name) + 8)
	b.WriteString(filePath)
	b.WriteByte(':')
	b.WriteString(kind.tag())
	b.WriteByte(':')
	b.WriteString(name)
	return SymbolID(b.String())
}

// Symbol is the extracted, queryable view of one declaration.
type Symbol struct {
	ID            SymbolID
	Name          string
	Kind          SymbolKind
	Location      SourceLocation
	Visibility    Visibility
	Signature     string
	Documentation string // empty when no doc comment precedes the declaration
	References    []SourceLocation
	Definitions   []SourceLocation
	CallSites     []SourceLocation
}

// FileSymbols is the ordered list of symbol IDs declared in one file, in
// declaration order as encountered during the tree walk.
type FileSymbols []SymbolID
