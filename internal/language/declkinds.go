package language

import "strings"

// DeclarationKinds is the language-independent set of tree-sitter node kinds
// that count as a symbol definition, shared between the AST compactor (C3)
// and the semantic index (C4) so both walk the same notion of "declaration".
var DeclarationKinds = map[string]bool{
	"function_declaration": true, "function_definition": true, "function_item": true,
	"method_declaration": true, "method_definition": true,
	"class_declaration": true, "class_definition": true,
	"struct_item": true, "struct_declaration": true,
	"enum_item": true, "enum_declaration": true,
	"interface_declaration": true, "protocol_declaration": true,
	"trait_item": true, "trait_declaration": true,
	"module": true, "module_declaration": true,
	"variable_declaration": true, "const_item": true, "let_declaration": true,
	"type_alias": true, "typedef": true,
}

// BodyKinds is the set of node kinds that mark where a declaration's body
// begins; a signature runs from the declaration's start to the first child
// of one of these kinds.
var BodyKinds = map[string]bool{
	"block": true, "compound_statement": true, "function_body": true,
}

// IsCommentKind reports whether a node kind represents a comment, by the
// substring rule spec §4.4 uses for documentation-comment detection.
func IsCommentKind(kind string) bool {
	return strings.Contains(kind, "comment")
}

// visibilityMarkers maps substrings found in a declaration's source text to
// the visibility they imply, checked in this order (first match wins).
var visibilityMarkers = []struct {
	substr string
	vis    string
}{
	{"public", "Public"}, {"pub", "Public"}, {"export", "Public"},
	{"protected", "Protected"},
	{"private", "Private"}, {"priv", "Private"},
	{"internal", "Internal"},
	{"package", "Package"},
}

// ClassifyVisibility applies spec §4.4's keyword scan to a declaration's
// source text, defaulting to Public when no marker is present.
func ClassifyVisibility(text string) string {
	lower := strings.ToLower(text)
	for _, m := range visibilityMarkers {
		if strings.Contains(lower, m.substr) {
			return m.vis
		}
	}
	return "Public"
}
