package semantic

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lumenforge/codeintel/internal/language"
	"github.com/lumenforge/codeintel/internal/types"
)

// declKindToSymbolKind maps a tree-sitter declaration node kind to the
// closed SymbolKind enum spec §3 defines.
var declKindToSymbolKind = map[string]types.SymbolKind{
	"function_declaration": types.KindFunction, "function_definition": types.KindFunction, "function_item": types.KindFunction,
	"method_declaration": types.KindMethod, "method_definition": types.KindMethod,
	"class_declaration": types.KindClass, "class_definition": types.KindClass,
	"struct_item": types.KindStruct, "struct_declaration": types.KindStruct,
	"enum_item": types.KindEnum, "enum_declaration": types.KindEnum,
	"interface_declaration": types.KindInterface, "protocol_declaration": types.KindInterface,
	"trait_item": types.KindTrait, "trait_declaration": types.KindTrait,
	"module": types.KindModule, "module_declaration": types.KindModule,
	"variable_declaration": types.KindVariable, "let_declaration": types.KindVariable,
	"const_item": types.KindConstant,
	"type_alias": types.KindType, "typedef": types.KindType,
}

// keywordTokens excludes language keywords from the "first alphabetic
// token" name fallback so e.g. "fn calculate(...)" does not extract "fn".
var keywordTokens = map[string]bool{
	"fn": true, "def": true, "func": true, "function": true, "class": true,
	"struct": true, "enum": true, "trait": true, "interface": true, "type": true,
	"pub": true, "public": true, "private": true, "protected": true, "internal": true,
	"export": true, "static": true, "const": true, "let": true, "var": true,
	"async": true, "module": true, "package": true, "abstract": true, "final": true,
}

// extractSymbols walks tree's whole structure (not just top-level children)
// collecting every declaration-kind node as a Symbol, per spec §4.4.
func extractSymbols(path string, tree *language.ParseTree) []types.Symbol {
	root := tree.Root()
	if root == nil {
		return nil
	}
	source := tree.Source()

	var out []types.Symbol
	walk(root, nil, source, path, &out)
	return out
}

// walk visits node and its children depth-first, tracking prev as the most
// recently visited sibling at this depth (for documentation-comment lookup).
func walk(node *tree_sitter.Node, prevSibling *tree_sitter.Node, source []byte, path string, out *[]types.Symbol) {
	if node == nil {
		return
	}

	if language.DeclarationKinds[node.Kind()] {
		*out = append(*out, buildSymbol(node, prevSibling, source, path))
	}

	count := node.ChildCount()
	var prev *tree_sitter.Node
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		walk(child, prev, source, path, out)
		prev = child
	}
}

func buildSymbol(node *tree_sitter.Node, prevSibling *tree_sitter.Node, source []byte, path string) types.Symbol {
	kind := declKindToSymbolKind[node.Kind()]
	if kind == "" {
		kind = types.KindType
	}

	text := nodeText(node, source)
	name := extractName(node, source, text)
	sig := extractSignature(node, source)
	vis := types.Visibility(language.ClassifyVisibility(text))
	doc := extractDocumentation(prevSibling, source)

	start, end := node.StartPosition(), node.EndPosition()
	loc := types.SourceLocation{
		FilePath:  path,
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
		ByteStart: int(node.StartByte()),
		ByteEnd:   int(node.EndByte()),
	}

	return types.Symbol{
		ID:            types.NewSymbolID(path, kind, name),
		Name:          name,
		Kind:          kind,
		Location:      loc,
		Visibility:    vis,
		Signature:     sig,
		Documentation: doc,
	}
}

// extractName applies spec §4.4's three-step fallback: a child named
// identifier/name, else the first alphabetic non-keyword token, else
// "anonymous".
func extractName(node *tree_sitter.Node, source []byte, fullText string) string {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == "identifier" || child.Kind() == "name" {
			return nodeText(child, source)
		}
	}

	for _, tok := range strings.Fields(fullText) {
		clean := strings.TrimFunc(tok, func(r rune) bool {
			return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_')
		})
		if clean == "" || !isAlphabetic(clean) {
			continue
		}
		if keywordTokens[strings.ToLower(clean)] {
			continue
		}
		return clean
	}

	return "anonymous"
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_') {
			return false
		}
	}
	return true
}

// extractSignature mirrors the compactor's rule: source from node start to
// the start of the first body-like child, else the whole node, trimmed.
func extractSignature(node *tree_sitter.Node, source []byte) string {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child != nil && language.BodyKinds[child.Kind()] {
			return strings.TrimSpace(string(source[node.StartByte():child.StartByte()]))
		}
	}
	return strings.TrimSpace(nodeText(node, source))
}

// extractDocumentation returns the verbatim text of prevSibling if its kind
// contains "comment", else empty.
func extractDocumentation(prevSibling *tree_sitter.Node, source []byte) string {
	if prevSibling == nil || !language.IsCommentKind(prevSibling.Kind()) {
		return ""
	}
	return nodeText(prevSibling, source)
}
