// Package compactor implements C3: turning a parse tree and its source into
// a textual skeleton at a selectable fidelity (Light/Medium/Hard).
package compactor

import (
	"strings"

	"github.com/lumenforge/codeintel/internal/language"
)

// containerKinds are declaration kinds that hold nested member declarations
// worth descending into at Medium fidelity (classes, structs with methods,
// interfaces, traits, modules). Function/method/variable/type-alias kinds
// are leaves for this purpose: nothing below them is a separate declaration
// worth individually weighing.
var containerKinds = map[string]bool{
	"class_declaration": true, "class_definition": true,
	"struct_item": true, "struct_declaration": true,
	"interface_declaration": true, "protocol_declaration": true,
	"trait_item": true, "trait_declaration": true,
	"module": true, "module_declaration": true,
	"enum_item": true, "enum_declaration": true,
}

// nodeWeight implements spec's per-node semantic weight function, used only
// for the reported `weights` diagnostic map; what each level keeps is decided
// by walkChildren in compactor.go, not by weight.
func nodeWeight(kind string, text string, isPublic bool) float32 {
	switch {
	case language.DeclarationKinds[kind]:
		w := float32(0.7)
		if isPublic {
			w += 0.1
		}
		if w > 1.0 {
			w = 1.0
		}
		return w
	case language.IsCommentKind(kind):
		if looksLikeDoc(text) {
			return 0.5
		}
		return 0.2
	case kind == "identifier" || kind == "name":
		return 0.4
	case strings.TrimSpace(text) == "":
		return 0.0
	default:
		return 0.1
	}
}

// looksLikeDoc is a light heuristic for "documentation comment" vs. a plain
// inline comment: doc comment conventions across the supported languages
// mostly double up or use a distinguishing third character (///, /**, ##, """).
func looksLikeDoc(text string) bool {
	t := strings.TrimSpace(text)
	for _, prefix := range []string{"///", "/**", "##", `"""`, "'''", "--|"} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}
