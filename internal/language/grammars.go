package language

import (
	tree_sitter_dart "github.com/UserNobody14/tree-sitter-dart/bindings/go"
	tree_sitter_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_haskell "github.com/tree-sitter/tree-sitter-haskell/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_julia "github.com/tree-sitter/tree-sitter-julia/bindings/go"
	tree_sitter_ocaml "github.com/tree-sitter/tree-sitter-ocaml/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_scala "github.com/tree-sitter/tree-sitter-scala/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/lumenforge/codeintel/internal/types"
)

// grammarFactory builds a fresh *tree_sitter.Language for a first-class
// language. Fresh construction (rather than a shared *Language) keeps each
// pooled parser independent, matching the "no parser instance used
// concurrently from two operations" requirement without extra locking on the
// grammar itself.
type grammarFactory func() *tree_sitter.Language

var grammarFactories = map[types.Language]grammarFactory{
	types.LangGo:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_go.Language()) },
	types.LangPython:     func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_python.Language()) },
	types.LangJavaScript: func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_javascript.Language()) },
	types.LangTypeScript: func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()) },
	types.LangRust:       func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_rust.Language()) },
	types.LangJava:       func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_java.Language()) },
	types.LangCSharp:     func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_csharp.Language()) },
	types.LangC:          func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_cpp.LanguageC()) },
	types.LangCPP:        func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_cpp.Language()) },
	types.LangPHP:        func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP()) },
	types.LangRuby:       func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_ruby.Language()) },
	types.LangZig:        func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_zig.Language()) },
	types.LangScala:      func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_scala.Language()) },
	types.LangHaskell:    func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_haskell.Language()) },
	types.LangOCaml:      func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_ocaml.LanguageOCaml()) },
	types.LangLua:        func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_lua.Language()) },
	types.LangJulia:      func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_julia.Language()) },
	types.LangDart:       func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_dart.Language()) },
}

// newParserFor constructs and configures a fresh parser for lang, following
// the fallback table for languages without a first-class grammar.
func newParserFor(lang types.Language) (*tree_sitter.Parser, types.Language, bool, error) {
	actual := lang
	fallback := false
	if borrowed, ok := fallbackGrammar[lang]; ok {
		actual = borrowed
		fallback = true
	}

	factory, ok := grammarFactories[actual]
	if !ok {
		return nil, actual, fallback, errUnknownGrammar(actual)
	}

	parser := tree_sitter.NewParser()
	grammar := factory()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, actual, fallback, err
	}
	return parser, actual, fallback, nil
}
