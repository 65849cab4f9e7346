package language

import "github.com/lumenforge/codeintel/internal/types"

// extensionTable maps a lowercased, dot-prefixed extension to the language it
// selects. Extending to a new language is a table addition here plus a grammar
// factory in grammars.go — never a new branch of logic.
var extensionTable = map[string]types.Language{
	".rs":  types.LangRust,
	".py":  types.LangPython,
	".pyi": types.LangPython,
	".js":  types.LangJavaScript,
	".mjs": types.LangJavaScript,
	".cjs": types.LangJavaScript,
	".jsx": types.LangJavaScript,
	".ts":  types.LangTypeScript,
	".mts": types.LangTypeScript,
	".cts": types.LangTypeScript,
	".tsx": types.LangTypeScript,
	".go":  types.LangGo,
	".java": types.LangJava,
	".c":   types.LangC,
	".h":   types.LangC,
	".cpp": types.LangCPP,
	".cc":  types.LangCPP,
	".cxx": types.LangCPP,
	".hpp": types.LangCPP,
	".hxx": types.LangCPP,
	".c++": types.LangCPP,
	".cs":  types.LangCSharp,
	".sh":   types.LangBash,
	".bash": types.LangBash,
	".zsh":  types.LangBash,
	".fish": types.LangBash,
	".rb":  types.LangRuby,
	".php": types.LangPHP,
	".lua": types.LangLua,
	".hs":  types.LangHaskell,
	".lhs": types.LangHaskell,
	".ex":  types.LangElixir,
	".exs": types.LangElixir,
	".scala": types.LangScala,
	".sc":    types.LangScala,
	".ml":  types.LangOCaml,
	".mli": types.LangOCaml,
	".clj":  types.LangClojure,
	".cljs": types.LangClojure,
	".cljc": types.LangClojure,
	".zig":  types.LangZig,
	".swift": types.LangSwift,
	".kt":  types.LangKotlin,
	".kts": types.LangKotlin,
	".m":   types.LangObjectiveC,
	".mm":  types.LangObjectiveC,
	".r":    types.LangR,
	".jl":   types.LangJulia,
	".dart": types.LangDart,
	".wgsl": types.LangWGSL,
	".vert": types.LangGLSL,
	".frag": types.LangGLSL,
	".glsl": types.LangGLSL,
}

// rejectedExtensions is a closed set of configuration/markup extensions the
// registry refuses outright: these are better served by patch-based editing
// than by AST operations, and attempting to parse them as a programming
// language would be actively misleading.
var rejectedExtensions = map[string]bool{
	".toml": true, ".yaml": true, ".yml": true, ".json": true, ".jsonc": true,
	".xml": true, ".html": true, ".htm": true, ".css": true, ".scss": true,
	".sass": true, ".less": true, ".md": true, ".markdown": true, ".tex": true,
	".latex": true, ".rst": true, ".sql": true, ".graphql": true, ".gql": true,
	".proto": true, ".dockerfile": true, ".makefile": true, ".cmake": true,
	".hcl": true, ".tf": true, ".tfvars": true, ".nix": true,
}

// fallbackGrammar names, for languages lacking a first-class grammar in this
// build, which real grammar stands in for them. Lua is the chosen generic
// grammar: its syntax is simple enough that declaration-shaped fallback
// compaction (see compactor) still produces something useful, and it is a
// grammar we already carry for first-class Lua files.
var fallbackGrammar = map[types.Language]types.Language{
	types.LangBash:       types.LangLua,
	types.LangR:          types.LangLua,
	types.LangWGSL:       types.LangLua,
	types.LangGLSL:       types.LangLua,
	types.LangElixir:     types.LangLua,
	types.LangClojure:    types.LangLua,
	types.LangKotlin:     types.LangLua,
	types.LangSwift:      types.LangLua,
	types.LangObjectiveC: types.LangLua,
}

// IsFallback reports whether lang is parsed using another language's grammar.
func IsFallback(lang types.Language) bool {
	_, ok := fallbackGrammar[lang]
	return ok
}
