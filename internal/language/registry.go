package language

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lumenforge/codeintel/internal/debug"
	coreerrors "github.com/lumenforge/codeintel/internal/errors"
	"github.com/lumenforge/codeintel/internal/types"
)

func errUnknownGrammar(lang types.Language) error {
	return fmt.Errorf("no grammar factory registered for %s", lang)
}

// parserSlot pools a single reusable parser for one language behind its own
// mutex, so concurrent parse calls for different languages never contend
// with each other, but two calls for the same language serialize instead of
// racing on the same *tree_sitter.Parser.
type parserSlot struct {
	mu       sync.Mutex
	parser   *tree_sitter.Parser
	actual   types.Language
	fallback bool
}

// Registry is the language catalog: extension-based detection, grammar
// dispatch, and aggregate usage stats. One Registry is meant to be shared
// process-wide; all exported methods are safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	slots map[types.Language]*parserSlot

	statsMu      sync.Mutex
	parseCount   map[types.Language]int64
	detectMisses int64

	disabled map[string]bool // lowercased language names, on top of the builtin reject list
}

// NewRegistry constructs an empty registry; parser slots are created lazily
// on first use of a given language.
func NewRegistry() *Registry {
	return &Registry{
		slots:      make(map[types.Language]*parserSlot),
		parseCount: make(map[types.Language]int64),
	}
}

// NewRegistryWithDisabled is NewRegistry plus a configured set of language
// names (e.g. "Haskell", matching types.Language.String()) that Detect
// treats as unsupported regardless of the closed extension table, so an
// operator can turn off a language without a rebuild.
func NewRegistryWithDisabled(disabledLanguages []string) *Registry {
	r := NewRegistry()
	if len(disabledLanguages) == 0 {
		return r
	}
	r.disabled = make(map[string]bool, len(disabledLanguages))
	for _, name := range disabledLanguages {
		r.disabled[strings.ToLower(name)] = true
	}
	return r
}

// Detect resolves a file path to a language purely from its lowercased final
// extension, per the closed extension table. Extensions on the reject list
// fail with a distinct error from extensions simply not present in the
// table, so callers can tell "not supported" from "supported, see guidance".
func (r *Registry) Detect(path string) (types.Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return types.LangUnknown, coreerrors.LanguageDetectionFailed(path)
	}
	if rejectedExtensions[ext] {
		return types.LangUnknown, coreerrors.Unsupported(strings.TrimPrefix(ext, "."), "patch-based editing")
	}
	lang, ok := extensionTable[ext]
	if !ok {
		r.statsMu.Lock()
		r.detectMisses++
		r.statsMu.Unlock()
		return types.LangUnknown, coreerrors.LanguageDetectionFailed(path)
	}
	if r.disabled[strings.ToLower(lang.String())] {
		return types.LangUnknown, coreerrors.Unsupported(lang.String(), "disabled by configuration")
	}
	return lang, nil
}

// slotFor returns (creating if necessary) the parser slot for lang.
func (r *Registry) slotFor(lang types.Language) (*parserSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.slots[lang]; ok {
		return s, nil
	}

	parser, actual, fallback, err := newParserFor(lang)
	if err != nil {
		return nil, coreerrors.Parser("", err)
	}
	s := &parserSlot{parser: parser, actual: actual, fallback: fallback}
	r.slots[lang] = s
	return s, nil
}

// Parse parses source as lang, returning a freshly owned ParseTree (refcount
// 1). The caller is responsible for eventually calling Release, typically by
// handing the tree straight to the parser cache.
func (r *Registry) Parse(path string, lang types.Language, source []byte) (*ParseTree, error) {
	slot, err := r.slotFor(lang)
	if err != nil {
		return nil, err
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	tree := slot.parser.Parse(source, nil)
	if tree == nil {
		return nil, coreerrors.Parser(path, fmt.Errorf("parser returned no tree"))
	}

	r.statsMu.Lock()
	r.parseCount[lang]++
	r.statsMu.Unlock()

	debug.LogIndex("parsed %s as %s (fallback=%v, %d bytes)", path, slot.actual, slot.fallback, len(source))
	return newParseTree(tree, source, lang, slot.fallback), nil
}

// ParseFile detects the language of path and parses source in one step.
func (r *Registry) ParseFile(path string, source []byte) (*ParseTree, error) {
	lang, err := r.Detect(path)
	if err != nil {
		return nil, err
	}
	return r.Parse(path, lang, source)
}

// RegistryStats summarizes registry activity for observability/CLI reporting.
type RegistryStats struct {
	LoadedParsers  int
	TotalLanguages int
	ParseCounts    map[types.Language]int64
	DetectMisses   int64
}

// Stats reports how many grammars have been lazily loaded so far, the total
// number of languages the table knows about, and per-language parse counts.
func (r *Registry) Stats() RegistryStats {
	r.mu.Lock()
	loaded := len(r.slots)
	r.mu.Unlock()

	r.statsMu.Lock()
	defer r.statsMu.Unlock()

	counts := make(map[types.Language]int64, len(r.parseCount))
	for k, v := range r.parseCount {
		counts[k] = v
	}

	return RegistryStats{
		LoadedParsers:  loaded,
		TotalLanguages: len(grammarFactories) + len(fallbackGrammar),
		ParseCounts:    counts,
		DetectMisses:   r.detectMisses,
	}
}
