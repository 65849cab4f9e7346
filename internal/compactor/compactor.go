package compactor

import (
	"regexp"
	"strings"
	"time"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lumenforge/codeintel/internal/language"
	"github.com/lumenforge/codeintel/internal/types"
)

// Compactor renders parse trees down to textual skeletons. It carries no
// mutable state; every method is safe for concurrent use (I6: compaction is
// a pure function of its inputs).
type Compactor struct{}

// New returns a ready-to-use Compactor.
func New() *Compactor { return &Compactor{} }

// Compact produces a CompactionResult for tree at the requested level. Runs
// the structural tree-walk when tree used a first-class grammar, or the
// language-agnostic line-based fallback when it used a borrowed grammar
// (language.IsFallback reports the same condition via ParseTree.UsedFallback).
func (c *Compactor) Compact(tree *language.ParseTree, level types.CompactionLevel) types.CompactionResult {
	start := time.Now()
	source := tree.Source()

	var text string
	var elementCount int
	var weights map[string]float32

	if tree.UsedFallback() {
		text, elementCount = fallbackCompact(source, level)
	} else {
		root := tree.Root()
		var sb strings.Builder
		weights = make(map[string]float32)
		walkChildren(root, source, level, &sb, &elementCount, weights)
		text = sb.String()
	}

	if level == types.CompactLight {
		text = collapseBlankLines(text)
	}

	compressed := len(text)
	original := len(source)
	ratio := 0.0
	if original > 0 {
		ratio = 1 - float64(compressed)/float64(original)
	}

	return types.CompactionResult{
		CompactedText:    text,
		OriginalBytes:    original,
		CompressedBytes:  compressed,
		CompressionRatio: ratio,
		ProcessingMs:     float64(time.Since(start).Microseconds()) / 1000.0,
		Language:         tree.Language(),
		ElementCount:     elementCount,
		Weights:          weights,
	}
}

// walkChildren applies the level's retention rules to each child of node in
// source order, recursing into container declarations at Medium so nested
// members are considered individually rather than swallowed whole.
func walkChildren(node *tree_sitter.Node, source []byte, level types.CompactionLevel, sb *strings.Builder, elementCount *int, weights map[string]float32) {
	if node == nil {
		return
	}
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		kind := child.Kind()
		text := string(source[child.StartByte():child.EndByte()])

		switch {
		case language.IsCommentKind(kind):
			if level == types.CompactLight {
				sb.WriteString(text)
				sb.WriteByte('\n')
			}
			if weights != nil {
				weights[kind] = nodeWeight(kind, text, false)
			}

		case language.DeclarationKinds[kind]:
			vis := language.ClassifyVisibility(text)
			isPublic := vis == "Public"
			if weights != nil {
				weights[kind] = nodeWeight(kind, text, isPublic)
			}

			if level == types.CompactHard && !isPublic {
				continue
			}

			switch level {
			case types.CompactLight:
				sb.WriteString(text)
				sb.WriteByte('\n')
			default: // Medium, Hard: signature only
				sig := extractSignature(child, source)
				sb.WriteString(sig)
				sb.WriteByte('\n')
			}
			*elementCount++

			if level == types.CompactMedium && containerKinds[kind] {
				if body := findBodyChild(child); body != nil {
					walkChildren(body, source, level, sb, elementCount, weights)
				}
			}

		default:
			if level == types.CompactLight {
				sb.WriteString(text)
				sb.WriteByte('\n')
			}
			// Medium/Hard: plain statements outside a declaration are dropped.
		}
	}
}

// extractSignature returns the source text from node's start to the start of
// its first body-like child, trimmed, or the whole node trimmed if it has no
// body (e.g. a field or type alias).
func extractSignature(node *tree_sitter.Node, source []byte) string {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child != nil && language.BodyKinds[child.Kind()] {
			return strings.TrimSpace(string(source[node.StartByte():child.StartByte()]))
		}
	}
	return strings.TrimSpace(string(source[node.StartByte():node.EndByte()]))
}

// findBodyChild returns the first child of node whose kind is a body kind.
func findBodyChild(node *tree_sitter.Node) *tree_sitter.Node {
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child != nil && language.BodyKinds[child.Kind()] {
			return child
		}
	}
	return nil
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// collapseBlankLines strips Light's "dead whitespace": runs of 2+ blank
// lines collapse to exactly one.
func collapseBlankLines(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n\n")
}

// declKeywordRe matches the language-agnostic declaration keywords spec §4.3
// names for the fallback textual compactor.
var declKeywordRe = regexp.MustCompile(`^\s*(fn|def|func|class|struct|enum|trait|interface|type|import|use)\b`)

var blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

// fallbackCompact implements the language-agnostic line filter spec §4.3
// describes for trees built from a borrowed grammar: strip block comments,
// collapse blank runs, keep only declaration-shaped lines (progressively
// fewer of them as the level escalates).
func fallbackCompact(source []byte, level types.CompactionLevel) (string, int) {
	text := blockCommentRe.ReplaceAllString(string(source), "")
	lines := strings.Split(text, "\n")

	var kept []string
	count := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
			if level == types.CompactLight {
				kept = append(kept, line)
			}
			continue
		}
		if declKeywordRe.MatchString(line) {
			kept = append(kept, line)
			count++
			continue
		}
		if level == types.CompactLight {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), count
}
