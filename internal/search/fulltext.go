package search

import (
	"bufio"
	"context"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"

	"github.com/lumenforge/codeintel/internal/types"
)

// posting is one occurrence of a stemmed term.
type posting struct {
	path string
	line int
	col  int
	text string
}

// FullTextLayer is an in-memory word-posting index: terms are stemmed with
// Porter2 before indexing, and Fuzzy queries additionally test edit distance
// 1 against the index vocabulary via go-edlib.
type FullTextLayer struct {
	mu       sync.RWMutex
	postings map[string][]posting
	fileHash map[string]uint64
}

// NewFullTextLayer returns an empty full-text index.
func NewFullTextLayer() *FullTextLayer {
	return &FullTextLayer{
		postings: make(map[string][]posting),
		fileHash: make(map[string]uint64),
	}
}

func (l *FullTextLayer) Name() types.SearchLayer { return types.LayerFullText }

func (l *FullTextLayer) CanHandle(q types.SearchQuery) bool {
	return (q.Type == types.QueryFullText || q.Type == types.QueryFuzzy) && strings.TrimSpace(q.Text) != ""
}

// IndexFile tokenizes source into stemmed terms and replaces path's postings
// in one pass, skipped entirely if content is unchanged.
func (l *FullTextLayer) IndexFile(path string, source []byte) {
	hash := xxhash.Sum64(source)

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.fileHash[path]; ok && prev == hash {
		return
	}
	l.removeLocked(path)
	l.fileHash[path] = hash

	scanner := bufio.NewScanner(strings.NewReader(string(source)))
	line := 0
	for scanner.Scan() {
		line++
		lineText := scanner.Text()
		for _, word := range tokenize(lineText) {
			col := strings.Index(strings.ToLower(lineText), strings.ToLower(word)) + 1
			term := stem(word)
			l.postings[term] = append(l.postings[term], posting{path: path, line: line, col: col, text: lineText})
		}
	}
}

// RemoveFile drops every posting and the content hash recorded for path, as
// if it had never been indexed. Used when a watched file is deleted.
func (l *FullTextLayer) RemoveFile(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeLocked(path)
	delete(l.fileHash, path)
}

func (l *FullTextLayer) removeLocked(path string) {
	for term, list := range l.postings {
		filtered := list[:0]
		for _, p := range list {
			if p.path != path {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			delete(l.postings, term)
		} else {
			l.postings[term] = filtered
		}
	}
}

func (l *FullTextLayer) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	term := stem(q.Text)

	l.mu.RLock()
	defer l.mu.RUnlock()

	var candidates []string
	if _, ok := l.postings[term]; ok {
		candidates = append(candidates, term)
	}
	if q.Type == types.QueryFuzzy {
		for vocab := range l.postings {
			select {
			case <-ctx.Done():
				return nil, nil
			default:
			}
			if vocab == term {
				continue
			}
			score, err := edlib.StringsSimilarity(vocab, term, edlib.Levenshtein)
			if err == nil && withinEditDistanceOne(float64(score), vocab, term) {
				candidates = append(candidates, vocab)
			}
		}
	}

	var out []types.SearchResult
	for _, c := range candidates {
		for _, p := range l.postings[c] {
			select {
			case <-ctx.Done():
				return out, nil
			default:
			}
			if !matchesFilters(p.path, q.Filters) {
				continue
			}
			score := 1.0
			if c != term {
				score = 0.7
			}
			out = append(out, types.SearchResult{
				FilePath:  p.path,
				Line:      p.line,
				Column:    p.col,
				MatchText: p.text,
				Score:     score,
				Layer:     types.LayerFullText,
			})
			if q.Limit > 0 && len(out) >= q.Limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// withinEditDistanceOne approximates "edit distance <= 1" using the
// Levenshtein similarity score edlib reports, since edlib exposes
// normalized similarity rather than a raw distance count.
func withinEditDistanceOne(similarity float64, a, b string) bool {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return true
	}
	threshold := 1.0 - 1.0/float64(maxLen)
	// edlib computes the similarity in float32; allow for its rounding so an
	// exact distance-1 pair is not rejected.
	return similarity >= threshold-1e-6
}

func tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_')
	})
}

func stem(word string) string {
	return porter2.Stem(strings.ToLower(word))
}
