package types

import "time"

// QueryType selects which search semantics a query expects.
type QueryType string

const (
	QuerySymbol     QueryType = "Symbol"
	QueryDefinition QueryType = "Definition"
	QueryReference  QueryType = "Reference"
	QueryFullText   QueryType = "FullText"
	QueryFuzzy      QueryType = "Fuzzy"
	QueryStructural QueryType = "Structural"
)

// SearchLayer identifies which backend produced a result, reported to callers
// as provenance so they can reason about cost and confidence.
type SearchLayer string

const (
	LayerSymbolIndex     SearchLayer = "SymbolIndex"
	LayerFullText        SearchLayer = "Tantivy"
	LayerAstCache        SearchLayer = "AstCache"
	LayerRipgrepFallback SearchLayer = "RipgrepFallback"
	LayerCombined        SearchLayer = "Combined"
)

// SearchFilters narrows a query to a subset of the workspace.
type SearchFilters struct {
	Files          []string
	Directory      string
	Languages      []Language
	CaseSensitive  bool
	WordBoundaries bool
}

// RoutingMode controls whether the engine stops at the first non-empty layer
// or merges results across every layer it attempted.
type RoutingMode int

const (
	RoutingFirstMatch RoutingMode = iota
	RoutingCombined
)

// SearchQuery is the full shape of one search request.
type SearchQuery struct {
	Text         string
	Type         QueryType
	Filters      SearchFilters
	Limit        int
	ContextLines int
	Timeout      time.Duration
	Mode         RoutingMode
}

// SearchResult is one match, tagged with the layer that produced it so
// Combined-mode merges can dedupe by (path, line, column) and keep the max
// score across layers.
type SearchResult struct {
	FilePath    string
	Line        int
	Column      int
	EndLine     int
	EndCol      int
	MatchText   string
	Context     []string
	Score       float64
	Layer       SearchLayer
	SymbolID    SymbolID
	SymbolName  string
	SymbolKind  SymbolKind
}

// NewQuery starts a SearchQuery builder with text and the FullText default,
// chained with the With* methods below, e.g.
// types.NewQuery("TODO").WithType(types.QuerySymbol).WithLimit(20).
func NewQuery(text string) SearchQuery {
	return SearchQuery{Text: text, Type: QueryFullText}
}

// WithType sets the query semantics and returns the query for chaining.
func (q SearchQuery) WithType(t QueryType) SearchQuery {
	q.Type = t
	return q
}

// WithFilters sets the file/directory/language filters and returns the query
// for chaining.
func (q SearchQuery) WithFilters(f SearchFilters) SearchQuery {
	q.Filters = f
	return q
}

// WithLimit caps the number of results and returns the query for chaining.
func (q SearchQuery) WithLimit(n int) SearchQuery {
	q.Limit = n
	return q
}

// WithContextLines sets how many lines of surrounding context to attach to
// each result and returns the query for chaining.
func (q SearchQuery) WithContextLines(n int) SearchQuery {
	q.ContextLines = n
	return q
}

// WithTimeout bounds how long the engine may spend on this query and returns
// the query for chaining.
func (q SearchQuery) WithTimeout(d time.Duration) SearchQuery {
	q.Timeout = d
	return q
}

// WithMode selects first-match or combined routing and returns the query for
// chaining.
func (q SearchQuery) WithMode(m RoutingMode) SearchQuery {
	q.Mode = m
	return q
}

// SearchStats carries execution metadata for one completed query.
type SearchStats struct {
	Duration     time.Duration
	TotalResults int
	Strategy     string
	LayersTried  []SearchLayer
}

// StreamEvent is one increment of a streaming search response; IsFinal marks
// the terminal event (possibly carrying zero results, e.g. on cancellation).
type StreamEvent struct {
	Results []SearchResult
	IsFinal bool
}
