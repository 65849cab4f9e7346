package cache

import (
	"testing"

	"github.com/lumenforge/codeintel/internal/language"
	"github.com/lumenforge/codeintel/internal/types"
)

func mustParse(t *testing.T, reg *language.Registry, path, src string) *language.ParseTree {
	t.Helper()
	tree, err := reg.ParseFile(path, []byte(src))
	if err != nil {
		t.Fatalf("ParseFile(%s): %v", path, err)
	}
	return tree
}

func TestParserCache_InsertAndGet(t *testing.T) {
	reg := language.NewRegistry()
	c := New(Config{BudgetBytes: DefaultBudgetBytes})

	tree := mustParse(t, reg, "main.go", "package main\nfunc main() {}\n")
	c.Insert("main.go", tree)

	got, ok := c.Get("main.go")
	if !ok {
		t.Fatal("expected cache hit after insert")
	}
	if got.Language() != types.LangGo {
		t.Errorf("expected Go, got %s", got.Language())
	}
	got.Release()

	stats := c.Stats()
	if stats.Entries != 1 {
		t.Errorf("expected 1 entry, got %d", stats.Entries)
	}
	if stats.Hits != 1 || stats.Misses != 0 {
		t.Errorf("expected 1 hit 0 miss, got hits=%d misses=%d", stats.Hits, stats.Misses)
	}
}

func TestParserCache_MissIncrementsCounter(t *testing.T) {
	c := New(Config{BudgetBytes: DefaultBudgetBytes})
	if _, ok := c.Get("nope.go"); ok {
		t.Fatal("expected miss on empty cache")
	}
	if stats := c.Stats(); stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
}

func TestParserCache_EvictsLeastRecentlyUsed(t *testing.T) {
	reg := language.NewRegistry()

	a := mustParse(t, reg, "a.go", "package main\nfunc a() {}\n")
	b := mustParse(t, reg, "b.go", "package main\nfunc b() {}\n")

	budget := a.EstimatedSize() + 10 // only room for roughly one entry
	c := New(Config{BudgetBytes: budget})

	c.Insert("a.go", a)
	c.Insert("b.go", b)

	if c.Contains("a.go") {
		t.Error("expected a.go to be evicted once budget was exceeded")
	}
	if !c.Contains("b.go") {
		t.Error("expected b.go (most recently inserted) to remain resident")
	}
	if stats := c.Stats(); stats.Evictions == 0 {
		t.Error("expected at least one eviction")
	}
}

func TestParserCache_GetPromotesToFront(t *testing.T) {
	reg := language.NewRegistry()

	a := mustParse(t, reg, "a.go", "package main\nfunc a() {}\n")
	b := mustParse(t, reg, "b.go", "package main\nfunc b() {}\n")
	c3 := mustParse(t, reg, "c.go", "package main\nfunc c() {}\n")

	budget := a.EstimatedSize() + b.EstimatedSize() + 10
	c := New(Config{BudgetBytes: budget})

	c.Insert("a.go", a)
	c.Insert("b.go", b)

	// Touch a.go so it becomes more recently used than b.go.
	if tree, ok := c.Get("a.go"); ok {
		tree.Release()
	}

	c.Insert("c.go", c3)

	if !c.Contains("a.go") {
		t.Error("expected a.go to survive eviction after being promoted")
	}
	if c.Contains("b.go") {
		t.Error("expected b.go to be evicted as the true least-recently-used entry")
	}
}

func TestParserCache_InvalidateAndClear(t *testing.T) {
	reg := language.NewRegistry()
	tree := mustParse(t, reg, "a.go", "package main\nfunc a() {}\n")

	c := New(Config{BudgetBytes: DefaultBudgetBytes})
	c.Insert("a.go", tree)

	if !c.Invalidate("a.go") {
		t.Error("expected Invalidate to report a removal")
	}
	if c.Contains("a.go") {
		t.Error("expected a.go gone after Invalidate")
	}

	tree2 := mustParse(t, reg, "b.go", "package main\nfunc b() {}\n")
	c.Insert("b.go", tree2)
	c.Clear()

	if stats := c.Stats(); stats.Entries != 0 || stats.CurrentBytes != 0 {
		t.Errorf("expected empty cache after Clear, got %+v", stats)
	}
}
