package search

import (
	"bufio"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sync/semaphore"

	coreerrors "github.com/lumenforge/codeintel/internal/errors"
	"github.com/lumenforge/codeintel/internal/types"
)

// RipgrepLayer is the last-resort layer (§4.5 layer 4): it spawns an
// external line-grep binary with explicit argv arguments (never shell
// interpolation) and parses "path:line:col:content" lines from stdout.
// Concurrent invocations are bounded by a semaphore, default weight 4, so a
// burst of fallback queries cannot fork unbounded subprocesses.
type RipgrepLayer struct {
	binary string
	sem    *semaphore.Weighted
}

// NewRipgrepLayer constructs a layer invoking binary (e.g. "rg"), allowing
// at most maxConcurrent simultaneous subprocess invocations.
func NewRipgrepLayer(binary string, maxConcurrent int64) *RipgrepLayer {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &RipgrepLayer{binary: binary, sem: semaphore.NewWeighted(maxConcurrent)}
}

func (l *RipgrepLayer) Name() types.SearchLayer { return types.LayerRipgrepFallback }

// CanHandle accepts FullText/Fuzzy queries. The engine runs this layer only
// once the earlier layers have returned empty.
func (l *RipgrepLayer) CanHandle(q types.SearchQuery) bool {
	return q.Type == types.QueryFullText || q.Type == types.QueryFuzzy
}

func (l *RipgrepLayer) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, coreerrors.Cancelled()
	}
	defer l.sem.Release(1)

	args := []string{"--line-number", "--column", "--no-heading"}
	if !q.Filters.CaseSensitive {
		args = append(args, "--ignore-case")
	}
	if q.Filters.WordBoundaries {
		args = append(args, "--word-regexp")
	}
	args = append(args, q.Text)
	if q.Filters.Directory != "" {
		args = append(args, q.Filters.Directory)
	}
	args = append(args, q.Filters.Files...)

	cmd := exec.CommandContext(ctx, l.binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, coreerrors.Execution(err.Error())
	}
	if err := cmd.Start(); err != nil {
		return nil, coreerrors.Execution(err.Error())
	}

	var out []types.SearchResult
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			_ = cmd.Process.Kill()
			return out, nil
		default:
		}
		if r, ok := parseGrepLine(scanner.Text()); ok {
			r.Layer = types.LayerRipgrepFallback
			out = append(out, r)
			if q.Limit > 0 && len(out) >= q.Limit {
				_ = cmd.Process.Kill()
				break
			}
		}
	}

	err = cmd.Wait()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			// rg/grep exit code 1 means "no matches", a successful empty result.
			return out, nil
		}
		if ctx.Err() != nil {
			return out, nil
		}
		return out, coreerrors.Execution(err.Error())
	}
	return out, nil
}

// parseGrepLine parses "path:line:col:content" as produced by --line-number
// --column --no-heading output.
func parseGrepLine(line string) (types.SearchResult, bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 4 {
		return types.SearchResult{}, false
	}
	lineNo, err1 := strconv.Atoi(parts[1])
	col, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return types.SearchResult{}, false
	}
	return types.SearchResult{
		FilePath:  parts[0],
		Line:      lineNo,
		Column:    col,
		MatchText: parts[3],
		Score:     0.5,
	}, true
}
