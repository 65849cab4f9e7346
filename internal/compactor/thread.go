package compactor

import (
	"regexp"
	"strings"
	"time"

	"github.com/lumenforge/codeintel/internal/types"
)

var fencedBlockRe = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*\n(.*?)\n```")

// CompactThread implements the optional C7 thread-compression surface:
// fenced code blocks inside each message are compacted in place via the
// language-agnostic fallback compactor (messages carry no reliable file
// path to detect a grammar from); prose outside fences is untouched.
// Token counts are the spec's declared approximation of bytes/4.
func (c *Compactor) CompactThread(messages []types.ThreadMessage, level types.CompactionLevel) ([]types.ThreadMessage, types.ThreadCompactionMetrics) {
	start := time.Now()

	out := make([]types.ThreadMessage, len(messages))
	var metrics types.ThreadCompactionMetrics

	for i, msg := range messages {
		metrics.MessagesProcessed++
		metrics.OriginalTokens += len(msg.Content) / 4

		compacted := fencedBlockRe.ReplaceAllStringFunc(msg.Content, func(block string) string {
			metrics.CodeBlocksCompressed++
			fence := block[:strings.IndexByte(block, '\n')+1]
			body := strings.TrimSuffix(strings.TrimPrefix(block, fence), "\n```")
			compactedBody, _ := fallbackCompact([]byte(body), level)
			return fence + compactedBody + "\n```"
		})

		out[i] = types.ThreadMessage{Role: msg.Role, Content: compacted}
		metrics.CompressedTokens += len(compacted) / 4
	}

	if metrics.OriginalTokens > 0 {
		metrics.CompressionRatio = 1 - float64(metrics.CompressedTokens)/float64(metrics.OriginalTokens)
	}
	metrics.TimeMs = float64(time.Since(start).Microseconds()) / 1000.0

	return out, metrics
}
