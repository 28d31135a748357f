// Package classifier assigns an expense category to a receipt's items using
// the text-only model. Classification is a convenience, never a hard
// dependency: every failure path degrades to the default category.
package classifier

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gastozero/backend/constants"
	"github.com/gastozero/backend/internal/llm"
	"github.com/gastozero/backend/internal/receipt"
)

// classifyMaxTokens bounds the answer; the model only needs one word.
const classifyMaxTokens = 60

type Classifier struct {
	client llm.TextClient
	log    *slog.Logger
}

func New(client llm.TextClient, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{client: client, log: logger}
}

// Classify returns a category for the purchased items. Empty input
// short-circuits to the default without a network call. Answer validation is
// layered — exact enum match, then case-insensitive substring, then default —
// and each tier is logged so silent degradation stays diagnosable.
func (c *Classifier) Classify(ctx context.Context, items []receipt.LineItem) constants.Category {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name := strings.TrimSpace(item.Name); name != "" {
			names = append(names, name)
		}
		if len(names) == llm.MaxPromptItems {
			break
		}
	}
	if len(names) == 0 {
		c.log.Info("classifier.skip_empty_items")
		return constants.DefaultCategory
	}

	start := time.Now()
	answer, err := c.client.CompleteText(ctx, llm.BuildClassificationPrompt(names), classifyMaxTokens)
	if err != nil {
		c.log.Warn("classifier.request_failed",
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return constants.DefaultCategory
	}

	cat, tier := constants.Canonicalize(answer)
	switch tier {
	case constants.MatchExact:
		c.log.Info("classifier.match_exact", "category", cat)
	case constants.MatchSubstring:
		c.log.Warn("classifier.match_substring", "category", cat, "answer", answer)
	default:
		c.log.Warn("classifier.match_none", "answer", answer, "fallback", cat)
	}
	return cat
}
