package llm

import (
	"context"
	"encoding/json"
)

// ReceiptExtraction is the raw provider output envelope: the completion text
// plus the provider's raw payload, kept only for diagnostics. The content is
// untrusted free text and may not be valid JSON.
type ReceiptExtraction struct {
	Content string
	Raw     json.RawMessage
}

// VisionClient is the capability the pipeline depends on for turning a
// receipt image into a completion. Provider quirks stay behind this
// interface and never leak into the parser or normalizer.
type VisionClient interface {
	AnalyzeReceiptImage(ctx context.Context, imagePath string) (ReceiptExtraction, error)
}

// TextClient is the cheaper text-only capability used for category
// classification.
type TextClient interface {
	CompleteText(ctx context.Context, prompt string, maxTokens int) (string, error)
}
