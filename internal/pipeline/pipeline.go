// Package pipeline coordinates the receipt analysis stages: intake →
// vision extraction → parse → normalize → classify.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/gastozero/backend/internal/classifier"
	"github.com/gastozero/backend/internal/common"
	"github.com/gastozero/backend/internal/llm"
	"github.com/gastozero/backend/internal/receipt"
	"github.com/gastozero/backend/internal/storage"
)

type Processor struct {
	store      *storage.LocalStore
	vision     llm.VisionClient
	classifier *classifier.Classifier
	log        *slog.Logger
}

func NewProcessor(store *storage.LocalStore, vision llm.VisionClient, cls *classifier.Classifier, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{store: store, vision: vision, classifier: cls, log: logger}
}

// AnalyzeUpload runs the full pipeline for one uploaded file. On any stage
// failure after intake the stored file is deleted before the error
// propagates; on success the file is retained and ownership passes to the
// caller.
func (p *Processor) AnalyzeUpload(ctx context.Context, r io.Reader, originalName string, userID uint) (receipt.Receipt, error) {
	start := time.Now()
	rid := common.RequestIDFromContext(ctx)

	absPath, uniqueName, err := p.store.SaveUpload(r, originalName, userID)
	if err != nil {
		return receipt.Receipt{}, err
	}

	succeeded := false
	defer func() {
		if !succeeded {
			p.store.Delete(absPath)
		}
	}()

	extraction, err := p.vision.AnalyzeReceiptImage(ctx, absPath)
	if err != nil {
		return receipt.Receipt{}, err
	}

	parsed, err := llm.Parse(extraction, p.log)
	if err != nil {
		return receipt.Receipt{}, err
	}

	rec := receipt.Normalize(parsed, uniqueName, p.log)

	if rec.Category == nil {
		cat := p.classifier.Classify(ctx, rec.Items)
		rec.Category = &cat
	}

	succeeded = true
	p.log.Info("pipeline.analyze.ok",
		"req_id", rid,
		"user_id", userID,
		"file", uniqueName,
		"store", rec.Store,
		"items", len(rec.Items),
		"total", rec.TotalAmount.String(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}
