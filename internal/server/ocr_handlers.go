package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastozero/backend/internal/llm"
	"github.com/gastozero/backend/internal/storage"
)

// handleAnalyze accepts a multipart receipt upload (field "file"), runs the
// analysis pipeline and returns the normalized receipt. Intake errors are
// 400; provider and parse failures are 500 with the specific error kind, and
// the stored file has already been cleaned up by the pipeline.
func (s *Server) handleAnalyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthenticated", "access token required")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", "multipart field 'file' is required")
		return
	}
	if s.cfg.Upload.MaxBytes > 0 && header.Size > s.cfg.Upload.MaxBytes {
		respondError(c, http.StatusBadRequest, "invalid_input",
			fmt.Sprintf("file exceeds the %d byte upload limit", s.cfg.Upload.MaxBytes))
		return
	}

	src, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", "could not read uploaded file")
		return
	}
	defer func() { _ = src.Close() }()

	rec, err := s.analyzer.AnalyzeUpload(c.Request.Context(), src, header.Filename, userID)
	if err != nil {
		s.respondAnalyzeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "receipt analyzed",
		"data":    rec,
	})
}

func (s *Server) respondAnalyzeError(c *gin.Context, err error) {
	var invalidType *storage.InvalidFileTypeError
	if errors.As(err, &invalidType) {
		respondError(c, http.StatusBadRequest, "invalid_file_type", invalidType.Error())
		return
	}

	var parseErr *llm.ParseError
	if errors.As(err, &parseErr) {
		s.log.Error("ocr.analyze.invalid_json", "detail", parseErr.Detail, "raw_bytes", len(parseErr.RawText))
		respondError(c, http.StatusInternalServerError, "invalid_json",
			"the model answered but not in the agreed format")
		return
	}

	var provErr *llm.ProviderError
	if errors.As(err, &provErr) {
		s.log.Error("ocr.analyze.provider_error", "kind", provErr.Kind, "status", provErr.Status, "message", provErr.Message)
		respondError(c, http.StatusInternalServerError, string(provErr.Kind), provErr.Message)
		return
	}

	s.log.Error("ocr.analyze.failed", "error", err)
	respondError(c, http.StatusInternalServerError, "internal_error", "could not process the uploaded file")
}

// handleOCRTest reports whether the provider credential is configured and
// which models are active.
func (s *Server) handleOCRTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"configured":   s.cfg.LLM.APIKey != "",
		"vision_model": s.cfg.LLM.VisionModel,
		"text_model":   s.cfg.LLM.TextModel,
	})
}
