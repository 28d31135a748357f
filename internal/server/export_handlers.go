package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gastozero/backend/internal/export"
	"github.com/gastozero/backend/internal/receipt"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExport turns the receipts posted by the client into an XLSX download.
func (s *Server) handleExport(c *gin.Context) {
	var receipts []receipt.Receipt
	if err := c.ShouldBindJSON(&receipts); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", "request body must be a JSON array of receipts")
		return
	}

	data, err := export.BuildReceiptsWorkbook(receipts)
	if err != nil {
		s.log.Error("export.build_failed", "error", err, "receipts", len(receipts))
		respondError(c, http.StatusInternalServerError, "internal_error", "could not build the spreadsheet")
		return
	}

	filename := fmt.Sprintf("cupons_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
