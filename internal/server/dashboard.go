package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastozero/backend/constants"
)

// handleDashboardSummary serves placeholder aggregates so the frontend can be
// developed against a stable shape. Real numbers depend on a ledger the
// backend does not keep yet.
func (s *Server) handleDashboardSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total_month": 1245.90,
			"total_week":  312.40,
			"receipts":    18,
			"by_category": gin.H{
				string(constants.Food):          612.30,
				string(constants.Transport):     210.00,
				string(constants.Utility):       298.60,
				string(constants.Entertainment): 125.00,
			},
		},
	})
}
