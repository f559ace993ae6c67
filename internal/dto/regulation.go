package dto

// ── 规定模块 DTO ──

// UpdateRegulationsRequest 批量更新规定请求
type UpdateRegulationsRequest struct {
	Values map[string]float64 `json:"values" binding:"required,min=1"`
}

// RegulationResponse 单条规定响应
type RegulationResponse struct {
	Key         string  `json:"key"`
	Value       float64 `json:"value"`
	Description string  `json:"description,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// CapacityWarning 降低班额后超员班级的提示
type CapacityWarning struct {
	ClassID     string `json:"class_id"`
	ClassName   string `json:"class_name"`
	ActiveCount int64  `json:"active_count"`
	MaxStudent  int    `json:"max_student"`
}

// UpdateRegulationsResponse 批量更新规定响应
type UpdateRegulationsResponse struct {
	Regulations []RegulationResponse `json:"regulations"`
	Warnings    []CapacityWarning    `json:"warnings,omitempty"`
}
