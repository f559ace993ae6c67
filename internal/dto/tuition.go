package dto

// ── 学费模块 DTO ──

// TuitionSheetRequest 月度学费表查询参数
type TuitionSheetRequest struct {
	Month   string `form:"month"    binding:"omitempty,len=7"`
	ClassID string `form:"class_id" binding:"omitempty,uuid"`
}

// TuitionRowResponse 学费表单行响应
// persisted=false 表示该行为未落库的默认单
type TuitionRowResponse struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	ClassName   string  `json:"class_name,omitempty"`
	Month       string  `json:"month"`
	MealDays    int     `json:"meal_days"`
	BaseTuition float64 `json:"base_tuition"`
	MealTotal   float64 `json:"meal_total"`
	Discount    float64 `json:"discount"`
	TotalDue    float64 `json:"total_due"`
	PaidAmount  float64 `json:"paid_amount"`
	Status      bool    `json:"status"`
	Persisted   bool    `json:"persisted"`
}

// TuitionSummary 学费表汇总
type TuitionSummary struct {
	TotalDue    float64 `json:"total_due"`
	TotalPaid   float64 `json:"total_paid"`
	Outstanding float64 `json:"outstanding"`
	PaidCount   int     `json:"paid_count"`
	UnpaidCount int     `json:"unpaid_count"`
}

// TuitionSheetResponse 月度学费表响应
type TuitionSheetResponse struct {
	Month     string               `json:"month"`
	PrevMonth string               `json:"prev_month"`
	NextMonth string               `json:"next_month"`
	Months    []string             `json:"months"`
	Rows      []TuitionRowResponse `json:"rows"`
	Summary   TuitionSummary       `json:"summary"`
}

// InitMonthRequest 批量开单请求
type InitMonthRequest struct {
	Month   string `json:"month"    binding:"required,len=7"`
	ClassID string `json:"class_id" binding:"omitempty,uuid"`
}

// InitMonthResponse 批量开单响应
type InitMonthResponse struct {
	Created int `json:"created"`
}

// UpdateTuitionRequest 单条学费单修改请求
type UpdateTuitionRequest struct {
	StudentID  string  `json:"student_id"  binding:"required,uuid"`
	Month      string  `json:"month"       binding:"required,len=7"`
	MealDays   int     `json:"meal_days"   binding:"omitempty,min=0,max=31"`
	Discount   float64 `json:"discount"    binding:"omitempty,min=0"`
	PaidAmount float64 `json:"paid_amount" binding:"omitempty,min=0"`
}
