package dto

// ── 体检模块 DTO ──

// AddCheckupRequest 新增体检记录请求
type AddCheckupRequest struct {
	StudentID   string  `json:"student_id"  binding:"required,uuid"`
	Height      float64 `json:"height"      binding:"required,gt=0,lt=250"`
	Weight      float64 `json:"weight"      binding:"required,gt=0,lt=150"`
	Temperature float64 `json:"temperature" binding:"omitempty,gte=30,lte=45"`
	Note        string  `json:"note"        binding:"omitempty,max=255"`
}

// HealthComparisonRequest 体检对比查询参数
type HealthComparisonRequest struct {
	Keyword string `form:"keyword"  binding:"omitempty,max=50"`
	ClassID string `form:"class_id" binding:"omitempty,uuid"`
}

// HealthRecordResponse 单条体检记录响应
type HealthRecordResponse struct {
	ID          string  `json:"id"`
	MeasuredAt  string  `json:"measured_at"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	Temperature float64 `json:"temperature"`
	Note        string  `json:"note,omitempty"`
}

// HealthComparisonResponse 幼儿最近两次体检对比
// previous 为空时 temp_delta 不返回
type HealthComparisonResponse struct {
	StudentID   string                `json:"student_id"`
	StudentName string                `json:"student_name"`
	ClassName   string                `json:"class_name,omitempty"`
	Current     *HealthRecordResponse `json:"current,omitempty"`
	Previous    *HealthRecordResponse `json:"previous,omitempty"`
	TempDelta   *float64              `json:"temp_delta,omitempty"`
}

// HealthAlertResponse 体温异常提醒
type HealthAlertResponse struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Temperature float64 `json:"temperature"`
	MeasuredAt  string  `json:"measured_at"`
	Note        string  `json:"note,omitempty"`
}
