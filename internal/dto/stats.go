package dto

// ── 统计模块 DTO ──

// ClassCountItem 班级人数统计
type ClassCountItem struct {
	ClassID      string `json:"class_id"`
	ClassName    string `json:"class_name"`
	StudentCount int64  `json:"student_count"`
}

// GenderCountItem 性别分布统计
type GenderCountItem struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}

// OverviewResponse 首页总览统计
type OverviewResponse struct {
	StudentCount int64             `json:"student_count"`
	ClassCount   int64             `json:"class_count"`
	ByClass      []ClassCountItem  `json:"by_class"`
	ByGender     []GenderCountItem `json:"by_gender"`
}

// RevenueItem 单月实收金额
type RevenueItem struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// RevenueResponse 年度收入统计响应
type RevenueResponse struct {
	Year  int           `json:"year"`
	Items []RevenueItem `json:"items"`
}
