package dto

// ── 幼儿模块 DTO ──

// CreateStudentRequest 入园登记请求
type CreateStudentRequest struct {
	Name         string  `json:"name"          binding:"required,min=2,max=100"`
	BirthDate    string  `json:"birth_date"    binding:"omitempty,datetime=2006-01-02"`
	Gender       string  `json:"gender"        binding:"required,oneof=male female"`
	GuardianName string  `json:"guardian_name" binding:"omitempty,max=100"`
	Phone        string  `json:"phone"         binding:"omitempty,max=20"`
	Avatar       string  `json:"avatar"        binding:"omitempty,max=500"`
	ClassID      *string `json:"class_id"      binding:"omitempty,uuid"`
}

// UpdateStudentRequest 更新幼儿信息请求
type UpdateStudentRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	BirthDate    *string `json:"birth_date"    binding:"omitempty,datetime=2006-01-02"`
	Gender       *string `json:"gender"        binding:"omitempty,oneof=male female"`
	GuardianName *string `json:"guardian_name" binding:"omitempty,max=100"`
	Phone        *string `json:"phone"         binding:"omitempty,max=20"`
	Avatar       *string `json:"avatar"        binding:"omitempty,max=500"`
	ClassID      *string `json:"class_id"      binding:"omitempty,uuid"`
}

// StudentListRequest 幼儿列表查询参数
type StudentListRequest struct {
	Keyword string `form:"keyword"  binding:"omitempty,max=50"`
	ClassID string `form:"class_id" binding:"omitempty,uuid"`
}

// StudentResponse 幼儿信息响应
type StudentResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date,omitempty"`
	Gender       string `json:"gender"`
	GuardianName string `json:"guardian_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	ClassID      string `json:"class_id,omitempty"`
	ClassName    string `json:"class_name,omitempty"`
	IsActive     bool   `json:"is_active"`
}
