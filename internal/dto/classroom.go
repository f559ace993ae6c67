package dto

// ── 班级模块 DTO ──

// CreateClassRequest 新建班级请求
type CreateClassRequest struct {
	Name      string  `json:"name"       binding:"required,min=2,max=100"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
}

// UpdateClassRequest 更新班级请求
type UpdateClassRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// AssignTeacherRequest 指派班主任请求
// teacher_id 为空时解除指派
type AssignTeacherRequest struct {
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
}

// ClassResponse 班级响应
type ClassResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TeacherID    string `json:"teacher_id,omitempty"`
	TeacherName  string `json:"teacher_name,omitempty"`
	StudentCount int64  `json:"student_count"`
}
