package dto

// ── 点名模块 DTO ──

// SaveAttendanceRequest 单条点名请求
type SaveAttendanceRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Date      string `json:"date"       binding:"required,datetime=2006-01-02"`
	Status    int16  `json:"status"     binding:"omitempty,oneof=1 0 -1"`
	Note      string `json:"note"       binding:"omitempty,max=255"`
}

// AttendanceEntry 整班点名单条记录
type AttendanceEntry struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Status    int16  `json:"status"     binding:"omitempty,oneof=1 0 -1"`
	Note      string `json:"note"       binding:"omitempty,max=255"`
}

// SaveDailyAttendanceRequest 整班点名请求
type SaveDailyAttendanceRequest struct {
	ClassID string            `json:"class_id" binding:"required,uuid"`
	Date    string            `json:"date"     binding:"required,datetime=2006-01-02"`
	Entries []AttendanceEntry `json:"entries"  binding:"required,min=1,dive"`
}

// AttendanceListRequest 点名表查询参数
type AttendanceListRequest struct {
	ClassID string `form:"class_id" binding:"required,uuid"`
	Date    string `form:"date"     binding:"required,datetime=2006-01-02"`
}

// AttendanceItemResponse 点名表单行响应
// 未点名的幼儿 recorded=false，状态按出勤预填
type AttendanceItemResponse struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Status      int16  `json:"status"`
	Note        string `json:"note,omitempty"`
	Recorded    bool   `json:"recorded"`
}
