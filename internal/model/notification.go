package model

// Notification 通知公告表 — 对应 notifications
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	IsActive       bool    `gorm:"not null;default:true"                          json:"is_active"`
	UserID         *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	BaseModel

	// 关联
	Poster *User `gorm:"foreignKey:UserID;references:UserID" json:"poster,omitempty"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go
