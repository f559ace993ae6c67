package dto

// ── 通知模块 DTO ──

// CreateNotificationRequest 发布通知请求
type CreateNotificationRequest struct {
	Title   string `json:"title"   binding:"required,min=2,max=200"`
	Content string `json:"content" binding:"required"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	PosterName string `json:"poster_name,omitempty"`
	CreatedAt  string `json:"created_at"`
}
