package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin teacher"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// UpdateUserRequest 更新用户信息请求
// 修改密码时 old_password 与 new_password 必须同时提供
type UpdateUserRequest struct {
	Name        *string `json:"name"         binding:"omitempty,min=2,max=100"`
	Email       *string `json:"email"        binding:"omitempty,email"`
	Avatar      *string `json:"avatar"       binding:"omitempty,max=500"`
	OldPassword *string `json:"old_password" binding:"omitempty"`
	NewPassword *string `json:"new_password" binding:"omitempty,min=6"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin teacher"`
}
