package dto

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag（长度规则与领域层常量一致）
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=4,max=20" example:"lector42"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"secreto123"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"lector42"`
	Password string `json:"password" binding:"required" example:"secreto123"`
}

// CreateAdminRequest HTTP层创建管理员请求
// 字段规则与注册一致，区别只在目标用户的角色
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,min=4,max=20" example:"gerente"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"secreto123"`
}

// ChangePasswordRequest HTTP层修改密码请求
// 只能修改自己的密码，目标用户来自Token
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8" example:"nueva-clave-9"`
}
