package user

import (
	"github.com/xiebiao/libreria/internal/domain/user"
)

// UserView 用户响应DTO
// 说明：不返回密码哈希（安全考虑），也不返回is_admin（对外只暴露身份本身）
type UserView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	IsDeleted bool   `json:"is_deleted"`
}

// newUserView 领域实体 → 响应DTO
func newUserView(u *user.User) *UserView {
	return &UserView{
		ID:        u.ID,
		Username:  u.Username,
		IsDeleted: u.Deleted(),
	}
}
