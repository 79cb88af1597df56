package user

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/user"
)

// ChangePasswordUseCase 修改密码用例
type ChangePasswordUseCase struct {
	userService user.Service
}

// NewChangePasswordUseCase 创建修改密码用例
func NewChangePasswordUseCase(userService user.Service) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userService: userService,
	}
}

// ChangePasswordRequest 修改密码请求DTO
type ChangePasswordRequest struct {
	UserID      uint   // 当前登录用户ID（从JWT中提取，只能改自己的密码）
	NewPassword string // 新密码明文，存储前重新哈希
}

// Execute 执行修改密码
// 旧Token不会失效，但密码修改后旧密码立即不可用
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, req ChangePasswordRequest) (*UserView, error) {
	u, err := uc.userService.ChangePassword(ctx, req.UserID, req.NewPassword)
	if err != nil {
		return nil, err
	}

	return newUserView(u), nil
}
