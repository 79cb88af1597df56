package user

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/user"
)

// CreateAdminUseCase 创建管理员用例
// 只有管理员可以创建管理员（权限检查在middleware完成）
type CreateAdminUseCase struct {
	userService user.Service
}

// NewCreateAdminUseCase 创建管理员用例
func NewCreateAdminUseCase(userService user.Service) *CreateAdminUseCase {
	return &CreateAdminUseCase{
		userService: userService,
	}
}

// CreateAdminRequest 创建管理员请求DTO
type CreateAdminRequest struct {
	Username string
	Password string
}

// Execute 执行创建管理员
func (uc *CreateAdminUseCase) Execute(ctx context.Context, req CreateAdminRequest) (*UserView, error) {
	u, err := uc.userService.CreateAdmin(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	return newUserView(u), nil
}
