package user

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/user"
)

// DeleteUserUseCase 用户逻辑删除用例
// 管理员按ID删除任意用户，普通用户删除自己，走的是同一个用例
type DeleteUserUseCase struct {
	userService user.Service
}

// NewDeleteUserUseCase 创建删除用例
func NewDeleteUserUseCase(userService user.Service) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userService: userService,
	}
}

// Execute 执行删除
// 被删除的用户下次请求会在认证环节被拒绝（Token还在但状态已失效）
func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uint) (*UserView, error) {
	u, err := uc.userService.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return newUserView(u), nil
}

// RestoreUserUseCase 用户恢复用例
type RestoreUserUseCase struct {
	userService user.Service
}

// NewRestoreUserUseCase 创建恢复用例
func NewRestoreUserUseCase(userService user.Service) *RestoreUserUseCase {
	return &RestoreUserUseCase{
		userService: userService,
	}
}

// Execute 执行恢复
// 恢复未删除的用户返回409
func (uc *RestoreUserUseCase) Execute(ctx context.Context, id uint) (*UserView, error) {
	u, err := uc.userService.RestoreUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return newUserView(u), nil
}
