package user

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. Application层负责用例编排，协调多个领域服务
// 2. 当前注册用例比较简单，只调用一个领域服务
// 3. 未来可能扩展：注册事件、审计日志等
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
	}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Username string
	Password string
}

// Execute 执行注册
// 注册出来的都是普通用户；用户名重复（包括与已删除用户重名）返回409
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserView, error) {
	u, err := uc.userService.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	return newUserView(u), nil
}
