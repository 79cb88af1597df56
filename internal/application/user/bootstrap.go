package user

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/user"
)

// BootstrapAdminUseCase 默认管理员初始化用例
// 设计说明：
// 1. 系统至少要有一个管理员才能创建其他管理员，这里解决"第一个管理员"问题
// 2. 幂等：库里已经存在任何管理员（含已删除的）就什么都不做
// 3. 凭据来自配置文件，生产环境必须改掉默认值
type BootstrapAdminUseCase struct {
	userService user.Service
	userRepo    user.Repository
}

// NewBootstrapAdminUseCase 创建初始化用例
func NewBootstrapAdminUseCase(userService user.Service, userRepo user.Repository) *BootstrapAdminUseCase {
	return &BootstrapAdminUseCase{
		userService: userService,
		userRepo:    userRepo,
	}
}

// Execute 执行初始化
// 返回值表示本次是否真的创建了管理员
func (uc *BootstrapAdminUseCase) Execute(ctx context.Context, username, password string) (bool, error) {
	exists, err := uc.userRepo.HasAdmin(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := uc.userService.CreateAdmin(ctx, username, password); err != nil {
		return false, err
	}
	return true, nil
}
