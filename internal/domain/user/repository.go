package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/sqlite层
// 3. 这样domain层不依赖任何外部框架（GORM、sqlx等）
// 4. 查找方法不过滤软删除标志：登录和认证中间件都需要看到
//    已删除用户才能区分"不存在"和"已被删除"
type Repository interface {
	// Create 创建用户
	// 注意：如果用户名已存在，应返回ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户（包含已删除记录）
	// 如果不存在，返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找用户（包含已删除记录）
	// 如果不存在，返回ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Update 更新用户信息（含软删除标志）
	Update(ctx context.Context, user *User) error

	// HasAdmin 是否存在管理员用户（启动时默认管理员播种用）
	HasAdmin(ctx context.Context) (bool, error)
}
