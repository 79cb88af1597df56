package sale

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/pagination"
)

// Repository 销售仓储接口(依赖倒置原则)
// 查找方法不过滤软删除标志,可见性规则由调用方通过状态机检查;
// 列表方法只返回未删除记录(默认查询语义)
type Repository interface {
	// Create 创建销售记录
	Create(ctx context.Context, sale *Sale) error

	// FindByID 根据ID查找销售记录(包含已删除记录)
	FindByID(ctx context.Context, id uint) (*Sale, error)

	// Update 更新销售记录(含软删除标志)
	Update(ctx context.Context, sale *Sale) error

	// List 分页查询所有未删除的销售记录
	List(ctx context.Context, params pagination.Params) ([]*Sale, int64, error)

	// ListByUser 分页查询指定用户未删除的销售记录
	ListByUser(ctx context.Context, userID uint, params pagination.Params) ([]*Sale, int64, error)
}
