package book

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/pagination"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 查找方法不过滤软删除标志,可见性规则由调用方通过状态机检查
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(包含已删除记录)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByTitle 根据书名查找图书(包含已删除记录,用于重名检查)
	FindByTitle(ctx context.Context, title string) (*Book, error)

	// Update 更新图书(含软删除标志)
	Update(ctx context.Context, book *Book) error

	// List 分页查询未删除的图书列表,返回列表和未删除总数
	List(ctx context.Context, params pagination.Params) ([]*Book, int64, error)

	// UpdateStock 更新库存(原子操作)
	// delta为正数表示增加,负数表示减少
	// 内部通过条件更新保证扣减后库存不为负,不足则返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error
}
