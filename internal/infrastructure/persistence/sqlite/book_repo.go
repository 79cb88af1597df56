package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/libreria/internal/domain/book"
	"github.com/xiebiao/libreria/internal/domain/lifecycle"
	"github.com/xiebiao/libreria/internal/domain/pagination"
	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// bookRepository 图书仓储实现(SQLite)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如书名重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := &BookModel{
		Title:     b.Title,
		Author:    b.Author,
		Category:  b.Category,
		Price:     b.Price,
		Stock:     b.Stock,
		IsDeleted: b.IsDeleted,
	}

	// 2. 插入数据库
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// 书名唯一索引兜底(应用层检查之外的并发保护)
		if isDuplicateError(err) {
			return book.ErrTitleDuplicate
		}
		return apperrors.WrapDB(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书(包含已删除记录)
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WrapDB(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByTitle 根据书名查找图书(包含已删除记录,用于重名检查)
func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("title = ?", title).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WrapDB(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书信息(含软删除标志)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Category:  b.Category,
		Price:     b.Price,
		Stock:     b.Stock,
		IsDeleted: b.IsDeleted,
		CreatedAt: b.CreatedAt,
	}

	// 使用Save更新所有字段
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrTitleDuplicate
		}
		return apperrors.WrapDB(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// List 分页查询未删除的图书列表
func (r *bookRepository) List(ctx context.Context, params pagination.Params) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	// 默认查询只看未删除记录
	query := getDB(ctx, r.db).Model(&BookModel{}).Where("is_deleted = ?", false)

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapDB(err, "查询图书总数失败")
	}

	// 按ID升序分页(与创建顺序一致)
	err := query.Order("id ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapDB(err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// UpdateStock 更新库存(原子操作)
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	// 使用UPDATE语句原子性更新库存
	// UPDATE books SET stock = stock + delta WHERE id = ? AND stock + delta >= 0
	// 条件更新防止库存为负,不需要SELECT FOR UPDATE(SQLite单写者)
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta).
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.WrapDB(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者库存不足
		// 再查一次确定原因
		var model BookModel
		if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.WrapDB(err, "查询图书失败")
		}
		// 图书存在,说明是库存不足
		return book.ErrInsufficientStock
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:         model.ID,
		Title:      model.Title,
		Author:     model.Author,
		Category:   model.Category,
		Price:      model.Price,
		Stock:      model.Stock,
		SoftDelete: lifecycle.SoftDelete{IsDeleted: model.IsDeleted},
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
