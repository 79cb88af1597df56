package book

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/pagination"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务规则校验(重名检查、可见性规则)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书(上架)
	// 业务规则:
	// - 所有字段必须通过校验(书名长度、价格>0、库存>=0)
	// - 书名不能重复;重名检查不排除已删除记录,
	//   即已删除图书的书名仍然占用,不能复用
	CreateBook(ctx context.Context, title, author, category string, price float64, stock int) (*Book, error)

	// GetBook 根据ID获取图书
	// 默认查询语义:不存在返回NotFound,已删除返回Conflict
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 部分更新图书
	// 业务规则:每个提供的字段都重新校验;目标已删除返回Conflict
	UpdateBook(ctx context.Context, id uint, patch Patch) (*Book, error)

	// DeleteBook 软删除图书
	// 业务规则:重复删除返回Conflict
	DeleteBook(ctx context.Context, id uint) (*Book, error)

	// RestoreBook 恢复已删除的图书
	// 业务规则:目标未删除返回Conflict
	RestoreBook(ctx context.Context, id uint) (*Book, error)

	// ListBooks 分页查询未删除的图书列表
	// 业务规则:skip/limit必须非负;空结果返回NotFound
	ListBooks(ctx context.Context, params pagination.Params) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title, author, category string, price float64, stock int) (*Book, error) {
	// 1. 构造实体(字段校验在工厂方法内完成)
	newBook, err := NewBook(title, author, category, price, stock)
	if err != nil {
		return nil, err
	}

	// 2. 重名检查(不过滤软删除标志,已删除图书的书名同样占用)
	existing, err := s.repo.FindByTitle(ctx, title)
	if err == nil && existing != nil {
		return nil, ErrTitleDuplicate
	}
	// 如果是ErrBookNotFound以外的错误,返回
	if err != nil && err != ErrBookNotFound {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Create(ctx, newBook); err != nil {
		return nil, err
	}

	return newBook, nil
}

// GetBook 根据ID获取图书(默认查询,不含已删除)
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.EnsureVisible(); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook 部分更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, patch Patch) (*Book, error) {
	// 1. 默认查询:已删除的图书不可更新
	b, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 应用更新(提供的字段逐个校验)
	if err := b.ApplyPatch(patch); err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 软删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) (*Book, error) {
	// 按ID查找(包含已删除记录,让状态机报告重复删除)
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Delete(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// RestoreBook 恢复已删除的图书
func (s *service) RestoreBook(ctx context.Context, id uint) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Restore(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params pagination.Params) ([]*Book, int64, error) {
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	books, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	// 查询结果为空视为没有找到资源
	if len(books) == 0 {
		return nil, 0, ErrNoBooksFound
	}
	return books, total, nil
}
