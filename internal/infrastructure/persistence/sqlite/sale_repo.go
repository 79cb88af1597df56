package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/libreria/internal/domain/lifecycle"
	"github.com/xiebiao/libreria/internal/domain/pagination"
	"github.com/xiebiao/libreria/internal/domain/sale"
	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// saleRepository 销售仓储实现(SQLite)
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售仓储
func NewSaleRepository(db *gorm.DB) sale.Repository {
	return &saleRepository{db: db}
}

// Create 创建销售记录
// 销售创建在事务中执行(与库存扣减同一事务),
// getDB会从context提取事务DB
func (r *saleRepository) Create(ctx context.Context, s *sale.Sale) error {
	model := &SaleModel{
		BookID:     s.BookID,
		UserID:     s.UserID,
		Quantity:   s.Quantity,
		TotalPrice: s.TotalPrice,
		Date:       s.Date,
		IsDeleted:  s.IsDeleted,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.WrapDB(err, "创建销售记录失败")
	}

	// 回填自增ID
	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找销售记录(包含已删除记录)
func (r *saleRepository) FindByID(ctx context.Context, id uint) (*sale.Sale, error) {
	var model SaleModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sale.ErrSaleNotFound
		}
		return nil, apperrors.WrapDB(err, "查询销售记录失败")
	}

	return toSaleEntity(&model), nil
}

// Update 更新销售记录(含软删除标志)
func (r *saleRepository) Update(ctx context.Context, s *sale.Sale) error {
	model := &SaleModel{
		ID:         s.ID,
		BookID:     s.BookID,
		UserID:     s.UserID,
		Quantity:   s.Quantity,
		TotalPrice: s.TotalPrice,
		Date:       s.Date,
		IsDeleted:  s.IsDeleted,
		CreatedAt:  s.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.WrapDB(err, "更新销售记录失败")
	}

	s.UpdatedAt = model.UpdatedAt
	return nil
}

// List 分页查询所有未删除的销售记录
func (r *saleRepository) List(ctx context.Context, params pagination.Params) ([]*sale.Sale, int64, error) {
	return r.list(ctx, params, nil)
}

// ListByUser 分页查询指定用户未删除的销售记录
func (r *saleRepository) ListByUser(ctx context.Context, userID uint, params pagination.Params) ([]*sale.Sale, int64, error) {
	return r.list(ctx, params, &userID)
}

// list 列表查询的公共实现(userID为nil时查全部)
func (r *saleRepository) list(ctx context.Context, params pagination.Params, userID *uint) ([]*sale.Sale, int64, error) {
	var models []SaleModel
	var total int64

	query := getDB(ctx, r.db).Model(&SaleModel{}).Where("is_deleted = ?", false)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapDB(err, "查询销售总数失败")
	}

	err := query.Order("id ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapDB(err, "查询销售列表失败")
	}

	sales := make([]*sale.Sale, len(models))
	for i := range models {
		sales[i] = toSaleEntity(&models[i])
	}

	return sales, total, nil
}

// toSaleEntity GORM模型 → 领域实体
func toSaleEntity(model *SaleModel) *sale.Sale {
	return &sale.Sale{
		ID:         model.ID,
		BookID:     model.BookID,
		UserID:     model.UserID,
		Quantity:   model.Quantity,
		TotalPrice: model.TotalPrice,
		Date:       model.Date,
		SoftDelete: lifecycle.SoftDelete{IsDeleted: model.IsDeleted},
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
