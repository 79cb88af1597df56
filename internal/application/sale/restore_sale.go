package sale

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/sale"
)

// RestoreSaleUseCase 销售记录恢复用例
type RestoreSaleUseCase struct {
	saleRepo sale.Repository
}

// NewRestoreSaleUseCase 创建恢复用例
func NewRestoreSaleUseCase(saleRepo sale.Repository) *RestoreSaleUseCase {
	return &RestoreSaleUseCase{saleRepo: saleRepo}
}

// Execute 执行恢复用例
// 恢复同样不动库存,只翻转删除标志
// 恢复未删除的记录返回409,记录不存在返回404
func (uc *RestoreSaleUseCase) Execute(ctx context.Context, id uint) (*SaleView, error) {
	s, err := uc.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.Restore(); err != nil {
		return nil, err
	}

	if err := uc.saleRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	return newSaleView(s), nil
}
