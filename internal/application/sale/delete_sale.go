package sale

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/sale"
)

// DeleteSaleUseCase 销售记录逻辑删除用例
// 设计说明:
// 1. 销售没有独立的领域服务,用例直接编排Repository(参考订单场景的常见做法)
// 2. 删除不回补库存:销售记录只是对账凭证,冲正属于另一类业务
type DeleteSaleUseCase struct {
	saleRepo sale.Repository
}

// NewDeleteSaleUseCase 创建删除用例
func NewDeleteSaleUseCase(saleRepo sale.Repository) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{saleRepo: saleRepo}
}

// Execute 执行删除用例
// 先取记录(包含已删除的),再由状态机判定:重复删除返回409
func (uc *DeleteSaleUseCase) Execute(ctx context.Context, id uint) (*SaleView, error) {
	s, err := uc.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.Delete(); err != nil {
		return nil, err
	}

	if err := uc.saleRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	return newSaleView(s), nil
}
