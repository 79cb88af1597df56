package sale

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/pagination"
	"github.com/xiebiao/libreria/internal/domain/sale"
)

// ListSalesUseCase 销售流水查询用例(管理员,全量)
type ListSalesUseCase struct {
	saleRepo sale.Repository
}

// NewListSalesUseCase 创建流水查询用例
func NewListSalesUseCase(saleRepo sale.Repository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

// ListSalesRequest 流水查询请求DTO
type ListSalesRequest struct {
	Skip  int // 跳过条数(默认0)
	Limit int // 返回条数(默认10)
}

// ListSalesResponse 流水查询响应DTO
type ListSalesResponse struct {
	List  []SaleView `json:"list"`
	Total int64      `json:"total"` // 未删除销售记录总数
	Skip  int        `json:"skip"`
	Limit int        `json:"limit"`
}

// Execute 执行流水查询
// 只返回未删除的记录,结果为空视为404
func (uc *ListSalesUseCase) Execute(ctx context.Context, req ListSalesRequest) (*ListSalesResponse, error) {
	params, err := pagination.New(req.Skip, req.Limit)
	if err != nil {
		return nil, err
	}

	sales, total, err := uc.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, sale.ErrNoSalesFound
	}

	return &ListSalesResponse{
		List:  newSaleViews(sales),
		Total: total,
		Skip:  params.Skip,
		Limit: params.Limit,
	}, nil
}

// ListUserSalesUseCase 个人销售流水查询用例(当前登录用户)
type ListUserSalesUseCase struct {
	saleRepo sale.Repository
}

// NewListUserSalesUseCase 创建个人流水查询用例
func NewListUserSalesUseCase(saleRepo sale.Repository) *ListUserSalesUseCase {
	return &ListUserSalesUseCase{saleRepo: saleRepo}
}

// ListUserSalesRequest 个人流水查询请求DTO
type ListUserSalesRequest struct {
	UserID uint // 当前登录用户ID(从JWT中提取)
	Skip   int
	Limit  int
}

// Execute 执行个人流水查询
func (uc *ListUserSalesUseCase) Execute(ctx context.Context, req ListUserSalesRequest) (*ListSalesResponse, error) {
	params, err := pagination.New(req.Skip, req.Limit)
	if err != nil {
		return nil, err
	}

	sales, total, err := uc.saleRepo.ListByUser(ctx, req.UserID, params)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, sale.ErrNoSalesFound
	}

	return &ListSalesResponse{
		List:  newSaleViews(sales),
		Total: total,
		Skip:  params.Skip,
		Limit: params.Limit,
	}, nil
}
