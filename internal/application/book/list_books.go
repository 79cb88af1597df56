package book

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/book"
	"github.com/xiebiao/libreria/internal/domain/pagination"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. skip/limit分页,负数直接拒绝(400)
// 2. 只返回未删除的图书
// 3. 查询结果为空视为404(没有找到任何图书)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Skip  int // 跳过条数(默认0)
	Limit int // 返回条数(默认10)
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List  []BookView `json:"list"`
	Total int64      `json:"total"` // 未删除图书总数
	Skip  int        `json:"skip"`
	Limit int        `json:"limit"`
}

// Execute 执行列表查询
// 分页参数的校验统一由领域服务完成
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	params := pagination.Params{Skip: req.Skip, Limit: req.Limit}

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		List:  newBookViews(books),
		Total: total,
		Skip:  params.Skip,
		Limit: params.Limit,
	}, nil
}
