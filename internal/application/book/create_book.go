package book

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/book"
)

// CreateBookUseCase 图书录入用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO(Data Transfer Object),与HTTP层解耦
// 3. 此用例比较简单,只需调用领域服务即可
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建录入用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
	}
}

// CreateBookRequest 录入请求DTO
type CreateBookRequest struct {
	Title    string  // 书名
	Author   string  // 作者
	Category string  // 分类
	Price    float64 // 单价
	Stock    int     // 初始库存
}

// Execute 执行录入用例
// 学习要点:
// 1. 应用层不直接操作Repository,通过领域服务间接操作
// 2. 业务规则校验由领域服务负责(字段校验、书名重复检查等)
// 3. 重名检查不排除已删除的图书,历史书名不可复用
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookView, error) {
	b, err := uc.bookService.CreateBook(
		ctx,
		req.Title,
		req.Author,
		req.Category,
		req.Price,
		req.Stock,
	)
	if err != nil {
		return nil, err
	}

	return newBookView(b), nil
}
