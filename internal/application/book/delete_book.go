package book

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/book"
)

// DeleteBookUseCase 图书逻辑删除用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行删除用例
// 删除是软删除:记录保留,is_deleted置位
// 重复删除返回409,记录不存在返回404
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (*BookView, error) {
	b, err := uc.bookService.DeleteBook(ctx, id)
	if err != nil {
		return nil, err
	}

	return newBookView(b), nil
}
