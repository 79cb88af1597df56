package book

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/book"
)

// RestoreBookUseCase 图书恢复用例
type RestoreBookUseCase struct {
	bookService book.Service
}

// NewRestoreBookUseCase 创建恢复用例
func NewRestoreBookUseCase(bookService book.Service) *RestoreBookUseCase {
	return &RestoreBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行恢复用例
// 只有处于删除态的图书才能恢复,恢复未删除的图书返回409
func (uc *RestoreBookUseCase) Execute(ctx context.Context, id uint) (*BookView, error) {
	b, err := uc.bookService.RestoreBook(ctx, id)
	if err != nil {
		return nil, err
	}

	return newBookView(b), nil
}
