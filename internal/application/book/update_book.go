package book

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/book"
)

// UpdateBookUseCase 图书信息修改用例
// 设计说明:
// 1. 部分更新语义,只有显式传入的字段才会被修改
// 2. 指针字段区分"未传"(nil)与"传了零值"
// 3. 先整体校验再落库,任何一个字段非法都不会产生部分写入
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建修改用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
	}
}

// UpdateBookRequest 修改请求DTO(nil表示该字段不修改)
type UpdateBookRequest struct {
	ID       uint
	Title    *string
	Author   *string
	Category *string
	Price    *float64
	Stock    *int
}

// Execute 执行修改用例
// 目标图书不存在返回404,已删除返回409
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookView, error) {
	patch := book.Patch{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
	}

	b, err := uc.bookService.UpdateBook(ctx, req.ID, patch)
	if err != nil {
		return nil, err
	}

	return newBookView(b), nil
}
