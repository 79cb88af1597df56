package book

import (
	"github.com/xiebiao/libreria/internal/domain/book"
)

// BookView 图书响应DTO
// 说明:各用例(创建/查询/更新/删除/恢复)对外返回同一种图书视图,
// is_deleted随实体下发,删除接口的响应里它为true
type BookView struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	IsDeleted bool    `json:"is_deleted"`
}

// newBookView 领域实体 → 响应DTO
func newBookView(b *book.Book) *BookView {
	return &BookView{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Category:  b.Category,
		Price:     b.Price,
		Stock:     b.Stock,
		IsDeleted: b.Deleted(),
	}
}

// newBookViews 批量转换(列表查询用)
func newBookViews(books []*book.Book) []BookView {
	views := make([]BookView, len(books))
	for i, b := range books {
		views[i] = *newBookView(b)
	}
	return views
}
