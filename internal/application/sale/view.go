package sale

import (
	"github.com/xiebiao/libreria/internal/domain/sale"
)

// dateLayout 销售日期的对外格式(只有日期,没有时间)
const dateLayout = "2006-01-02"

// SaleView 销售记录响应DTO
type SaleView struct {
	ID         uint    `json:"id"`
	BookID     uint    `json:"book_id"`
	UserID     uint    `json:"user_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Date       string  `json:"date"` // YYYY-MM-DD
	IsDeleted  bool    `json:"is_deleted"`
}

// newSaleView 领域实体 → 响应DTO
func newSaleView(s *sale.Sale) *SaleView {
	return &SaleView{
		ID:         s.ID,
		BookID:     s.BookID,
		UserID:     s.UserID,
		Quantity:   s.Quantity,
		TotalPrice: s.TotalPrice,
		Date:       s.Date.Format(dateLayout),
		IsDeleted:  s.Deleted(),
	}
}

// newSaleViews 批量转换(列表查询用)
func newSaleViews(sales []*sale.Sale) []SaleView {
	views := make([]SaleView, len(sales))
	for i, s := range sales {
		views[i] = *newSaleView(s)
	}
	return views
}
