package sale

import (
	"time"

	"github.com/xiebiao/libreria/internal/domain/lifecycle"
)

// Sale 销售记录实体(聚合根)
// DDD设计说明:
// 1. Sale只保存BookID/UserID,不直接关联Book/User对象(避免跨聚合引用)
// 2. TotalPrice冗余存储"成交时的总价"(单价快照×数量,改价不影响历史记录)
// 3. UserID来自当前登录用户,不接受请求方传入
type Sale struct {
	ID         uint
	BookID     uint      // 图书ID
	UserID     uint      // 买家用户ID(从Token解析)
	Quantity   int       // 购买数量,>=0(0表示登记一笔空销售)
	TotalPrice float64   // 总价 = 成交时单价 × 数量,由服务端计算
	Date       time.Time // 销售日期(只比较日期部分,不早于今天)
	lifecycle.SoftDelete
	CreatedAt time.Time
	UpdatedAt time.Time
}

// machine Sale的软删除状态机
var machine = lifecycle.Machine{
	ErrAlreadyDeleted: ErrSaleAlreadyDeleted,
	ErrNotDeleted:     ErrSaleNotDeleted,
	ErrDeleted:        ErrSaleDeleted,
}

// NewSale 创建销售记录(工厂方法)
// 参数说明:
// - totalPrice由调用方按"成交时单价×数量"计算后传入(价格快照)
// - date只保留日期语义,早于服务器当天的日期被拒绝
func NewSale(bookID, userID uint, quantity int, totalPrice float64, date time.Time) (*Sale, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := validateTotalPrice(totalPrice); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Sale{
		BookID:     bookID,
		UserID:     userID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Delete 软删除(领域行为)
func (s *Sale) Delete() error {
	return machine.Delete(s)
}

// Restore 恢复(领域行为)
func (s *Sale) Restore() error {
	return machine.Restore(s)
}

// EnsureVisible 默认查询的可见性检查
func (s *Sale) EnsureVisible() error {
	return machine.EnsureVisible(s)
}

// IsOwnedBy 检查销售记录是否属于指定用户
func (s *Sale) IsOwnedBy(userID uint) bool {
	return s.UserID == userID
}

// =========================================
// 字段校验
// =========================================

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return ErrQuantityNegative
	}
	return nil
}

func validateTotalPrice(totalPrice float64) error {
	if totalPrice < 0 {
		return ErrTotalPriceNegative
	}
	return nil
}

// validateDate 销售日期不能早于服务器本地的当天
// 只比较日期部分,时分秒不参与
func validateDate(d time.Time) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return ErrDateInPast
	}
	return nil
}
