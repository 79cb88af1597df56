package book

import (
	"time"

	"github.com/xiebiao/libreria/internal/domain/lifecycle"
)

// MaxLengthTitle 书名最大长度
const MaxLengthTitle = 100

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含库存图书的核心属性
// 2. Title作为业务唯一标识(重名检查覆盖已删除记录)
// 3. 嵌入lifecycle.SoftDelete获得软删除能力,转换规则见lifecycle包
type Book struct {
	ID       uint
	Title    string  // 书名(业务唯一)
	Author   string  // 作者
	Category string  // 分类
	Price    float64 // 单价,必须>0
	Stock    int     // 库存数量,不能为负数
	lifecycle.SoftDelete
	CreatedAt time.Time
	UpdatedAt time.Time
}

// machine Book的软删除状态机(注入图书领域专属的错误实例)
var machine = lifecycle.Machine{
	ErrAlreadyDeleted: ErrBookAlreadyDeleted,
	ErrNotDeleted:     ErrBookNotDeleted,
	ErrDeleted:        ErrBookDeleted,
}

// NewBook 创建新图书(工厂方法)
// 所有字段在构造时校验,非法字段直接拒绝创建
func NewBook(title, author, category string, price float64, stock int) (*Book, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateAuthor(author); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateStock(stock); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		Category:  category,
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Patch 部分更新(nil字段表示保持原值)
type Patch struct {
	Title    *string
	Author   *string
	Category *string
	Price    *float64
	Stock    *int
}

// ApplyPatch 应用部分更新
// 业务规则:每个提供的字段都重新经过字段校验,更新不能绕过不变式
func (b *Book) ApplyPatch(p Patch) error {
	// 先整体校验,避免半途失败留下部分修改
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Author != nil {
		if err := validateAuthor(*p.Author); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := validateCategory(*p.Category); err != nil {
			return err
		}
	}
	if p.Price != nil {
		if err := validatePrice(*p.Price); err != nil {
			return err
		}
	}
	if p.Stock != nil {
		if err := validateStock(*p.Stock); err != nil {
			return err
		}
	}

	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Stock != nil {
		b.Stock = *p.Stock
	}
	b.UpdatedAt = time.Now()
	return nil
}

// DecrStock 扣减库存(用于销售创建)
// 业务规则:扣减后库存不能为负数;quantity为0时库存保持不变
func (b *Book) DecrStock(quantity int) error {
	if quantity < 0 {
		return ErrQuantityNegative
	}
	if quantity > b.Stock {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// Delete 软删除(领域行为,ACTIVE→DELETED)
func (b *Book) Delete() error {
	return machine.Delete(b)
}

// Restore 恢复(领域行为,DELETED→ACTIVE)
func (b *Book) Restore() error {
	return machine.Restore(b)
}

// EnsureVisible 默认查询的可见性检查(已删除图书返回冲突错误)
func (b *Book) EnsureVisible() error {
	return machine.EnsureVisible(b)
}

// =========================================
// 字段校验(每次构造和更新都会执行)
// =========================================

func validateTitle(title string) error {
	if len(title) == 0 {
		return ErrTitleEmpty
	}
	if len(title) > MaxLengthTitle {
		return ErrTitleTooLong
	}
	return nil
}

func validateAuthor(author string) error {
	if len(author) == 0 {
		return ErrAuthorEmpty
	}
	return nil
}

func validateCategory(category string) error {
	if len(category) == 0 {
		return ErrCategoryEmpty
	}
	return nil
}

// validatePrice 价格必须大于0
// 0视为"未填写"(与负数区分开,提示语不同)
func validatePrice(price float64) error {
	if price == 0 {
		return ErrPriceEmpty
	}
	if price < 0 {
		return ErrPriceNegative
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return ErrStockNegative
	}
	return nil
}
