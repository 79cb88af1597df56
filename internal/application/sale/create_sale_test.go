package sale

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xiebiao/libreria/internal/domain/book"
	"github.com/xiebiao/libreria/internal/domain/sale"
	"github.com/xiebiao/libreria/internal/infrastructure/config"
	"github.com/xiebiao/libreria/internal/infrastructure/persistence/sqlite"
)

// newCreateSaleFixture 用真实SQLite搭建下单用例(临时库,测试结束自动清理)
// 下单涉及事务和守卫更新,打桩测不出真实行为
func newCreateSaleFixture(t *testing.T) (*CreateSaleUseCase, book.Repository, sale.Repository) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Path:        filepath.Join(t.TempDir(), "test.db"),
			BusyTimeout: 5 * time.Second,
		},
	}
	db, err := sqlite.NewDB(cfg)
	if err != nil {
		t.Fatalf("创建测试数据库失败: %v", err)
	}

	bookRepo := sqlite.NewBookRepository(db)
	saleRepo := sqlite.NewSaleRepository(db)
	uc := NewCreateSaleUseCase(saleRepo, bookRepo, sqlite.NewTxManager(db))
	return uc, bookRepo, saleRepo
}

// seedBook 预置一本库存5、单价10.0的图书
func seedBook(t *testing.T, repo book.Repository) *book.Book {
	t.Helper()
	b, err := book.NewBook("测试驱动开发", "Kent Beck", "软件工程", 10.0, 5)
	if err != nil {
		t.Fatalf("构造图书失败: %v", err)
	}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("预置图书失败: %v", err)
	}
	return b
}

// TestCreateSaleUseCase 测试正常下单:总价快照与库存扣减
func TestCreateSaleUseCase(t *testing.T) {
	uc, bookRepo, _ := newCreateSaleFixture(t)
	ctx := context.Background()
	b := seedBook(t, bookRepo)

	view, err := uc.Execute(ctx, CreateSaleRequest{
		BookID:   b.ID,
		UserID:   7,
		Quantity: 3,
		Date:     time.Now(),
	})
	if err != nil {
		t.Fatalf("期望下单成功,实际失败: %v", err)
	}

	// 总价 = 成交时单价 × 数量
	if view.TotalPrice != 30.0 {
		t.Errorf("期望总价30.0,实际%v", view.TotalPrice)
	}
	if view.ID == 0 {
		t.Error("下单后应分配销售记录ID")
	}
	if view.UserID != 7 || view.BookID != b.ID {
		t.Errorf("归属字段不匹配: %+v", view)
	}
	if view.Date != time.Now().Format("2006-01-02") {
		t.Errorf("日期格式应为YYYY-MM-DD,实际%s", view.Date)
	}

	// 库存 5 - 3 = 2
	after, err := bookRepo.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("回查图书失败: %v", err)
	}
	if after.Stock != 2 {
		t.Errorf("期望库存2,实际%d", after.Stock)
	}
}

// TestCreateSaleUseCase_InsufficientStock 库存不足:拒绝下单且库存不变
func TestCreateSaleUseCase_InsufficientStock(t *testing.T) {
	uc, bookRepo, saleRepo := newCreateSaleFixture(t)
	ctx := context.Background()
	b := seedBook(t, bookRepo)

	_, err := uc.Execute(ctx, CreateSaleRequest{
		BookID:   b.ID,
		UserID:   7,
		Quantity: 6,
		Date:     time.Now(),
	})
	if err != book.ErrInsufficientStock {
		t.Fatalf("期望ErrInsufficientStock,实际%v", err)
	}

	// 库存必须保持5,事务不能留下半截状态
	after, _ := bookRepo.FindByID(ctx, b.ID)
	if after.Stock != 5 {
		t.Errorf("失败的下单不应改动库存: 期望5,实际%d", after.Stock)
	}
	sales, _, _ := saleRepo.List(ctx, listAll())
	if len(sales) != 0 {
		t.Errorf("失败的下单不应留下销售记录,实际%d条", len(sales))
	}
}

// TestCreateSaleUseCase_ZeroQuantity 数量为0是合法的空销售
func TestCreateSaleUseCase_ZeroQuantity(t *testing.T) {
	uc, bookRepo, _ := newCreateSaleFixture(t)
	ctx := context.Background()
	b := seedBook(t, bookRepo)

	view, err := uc.Execute(ctx, CreateSaleRequest{
		BookID:   b.ID,
		UserID:   7,
		Quantity: 0,
		Date:     time.Now(),
	})
	if err != nil {
		t.Fatalf("数量为0应允许下单,实际失败: %v", err)
	}
	if view.TotalPrice != 0 {
		t.Errorf("期望总价0,实际%v", view.TotalPrice)
	}

	after, _ := bookRepo.FindByID(ctx, b.ID)
	if after.Stock != 5 {
		t.Errorf("空销售不应改动库存: 期望5,实际%d", after.Stock)
	}
}

// TestCreateSaleUseCase_BookMissing 图书不存在或已删除都按404处理
func TestCreateSaleUseCase_BookMissing(t *testing.T) {
	uc, bookRepo, _ := newCreateSaleFixture(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateSaleRequest{BookID: 999, UserID: 7, Quantity: 1, Date: time.Now()})
	if err != book.ErrBookNotFound {
		t.Errorf("期望ErrBookNotFound,实际%v", err)
	}

	// 删除态图书不可下单
	b := seedBook(t, bookRepo)
	if err := b.Delete(); err != nil {
		t.Fatalf("删除图书失败: %v", err)
	}
	if err := bookRepo.Update(ctx, b); err != nil {
		t.Fatalf("更新图书失败: %v", err)
	}

	_, err = uc.Execute(ctx, CreateSaleRequest{BookID: b.ID, UserID: 7, Quantity: 1, Date: time.Now()})
	if err != ErrSaleBookDeleted {
		t.Errorf("期望ErrSaleBookDeleted,实际%v", err)
	}
}

// TestCreateSaleUseCase_Validation 字段校验发生在进入事务之前
func TestCreateSaleUseCase_Validation(t *testing.T) {
	uc, bookRepo, _ := newCreateSaleFixture(t)
	ctx := context.Background()
	b := seedBook(t, bookRepo)

	// 负数量
	_, err := uc.Execute(ctx, CreateSaleRequest{BookID: b.ID, UserID: 7, Quantity: -1, Date: time.Now()})
	if err != sale.ErrQuantityNegative {
		t.Errorf("期望ErrQuantityNegative,实际%v", err)
	}

	// 昨天的日期
	yesterday := time.Now().AddDate(0, 0, -1)
	_, err = uc.Execute(ctx, CreateSaleRequest{BookID: b.ID, UserID: 7, Quantity: 1, Date: yesterday})
	if err != sale.ErrDateInPast {
		t.Errorf("期望ErrDateInPast,实际%v", err)
	}

	// 校验失败不应动库存
	after, _ := bookRepo.FindByID(ctx, b.ID)
	if after.Stock != 5 {
		t.Errorf("校验失败不应改动库存: 期望5,实际%d", after.Stock)
	}
}
