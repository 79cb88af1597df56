package sale

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/libreria/internal/domain/book"
	"github.com/xiebiao/libreria/internal/domain/sale"
	"github.com/xiebiao/libreria/internal/infrastructure/persistence/sqlite"
	apperrors "github.com/xiebiao/libreria/pkg/errors"
	"github.com/xiebiao/libreria/pkg/metrics"
)

// ErrSaleBookDeleted 下单目标图书处于删除态
// 对外语义与"图书不存在"一致(404),但提示语单独区分
var ErrSaleBookDeleted = apperrors.New(apperrors.ErrCodeBookNotFound, "图书已被删除")

// CreateSaleUseCase 创建销售用例
// 教学要点:这是整个项目最核心的用例之一
// 涉及:事务处理、并发控制、价格快照
type CreateSaleUseCase struct {
	saleRepo  sale.Repository
	bookRepo  book.Repository
	txManager *sqlite.TxManager
}

// NewCreateSaleUseCase 创建销售用例
func NewCreateSaleUseCase(
	saleRepo sale.Repository,
	bookRepo book.Repository,
	txManager *sqlite.TxManager,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		saleRepo:  saleRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// CreateSaleRequest 创建销售请求DTO
type CreateSaleRequest struct {
	BookID   uint      // 图书ID
	UserID   uint      // 买家用户ID(从JWT中提取,不信任请求体)
	Quantity int       // 销售数量,>=0
	Date     time.Time // 销售日期,不早于今天
}

// Execute 执行创建销售用例
// 教学重点:防止超卖的完整流程
//
// 核心问题:库存超卖
// 场景:图书库存5本,两个请求同时购买3本
// 错误实现:
//  1. 查询库存 → 5本
//  2. 判断够不够 → 够
//  3. 扣减库存 → stock = stock - 3
//     结果:两个请求都通过了步骤2,最后库存变成-1(超卖!)
//
// 正确实现(SQLite场景):
//  1. 连接池上限为1,所有写操作天然串行,事务之间不会交错
//  2. 扣减语句带守卫条件(WHERE stock + ? >= 0),
//     即使串行化失效,数据库层也拒绝把库存扣成负数
//  3. 销售记录和库存扣减放在同一事务,要么全成功,要么全失败
func (uc *CreateSaleUseCase) Execute(ctx context.Context, req CreateSaleRequest) (*SaleView, error) {
	start := time.Now()

	// 1. 构造销售实体(数量、日期校验在工厂方法内完成)
	// 总价此时未知,进入事务后按当前单价回填
	newSale, err := sale.NewSale(req.BookID, req.UserID, req.Quantity, 0, req.Date)
	if err != nil {
		return nil, err
	}

	// 使用事务执行整个下单流程
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:检查图书状态
		// ========================================
		// FindByID不过滤删除标志,删除态的图书在这里单独报错
		b, err := uc.bookRepo.FindByID(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if b.Deleted() {
			return ErrSaleBookDeleted
		}

		// ========================================
		// 步骤2:检查库存是否充足
		// ========================================
		if req.Quantity > b.Stock {
			return book.ErrInsufficientStock
		}

		// ========================================
		// 步骤3:计算总价(价格快照)
		// ========================================
		// 教学要点:使用"成交时的单价"而非前端传递的价格
		// 防止改价攻击:用户在前端修改价格提交
		// 之后图书改价也不影响这条历史记录
		newSale.TotalPrice = b.Price * float64(req.Quantity)

		// ========================================
		// 步骤4:扣减库存
		// ========================================
		// UpdateStock带守卫条件,扣成负数时返回ErrInsufficientStock
		// 扣减失败整个事务回滚,销售记录不会落库
		if err := uc.bookRepo.UpdateStock(txCtx, req.BookID, -req.Quantity); err != nil {
			return err
		}

		// ========================================
		// 步骤5:写入销售记录(事务自动COMMIT)
		// ========================================
		return uc.saleRepo.Create(txCtx, newSale)
	})

	if err != nil {
		if errors.Is(err, book.ErrInsufficientStock) {
			metrics.IncCounter(metrics.SaleStockRejectedTotal)
		}
		return nil, err
	}

	metrics.IncCounter(metrics.SalesCreatedTotal)
	metrics.ObserveHistogram(metrics.SaleCreationDuration, time.Since(start).Seconds())

	return newSaleView(newSale), nil
}
