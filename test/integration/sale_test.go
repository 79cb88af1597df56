package integration

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：销售模块集成测试
//
// 销售是本项目的核心模块，包含以下关键技术点：
// 1. 数据库事务：库存校验、扣减、落库要么全成功要么全失败
// 2. 防超卖：SQLite单写连接串行化 + 扣减语句守卫条件
// 3. 价格快照：总价按成交时单价计算，之后改价不影响历史记录
// 4. 软删除语义：删除销售记录不回补库存（冲正只改可见性）

// TestSaleCreate 测试创建销售
func TestSaleCreate(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)
	_, buyerToken := RegisterTestUser(t, "compra")

	t.Run("正常购买", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "畅销", 40.0, 10)

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 3,
			"date":     Today(),
		}, buyerToken)
		require.Equal(t, 0, resp.Code, "购买应该成功: %s", resp.Message)

		var data SaleData
		require.NoError(t, json.Unmarshal(resp.Data, &data))

		assert.NotZero(t, data.ID, "销售ID应该大于0")
		assert.Equal(t, book.ID, data.BookID)
		assert.NotZero(t, data.UserID, "买家ID应该由服务端从Token解析")
		assert.Equal(t, 3, data.Quantity)
		assert.Equal(t, 120.0, data.TotalPrice, "总价应该是40.0×3=120.0")
		assert.Equal(t, Today(), data.Date)
		assert.False(t, data.IsDeleted)

		// 库存同步扣减
		assert.Equal(t, 7, GetBookStock(t, buyerToken, book.ID), "库存应该从10扣到7")

		t.Logf("✓ 购买成功，总价%.2f，库存10 → 7", data.TotalPrice)
	})

	t.Run("数量为0登记空销售", func(t *testing.T) {
		// 边界值：0是合法数量，总价为0，库存不变
		book := CreateTestBook(t, adminToken, "空单", 40.0, 5)

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 0,
			"date":     Today(),
		}, buyerToken)
		require.Equal(t, 0, resp.Code, "数量为0应该允许: %s", resp.Message)

		var data SaleData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 0.0, data.TotalPrice, "空销售总价应该为0")
		assert.Equal(t, 5, GetBookStock(t, buyerToken, book.ID), "库存不应变化")

		t.Logf("✓ 空销售登记成功")
	})

	t.Run("未登录不能购买", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "匿名买", 40.0, 5)

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 1,
			"date":     Today(),
		}, "")

		assert.Equal(t, 40100, resp.Code, "未登录应该被拒绝")
		t.Logf("✓ 未登录正确被拒绝: %s", resp.Message)
	})

	t.Run("图书不存在应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  999999999,
			"quantity": 1,
			"date":     Today(),
		}, buyerToken)

		assert.Equal(t, 40402, resp.Code, "图书不存在应该返回404")
		t.Logf("✓ 图书不存在正确报错: %s", resp.Message)
	})

	t.Run("已删除图书不能购买", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "绝版", 40.0, 5)

		delResp := DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, book.ID), adminToken)
		require.Equal(t, 0, delResp.Code, "删除图书应该成功")

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 1,
			"date":     Today(),
		}, buyerToken)

		assert.Equal(t, 40402, resp.Code, "已删除图书应该拒绝售卖")
		assert.Contains(t, resp.Message, "删除", "提示语应该说明图书已删除")

		t.Logf("✓ 已删除图书正确拒售: %s", resp.Message)
	})

	t.Run("数量为负应失败", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "负数", 40.0, 5)

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": -1,
			"date":     Today(),
		}, buyerToken)

		assert.Equal(t, 40000, resp.Code, "负数数量应该校验失败")
		t.Logf("✓ 负数数量正确被拒绝: %s", resp.Message)
	})

	t.Run("过去的日期应失败", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "昨日", 40.0, 5)

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 1,
			"date":     "2020-01-01",
		}, buyerToken)

		assert.Equal(t, 40000, resp.Code, "过去的日期应该校验失败")
		assert.Contains(t, resp.Message, "日期")

		t.Logf("✓ 过去的日期正确被拒绝: %s", resp.Message)
	})

	t.Run("日期格式错误应失败", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "格式", 40.0, 5)

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 1,
			"date":     "21/08/2026",
		}, buyerToken)

		assert.Equal(t, 40002, resp.Code, "非YYYY-MM-DD格式应该在绑定阶段被拒绝")
		t.Logf("✓ 日期格式错误正确被拒绝: %s", resp.Message)
	})
}

// TestSaleStockControl 测试库存控制
func TestSaleStockControl(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)
	_, buyerToken := RegisterTestUser(t, "stock")

	t.Run("库存不足应失败且不扣减", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "缺货", 40.0, 5)

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 8,
			"date":     Today(),
		}, buyerToken)

		assert.Equal(t, 40903, resp.Code, "库存不足应该返回冲突错误")
		assert.Contains(t, resp.Message, "库存")

		// 事务回滚，库存原样
		assert.Equal(t, 5, GetBookStock(t, buyerToken, book.ID), "失败的购买不应扣减库存")

		t.Logf("✓ 库存不足正确拒绝，库存未变: %s", resp.Message)
	})

	t.Run("库存恰好足够", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "清仓", 40.0, 5)

		sale := CreateTestSale(t, buyerToken, book.ID, 5)
		assert.Equal(t, 200.0, sale.TotalPrice)
		assert.Equal(t, 0, GetBookStock(t, buyerToken, book.ID), "库存应该清零")

		// 清零后再买1本应该失败
		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 1,
			"date":     Today(),
		}, buyerToken)
		assert.Equal(t, 40903, resp.Code, "库存为0后应该拒绝购买")

		t.Logf("✓ 库存边界正确（买空后拒绝新购买）")
	})

	t.Run("多次购买逐步扣减", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "多次", 40.0, 10)

		CreateTestSale(t, buyerToken, book.ID, 3)
		t.Logf("✓ 第一次购买3本，剩余7本")

		CreateTestSale(t, buyerToken, book.ID, 4)
		t.Logf("✓ 第二次购买4本，剩余3本")

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": 5,
			"date":     Today(),
		}, buyerToken)
		assert.Equal(t, 40903, resp.Code, "第三次购买5本应该失败（只剩3本）")
		t.Logf("✓ 第三次购买5本正确失败")

		CreateTestSale(t, buyerToken, book.ID, 3)
		assert.Equal(t, 0, GetBookStock(t, buyerToken, book.ID), "库存应该恰好用完")
		t.Logf("✓ 第四次购买3本成功，库存清零")
	})

	t.Run("改价不影响历史记录", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "涨价", 40.0, 10)

		sale := CreateTestSale(t, buyerToken, book.ID, 2)
		require.Equal(t, 80.0, sale.TotalPrice, "成交价应该是40.0×2")

		// 管理员改价
		updResp := PutJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, book.ID), map[string]interface{}{
			"price": 50.0,
		}, adminToken)
		require.Equal(t, 0, updResp.Code, "改价应该成功")

		// 从个人流水里找回这条记录，总价保持快照
		listResp := GetJSON(t, BaseURL+"/sales/user?skip=0&limit=1000", buyerToken)
		require.Equal(t, 0, listResp.Code, "查询个人流水应该成功")

		var page PageData
		require.NoError(t, json.Unmarshal(listResp.Data, &page))
		var sales []SaleData
		require.NoError(t, json.Unmarshal(page.List, &sales))

		found := false
		for _, s := range sales {
			if s.ID == sale.ID {
				found = true
				assert.Equal(t, 80.0, s.TotalPrice, "改价后历史总价应该保持80.0")
			}
		}
		require.True(t, found, "个人流水应该包含这条销售记录")

		// 新购买按新价计算
		newSale := CreateTestSale(t, buyerToken, book.ID, 2)
		assert.Equal(t, 100.0, newSale.TotalPrice, "改价后的新购买应该按50.0×2计算")

		t.Logf("✓ 价格快照正确：历史80.0不变，新单100.0")
	})
}

// TestSaleConcurrency 测试并发购买（防超卖核心场景）
//
// 场景设计：
// - 库存：10本
// - 并发请求：20个goroutine同时购买，每个买1本
// - 预期结果：恰好10个成功、10个失败，最终库存为0
//
// 防超卖依赖两层保障（见CreateSaleUseCase）：
// 1. SQLite写连接上限为1，事务天然串行
// 2. 扣减语句带守卫条件，库存不会被扣成负数
func TestSaleConcurrency(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)
	_, buyerToken := RegisterTestUser(t, "paralelo")

	book := CreateTestBook(t, adminToken, "抢购", 40.0, 10)

	t.Logf("========================================")
	t.Logf("开始并发测试：10本库存，20个并发请求")
	t.Logf("========================================")

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		successCount int
		failCount    int
	)

	concurrency := 20
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
				"book_id":  book.ID,
				"quantity": 1,
				"date":     Today(),
			}, buyerToken)

			mu.Lock()
			if resp.Code == 0 {
				successCount++
				t.Logf("  [请求%02d] ✓ 购买成功", idx+1)
			} else {
				failCount++
				t.Logf("  [请求%02d] ✗ 购买失败: %s", idx+1, resp.Message)
			}
			mu.Unlock()
		}(i)
	}

	wg.Wait()

	t.Logf("========================================")
	t.Logf("并发测试结果：成功%d个，失败%d个", successCount, failCount)
	t.Logf("========================================")

	assert.Equal(t, 10, successCount, "成功数应该等于库存数（不超卖）")
	assert.Equal(t, 10, failCount, "其余请求应该因库存不足失败")
	assert.Equal(t, concurrency, successCount+failCount, "成功+失败应该等于总请求数")

	// 不多卖也不少卖
	assert.Equal(t, 0, GetBookStock(t, buyerToken, book.ID), "最终库存应该恰好为0")
}

// TestSaleQueries 测试销售流水查询
func TestSaleQueries(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)

	t.Run("新用户没有购买记录应返回404", func(t *testing.T) {
		_, token := RegisterTestUser(t, "nuevo")

		resp := GetJSON(t, BaseURL+"/sales/user", token)
		assert.Equal(t, 40403, resp.Code, "没有记录应该返回404")

		t.Logf("✓ 空流水正确报错: %s", resp.Message)
	})

	t.Run("个人流水只包含自己的购买", func(t *testing.T) {
		_, buyerToken := RegisterTestUser(t, "mio")
		book := CreateTestBook(t, adminToken, "我的", 40.0, 20)

		sale1 := CreateTestSale(t, buyerToken, book.ID, 1)
		sale2 := CreateTestSale(t, buyerToken, book.ID, 2)

		resp := GetJSON(t, BaseURL+"/sales/user?skip=0&limit=1000", buyerToken)
		require.Equal(t, 0, resp.Code, "查询个人流水应该成功: %s", resp.Message)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		var sales []SaleData
		require.NoError(t, json.Unmarshal(page.List, &sales))

		assert.Equal(t, int64(2), page.Total, "该用户应该恰好有2条记录")
		for _, s := range sales {
			assert.Equal(t, sale1.UserID, s.UserID, "个人流水不应混入他人记录")
		}

		foundIDs := map[uint]bool{}
		for _, s := range sales {
			foundIDs[s.ID] = true
		}
		assert.True(t, foundIDs[sale1.ID] && foundIDs[sale2.ID], "两条购买记录都应该在流水里")

		t.Logf("✓ 个人流水正确，共%d条", page.Total)
	})

	t.Run("普通用户不能查看全部流水", func(t *testing.T) {
		_, token := RegisterTestUser(t, "fisgon")

		resp := GetJSON(t, BaseURL+"/sales", token)
		assert.Equal(t, 40300, resp.Code, "普通用户应该被拒绝")

		t.Logf("✓ 普通用户查看全部流水被拒绝: %s", resp.Message)
	})

	t.Run("管理员查看全部流水", func(t *testing.T) {
		// 保证至少有一条记录
		_, buyerToken := RegisterTestUser(t, "uno")
		book := CreateTestBook(t, adminToken, "全局", 40.0, 5)
		CreateTestSale(t, buyerToken, book.ID, 1)

		resp := GetJSON(t, BaseURL+"/sales?skip=0&limit=10", adminToken)
		require.Equal(t, 0, resp.Code, "管理员查询应该成功: %s", resp.Message)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.GreaterOrEqual(t, page.Total, int64(1))

		t.Logf("✓ 管理员查看全部流水成功，total=%d", page.Total)
	})
}

// TestSaleDeleteRestore 测试销售记录的软删除与恢复
func TestSaleDeleteRestore(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)
	_, buyerToken := RegisterTestUser(t, "anula")

	t.Run("删除销售不回补库存", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "冲正", 40.0, 5)
		sale := CreateTestSale(t, buyerToken, book.ID, 2)
		require.Equal(t, 3, GetBookStock(t, buyerToken, book.ID), "购买后库存应该是3")

		delResp := DeleteJSON(t, fmt.Sprintf("%s/sales/%d", BaseURL, sale.ID), adminToken)
		require.Equal(t, 0, delResp.Code, "删除销售应该成功: %s", delResp.Message)

		var deleted SaleData
		require.NoError(t, json.Unmarshal(delResp.Data, &deleted))
		assert.True(t, deleted.IsDeleted)

		// 核心语义：删除只是隐藏记录，库存保持3不回补
		assert.Equal(t, 3, GetBookStock(t, buyerToken, book.ID), "删除销售后库存不应回补")

		// 个人流水里不再可见
		listResp := GetJSON(t, BaseURL+"/sales/user?skip=0&limit=1000", buyerToken)
		require.Equal(t, 0, listResp.Code)
		var page PageData
		require.NoError(t, json.Unmarshal(listResp.Data, &page))
		var sales []SaleData
		require.NoError(t, json.Unmarshal(page.List, &sales))
		for _, s := range sales {
			assert.NotEqual(t, sale.ID, s.ID, "已删除的销售不应出现在流水中")
		}

		t.Logf("✓ 删除销售成功，库存未回补（3 → 3）")
	})

	t.Run("恢复销售保持原快照", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "回档", 40.0, 5)
		sale := CreateTestSale(t, buyerToken, book.ID, 2)

		delResp := DeleteJSON(t, fmt.Sprintf("%s/sales/%d", BaseURL, sale.ID), adminToken)
		require.Equal(t, 0, delResp.Code)

		restoreResp := PostJSON(t, fmt.Sprintf("%s/sales/%d/restore", BaseURL, sale.ID), nil, adminToken)
		require.Equal(t, 0, restoreResp.Code, "恢复销售应该成功: %s", restoreResp.Message)

		var restored SaleData
		require.NoError(t, json.Unmarshal(restoreResp.Data, &restored))
		assert.False(t, restored.IsDeleted)
		assert.Equal(t, sale.TotalPrice, restored.TotalPrice, "恢复后总价保持删除前的快照")
		assert.Equal(t, sale.Quantity, restored.Quantity)

		// 库存同样不受恢复影响
		assert.Equal(t, 3, GetBookStock(t, buyerToken, book.ID), "恢复销售也不应改动库存")

		t.Logf("✓ 恢复成功，快照保持不变")
	})

	t.Run("普通用户不能删除销售", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "越权删", 40.0, 5)
		sale := CreateTestSale(t, buyerToken, book.ID, 1)

		resp := DeleteJSON(t, fmt.Sprintf("%s/sales/%d", BaseURL, sale.ID), buyerToken)
		assert.Equal(t, 40300, resp.Code, "普通用户应该被拒绝")

		t.Logf("✓ 普通用户删除销售被拒绝: %s", resp.Message)
	})

	t.Run("重复删除应失败", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "再删", 40.0, 5)
		sale := CreateTestSale(t, buyerToken, book.ID, 1)
		url := fmt.Sprintf("%s/sales/%d", BaseURL, sale.ID)

		resp1 := DeleteJSON(t, url, adminToken)
		require.Equal(t, 0, resp1.Code)

		resp2 := DeleteJSON(t, url, adminToken)
		assert.Equal(t, 40904, resp2.Code, "重复删除应该返回状态冲突")

		t.Logf("✓ 重复删除正确被拒绝: %s", resp2.Message)
	})

	t.Run("恢复未删除的销售应失败", func(t *testing.T) {
		book := CreateTestBook(t, adminToken, "在售", 40.0, 5)
		sale := CreateTestSale(t, buyerToken, book.ID, 1)

		resp := PostJSON(t, fmt.Sprintf("%s/sales/%d/restore", BaseURL, sale.ID), nil, adminToken)
		assert.Equal(t, 40905, resp.Code, "恢复未删除的销售应该返回状态冲突")

		t.Logf("✓ 恢复未删除销售正确被拒绝: %s", resp.Message)
	})
}
