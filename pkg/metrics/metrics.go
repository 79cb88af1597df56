// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// Metrics是可观测性三支柱之一（Tracing、Metrics、Logging）：
// - **Tracing（追踪）**: 回答"为什么慢？"（见pkg/tracing）
// - **Metrics（指标）**: 回答"有多少？多快？"（本模块）
// - **Logging（日志）**: 回答"发生了什么？"
//
// 三种基础指标类型：
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、销售创建总数、库存不足拒绝总数
//   - 特点：只能调用Inc()递增
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的HTTP请求数、goroutine数量
//   - 特点：可以调用Inc()、Dec()、Set()
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、销售创建耗时
//   - 特点：自动计算分位数（P50、P90、P99）
//
// # 命名规范
//
// 1. **Counter**: 以`_total`结尾
//   - `http_requests_total`（HTTP请求总数）
//   - `sales_created_total`（销售创建总数）
//
// 2. **Histogram**: 以单位结尾（`_seconds`、`_bytes`）
//   - `http_request_duration_seconds`（HTTP请求耗时）
//
// 3. **Gauge**: 使用现在时态
//   - `http_requests_in_progress`（正在处理的请求数）
//
// # 标签（Label）
//
// 标签用于区分不同维度：
//
//	metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
//	    "method": "POST",
//	    "path":   "/api/v1/sales",
//	    "status": "200",
//	})
//
// 避免高基数标签：
//   - ❌ 不要用user_id、book_id作为标签（无上限）
//   - ✅ 用status、method、注册后的路由模板作为标签（有限个值）
//
// # 使用示例
//
//	// 1. 启动时初始化（注册所有指标）
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点（Prometheus定期抓取）
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在业务代码中记录
//	metrics.IncCounter(metrics.SalesCreatedTotal)
//
// 常用PromQL：
//   - QPS: rate(http_requests_total[1m])
//   - P99耗时: histogram_quantile(0.99, rate(http_request_duration_seconds_bucket[5m]))
//   - 库存拒绝率: rate(sale_stock_rejected_total[5m]) / rate(sales_created_total[5m])
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/v1/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// SalesCreatedTotal 销售创建成功总数（Counter）
	SalesCreatedTotal prometheus.Counter

	// SaleStockRejectedTotal 因库存不足被拒绝的销售总数（Counter）
	// 该值持续上升说明热门图书补货不及时
	SaleStockRejectedTotal prometheus.Counter

	// SaleCreationDuration 销售创建耗时（Histogram）
	// 覆盖校验、查书、扣库存、落库的完整事务
	SaleCreationDuration prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"}, // 标签：方法、路径、状态码
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			// 覆盖大部分HTTP请求耗时范围
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"}, // 标签：方法、路径
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 销售业务指标
	SalesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_created_total",
			Help: "销售创建成功总数",
		},
	)

	SaleStockRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sale_stock_rejected_total",
			Help: "因库存不足被拒绝的销售总数",
		},
	)

	SaleCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "sale_creation_duration_seconds",
			Help: "销售创建耗时（秒）",
			// 单库事务，耗时集中在毫秒级
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
}

// 以下便捷函数在指标未初始化时静默跳过，
// 业务代码和单元测试无需关心InitMetrics是否已执行。

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	if gauge == nil {
		return
	}
	gauge.Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
