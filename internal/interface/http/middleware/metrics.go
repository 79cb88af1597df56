package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/libreria/pkg/metrics"
)

// Metrics HTTP指标采集中间件
// 记录三类指标供/metrics端点暴露：
// 1. http_requests_total: 请求总数（method/path/status三个维度）
// 2. http_request_duration_seconds: 耗时分布（自动计算P50/P90/P99）
// 3. http_requests_in_progress: 当前并发处理数
//
// 指标未初始化时（metrics.enabled=false或单元测试）各记录函数静默跳过。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		metrics.DecGauge(metrics.HTTPRequestsInProgress)

		// path标签用路由模板（如/api/v1/books/:id）而非实际URL，
		// 否则每个id都会产生一条时间序列
		path := c.FullPath()
		if path == "" {
			// 未命中任何路由（404）的请求归并为一类
			path = "unmatched"
		}

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})

		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
