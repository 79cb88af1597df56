package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"github.com/xiebiao/libreria/pkg/tracing"
)

// Tracing 链路追踪中间件
// 为每个请求创建一个Span：
// 1. 上游带W3C traceparent头时接续其链路，否则作为根Span
// 2. Span名用路由模板（POST /api/v1/sales）而非实际URL，避免高基数
// 3. 带Span的Context写回c.Request，下游各层经c.Request.Context()取到
// 4. TraceID通过X-Trace-Id响应头返回，便于客户端报障时关联
func Tracing(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(
			c.Request.Context(),
			propagation.HeaderCarrier(c.Request.Header),
		)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		ctx, span := tracing.StartSpan(ctx, serviceName, c.Request.Method+" "+path)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)

		if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
			c.Header("X-Trace-Id", traceID)
		}

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", path),
			attribute.Int("http.status_code", status),
		)
		// 业务错误（4xx）不算Span失败，只有服务端错误标记Error
		if status >= 500 {
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		}
	}
}
