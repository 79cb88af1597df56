// Package tracing 提供基于OpenTelemetry的链路追踪
//
// # 核心概念
//
// 1. **Trace（追踪）**：一次完整的请求链路，包含多个Span
//
// 2. **Span（跨度）**：一个操作单元
//   - 示例：执行销售创建事务、查询图书列表
//   - 包含：操作名称、开始时间、结束时间、耗时、状态
//
// 3. **SpanContext（上下文）**：随Context传递的元数据
//   - TraceID：标识整个请求链路
//   - SpanID：标识当前操作
//   - ParentSpanID：标识父操作（构建调用树）
//
// 虽然本服务是单体，一次请求仍会跨越多层：
//
//	Trace: 创建销售（TraceID=abc123）
//	├─ Span1: HTTP处理（耗时35ms）
//	│  └─ Span2: CreateSale用例（耗时30ms）
//	│     ├─ Span3: 查询图书（耗时5ms）
//	│     └─ Span4: 扣库存+落库事务（耗时22ms）← 瓶颈
//
// 追踪回答"慢在哪一层"，再配合TraceID从日志定位"发生了什么"。
//
// # 使用示例
//
//	// 1. 初始化全局Tracer Provider（main中按配置开关）
//	shutdown, err := tracing.InitTracer("libreria", "localhost:4317", 1.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	// 2. 在业务代码中创建Span
//	func (uc *CreateSaleUseCase) Execute(ctx context.Context, req CreateSaleRequest) error {
//	    ctx, span := tracing.StartSpan(ctx, "libreria", "CreateSale")
//	    defer span.End()
//
//	    span.SetAttributes(attribute.Int("quantity", req.Quantity))
//
//	    if err := uc.doCreate(ctx, req); err != nil {
//	        span.RecordError(err)
//	        span.SetStatus(codes.Error, err.Error())
//	        return err
//	    }
//	    return nil
//	}
//
// # 约定
//
// 1. Span命名用操作名而非变量值：`GetBook`（✅） vs `GetBook-123`（❌），
//    动态值放属性：span.SetAttributes(attribute.Int("book_id", 123))
//
// 2. 不把敏感信息（密码、Token）写进属性
//
// 3. 总是`defer span.End()`，程序退出前调用shutdown()刷新未发送的数据
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - collectorURL: 收集器的OTLP gRPC端点（host:port，如localhost:4317）
//   - sampleRatio: 采样率，(0,1)区间按TraceID比例采样，其余值全量采样（未配置时的开发默认）
//
// 返回：
//   - shutdown: 关闭函数（程序退出时调用，确保数据刷新）
//   - error: 初始化失败时返回错误
//
// 使用OTLP协议而非Jaeger原生协议，厂商中立，未来可切换到Zipkin、Datadog等后端。
func InitTracer(serviceName, collectorURL string, sampleRatio float64) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// OTLP支持gRPC（默认端口4317）和HTTP（默认端口4318）两种传输，
	// 这里用gRPC。连接是非阻塞的，收集器不可达时Span在批处理队列中丢弃，不影响业务。
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(collectorURL),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
		// 收集器重启或暂时不可达时按默认退避策略重连
		otlptracegrpc.WithDialOption(grpc.WithConnectParams(grpc.ConnectParams{
			Backoff:           backoff.DefaultConfig,
			MinConnectTimeout: 5 * time.Second,
		})),
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// Resource描述产生遥测数据的实体，属性会附加到所有Span上
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// (0,1)区间按比例采样；0视为未配置，和>=1一样全量采样
	sampler := sdktrace.AlwaysSample()
	if sampleRatio > 0 && sampleRatio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),

		// BatchSpanProcessor批量发送Span，默认每2秒或512个Span发送一次，
		// 程序退出时调用shutdown()强制刷新剩余Span
		sdktrace.WithBatcher(exporter),

		sdktrace.WithResource(res),
	)

	// 全局Provider让业务代码直接用otel.Tracer()获取Tracer，无需逐层传递
	otel.SetTracerProvider(tp)

	// W3C Trace Context标准Header（traceparent、tracestate）+ Baggage
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		// 设置5秒超时，防止shutdown阻塞过久
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 参数：
//   - ctx: 父Context（包含父Span信息）
//   - tracerName: Tracer名称（通常是服务名或模块名）
//   - spanName: Span名称（操作名称，如"CreateSale"）
//
// 返回的ctx必须传给下游调用，否则无法构建调用树。
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)

	// ctx包含父Span时新Span自动成为子Span，否则成为根Span
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
//
// 返回32位十六进制字符串，Context中无有效Span时返回空串。
//
// 在日志中记录TraceID，便于从日志定位到Jaeger追踪：
//
//	log.Printf("[TraceID=%s] 销售创建成功, SaleID=%d", tracing.ExtractTraceID(ctx), sale.ID)
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
//
// 返回16位十六进制字符串，Context中无有效Span时返回空串。
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
