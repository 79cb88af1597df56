package tracing

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TestInitTracer 测试Tracer初始化
func TestInitTracer(t *testing.T) {
	shutdown, err := InitTracer("libreria-test", "localhost:4317", 1.0)
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			t.Errorf("关闭Tracer失败: %v", err)
		}
	}()

	// 验证全局TracerProvider已设置
	tracer := otel.Tracer("test")
	if tracer == nil {
		t.Error("全局TracerProvider未设置")
	}
}

// TestStartSpan 测试Span创建
func TestStartSpan(t *testing.T) {
	shutdown, err := InitTracer("libreria-test", "localhost:4317", 1.0)
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer shutdown(context.Background())

	t.Run("创建根Span", func(t *testing.T) {
		ctx := context.Background()

		ctx, span := StartSpan(ctx, "libreria-test", "TestOperation")
		defer span.End()

		if !span.SpanContext().IsValid() {
			t.Error("Span无效")
		}

		traceID := span.SpanContext().TraceID().String()
		if traceID == "" || traceID == "00000000000000000000000000000000" {
			t.Errorf("TraceID无效: %s", traceID)
		}
	})

	t.Run("创建子Span", func(t *testing.T) {
		ctx := context.Background()

		ctx, rootSpan := StartSpan(ctx, "libreria-test", "RootOperation")
		defer rootSpan.End()

		rootTraceID := rootSpan.SpanContext().TraceID().String()
		rootSpanID := rootSpan.SpanContext().SpanID().String()

		ctx, childSpan := StartSpan(ctx, "libreria-test", "ChildOperation")
		defer childSpan.End()

		// 子Span继承根Span的TraceID，SpanID各自独立
		childTraceID := childSpan.SpanContext().TraceID().String()
		if childTraceID != rootTraceID {
			t.Errorf("子Span的TraceID不匹配: root=%s, child=%s", rootTraceID, childTraceID)
		}

		childSpanID := childSpan.SpanContext().SpanID().String()
		if childSpanID == rootSpanID {
			t.Error("子Span的SpanID不应与根Span相同")
		}
	})
}

// TestSampleRatio 测试采样率参数
func TestSampleRatio(t *testing.T) {
	t.Run("比例采样", func(t *testing.T) {
		shutdown, err := InitTracer("libreria-test", "localhost:4317", 0.5)
		if err != nil {
			t.Fatalf("初始化Tracer失败: %v", err)
		}
		defer shutdown(context.Background())

		// 无论是否被采样，SpanContext都应携带有效的TraceID
		ctx, span := StartSpan(context.Background(), "libreria-test", "SampledOperation")
		defer span.End()

		if ExtractTraceID(ctx) == "" {
			t.Error("比例采样下TraceID不应为空")
		}
	})

	t.Run("零值回退为全量采样", func(t *testing.T) {
		shutdown, err := InitTracer("libreria-test", "localhost:4317", 0)
		if err != nil {
			t.Fatalf("初始化Tracer失败: %v", err)
		}
		defer shutdown(context.Background())

		_, span := StartSpan(context.Background(), "libreria-test", "DefaultSampling")
		defer span.End()

		if !span.SpanContext().IsSampled() {
			t.Error("采样率为0时应回退为全量采样")
		}
	})
}

// TestSpanStatus 测试Span状态与错误记录
func TestSpanStatus(t *testing.T) {
	shutdown, err := InitTracer("libreria-test", "localhost:4317", 1.0)
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer shutdown(context.Background())

	t.Run("成功状态", func(t *testing.T) {
		ctx := context.Background()
		_, span := StartSpan(ctx, "libreria-test", "SuccessOperation")
		defer span.End()

		span.SetStatus(codes.Ok, "操作成功")
	})

	t.Run("失败状态", func(t *testing.T) {
		ctx := context.Background()
		_, span := StartSpan(ctx, "libreria-test", "FailedOperation")
		defer span.End()

		err := context.DeadlineExceeded
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	})
}

// TestExtractTraceID 测试TraceID提取
func TestExtractTraceID(t *testing.T) {
	shutdown, err := InitTracer("libreria-test", "localhost:4317", 1.0)
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer shutdown(context.Background())

	t.Run("从有效Context提取TraceID", func(t *testing.T) {
		ctx := context.Background()
		ctx, span := StartSpan(ctx, "libreria-test", "TestExtract")
		defer span.End()

		traceID := ExtractTraceID(ctx)
		if traceID == "" {
			t.Error("TraceID为空")
		}

		// 32位十六进制
		if len(traceID) != 32 {
			t.Errorf("TraceID长度错误: expected=32, got=%d", len(traceID))
		}
	})

	t.Run("从无效Context提取TraceID", func(t *testing.T) {
		traceID := ExtractTraceID(context.Background())
		if traceID != "" {
			t.Errorf("期望空字符串，实际: %s", traceID)
		}
	})
}

// TestExtractSpanID 测试SpanID提取
func TestExtractSpanID(t *testing.T) {
	shutdown, err := InitTracer("libreria-test", "localhost:4317", 1.0)
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer shutdown(context.Background())

	t.Run("从有效Context提取SpanID", func(t *testing.T) {
		ctx := context.Background()
		ctx, span := StartSpan(ctx, "libreria-test", "TestExtractSpanID")
		defer span.End()

		spanID := ExtractSpanID(ctx)
		if spanID == "" {
			t.Error("SpanID为空")
		}

		// 16位十六进制
		if len(spanID) != 16 {
			t.Errorf("SpanID长度错误: expected=16, got=%d", len(spanID))
		}
	})

	t.Run("从无效Context提取SpanID", func(t *testing.T) {
		spanID := ExtractSpanID(context.Background())
		if spanID != "" {
			t.Errorf("期望空字符串，实际: %s", spanID)
		}
	})
}

// TestRealWorldScenario 真实场景：模拟销售创建流程的逐层Span
func TestRealWorldScenario(t *testing.T) {
	shutdown, err := InitTracer("libreria-test", "localhost:4317", 1.0)
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer shutdown(context.Background())

	if err := createSale(context.Background(), 42, 3); err != nil {
		t.Errorf("销售创建失败: %v", err)
	}
}

// 模拟业务函数：创建销售
func createSale(ctx context.Context, bookID uint, quantity int) error {
	ctx, span := StartSpan(ctx, "libreria-test", "CreateSale")
	defer span.End()

	span.SetAttributes(
		attribute.Int("book_id", int(bookID)),
		attribute.Int("quantity", quantity),
	)

	// 步骤1：查询图书
	if err := findBook(ctx, bookID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	// 步骤2：扣库存+落库
	if err := persistSale(ctx, bookID, quantity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "销售创建成功")
	return nil
}

// 模拟业务函数：查询图书
func findBook(ctx context.Context, bookID uint) error {
	_, span := StartSpan(ctx, "libreria-test", "FindBook")
	defer span.End()

	span.SetAttributes(attribute.Int("book_id", int(bookID)))

	// 模拟数据库查询耗时
	time.Sleep(5 * time.Millisecond)

	span.SetStatus(codes.Ok, "查询成功")
	return nil
}

// 模拟业务函数：扣库存并写入销售记录
func persistSale(ctx context.Context, bookID uint, quantity int) error {
	_, span := StartSpan(ctx, "libreria-test", "PersistSale")
	defer span.End()

	span.SetAttributes(
		attribute.Int("book_id", int(bookID)),
		attribute.Int("quantity", quantity),
	)

	// 模拟事务写入耗时
	time.Sleep(10 * time.Millisecond)

	span.SetStatus(codes.Ok, "写入成功")
	return nil
}
