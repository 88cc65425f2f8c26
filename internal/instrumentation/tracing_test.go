package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, attr := range attrs {
		m[attr.Key] = attr.Value
	}
	return m
}

func TestSpanAttributeBuilder(t *testing.T) {
	t.Run("empty builder", func(t *testing.T) {
		attrs := NewSpanAttributeBuilder().Build()
		if len(attrs) != 0 {
			t.Errorf("Empty builder should return 0 attributes, got %d", len(attrs))
		}
	})

	t.Run("empty optional values are skipped", func(t *testing.T) {
		attrs := NewSpanAttributeBuilder().
			WithNamespace("").
			WithResource("", "").
			WithRevision("").
			Build()
		if len(attrs) != 0 {
			t.Errorf("Expected 0 attributes, got %d", len(attrs))
		}
	})

	t.Run("all attributes", func(t *testing.T) {
		attrs := attrMap(NewSpanAttributeBuilder().
			WithTool("select_resources").
			WithNamespace("default").
			WithResource("pods", "web-1").
			WithView("Workloads", "frontend").
			WithRevision("01J0000000000000000000000").
			Build())

		want := map[attribute.Key]attribute.Value{
			SpanAttrTool:         attribute.StringValue("select_resources"),
			SpanAttrNamespace:    attribute.StringValue("default"),
			SpanAttrKind:         attribute.StringValue("pods"),
			SpanAttrResourceName: attribute.StringValue("web-1"),
			SpanAttrCategory:     attribute.StringValue("Workloads"),
			SpanAttrQueryLength:  attribute.IntValue(8),
			SpanAttrRevision:     attribute.StringValue("01J0000000000000000000000"),
		}
		for k, v := range want {
			if got, ok := attrs[k]; !ok || got != v {
				t.Errorf("attribute %s = %v, want %v", k, got, v)
			}
		}
	})
}

func TestStartK8sSpan_RecordsAttributes(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	_, span := StartK8sSpan(context.Background(), OperationList, "pods")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "k8s.list" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "k8s.list")
	}
	if spans[0].SpanKind != trace.SpanKindClient {
		t.Errorf("span kind = %v, want client", spans[0].SpanKind)
	}
	attrs := attrMap(spans[0].Attributes)
	if attrs[SpanAttrKind].AsString() != "pods" {
		t.Errorf("kind attribute = %q, want pods", attrs[SpanAttrKind].AsString())
	}
}

func TestStartToolSpan(t *testing.T) {
	spanCtx, span := StartToolSpan(context.Background(), "relate_resources", attribute.String("extra", "attr"))
	defer span.End()

	if spanCtx == nil {
		t.Error("Context should not be nil")
	}
	if span == nil {
		t.Error("Span should not be nil")
	}
}

func TestSetSpanError_SetsErrorCode(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := tp.Tracer(TracerName)

	_, span := tracer.Start(context.Background(), "test-span")
	SetSpanError(span, errors.New("test error"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("Expected error status code, got %v", spans[0].Status.Code)
	}
}

func TestSetSpanError_NilError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	_, span := tp.Tracer(TracerName).Start(context.Background(), "test-span")
	SetSpanError(span, nil)
	span.End()

	if got := exporter.GetSpans()[0].Status.Code; got != codes.Unset {
		t.Errorf("Expected unset status code, got %v", got)
	}
}

func TestSetSpanSuccess_SetsOKCode(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	_, span := tp.Tracer(TracerName).Start(context.Background(), "test-span")
	SetSpanSuccess(span)
	span.End()

	if got := exporter.GetSpans()[0].Status.Code; got != codes.Ok {
		t.Errorf("Expected OK status code, got %v", got)
	}
}

func TestGetTraceID(t *testing.T) {
	if id := GetTraceID(context.Background()); id != "" {
		t.Errorf("Expected empty trace ID, got %q", id)
	}

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer(TracerName).Start(context.Background(), "test-span")
	defer span.End()

	if id := GetTraceID(ctx); len(id) != 32 {
		t.Errorf("Expected 32-char trace ID, got %q", id)
	}
}
