package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	config := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
		AddSource:   false,
	}

	InitWithWriter(config, &buf)

	slog.Info("test message", "key", "value", "number", 42)

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if logEntry["service"] != "test-service" {
		t.Errorf("Expected service=test-service, got %v", logEntry["service"])
	}

	if logEntry["version"] != "1.0.0" {
		t.Errorf("Expected version=1.0.0, got %v", logEntry["version"])
	}

	if logEntry["environment"] != "test" {
		t.Errorf("Expected environment=test, got %v", logEntry["environment"])
	}

	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	config := Config{
		Level:       "warn",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}

	InitWithWriter(config, &buf)

	slog.Info("should be filtered")
	if buf.Len() != 0 {
		t.Errorf("Expected info log to be filtered at warn level, got %q", buf.String())
	}

	slog.Warn("should appear")
	if buf.Len() == 0 {
		t.Error("Expected warn log to be emitted")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := RequestIDFromContext(ctx); ok {
		t.Error("Expected no request ID on a bare context")
	}

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("Expected request ID to be present")
	}
	if got != id {
		t.Errorf("Expected request ID %q, got %q", id, got)
	}
}

func TestFromContextWithoutID(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("Expected a logger even without a request ID")
	}
}
