package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "config.ini").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "config.ini" {
			t.Errorf("expected context file=config.ini, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if !HasSeverity(err, SeverityFatal) {
			t.Error("expected error to have fatal severity")
		}
		if err.CanRetry() {
			t.Error("expected config error to not be retryable")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Detection through fmt wrapping", func(t *testing.T) {
		inner := TemplateError("template not found").WithContext("page", "a/b").Build()
		wrapped := fmt.Errorf("render: %w", inner)

		if !HasCategory(wrapped, CategoryTemplate) {
			t.Error("expected wrapped error to keep template category")
		}
		if IsFatal(wrapped) {
			t.Error("expected template error to be per-page")
		}
		if !IsFatal(errors.New("plain")) {
			t.Error("expected unclassified errors to be fatal")
		}
	})

	t.Run("Sentinel matching", func(t *testing.T) {
		sentinel := TemplateError("template not found").Build()
		err := TemplateError("template not found").WithContext("template", "x.html").Build()

		if !errors.Is(err, sentinel) {
			t.Error("expected errors.Is to match on category and message")
		}
		if errors.Is(OutputError("template not found").Build(), sentinel) {
			t.Error("expected different categories not to match")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("original error")
		err := WrapError(originalErr, CategoryStore, "flush failed").
			Fatal().
			WithContext("path", "hash.db").
			Build()

		if err.Category() != CategoryStore {
			t.Errorf("expected category %s, got %s", CategoryStore, err.Category())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}

		path, _ := err.Context().GetString("path")
		if path != "hash.db" {
			t.Errorf("expected path context 'hash.db', got %s", path)
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryUserAction},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal, RetryNever},
			{"StoreError", StoreError("test"), CategoryStore, SeverityFatal, RetryNever},
			{"SourceError", SourceError("test"), CategorySource, SeverityError, RetryNextBuild},
			{"MarkupError", MarkupError("test"), CategoryMarkup, SeverityError, RetryNextBuild},
			{"TemplateError", TemplateError("test"), CategoryTemplate, SeverityError, RetryNextBuild},
			{"OutputError", OutputError("test"), CategoryOutput, SeverityError, RetryNextBuild},
			{"NetworkError", NetworkError("test"), CategoryNetwork, SeverityError, RetryBackoff},
			{"RuntimeError", RuntimeError("test"), CategoryRuntime, SeverityFatal, RetryNever},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
				if err.RetryStrategy() != tt.retry {
					t.Errorf("expected retry strategy %s, got %s", tt.retry, err.RetryStrategy())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	t.Run("Context operations", func(t *testing.T) {
		ctx := make(ErrorContext)
		ctx = ctx.Set("key1", "value1")
		ctx = ctx.Set("key2", 42)

		value1, exists1 := ctx.GetString("key1")
		if !exists1 || value1 != "value1" {
			t.Errorf("expected key1=value1, got %v", value1)
		}

		value2, exists2 := ctx.Get("key2")
		if !exists2 || value2 != 42 {
			t.Errorf("expected key2=42, got %v", value2)
		}

		_, exists3 := ctx.Get("nonexistent")
		if exists3 {
			t.Error("expected nonexistent key to not exist")
		}
	})

	t.Run("Context merge", func(t *testing.T) {
		ctx1 := make(ErrorContext)
		ctx1 = ctx1.Set("key1", "value1")
		ctx1 = ctx1.Set("shared", "original")

		ctx2 := make(ErrorContext)
		ctx2 = ctx2.Set("key2", "value2")
		ctx2 = ctx2.Set("shared", "overridden")

		merged := ctx1.Merge(ctx2)

		value1, _ := merged.GetString("key1")
		value2, _ := merged.GetString("key2")
		shared, _ := merged.GetString("shared")

		if value1 != "value1" {
			t.Errorf("expected key1=value1, got %s", value1)
		}
		if value2 != "value2" {
			t.Errorf("expected key2=value2, got %s", value2)
		}
		if shared != "overridden" {
			t.Errorf("expected shared=overridden, got %s", shared)
		}
	})
}
