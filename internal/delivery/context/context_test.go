package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidRequestID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "uuid", id: "0193a7c2-5b1e-7c3d-9f00-1a2b3c4d5e6f", want: true},
		{name: "trace style", id: "svc.gateway:1234_ab", want: true},
		{name: "empty", id: "", want: false},
		{name: "too long", id: strings.Repeat("a", maxRequestIDLength+1), want: false},
		{name: "newline injection", id: "abc\nlevel=ERROR", want: false},
		{name: "spaces", id: "abc def", want: false},
		{name: "non ascii", id: "요청", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidRequestID(tt.id))
		})
	}
}

func TestRequestIDOnEchoContext(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.Default()
	scoped := slog.New(slog.DiscardHandler)

	assert.Nil(t, GetLogger(context.Background()))
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}
