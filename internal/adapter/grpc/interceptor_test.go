package grpc

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name         string
		handlerErr   error
		minLevel     slog.Level
		expectedCode codes.Code
		expectLogged bool
	}{
		{
			name:         "Success At Debug",
			handlerErr:   nil,
			minLevel:     slog.LevelDebug,
			expectedCode: codes.OK,
			expectLogged: true,
		},
		{
			name:         "Success Hidden At Info",
			handlerErr:   nil,
			minLevel:     slog.LevelInfo,
			expectedCode: codes.OK,
			expectLogged: false,
		},
		{
			name:         "Failure Logged At Info",
			handlerErr:   status.Error(codes.Unavailable, "store down"),
			minLevel:     slog.LevelInfo,
			expectedCode: codes.Unavailable,
			expectLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.minLevel}))
			interceptor := LoggingInterceptor(logger)

			handlerCalled := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				handlerCalled = true
				if tt.handlerErr != nil {
					return nil, tt.handlerErr
				}
				return "success", nil
			}

			info := &grpc.UnaryServerInfo{
				FullMethod: "/grpc.health.v1.Health/Check",
			}

			resp, err := interceptor(context.Background(), "test-request", info, handler)

			assert.True(t, handlerCalled, "handler should always be called")
			assert.Equal(t, tt.expectedCode, status.Code(err))
			if tt.handlerErr == nil {
				assert.Equal(t, "success", resp)
			} else {
				assert.Nil(t, resp)
			}

			out := buf.String()
			if tt.expectLogged {
				assert.Contains(t, out, "method=/grpc.health.v1.Health/Check")
				assert.Contains(t, out, "code="+tt.expectedCode.String())
				assert.Contains(t, out, "duration=")
			} else {
				assert.Empty(t, out)
			}
		})
	}
}
