package common

import (
	"context"
	"time"
)

// ContextKey represents a context key type
type ContextKey string

// Context keys
const (
	ContextKeyDeviceID  ContextKey = "device_id"
	ContextKeyRequestID ContextKey = "request_id"
	ContextKeyStartTime ContextKey = "start_time"
	ContextKeyAdmin     ContextKey = "admin"
)

// WithDeviceID adds the client device ID to context
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, ContextKeyDeviceID, deviceID)
}

// GetDeviceID extracts the client device ID from context
func GetDeviceID(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(ContextKeyDeviceID).(string)
	return deviceID, ok
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(ContextKeyRequestID).(string)
	return requestID, ok
}

// WithStartTime adds start time to context
func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyStartTime, startTime)
}

// GetStartTime extracts start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(ContextKeyStartTime).(time.Time)
	return startTime, ok
}

// WithAdmin marks the context as carrying a validated admin identity
func WithAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ContextKeyAdmin, subject)
}

// GetAdmin extracts the admin subject from context
func GetAdmin(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(ContextKeyAdmin).(string)
	return subject, ok
}
