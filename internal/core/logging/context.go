package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	laneKey      contextKey = "lane"
)

// WithRequestID adds a backend request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithLane adds the notification lane being worked on to the context.
func WithLane(ctx context.Context, lane string) context.Context {
	return context.WithValue(ctx, laneKey, lane)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetLane retrieves the lane from the context.
// Returns empty string if not present.
func GetLane(ctx context.Context) string {
	if lane, ok := ctx.Value(laneKey).(string); ok {
		return lane
	}
	return ""
}
