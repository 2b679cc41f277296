package logging

import (
	"github.com/rs/zerolog"
)

// ContextHook copies the request id and lane carried by an event's context
// onto the event. Attach a context with Event.Ctx.
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	if id := GetRequestID(ctx); id != "" {
		e.Str("request_id", id)
	}
	if lane := GetLane(ctx); lane != "" {
		e.Str("lane", lane)
	}
}
