package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component derives a logger from the global one tagged with cmp=name.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
