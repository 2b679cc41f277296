package alert

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishNotifiesSubscribers(t *testing.T) {
	bus := NewBus()

	var got []Alert
	bus.Subscribe(func(a Alert) { got = append(got, a) })
	bus.Subscribe(func(a Alert) { got = append(got, a) })

	bus.Errorf("Cannot reach server")

	require.Len(t, got, 2)
	assert.Equal(t, LevelError, got[0].Level)
	assert.Equal(t, "Cannot reach server", got[0].Message)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestBus_Levels(t *testing.T) {
	bus := NewBus()
	bus.Infof("i")
	bus.Successf("s %d", 1)
	bus.Warnf("w")
	bus.Errorf("e")

	h := bus.History()
	require.Len(t, h, 4)
	assert.Equal(t, []Level{LevelError, LevelWarning, LevelSuccess, LevelInfo},
		[]Level{h[0].Level, h[1].Level, h[2].Level, h[3].Level})
	assert.Equal(t, "s 1", h[2].Message)
}

func TestBus_HistoryIsBounded(t *testing.T) {
	bus := NewBus()
	for i := range defaultHistory + 5 {
		bus.Infof("%d", i)
	}

	h := bus.History()
	assert.Len(t, h, defaultHistory)
	assert.Equal(t, fmt.Sprint(defaultHistory+4), h[0].Message)
}
