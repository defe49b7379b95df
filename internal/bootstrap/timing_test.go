package bootstrap

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStartupTimer_PhasesAndTotal(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	timer := newStartupTimer(clock.now)

	clock.advance(20 * time.Millisecond)
	timer.Mark("config")
	timer.MarkDuration("parallel", 7*time.Millisecond)
	clock.advance(30 * time.Millisecond)
	timer.Mark("app")

	assert.Equal(t, 50*time.Millisecond, timer.Total())

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	timer.write(logger.Info())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "startup timing", line["message"])
	assert.EqualValues(t, 50, line["total"])
	assert.EqualValues(t, 20, line["config"])
	assert.EqualValues(t, 7, line["parallel"])
	assert.EqualValues(t, 30, line["app"])
}
