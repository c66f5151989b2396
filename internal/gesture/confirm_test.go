package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressWithoutInkIsIgnored(t *testing.T) {
	var c Confirm
	assert.False(t, c.Press(0))
	assert.Equal(t, Idle, c.State())
	assert.False(t, c.Pressing())
}

func TestEarlyReleaseNeverSigns(t *testing.T) {
	var c Confirm
	assert.True(t, c.Press(100))
	assert.Equal(t, Holding, c.State())
	assert.True(t, c.Release())
	assert.Equal(t, Idle, c.State())
	assert.False(t, c.Complete(100))
	assert.False(t, c.Signed())
}

func TestCompleteWhilePressedSignsOnce(t *testing.T) {
	var c Confirm
	c.Press(100)
	assert.True(t, c.Complete(100))
	assert.True(t, c.Signed())
	// stale press coexists with signed until release
	assert.True(t, c.Pressing())
	assert.False(t, c.Complete(100))

	assert.False(t, c.Release())
	assert.True(t, c.Signed())
	assert.False(t, c.Pressing())

	assert.False(t, c.Press(100))
	assert.True(t, c.Signed())
}

func TestCompleteWithoutInk(t *testing.T) {
	var c Confirm
	c.Press(10)
	assert.False(t, c.Complete(0))
	assert.Equal(t, Holding, c.State())
}

func TestReset(t *testing.T) {
	var c Confirm
	c.Press(5)
	c.Complete(5)
	c.Reset()
	assert.Equal(t, Idle, c.State())
	assert.False(t, c.Pressing())
	c.Reset()
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, "idle", c.State().String())
	assert.Equal(t, "signed", Signed.String())
}
