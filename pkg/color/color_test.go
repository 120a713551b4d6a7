package color

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexa-assets/nexa/pkg/model"
)

func withColors(t *testing.T, on bool) {
	t.Helper()
	origEnabled := state.enabled.Load()
	origOverridden := state.overridden.Load()
	t.Cleanup(func() {
		state.enabled.Store(origEnabled)
		state.overridden.Store(origOverridden)
	})
	if on {
		Enable()
	} else {
		Disable()
	}
}

func TestEnableDisable(t *testing.T) {
	withColors(t, true)
	assert.True(t, Enabled())
	Disable()
	assert.False(t, Enabled())
}

func TestInit_NoColorFlag(t *testing.T) {
	origEnabled := state.enabled.Load()
	origOverridden := state.overridden.Load()
	t.Cleanup(func() {
		state.enabled.Store(origEnabled)
		state.overridden.Store(origOverridden)
	})
	state.overridden.Store(false)
	t.Setenv("TERM", "xterm")

	Init(true)
	assert.False(t, Enabled())
}

func TestInit_NoColorEnv(t *testing.T) {
	origEnabled := state.enabled.Load()
	origOverridden := state.overridden.Load()
	t.Cleanup(func() {
		state.enabled.Store(origEnabled)
		state.overridden.Store(origOverridden)
	})
	state.overridden.Store(false)
	t.Setenv("NO_COLOR", "1")

	Init(false)
	assert.False(t, Enabled())
}

func TestInit_ExplicitOverrideWins(t *testing.T) {
	withColors(t, true)
	Init(true)
	assert.True(t, Enabled())
}

func TestColorFuncs(t *testing.T) {
	withColors(t, true)

	tests := []struct {
		name string
		fn   func(string) string
		code string
	}{
		{"Redf", Redf, Red},
		{"Greenf", Greenf, Green},
		{"Yellowf", Yellowf, Yellow},
		{"Cyanf", Cyanf, Cyan},
		{"Boldf", Boldf, Bold},
		{"Dimf", Dimf, DimCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.fn("text")
			assert.True(t, strings.HasPrefix(out, tt.code))
			assert.True(t, strings.HasSuffix(out, Reset))
			assert.Contains(t, out, "text")
		})
	}
}

func TestColorFuncs_Disabled(t *testing.T) {
	withColors(t, false)
	assert.Equal(t, "text", Redf("text"))
	assert.Equal(t, "Assigned", Status(model.StatusAssigned))
	assert.Equal(t, "5 days", Urgency("Urgent", "5 days"))
}

func TestStatus(t *testing.T) {
	withColors(t, true)
	assert.Equal(t, Green+"In Stock"+Reset, Status(model.StatusInStock))
	assert.Equal(t, Red+"Assigned"+Reset, Status(model.StatusAssigned))
	assert.Equal(t, "Retired", Status("Retired"))
}

func TestUrgency(t *testing.T) {
	withColors(t, true)
	assert.Equal(t, Bold+Red+"Due Today"+Reset, Urgency("Due Today", "Due Today"))
	assert.Equal(t, Yellow+"20 days"+Reset, Urgency("Warning", "20 days"))
	assert.Equal(t, Blue+"60 days"+Reset, Urgency("Routine", "60 days"))
}

func TestHelpers(t *testing.T) {
	withColors(t, false)
	assert.Equal(t, "ok", Success("ok"))
	assert.Equal(t, "ok 1", Successf("ok %d", 1))
	assert.Equal(t, "bad", Error("bad"))
	assert.Equal(t, "w", Warning("w"))
	assert.Equal(t, "w 2", Warningf("w %d", 2))
	assert.Equal(t, "i", Info("i"))
	assert.Equal(t, "h", Header("h"))
	assert.Equal(t, "d", Dim("d"))
	assert.Equal(t, "TAG-1", Tag("TAG-1"))
}
