package objective

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoStep() *Objective {
	return &Objective{
		ID:    1,
		Title: "test",
		Steps: []Step{
			{ID: "kill", Text: "Kill them"},
			{ID: "action", Text: "Do the deed"},
		},
	}
}

func TestMarkStep_Idempotent(t *testing.T) {
	o := twoStep()

	assert.True(t, o.MarkStep("kill"))
	assert.False(t, o.MarkStep("kill"), "second mark reports no change")
	assert.True(t, o.StepComplete("kill"))
	assert.False(t, o.AllStepsComplete())
}

func TestMarkStep_UnknownAndTerminal(t *testing.T) {
	o := twoStep()
	assert.False(t, o.MarkStep("nope"))

	o.Failed = true
	assert.False(t, o.MarkStep("action"), "terminal objectives never mutate")
	assert.False(t, o.StepComplete("action"))
}

func TestAllStepsComplete(t *testing.T) {
	o := twoStep()
	o.MarkStep("kill")
	assert.False(t, o.AllStepsComplete())
	o.MarkStep("action")
	assert.True(t, o.AllStepsComplete())

	// step-less objectives never report all-complete
	bare := &Objective{ID: 2}
	assert.False(t, bare.AllStepsComplete())
}

func TestScopedCounter_ResetOnScopeChange(t *testing.T) {
	c := &ScopedCounter{Required: 3}

	assert.Equal(t, 1, c.Bump("house-a"))
	assert.Equal(t, 2, c.Bump("house-a"))
	assert.Equal(t, 1, c.Bump("house-b"), "new scope resets the count")
	assert.False(t, c.Reached())
}

func TestScopedCounter_ReachesThreshold(t *testing.T) {
	c := &ScopedCounter{Required: 3}
	c.Bump("house-a")
	c.Bump("house-a")
	assert.False(t, c.Reached())
	c.Bump("house-a")
	assert.True(t, c.Reached())
}
