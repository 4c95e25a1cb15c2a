package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStageLinesSplitsOnMarker(t *testing.T) {
	stage := Stage{Name: "Keynote<br/>Jane Doe"}
	assert.Equal(t, []string{"Keynote", "Jane Doe"}, stage.Lines())
	assert.Equal(t, "KeynoteJane Doe", stage.Label())
}

func TestStageLinesWithoutMarker(t *testing.T) {
	stage := Stage{Name: "Intro"}
	assert.Equal(t, []string{"Intro"}, stage.Lines())
	assert.Equal(t, "Intro", stage.Label())
}

func TestProgramBounds(t *testing.T) {
	program := Program{
		{Name: "Intro", Duration: 5 * time.Minute},
		{Name: "Talk", Duration: 20 * time.Minute, Sound: true},
	}

	assert.Equal(t, 2, program.Len())
	assert.True(t, program.Valid(0))
	assert.True(t, program.Valid(1))
	assert.False(t, program.Valid(-1))
	assert.False(t, program.Valid(2))

	stage, ok := program.At(1)
	assert.True(t, ok)
	assert.Equal(t, "Talk", stage.Name)

	_, ok = program.At(5)
	assert.False(t, ok)
	assert.Equal(t, 25*time.Minute, program.Total())
}
