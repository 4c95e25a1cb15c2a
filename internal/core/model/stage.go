package model

import (
	"strings"
	"time"
)

// LineBreak marks a line break inside a stage name.
const LineBreak = "<br/>"

// Stage is one timed segment of the event program.
type Stage struct {
	Name     string
	Duration time.Duration
	Sound    bool
}

// Lines splits the stage name on the line-break marker.
func (stage Stage) Lines() []string {
	parts := strings.Split(stage.Name, LineBreak)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		lines = append(lines, strings.TrimSpace(part))
	}
	return lines
}

// Label returns the stage name on a single line.
func (stage Stage) Label() string {
	return strings.ReplaceAll(stage.Name, LineBreak, "")
}

// Program is the ordered list of stages, in presentation order.
type Program []Stage

// Len returns the number of stages.
func (program Program) Len() int {
	return len(program)
}

// Valid reports whether index addresses a stage.
func (program Program) Valid(index int) bool {
	return index >= 0 && index < len(program)
}

// At returns the stage at index and whether it exists.
func (program Program) At(index int) (Stage, bool) {
	if !program.Valid(index) {
		return Stage{}, false
	}
	return program[index], true
}

// Total returns the sum of all stage durations.
func (program Program) Total() time.Duration {
	var total time.Duration
	for _, stage := range program {
		total += stage.Duration
	}
	return total
}
