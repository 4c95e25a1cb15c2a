package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fptclock/internal/core/model"
)

// DefaultStagesFile is looked up when no stage program path is given.
const DefaultStagesFile = "states.csv"

// ErrMalformedStage indicates a stage record that cannot be loaded.
var ErrMalformedStage = errors.New("malformed stage")

// LoadStages reads a stage program. The format follows the file extension:
// .yaml/.yml and .toml are structured, anything else is ';' separated text.
// Any malformed record fails the whole load.
func LoadStages(path string) (model.Program, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage program: %w", err)
	}

	var program model.Program
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		program, err = parseStagesYAML(rawData)
	case ".toml":
		program, err = parseStagesTOML(rawData)
	default:
		program, err = parseStagesCSV(rawData)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(program) == 0 {
		return nil, fmt.Errorf("%s: no stages defined", filepath.Base(path))
	}
	return program, nil
}

// ResolveStagesPath returns explicit when set, otherwise the default file in
// the working directory, then next to the executable.
func ResolveStagesPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultStagesFile); err == nil {
		return DefaultStagesFile
	}
	if exePath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exePath), DefaultStagesFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return DefaultStagesFile
}

// stageRecord is the structured-file form of a stage.
type stageRecord struct {
	Name    string `yaml:"name" toml:"name"`
	Minutes *int   `yaml:"minutes" toml:"minutes"`
	Sound   any    `yaml:"sound" toml:"sound"`
}

type stageDocument struct {
	Stages []stageRecord `yaml:"stages" toml:"stages"`
}

func (document stageDocument) program() (model.Program, error) {
	program := make(model.Program, 0, len(document.Stages))
	for i, record := range document.Stages {
		if record.Minutes == nil {
			return nil, fmt.Errorf("stage %d: %w: missing minutes", i+1, ErrMalformedStage)
		}
		sound, err := soundFlag(record.Sound)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		stage, err := newStage(record.Name, *record.Minutes, sound)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		program = append(program, stage)
	}
	return program, nil
}

func newStage(name string, minutes int, sound bool) (model.Stage, error) {
	if minutes <= 0 {
		return model.Stage{}, fmt.Errorf("%w: duration must be positive, got %d minutes", ErrMalformedStage, minutes)
	}
	return model.Stage{
		Name:     name,
		Duration: time.Duration(minutes) * time.Minute,
		Sound:    sound,
	}, nil
}

// soundFlag accepts a boolean or a 0/1 integer.
func soundFlag(value any) (bool, error) {
	switch typed := value.(type) {
	case nil:
		return false, nil
	case bool:
		return typed, nil
	case int:
		return typed != 0, nil
	case int64:
		return typed != 0, nil
	case uint64:
		return typed != 0, nil
	default:
		return false, fmt.Errorf("%w: sound flag %v is neither a boolean nor 0/1", ErrMalformedStage, value)
	}
}
