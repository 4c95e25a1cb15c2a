package storage

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"fptclock/internal/core/model"
)

func parseStagesYAML(rawData []byte) (model.Program, error) {
	var document stageDocument
	if err := yaml.Unmarshal(rawData, &document); err != nil {
		return nil, fmt.Errorf("parse stages yaml: %w", err)
	}
	return document.program()
}

func parseStagesTOML(rawData []byte) (model.Program, error) {
	var document stageDocument
	if err := toml.Unmarshal(rawData, &document); err != nil {
		return nil, fmt.Errorf("parse stages toml: %w", err)
	}
	return document.program()
}
