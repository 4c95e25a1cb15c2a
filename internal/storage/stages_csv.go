package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"fptclock/internal/core/model"
)

const (
	csvDelimiter = ';'
	csvQuote     = '|'
)

// parseStagesCSV reads rows of name;minutes;sound. Fields may be quoted
// with '|', and a doubled quote inside a quoted field is a literal '|'.
func parseStagesCSV(rawData []byte) (model.Program, error) {
	rawData = bytes.TrimPrefix(rawData, []byte("\xef\xbb\xbf"))

	var program model.Program
	scanner := bufio.NewScanner(bytes.NewReader(rawData))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields, err := splitRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		stage, err := stageFromFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		program = append(program, stage)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan stage program: %w", err)
	}
	return program, nil
}

func stageFromFields(fields []string) (model.Stage, error) {
	if len(fields) < 2 || strings.TrimSpace(fields[1]) == "" {
		return model.Stage{}, fmt.Errorf("%w: missing duration", ErrMalformedStage)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return model.Stage{}, fmt.Errorf("%w: duration %q is not a number", ErrMalformedStage, fields[1])
	}

	sound := false
	if len(fields) > 2 && strings.TrimSpace(fields[2]) != "" {
		flag, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return model.Stage{}, fmt.Errorf("%w: sound flag %q is not a number", ErrMalformedStage, fields[2])
		}
		sound = flag != 0
	}
	return newStage(fields[0], minutes, sound)
}

func splitRecord(line string) ([]string, error) {
	var (
		fields  []string
		field   strings.Builder
		quoted  bool
		started bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quoted && r == csvQuote:
			if i+1 < len(runes) && runes[i+1] == csvQuote {
				field.WriteRune(csvQuote)
				i++
				continue
			}
			quoted = false
		case quoted:
			field.WriteRune(r)
		case r == csvQuote && !started:
			quoted = true
			started = true
		case r == csvDelimiter:
			fields = append(fields, field.String())
			field.Reset()
			started = false
		default:
			field.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: unterminated quoted field", ErrMalformedStage)
	}
	return append(fields, field.String()), nil
}
