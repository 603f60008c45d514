package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/compose/errors"
)

type stepConfig struct {
	Kind  string `mapstructure:"kind" validate:"required,oneof=multiply add"`
	Value int    `mapstructure:"value"`
}

type pipelineConfig struct {
	Name  string       `mapstructure:"name" validate:"required"`
	Steps []stepConfig `mapstructure:"steps" validate:"min=1,dive"`
	Retry int          `validate:"max=3"`
}

func TestValidate_OK(t *testing.T) {
	cfg := pipelineConfig{Name: "score", Steps: []stepConfig{{Kind: "add", Value: 1}}}
	if err := Validate(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    pipelineConfig
		errMsg string
	}{
		{"missing name", pipelineConfig{Steps: []stepConfig{{Kind: "add"}}}, "name: is required"},
		{"no steps", pipelineConfig{Name: "p"}, "steps: must be at least 1"},
		{"bad kind", pipelineConfig{Name: "p", Steps: []stepConfig{{Kind: "divide"}}}, "steps[0].kind: must be one of: multiply add"},
		{"snake case fallback", pipelineConfig{Name: "p", Steps: []stepConfig{{Kind: "add"}}, Retry: 9}, "retry: must be at most 3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.cfg)
			if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("expected INVALID_CONFIG, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestValidate_FieldDetails(t *testing.T) {
	err := Validate(pipelineConfig{})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", appErr.Details["fields"])
	}
	if fields[0].Field != "name" {
		t.Errorf("expected first field 'name', got %q", fields[0].Field)
	}
}

func TestValidate_NonStruct(t *testing.T) {
	if err := Validate(42); !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG for non-struct, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("ServiceName"); got != "service_name" {
		t.Errorf("got %q, want service_name", got)
	}
}
