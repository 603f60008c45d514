// Package validation checks configuration structs using struct tags and
// reports failures as an errors.AppError with per-field details.
//
//	type PipelineConfig struct {
//	    Name  string `validate:"required"`
//	    Steps []string `validate:"min=1,dive,oneof=double add"`
//	}
//	err := validation.Validate(cfg)
package validation
