package pricing

import (
	"agency_configurator/internal/domain/entities"
)

type ValidationReason string

const (
	ReasonMissingSelection ValidationReason = "missing_selection"
	ReasonUnknownChoice    ValidationReason = "unknown_choice"
	ReasonWrongValueType   ValidationReason = "wrong_value_type"
	ReasonUnknownOption    ValidationReason = "unknown_option"
)

// ValidationError points at one option of the configuration. StepID is
// empty for keys that do not belong to the service.
type ValidationError struct {
	StepID   string           `json:"step_id,omitempty"`
	OptionID string           `json:"option_id"`
	Reason   ValidationReason `json:"reason"`
}

type ValidationResult struct {
	Errors []ValidationError `json:"errors"`
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateConfiguration checks a configuration against the service before
// it may be submitted. Failures are returned as data, never as an error.
//
// Every select option must hold one of its choice values. Checkbox and text
// options are optional, but a value of the wrong kind is reported. Keys not
// naming an option of the service are reported after the option errors, in
// lexical order.
func ValidateConfiguration(s entities.Service, cfg entities.Configuration) ValidationResult {
	errs := []ValidationError{}

	for _, step := range s.Steps {
		for _, opt := range step.Options {
			if reason, bad := checkSelection(opt, cfg); bad {
				errs = append(errs, ValidationError{StepID: step.ID, OptionID: opt.ID, Reason: reason})
			}
		}
	}

	for _, key := range cfg.Keys() {
		if _, _, ok := s.LookupOption(key); !ok {
			errs = append(errs, ValidationError{OptionID: key, Reason: ReasonUnknownOption})
		}
	}
	return ValidationResult{Errors: errs}
}

func checkSelection(opt entities.ConfigOption, cfg entities.Configuration) (ValidationReason, bool) {
	v, present := cfg[opt.ID]
	switch opt.Type {
	case entities.OptionTypeSelect:
		if !present {
			return ReasonMissingSelection, true
		}
		if v.Kind != entities.ValueKindString {
			return ReasonWrongValueType, true
		}
		if _, ok := opt.FindChoice(v.Text); !ok {
			return ReasonUnknownChoice, true
		}
	case entities.OptionTypeCheckbox:
		if present && v.Kind != entities.ValueKindBool {
			return ReasonWrongValueType, true
		}
	case entities.OptionTypeText:
		if present && v.Kind != entities.ValueKindString {
			return ReasonWrongValueType, true
		}
	}
	return "", false
}
