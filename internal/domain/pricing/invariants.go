package pricing

import (
	"fmt"
	"strings"

	"agency_configurator/internal/domain/entities"
)

// InvariantViolation reports malformed service data. It means the catalog
// accepted a definition it should have rejected at write time.
type InvariantViolation struct {
	ServiceID string
	Problems  []string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("service %s violates pricing invariants: %s", e.ServiceID, strings.Join(e.Problems, "; "))
}

// CheckService verifies the structural rules ComputeTotals depends on.
// Option ids must be unique across the whole service since a Configuration
// is keyed by option id alone.
func CheckService(s entities.Service) error {
	var problems []string
	if s.BasePrice.IsNegative() {
		problems = append(problems, "base price is negative")
	}
	if s.DeliveryTimeBaseDays < 1 {
		problems = append(problems, "base delivery time must be at least 1 day")
	}

	steps := map[string]bool{}
	options := map[string]bool{}
	for _, step := range s.Steps {
		if step.ID == "" {
			problems = append(problems, "step with empty id")
		} else if steps[step.ID] {
			problems = append(problems, fmt.Sprintf("duplicate step %s", step.ID))
		}
		steps[step.ID] = true

		for _, opt := range step.Options {
			if opt.ID == "" {
				problems = append(problems, fmt.Sprintf("step %s: option with empty id", step.ID))
				continue
			}
			if options[opt.ID] {
				problems = append(problems, fmt.Sprintf("duplicate option %s", opt.ID))
			}
			options[opt.ID] = true
			problems = append(problems, checkOption(step.ID, opt)...)
		}
	}

	if len(problems) > 0 {
		return &InvariantViolation{ServiceID: s.ID, Problems: problems}
	}
	return nil
}

func checkOption(stepID string, opt entities.ConfigOption) []string {
	var problems []string
	switch opt.Type {
	case entities.OptionTypeSelect:
		if len(opt.Choices) == 0 {
			problems = append(problems, fmt.Sprintf("step %s option %s: select without choices", stepID, opt.ID))
		}
		seen := map[string]bool{}
		for _, c := range opt.Choices {
			if seen[c.Value] {
				problems = append(problems, fmt.Sprintf("step %s option %s: duplicate choice %q", stepID, opt.ID, c.Value))
			}
			seen[c.Value] = true
		}
	case entities.OptionTypeCheckbox, entities.OptionTypeText:
		if len(opt.Choices) > 0 {
			problems = append(problems, fmt.Sprintf("step %s option %s: choices only allowed on select", stepID, opt.ID))
		}
	default:
		problems = append(problems, fmt.Sprintf("step %s option %s: unknown type %q", stepID, opt.ID, opt.Type))
	}
	return problems
}
