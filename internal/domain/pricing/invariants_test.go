package pricing

import (
	"errors"
	"strings"
	"testing"

	"agency_configurator/internal/domain/entities"
)

func TestCheckService(t *testing.T) {
	if err := CheckService(websiteService()); err != nil {
		t.Fatalf("fixture should be valid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*entities.Service)
		want   string
	}{
		{"negative base price", func(s *entities.Service) { s.BasePrice = d("-1") }, "base price is negative"},
		{"zero delivery", func(s *entities.Service) { s.DeliveryTimeBaseDays = 0 }, "at least 1 day"},
		{"duplicate step", func(s *entities.Service) { s.Steps[1].ID = "scope" }, "duplicate step scope"},
		{"duplicate option across steps", func(s *entities.Service) { s.Steps[1].Options[0].ID = "Package" }, "duplicate option Package"},
		{"select without choices", func(s *entities.Service) { s.Steps[0].Options[0].Choices = nil }, "select without choices"},
		{"duplicate choice", func(s *entities.Service) { s.Steps[0].Options[0].Choices[1].Value = "Basic" }, "duplicate choice"},
		{"choices on checkbox", func(s *entities.Service) {
			s.Steps[1].Options[0].Choices = []entities.Choice{{Value: "x"}}
		}, "choices only allowed on select"},
		{"unknown type", func(s *entities.Service) { s.Steps[1].Options[1].Type = "radio" }, "unknown type"},
		{"empty option id", func(s *entities.Service) { s.Steps[1].Options[1].ID = "" }, "option with empty id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := websiteService()
			tc.mutate(&svc)
			err := CheckService(svc)
			var iv *InvariantViolation
			if !errors.As(err, &iv) {
				t.Fatalf("expected InvariantViolation, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}
