package api

import (
	"work-timer/internal/config"
	"work-timer/internal/domain"
)

// NewFromConfig opens the configured repository and builds a BusinessAPI on
// top of it. The returned close function releases the database.
func NewFromConfig(cfg *config.Config, clock domain.Clock) (BusinessAPI, func() error, error) {
	rules, err := cfg.BusinessRules()
	if err != nil {
		return nil, nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, nil, err
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	return NewBusinessAPI(repo, rules, clock, WithTimeout(cfg.Application.Timeout)), repo.Close, nil
}
