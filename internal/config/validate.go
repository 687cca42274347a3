package config

import (
	"fmt"

	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/version"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("incrementtype", func(fl validator.FieldLevel) bool {
		return version.IncrementType(fl.Field().String()).IsValid()
	})
	return v
}

// Validate normalizes increment type spelling and checks the configuration's
// structural constraints. Failures are user errors.
func Validate(cfg *UserConfiguration, path string) error {
	if err := normalizeIncrementTypes(cfg); err != nil {
		return err
	}

	for i, p := range cfg.Projects {
		if p == nil {
			return apperrors.InvalidConfiguration(path, fmt.Errorf("Projects[%d] is null", i))
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return apperrors.InvalidConfiguration(path, err)
	}
	return nil
}

// normalizeIncrementTypes accepts any casing in the persisted file and
// rewrites values to their canonical names.
func normalizeIncrementTypes(cfg *UserConfiguration) error {
	if cfg.DefaultIncrementType == "" {
		cfg.DefaultIncrementType = version.Patch
	}
	t, err := version.ParseIncrementType(string(cfg.DefaultIncrementType))
	if err != nil {
		return err
	}
	cfg.DefaultIncrementType = t

	for _, p := range cfg.Projects {
		if p == nil || p.IncrementType == nil {
			continue
		}
		if *p.IncrementType == "" {
			p.IncrementType = nil
			continue
		}
		t, err := version.ParseIncrementType(string(*p.IncrementType))
		if err != nil {
			return err
		}
		p.IncrementType = incrementPtr(t)
	}
	return nil
}
