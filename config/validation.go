package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/bobinette/fileshelf/errors"
)

var validate = validator.New()

func Validate(cfg *Configuration) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if cfg.API.UploadTimeout < cfg.API.Timeout {
		return errors.New("api.upload_timeout cannot be shorter than api.timeout", errors.BadRequest())
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return errors.New("invalid configuration", errors.WithCause(err), errors.BadRequest())
	}

	e := validationErrs[0]
	return errors.New(
		fmt.Sprintf("%s: validation failed on '%s' tag (value: %v)", e.Namespace(), e.Tag(), e.Value()),
		errors.BadRequest(),
	)
}
