package config

import (
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/quickcards/internal/validation"
)

func newConfigValidator() (*validation.Validator, error) {
	v, err := validation.New("mapstructure")
	if err != nil {
		return nil, err
	}
	if err := v.RegisterRule("file", isReadableFile, "{0} must be an existing and readable file"); err != nil {
		return nil, err
	}
	return v, nil
}

// isReadableFile accepts a path to a regular file its owner can read.
func isReadableFile(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o400 != 0
}
