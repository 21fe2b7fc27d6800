package backup

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/at-ishikawa/quickcards/internal/validation"
)

var documentValidator = sync.OnceValues(func() (*validation.Validator, error) {
	return validation.New("json")
})

// validateDocument reports every invalid record by its path in the document.
func validateDocument(doc Document) error {
	v, err := documentValidator()
	if err != nil {
		return err
	}
	err = v.Struct(doc)
	var validationErr *validation.Error
	if !errors.As(err, &validationErr) {
		return err
	}

	messages := make([]string, 0, len(validationErr.Fields))
	for _, field := range validationErr.Fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field.Path, field.Message))
	}
	return fmt.Errorf("invalid records: %s", strings.Join(messages, ", "))
}
