// Package validation registers the custom binding rules used by request DTOs.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	dom "Noteboard/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	once sync.Once
	err  error
)

// Register installs the rules on gin's validator. Safe to call repeatedly.
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn installs the rules on v and makes errors report fields by
// their wire name (json, then uri, then form tag).
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)
	if err := v.RegisterValidation("todostatus", todoStatus); err != nil {
		return fmt.Errorf("register todostatus: %w", err)
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	return nil
}

func todoStatus(fl validator.FieldLevel) bool {
	return dom.TodoStatus(fl.Field().String()).Valid()
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "uri", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
