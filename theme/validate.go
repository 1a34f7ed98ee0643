package theme

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/agiangrant/paper/style"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// Template names are identifiers optionally followed by a ":state" suffix.
	styleNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*(:[a-z]+)?$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("easing", func(fl validator.FieldLevel) bool {
			return style.EasingByName(fl.Field().String()) != nil
		})

		_ = v.RegisterValidation("style_name", func(fl validator.FieldLevel) bool {
			return styleNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})
	return validateInst
}

// transition is one entry of a style's transitions table.
type transition struct {
	Duration float64 `validate:"gte=0,lte=600"`
	Easing   string  `validate:"omitempty,easing"`
}

// decodeTransition accepts a table with duration and easing, or a bare
// number meaning a linear transition of that many seconds.
func decodeTransition(raw any) (transition, error) {
	var tr transition
	switch v := raw.(type) {
	case map[string]any:
		for key := range v {
			if key != "duration" && key != "easing" {
				return tr, fmt.Errorf("unknown key %q", key)
			}
		}
		d, ok := number(v["duration"])
		if !ok {
			return tr, fmt.Errorf("duration: want a number, got %T", v["duration"])
		}
		tr.Duration = d
		if e, ok := v["easing"]; ok {
			s, ok := e.(string)
			if !ok {
				return tr, fmt.Errorf("easing: want a name, got %T", e)
			}
			tr.Easing = s
		}
	default:
		d, ok := number(raw)
		if !ok {
			return tr, fmt.Errorf("want a table or a number, got %T", raw)
		}
		tr.Duration = d
	}

	if err := validatorInstance().Struct(tr); err != nil {
		return tr, convertValidationError(err)
	}
	return tr, nil
}

func validateName(name string) error {
	if err := validatorInstance().Var(name, "required,max=128,style_name"); err != nil {
		return fmt.Errorf("%w: style name %q: %w", ErrInvalidTheme, name, convertValidationError(err))
	}
	return nil
}

// convertValidationError reduces validator errors to a readable message.
func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err
	}
	fe := ves[0]
	field := strings.ToLower(fe.Field())
	if field == "" {
		return fmt.Errorf("failed validation for tag '%s'", fe.Tag())
	}
	return fmt.Errorf("%s %v failed validation for tag '%s'", field, fe.Value(), fe.Tag())
}
