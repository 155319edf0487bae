// Package validate enforces the form-level rules for recipes and
// collections: field ranges, scoring-grid steps, CATA descriptor caps and
// the cross-system "at least one tasting field" requirement.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"brewnote.dev/BrewNote/pkg/model"
)

const scaMinFinalScore = 36.0

// FieldError is a single validation failure addressed by field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	steps := map[string]float64{"step025": 0.25, "step05": 0.5, "step2": 2}
	for tag, step := range steps {
		if err := registerStep(validate, trans, tag, step); err != nil {
			return nil, err
		}
	}

	if err := registerMessage(validate, trans, "tasting_required", "at least one tasting field must be filled in"); err != nil {
		return nil, err
	}

	if err := registerMessage(validate, trans, "sca_floor", "computed final score must be at least 36"); err != nil {
		return nil, err
	}

	validate.RegisterStructValidation(recipeStructLevel, model.Recipe{})

	return &Validator{validate: validate, trans: trans}, nil
}

// Recipe validates a recipe after Normalize has run, so derived scores are
// present. The input is accepted or rejected as a whole.
func (v *Validator) Recipe(recipe *model.Recipe) []FieldError {
	return v.check(recipe)
}

func (v *Validator) Collection(collection *model.Collection) []FieldError {
	return v.check(collection)
}

func (v *Validator) check(subject any) []FieldError {
	err := v.validate.Struct(subject)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))

	for _, fieldError := range validationErrors {
		namespace := fieldError.Namespace()
		if index := strings.Index(namespace, "."); index >= 0 {
			namespace = namespace[index+1:]
		}

		fieldErrors = append(fieldErrors, FieldError{
			Field:   namespace,
			Message: fieldError.Translate(v.trans),
		})
	}

	return fieldErrors
}

func recipeStructLevel(structLevel validator.StructLevel) {
	recipe, ok := structLevel.Current().Interface().(model.Recipe)
	if !ok {
		return
	}

	if !recipe.HasTastingData() {
		structLevel.ReportError(recipe.QuickTasting, "QuickTasting", "QuickTasting", "tasting_required", "")
	}

	if recipe.TraditionalSCA != nil && recipe.TraditionalSCA.ComputeFinalScore() < scaMinFinalScore {
		structLevel.ReportError(recipe.TraditionalSCA, "TraditionalSCA.FinalScore", "TraditionalSCA.FinalScore", "sca_floor", "")
	}
}

func registerStep(validate *validator.Validate, trans ut.Translator, tag string, step float64) error {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		value := fl.Field().Float()
		quotient := value / step

		return math.Abs(quotient-math.Round(quotient)) < 1e-9
	})
	if err != nil {
		return fmt.Errorf("failed to register %s validation: %w", tag, err)
	}

	message := fmt.Sprintf("{0} must be a multiple of %v", step)

	return registerTranslationMessage(validate, trans, tag, message)
}

func registerMessage(validate *validator.Validate, trans ut.Translator, tag, message string) error {
	return registerTranslationMessage(validate, trans, tag, message)
}

func registerTranslationMessage(validate *validator.Validate, trans ut.Translator, tag, message string) error {
	err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
		return ut.Add(tag, message, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		translated, _ := ut.T(tag, fe.Field())

		return translated
	})
	if err != nil {
		return fmt.Errorf("failed to register %s translation: %w", tag, err)
	}

	return nil
}
