package utils

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validador() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
			return CNPJValido(fl.Field().String())
		})
		_ = validate.RegisterValidation("cpfcnpj", func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			return CPFValido(v) || CNPJValido(v)
		})
	})
	return validate
}

// Validar aplica as tags `validate` do DTO e devolve uma mensagem legível
// referente ao primeiro campo inválido.
func Validar(v any) error {
	err := validador().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("campo '%s' é obrigatório", fe.Field())
	case "email":
		return fmt.Errorf("campo '%s' deve ser um e-mail válido", fe.Field())
	case "cnpj", "cpfcnpj":
		return fmt.Errorf("campo '%s' não é um documento válido", fe.Field())
	case "oneof":
		return fmt.Errorf("campo '%s' deve ser um de: %s", fe.Field(), fe.Param())
	case "gt", "gte", "min":
		return fmt.Errorf("campo '%s' deve ser no mínimo %s", fe.Field(), fe.Param())
	case "lt", "lte", "max":
		return fmt.Errorf("campo '%s' deve ser no máximo %s", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("campo '%s' inválido", fe.Field())
	}
}
