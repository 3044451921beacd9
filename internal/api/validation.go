package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

// requiredByVariant lists the fields a submitted blink must fill for its active type
var requiredByVariant = map[models.ActionType][]string{
	models.ActionTypeTipping:   {"recipientAddress"},
	models.ActionTypeTokenSwap: {"fromToken", "toToken", "amount"},
	models.ActionTypeBuyNft:    {"collectionAddress", "nftId", "price"},
	models.ActionTypeStaking:   {"token", "amount"},
	models.ActionTypeCustom:    {"name"},
}

// NewValidator returns the request validator. Field errors are reported with
// JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "decimal", func(fl validator.FieldLevel) bool {
		return utils.IsValidAmount(fl.Field().String())
	})
	mustRegister(v, "action_type", func(fl validator.FieldLevel) bool {
		return models.ActionType(fl.Field().String()).IsValid()
	})
	v.RegisterStructValidation(validateActiveVariant, models.ActionConfig{})
	return v
}

// mustRegister panics when tag cannot be registered, so a bad tag fails at
// startup instead of at the first validated request.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %q validation: %v", tag, err))
	}
}

func validateActiveVariant(sl validator.StructLevel) {
	config := sl.Current().Interface().(models.ActionConfig)
	fields, ok := requiredByVariant[config.Type]
	if !ok {
		return
	}

	payload := reflect.Indirect(reflect.ValueOf(config.Variant(config.Type)))
	payloadType := payload.Type()
	for i := 0; i < payloadType.NumField(); i++ {
		field := payloadType.Field(i)
		jsonName := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if !contains(fields, jsonName) {
			continue
		}
		value := payload.Field(i)
		if value.IsZero() || (value.Kind() == reflect.String && strings.TrimSpace(value.String()) == "") {
			sl.ReportError(value.Interface(), string(config.Type)+"."+jsonName, field.Name, "required", "")
		}
	}
}

// decodeBody unmarshals the request body into target. Syntax and type errors
// come back as field errors so they share the 400 envelope with schema errors.
func decodeBody(body []byte, target any) []models.FieldError {
	decoder := json.NewDecoder(bytes.NewReader(body))
	if err := decoder.Decode(target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return []models.FieldError{{
				Path:    splitPath(typeErr.Field),
				Code:    "invalid_type",
				Message: fmt.Sprintf("Expected %s, received %s", typeErr.Type, typeErr.Value),
			}}
		}
		return []models.FieldError{{
			Path:    []string{},
			Code:    "invalid_json",
			Message: fmt.Sprintf("Malformed JSON body: %v", err),
		}}
	}
	return nil
}

// fieldErrors converts validator errors into the response format
func fieldErrors(err error) []models.FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []models.FieldError{{Path: []string{}, Code: "custom", Message: err.Error()}}
	}

	result := make([]models.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		namespace := fe.Namespace()
		// drop the root struct name
		if idx := strings.Index(namespace, "."); idx >= 0 {
			namespace = namespace[idx+1:]
		}
		code, message := describe(fe)
		result = append(result, models.FieldError{
			Path:    splitPath(namespace),
			Code:    code,
			Message: message,
		})
	}
	return result
}

func describe(fe validator.FieldError) (string, string) {
	switch fe.Tag() {
	case "required":
		return "invalid_type", "Required"
	case "max":
		return "too_big", fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
	case "lte":
		return "too_big", fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "gte":
		return "too_small", fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "decimal":
		return "invalid_string", "Must be a non-negative decimal number"
	case "url":
		return "invalid_string", "Invalid url"
	case "datetime":
		return "invalid_date", fmt.Sprintf("Must be a date formatted as %s", fe.Param())
	case "action_type":
		names := make([]string, 0, len(models.AllActionTypes))
		for _, t := range models.AllActionTypes {
			names = append(names, "'"+string(t)+"'")
		}
		return "invalid_enum_value", fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(names, " | "), fe.Value())
	default:
		return "custom", fe.Error()
	}
}

// splitPath turns "tipping.suggestedAmounts[1]" into [tipping suggestedAmounts 1]
func splitPath(namespace string) []string {
	path := []string{}
	if namespace == "" {
		return path
	}
	for _, part := range strings.Split(namespace, ".") {
		name, index, found := strings.Cut(part, "[")
		if name != "" {
			path = append(path, name)
		}
		if found {
			path = append(path, strings.TrimSuffix(index, "]"))
		}
	}
	return path
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
