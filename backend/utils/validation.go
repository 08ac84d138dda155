package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// ValidImageExtensions contains valid image file extensions
	ValidImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	// MaxImageSize defines maximum image size (10MB)
	MaxImageSize int64 = 10 * 1024 * 1024
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return fieldName(f.Tag.Get("json"), f.Tag.Get("form"), f.Name)
		})
	})
	return validate
}

func fieldName(jsonTag, formTag, goName string) string {
	for _, tag := range []string{jsonTag, formTag} {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return goName
}

// ValidateStruct runs the validate tags on v and returns a message per
// failing field, keyed by the field's wire name.
func ValidateStruct(v any) map[string]string {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"body": err.Error()}
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = describe(fe)
	}
	return details
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// ValidateImageFile checks an uploaded image's size and extension.
func ValidateImageFile(fileHeader *multipart.FileHeader) map[string]string {
	details := map[string]string{}
	if fileHeader.Size > MaxImageSize {
		details[fileHeader.Filename] = fmt.Sprintf("Image size must be less than %dMB", MaxImageSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	validExt := false
	for _, validExtension := range ValidImageExtensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		details[fileHeader.Filename] = fmt.Sprintf("Invalid image format. Allowed formats: %s", strings.Join(ValidImageExtensions, ", "))
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
