package bot

import (
	"strings"
	"unicode"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

const (
	maxNameLength  = 64
	maxPlaceLength = 100
)

// validateName validates person name
func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "Имя не может быть пустым"}
	}
	if len([]rune(name)) > maxNameLength {
		return ValidationError{Field: "name", Message: "Имя слишком длинное (максимум 64 символа)"}
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return ValidationError{Field: "name", Message: "Имя содержит недопустимые символы"}
	}
	if strings.ContainsAny(name, "*_`[") {
		return ValidationError{Field: "name", Message: "Имя не должно содержать символы * _ ` ["}
	}
	return nil
}

// validatePlace validates birth place, empty is allowed
func validatePlace(place string) error {
	if len([]rune(place)) > maxPlaceLength {
		return ValidationError{Field: "birth_place", Message: "Место рождения слишком длинное (максимум 100 символов)"}
	}
	if strings.IndexFunc(place, unicode.IsControl) >= 0 {
		return ValidationError{Field: "birth_place", Message: "Место рождения содержит недопустимые символы"}
	}
	return nil
}

// validateAddArgs validates parsed /add arguments
func validateAddArgs(a addArgs) error {
	if err := validateName(a.Name); err != nil {
		return err
	}
	return validatePlace(a.BirthPlace)
}
