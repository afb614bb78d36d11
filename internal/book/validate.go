package book

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("isbn", validateISBN)
}

func validateISBN(fl validator.FieldLevel) bool {
	isbn := fl.Field().String()
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")

	if len(isbn) == 10 {
		matched, _ := regexp.MatchString(`^\d{9}[\dX]$`, isbn)
		return matched
	}
	if len(isbn) == 13 {
		matched, _ := regexp.MatchString(`^\d{13}$`, isbn)
		return matched
	}
	return false
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries all invalid fields of a rejected book.
type ValidationError struct {
	Fields []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("invalid book: %s", e.Fields[0].Message)
	}
	return fmt.Sprintf("invalid book: %d invalid fields", len(e.Fields))
}

// bookInput mirrors the client-supplied fields; version, timestamps and audit
// identities are system-owned and never validated against client input.
type bookInput struct {
	ISBN   string  `validate:"required,isbn"`
	Title  string  `validate:"required"`
	Author string  `validate:"required"`
	Price  float64 `validate:"required,gt=0"`
}

// Validate checks the client-supplied fields of a book and returns a
// ValidationError listing every violation. It runs before any store call.
func Validate(b Book) error {
	in := bookInput{
		ISBN:   b.ISBN,
		Title:  b.Title,
		Author: b.Author,
		Price:  b.Price,
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fields []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fe.Field())

		var message string
		switch fe.Tag() {
		case "required":
			if field == "price" {
				message = "price must be greater than zero"
			} else {
				message = fmt.Sprintf("%s is required", field)
			}
		case "isbn":
			message = "isbn must be a valid ISBN (10 or 13 digits)"
		case "gt":
			message = "price must be greater than zero"
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fields = append(fields, FieldError{Field: field, Message: message})
	}

	return ValidationError{Fields: fields}
}
