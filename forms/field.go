// Package forms binds and validates the post and comment forms
package forms

import (
	"net/url"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindLine     FieldKind = "line"
	KindPassword FieldKind = "password"
	KindChoice   FieldKind = "choice"
	KindFile     FieldKind = "file"
)

const (
	ErrRequired      = "Обязательное поле."
	ErrInvalidChoice = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."
	ErrInvalidImage  = "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."
	ErrImageTooLarge = "Файл слишком большой."
)

type Choice struct {
	Value string
	Label string
}

// Field is what a template needs to draw one input
type Field struct {
	Name     string
	Label    string
	HelpText string
	Kind     FieldKind
	Required bool
	Value    string
	Choices  []Choice
	Errors   []string
	// Current names the file already stored for a file field
	Current string
}

func (f *Field) AddError(msg string) {
	f.Errors = append(f.Errors, msg)
}

func (f *Field) Valid() bool {
	return len(f.Errors) == 0
}

func (f *Field) IsSelected(value string) bool {
	return f.Value == value
}

type fieldSet []*Field

func (fs fieldSet) Field(name string) *Field {
	for _, field := range fs {
		if field.Name == name {
			return field
		}
	}
	return nil
}

func (fs fieldSet) Fields() []*Field {
	return fs
}

func (fs fieldSet) Valid() bool {
	for _, field := range fs {
		if !field.Valid() {
			return false
		}
	}
	return true
}

func (fs fieldSet) resetErrors() {
	for _, field := range fs {
		field.Errors = nil
	}
}

// cleanText binds and validates a required plain text field
func cleanText(field *Field, values url.Values) string {
	field.Value = values.Get(field.Name)
	text := sanitize(field.Value)
	if field.Required && text == "" {
		field.AddError(ErrRequired)
	}
	return text
}
