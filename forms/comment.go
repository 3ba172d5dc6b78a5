package forms

import (
	"net/url"
)

type CommentForm struct {
	fieldSet
	Text *Field

	cleaned string
}

func NewCommentForm() *CommentForm {
	form := &CommentForm{
		Text: &Field{
			Name:     "text",
			Label:    "Текст",
			HelpText: "Текст комментария",
			Kind:     KindText,
			Required: true,
		},
	}
	form.fieldSet = fieldSet{form.Text}
	return form
}

func (cf *CommentForm) Bind(values url.Values) bool {
	cf.resetErrors()
	text := cleanText(cf.Text, values)
	if !cf.Valid() {
		return false
	}
	cf.cleaned = text
	return true
}

// CleanedText is only set after a successful Bind
func (cf *CommentForm) CleanedText() string {
	return cf.cleaned
}
