package forms

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	UsernameMaxLen = 150
	PasswordMinLen = 8

	ErrUsernameInvalid  = "Введите правильное имя пользователя. Оно может содержать только буквы, цифры и знаки @/./+/-/_."
	ErrUsernameTooLong  = "Имя пользователя не может быть длиннее 150 символов."
	ErrUsernameReserved = "Это имя пользователя недоступно."
	ErrUsernameTaken    = "Пользователь с таким именем уже существует."
	ErrPasswordTooShort = "Пароль должен содержать как минимум 8 символов."
	ErrPasswordMismatch = "Введенные пароли не совпадают."
	ErrInvalidLogin     = "Пожалуйста, введите правильные имя пользователя и пароль."
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// reservedUsernames would be shadowed by the site's own top level pages
var reservedUsernames = map[string]bool{
	"new":    true,
	"follow": true,
	"group":  true,
	"about":  true,
	"auth":   true,
	"static": true,
	"media":  true,
	"health": true,
}

// UsernameError returns the validation message for username, "" when it is acceptable
func UsernameError(username string) string {
	switch {
	case username == "":
		return ErrRequired
	case utf8.RuneCountInString(username) > UsernameMaxLen:
		return ErrUsernameTooLong
	case !usernamePattern.MatchString(username):
		return ErrUsernameInvalid
	case reservedUsernames[strings.ToLower(username)]:
		return ErrUsernameReserved
	}
	return ""
}

func usernameField() *Field {
	return &Field{
		Name:     "username",
		Label:    "Имя пользователя",
		HelpText: "Не более 150 символов. Только буквы, цифры и символы @/./+/-/_.",
		Kind:     KindLine,
		Required: true,
	}
}

func passwordField(name, label string) *Field {
	return &Field{
		Name:     name,
		Label:    label,
		Kind:     KindPassword,
		Required: true,
	}
}

type SignupForm struct {
	fieldSet
	Username        *Field
	DisplayName     *Field
	Password        *Field
	PasswordConfirm *Field

	cleaned *SignupData
}

type SignupData struct {
	Username    string
	DisplayName string
	Password    string
}

func NewSignupForm() *SignupForm {
	form := &SignupForm{
		Username: usernameField(),
		DisplayName: &Field{
			Name:  "display_name",
			Label: "Имя",
			Kind:  KindLine,
		},
		Password:        passwordField("password1", "Пароль"),
		PasswordConfirm: passwordField("password2", "Подтверждение пароля"),
	}
	form.fieldSet = fieldSet{form.Username, form.DisplayName, form.Password, form.PasswordConfirm}
	return form
}

func (sf *SignupForm) Bind(values url.Values) bool {
	sf.resetErrors()
	username := strings.TrimSpace(values.Get(sf.Username.Name))
	sf.Username.Value = username
	if msg := UsernameError(username); msg != "" {
		sf.Username.AddError(msg)
	}
	displayName := cleanText(sf.DisplayName, values)

	password := values.Get(sf.Password.Name)
	switch {
	case password == "":
		sf.Password.AddError(ErrRequired)
	case utf8.RuneCountInString(password) < PasswordMinLen:
		sf.Password.AddError(ErrPasswordTooShort)
	case password != values.Get(sf.PasswordConfirm.Name):
		sf.PasswordConfirm.AddError(ErrPasswordMismatch)
	}

	if !sf.Valid() {
		return false
	}
	sf.cleaned = &SignupData{
		Username:    username,
		DisplayName: displayName,
		Password:    password,
	}
	return true
}

func (sf *SignupForm) Cleaned() *SignupData {
	return sf.cleaned
}

type LoginForm struct {
	fieldSet
	Username *Field
	Password *Field
	// Errors are not tied to a single field
	Errors []string
}

func NewLoginForm() *LoginForm {
	form := &LoginForm{
		Username: usernameField(),
		Password: passwordField("password", "Пароль"),
	}
	form.Username.HelpText = ""
	form.fieldSet = fieldSet{form.Username, form.Password}
	return form
}

func (lf *LoginForm) Bind(values url.Values) bool {
	lf.resetErrors()
	lf.Errors = nil
	lf.Username.Value = strings.TrimSpace(values.Get(lf.Username.Name))
	if lf.Username.Value == "" {
		lf.Username.AddError(ErrRequired)
	}
	if values.Get(lf.Password.Name) == "" {
		lf.Password.AddError(ErrRequired)
	}
	return lf.Valid()
}

// Reject marks the submitted credentials as wrong
func (lf *LoginForm) Reject() {
	lf.Errors = append(lf.Errors, ErrInvalidLogin)
}
