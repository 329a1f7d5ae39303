package ophase

import (
	"context"
	"fmt"
	"strings"

	"ophasebot/entity"
	"ophasebot/lib/validate"
)

// Length bounds of the password field; the validate tag on Submission mirrors them.
const (
	PasswordMinLength = 5
	PasswordMaxLength = 40
)

// PasswordForm describes the modal shown to the member.
type PasswordForm struct {
	Title       string
	Label       string
	Placeholder string
	MinLength   int
	MaxLength   int
}

var DefaultPasswordForm = PasswordForm{
	Title:       "kitmatheinfo.de O-Phase Erstis",
	Label:       "Gruppen-Passwort",
	Placeholder: "Quack...",
	MinLength:   PasswordMinLength,
	MaxLength:   PasswordMaxLength,
}

// Interaction is the conversation with the member who invoked the command.
type Interaction interface {
	// Prompt shows the form and waits for it. A nil submission means the
	// member dismissed the form. Once a form was submitted, Reply answers it.
	Prompt(ctx context.Context, form PasswordForm) (*Submission, error)
	// Reply sends a notice visible only to the member.
	Reply(ctx context.Context, notice entity.Notice) error
}

type Submission struct {
	Password string `json:"password" validate:"required,min=5,max=40"`
}

// PasswordGate asks for the shared group password. It is a usability check,
// not a credential: the comparison ignores case.
type PasswordGate struct {
	form PasswordForm
}

func NewPasswordGate(form PasswordForm) PasswordGate {
	return PasswordGate{form: form}
}

func (g PasswordGate) PromptAndCollect(ctx context.Context, ic Interaction) (*Submission, error) {
	sub, err := ic.Prompt(ctx, g.form)
	if err != nil {
		return nil, platformError("showing password form", err)
	}
	return sub, nil
}

// Check rejects passwords outside the form bounds before comparing them.
func (g PasswordGate) Check(sub Submission, expected string) error {
	if err := validate.Struct(sub); err != nil {
		return fmt.Errorf("%w: %v", ErrWrongPassword, err)
	}
	if !VerifyPassword(sub.Password, expected) {
		return ErrWrongPassword
	}
	return nil
}

func VerifyPassword(submitted, expected string) bool {
	return strings.ToLower(submitted) == strings.ToLower(expected)
}
