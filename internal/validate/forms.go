// Package validate holds one explicit validation function per input shape.
// Each returns a map of field name to message; an empty map means the input
// is acceptable.
package validate

import (
	"strings"
	"unicode/utf8"
)

type FieldErrors map[string]string

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

const (
	UsernameMinLen = 4
	UsernameMaxLen = 30
	TitleMaxLen    = 100
)

type RegisterForm struct {
	Username string
	Password string
	Confirm  string
}

func (f RegisterForm) Validate() FieldErrors {
	errs := FieldErrors{}
	username := strings.TrimSpace(f.Username)
	switch {
	case username == "":
		errs["username"] = "Username is required."
	case utf8.RuneCountInString(username) < UsernameMinLen || utf8.RuneCountInString(username) > UsernameMaxLen:
		errs["username"] = "Username must be between 4 and 30 characters."
	}
	if f.Password == "" {
		errs["password"] = "Password is required."
	}
	if f.Confirm != f.Password {
		errs["confirm"] = "Passwords do not match."
	}
	return errs
}

type LoginForm struct {
	Username string
	Password string
}

func (f LoginForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = "Username is required."
	}
	if f.Password == "" {
		errs["password"] = "Password is required."
	}
	return errs
}

type NewTopicForm struct {
	Title   string
	Content string
}

func (f NewTopicForm) Validate() FieldErrors {
	errs := FieldErrors{}
	title := strings.TrimSpace(f.Title)
	switch {
	case title == "":
		errs["title"] = "Title is required."
	case utf8.RuneCountInString(title) > TitleMaxLen:
		errs["title"] = "Title must be at most 100 characters."
	}
	if strings.TrimSpace(f.Content) == "" {
		errs["content"] = "The opening message cannot be empty."
	}
	return errs
}

type ReplyForm struct {
	Content string
}

func (f ReplyForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Content) == "" {
		errs["content"] = "The message cannot be empty."
	}
	return errs
}
