package validate

import (
	"strings"
	"testing"
)

func TestRegisterForm(t *testing.T) {
	cases := []struct {
		name  string
		form  RegisterForm
		field string // expected failing field, "" means valid
	}{
		{"valid", RegisterForm{"alice", "secret1", "secret1"}, ""},
		{"empty username", RegisterForm{"", "secret1", "secret1"}, "username"},
		{"too short", RegisterForm{"abc", "secret1", "secret1"}, "username"},
		{"too long", RegisterForm{strings.Repeat("a", 31), "secret1", "secret1"}, "username"},
		{"max length ok", RegisterForm{strings.Repeat("a", 30), "secret1", "secret1"}, ""},
		{"min length ok", RegisterForm{"abcd", "secret1", "secret1"}, ""},
		{"empty password", RegisterForm{"alice", "", ""}, "password"},
		{"mismatch", RegisterForm{"alice", "secret1", "secret2"}, "confirm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.form.Validate()
			if tc.field == "" {
				if errs.Any() {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			if _, ok := errs[tc.field]; !ok {
				t.Fatalf("expected error on %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestNewTopicForm(t *testing.T) {
	cases := []struct {
		name  string
		form  NewTopicForm
		field string
	}{
		{"valid", NewTopicForm{"Hello", "World"}, ""},
		{"empty title", NewTopicForm{"", "World"}, "title"},
		{"whitespace title", NewTopicForm{"   ", "World"}, "title"},
		{"title too long", NewTopicForm{strings.Repeat("x", 101), "World"}, "title"},
		{"title max ok", NewTopicForm{strings.Repeat("x", 100), "World"}, ""},
		{"empty content", NewTopicForm{"Hello", ""}, "content"},
		{"whitespace content", NewTopicForm{"Hello", "  \n "}, "content"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.form.Validate()
			if tc.field == "" {
				if errs.Any() {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			if _, ok := errs[tc.field]; !ok {
				t.Fatalf("expected error on %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestReplyForm(t *testing.T) {
	if errs := (ReplyForm{Content: "hi"}).Validate(); errs.Any() {
		t.Errorf("expected valid, got %v", errs)
	}
	if errs := (ReplyForm{Content: " "}).Validate(); !errs.Any() {
		t.Error("expected error on empty content")
	}
}

func TestLoginForm(t *testing.T) {
	if errs := (LoginForm{"alice", "pw"}).Validate(); errs.Any() {
		t.Errorf("expected valid, got %v", errs)
	}
	if errs := (LoginForm{"", "pw"}).Validate(); errs["username"] == "" {
		t.Error("expected username error")
	}
	if errs := (LoginForm{"alice", ""}).Validate(); errs["password"] == "" {
		t.Error("expected password error")
	}
}
