package services

import (
	"testing"

	"tribune/internal/models"
)

func TestPolicy(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice"}
	bob := &models.User{ID: 2, Username: "bob"}
	alicePost := &models.Post{ID: 10, UserID: alice.ID}

	if CanCreateTopic(nil) {
		t.Error("anonymous must not create topics")
	}
	if !CanCreateTopic(alice) {
		t.Error("authenticated user must be able to create topics")
	}

	if CanPostReply(nil) {
		t.Error("anonymous must not reply")
	}
	if !CanPostReply(bob) {
		t.Error("any authenticated user may reply")
	}

	if !CanDeletePost(alice, alicePost) {
		t.Error("author must be able to delete own post")
	}
	if CanDeletePost(bob, alicePost) {
		t.Error("non-author must not delete the post")
	}
	if CanDeletePost(nil, alicePost) {
		t.Error("anonymous must not delete posts")
	}
	if CanDeletePost(alice, nil) {
		t.Error("nil post is never deletable")
	}
}
