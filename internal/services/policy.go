package services

import (
	"tribune/internal/models"
)

// Authorization policy: stateless predicates over (acting user, resource).
// A nil user means the request is anonymous.

func CanCreateTopic(user *models.User) bool {
	return user != nil
}

func CanPostReply(user *models.User) bool {
	return user != nil
}

// CanDeletePost allows only the post's own author. There is no moderator
// override.
func CanDeletePost(user *models.User, post *models.Post) bool {
	return user != nil && post != nil && user.ID == post.UserID
}
