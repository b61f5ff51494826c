package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tribune/internal/models"
)

// DeleteResult tells the caller what DeletePost removed, so the handler can
// redirect back to the topic or to the index when the topic is gone too.
type DeleteResult int

const (
	PostDeleted DeleteResult = iota
	TopicAndPostDeleted
)

// DeleteOutcome carries the result plus the affected topic id, which the
// handler needs for its redirect when the topic survived.
type DeleteOutcome struct {
	Result  DeleteResult
	TopicID uint
}

// TopicService is the repository for topics and posts. All multi-step
// mutations run inside a single transaction.
type TopicService struct {
	db *gorm.DB
}

func NewTopicService(db *gorm.DB) *TopicService {
	return &TopicService{db: db}
}

// ListTopics returns all topics, newest first, with post counts filled.
func (s *TopicService) ListTopics() ([]models.Topic, error) {
	var topics []models.Topic
	err := s.db.Preload("User").
		Order("created_at DESC, id DESC").
		Find(&topics).Error
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	if err := s.fillPostCounts(topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// fillPostCounts batch-fills Topic.PostCount with one grouped query.
func (s *TopicService) fillPostCounts(topics []models.Topic) error {
	if len(topics) == 0 {
		return nil
	}

	topicIDs := make([]uint, len(topics))
	for i, t := range topics {
		topicIDs[i] = t.ID
	}

	type countResult struct {
		TopicID uint
		Count   int
	}
	var results []countResult
	err := s.db.Model(&models.Post{}).
		Select("topic_id, COUNT(*) as count").
		Where("topic_id IN ?", topicIDs).
		Group("topic_id").
		Scan(&results).Error
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.TopicID] = r.Count
	}
	for i := range topics {
		topics[i].PostCount = countMap[topics[i].ID]
	}
	return nil
}

func (s *TopicService) GetTopic(id uint) (*models.Topic, error) {
	var topic models.Topic
	if err := s.db.Preload("User").First(&topic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load topic: %w", err)
	}
	return &topic, nil
}

// ListPosts returns a topic's posts oldest first; the first one is the
// opening post.
func (s *TopicService) ListPosts(topicID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("User").
		Where("topic_id = ?", topicID).
		Order("created_at ASC, id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// CreateTopicWithOpeningPost creates the topic and its first post in one
// transaction. A topic without posts must never be observable.
func (s *TopicService) CreateTopicWithOpeningPost(title, content string, authorID uint) (uint, error) {
	topic := models.Topic{
		Title:  title,
		UserID: &authorID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&topic).Error; err != nil {
			return err
		}
		post := models.Post{
			TopicID: topic.ID,
			UserID:  authorID,
			Content: content,
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		return 0, fmt.Errorf("create topic: %w", err)
	}
	return topic.ID, nil
}

// CreatePost appends a reply to an existing topic.
func (s *TopicService) CreatePost(topicID uint, content string, authorID uint) (*models.Post, error) {
	post := models.Post{
		TopicID: topicID,
		UserID:  authorID,
		Content: content,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Topic{}).Where("id = ?", topicID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

// DeletePost removes a post after an author check, and removes the topic as
// well when that was its last post. The whole sequence is one transaction;
// a serialization conflict is retried once before being surfaced.
func (s *TopicService) DeletePost(postID uint, actor *models.User) (DeleteOutcome, error) {
	outcome, err := s.deletePostTx(postID, actor)
	if err != nil && isSerializationFailure(err) {
		outcome, err = s.deletePostTx(postID, actor)
	}
	return outcome, err
}

func (s *TopicService) deletePostTx(postID uint, actor *models.User) (DeleteOutcome, error) {
	outcome := DeleteOutcome{Result: PostDeleted}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !CanDeletePost(actor, &post) {
			return ErrForbidden
		}

		// Lock the topic row so concurrent deletes of the last two posts in
		// a topic serialize instead of both skipping the cascade. sqlite's
		// single-writer transactions give the same guarantee without the
		// clause, which it does not parse.
		topicTx := tx
		if tx.Dialector.Name() == "postgres" {
			topicTx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var topic models.Topic
		if err := topicTx.First(&topic, post.TopicID).Error; err != nil {
			return err
		}
		outcome.TopicID = topic.ID

		if err := tx.Delete(&models.Post{}, post.ID).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.Post{}).Where("topic_id = ?", topic.ID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Delete(&models.Topic{}, topic.ID).Error; err != nil {
				return err
			}
			outcome.Result = TopicAndPostDeleted
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
			return outcome, err
		}
		if isSerializationFailure(err) {
			return outcome, err
		}
		return outcome, fmt.Errorf("delete post: %w", err)
	}
	return outcome, nil
}
