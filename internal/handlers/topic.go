package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tribune/internal/models"
	"tribune/internal/monitoring"
	"tribune/internal/services"
	"tribune/internal/utils"
	"tribune/internal/validate"
)

const (
	indexCacheKey = "topics:index"
	indexCacheTTL = 1 * time.Minute
)

type TopicHandler struct {
	topics *services.TopicService
	cache  *utils.PageCache
}

func NewTopicHandler(topics *services.TopicService, cache *utils.PageCache) *TopicHandler {
	return &TopicHandler{topics: topics, cache: cache}
}

// postView decorates a post for the detail template.
type postView struct {
	models.Post
	ContentHTML template.HTML
	Floor       int
	CanDelete   bool
}

func (h *TopicHandler) List(c *gin.Context) {
	var topics []models.Topic
	if cached, ok := h.cache.Get(indexCacheKey).([]models.Topic); ok {
		topics = cached
	} else {
		loaded, err := h.topics.ListTopics()
		if err != nil {
			logrus.WithError(err).Error("list topics")
			RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
			return
		}
		h.cache.Set(indexCacheKey, loaded, indexCacheTTL)
		topics = loaded
	}

	Render(c, http.StatusOK, "topic/list.html", gin.H{
		"Title":  "Topics",
		"Topics": topics,
	})
}

func (h *TopicHandler) Detail(c *gin.Context) {
	topic, ok := h.loadTopic(c)
	if !ok {
		return
	}
	h.showTopic(c, http.StatusOK, topic, nil)
}

// showTopic renders the detail page; Reply reuses it to re-render the form
// with validation messages.
func (h *TopicHandler) showTopic(c *gin.Context, code int, topic *models.Topic, extra gin.H) {
	posts, err := h.topics.ListPosts(topic.ID)
	if err != nil {
		logrus.WithError(err).Error("list posts")
		RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}

	user := currentUser(c)
	views := make([]postView, len(posts))
	for i, p := range posts {
		views[i] = postView{
			Post:        p,
			ContentHTML: utils.RenderMarkdown(p.Content),
			Floor:       i + 1,
			CanDelete:   services.CanDeletePost(user, &posts[i]),
		}
	}

	obj := gin.H{
		"Title":        topic.Title,
		"Topic":        topic,
		"Posts":        views,
		"ReplyAllowed": services.CanPostReply(user),
		"ReplyContent": "",
	}
	for k, v := range extra {
		obj[k] = v
	}
	Render(c, code, "topic/detail.html", obj)
}

func (h *TopicHandler) Reply(c *gin.Context) {
	user := currentUser(c)
	if !services.CanPostReply(user) {
		RenderError(c, http.StatusForbidden, "You must be logged in to reply.")
		return
	}
	topic, ok := h.loadTopic(c)
	if !ok {
		return
	}

	form := validate.ReplyForm{Content: c.PostForm("content")}
	if errs := form.Validate(); errs.Any() {
		h.showTopic(c, http.StatusBadRequest, topic, gin.H{
			"Errors":       errs,
			"ReplyContent": form.Content,
		})
		return
	}

	if _, err := h.topics.CreatePost(topic.ID, form.Content, user.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "That topic no longer exists.")
			return
		}
		logrus.WithError(err).Error("create post")
		RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}

	monitoring.PostsCreated.Inc()
	h.cache.Delete(indexCacheKey)
	setFlash(c, "success", "Reply posted!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/topic/%d", topic.ID))
}

func (h *TopicHandler) ShowCreate(c *gin.Context) {
	if !services.CanCreateTopic(currentUser(c)) {
		RenderError(c, http.StatusForbidden, "You must be logged in to create a topic.")
		return
	}
	Render(c, http.StatusOK, "topic/create.html", gin.H{"Title": "New topic", "TopicTitle": "", "TopicContent": ""})
}

func (h *TopicHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if !services.CanCreateTopic(user) {
		RenderError(c, http.StatusForbidden, "You must be logged in to create a topic.")
		return
	}

	form := validate.NewTopicForm{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}
	if errs := form.Validate(); errs.Any() {
		Render(c, http.StatusBadRequest, "topic/create.html", gin.H{
			"Title":        "New topic",
			"Errors":       errs,
			"TopicTitle":   form.Title,
			"TopicContent": form.Content,
		})
		return
	}

	topicID, err := h.topics.CreateTopicWithOpeningPost(strings.TrimSpace(form.Title), form.Content, user.ID)
	if err != nil {
		logrus.WithError(err).Error("create topic")
		RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}

	monitoring.PostsCreated.Inc()
	h.cache.Delete(indexCacheKey)
	setFlash(c, "success", "Topic created!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/topic/%d", topicID))
}

func (h *TopicHandler) DeletePost(c *gin.Context) {
	user := currentUser(c)
	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		RenderError(c, http.StatusNotFound, "That post does not exist.")
		return
	}

	outcome, err := h.topics.DeletePost(postID, user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			RenderError(c, http.StatusNotFound, "That post does not exist.")
		case errors.Is(err, services.ErrForbidden):
			RenderError(c, http.StatusForbidden, "You can only delete your own posts.")
		default:
			logrus.WithError(err).Error("delete post")
			RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
		}
		return
	}

	monitoring.PostsDeleted.Inc()
	h.cache.Delete(indexCacheKey)

	if outcome.Result == services.TopicAndPostDeleted {
		monitoring.TopicsCascaded.Inc()
		setFlash(c, "warning", "Topic deleted (it had no posts left).")
		c.Redirect(http.StatusFound, "/")
		return
	}
	setFlash(c, "success", "Post deleted.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/topic/%d", outcome.TopicID))
}

// loadTopic parses the :id param and loads the topic, rendering the 404 page
// itself when it cannot.
func (h *TopicHandler) loadTopic(c *gin.Context) (*models.Topic, bool) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		RenderError(c, http.StatusNotFound, "That topic does not exist.")
		return nil, false
	}
	topic, err := h.topics.GetTopic(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "That topic does not exist.")
			return nil, false
		}
		logrus.WithError(err).Error("load topic")
		RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
		return nil, false
	}
	return topic, true
}
