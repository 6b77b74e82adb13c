package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"networking-hub/internal/models"
	"networking-hub/internal/notify"
	"networking-hub/internal/repositories"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postRepository    repositories.PostRepository
	profileRepository repositories.ProfileRepository
	dispatcher        *notify.Dispatcher
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, profileRepo repositories.ProfileRepository, dispatcher *notify.Dispatcher) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		profileRepository: profileRepo,
		dispatcher:        dispatcher,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/feed", h.GetFeed)
	g.GET("/posts/mine", h.GetMyPosts)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/respond", h.RespondToPost)
}

func (h *PostHandler) validatePostFields(c echo.Context, content, fullDescription, skillTagsJSON, experienceLevel string) error {
	if utf8.RuneCountInString(content) > models.MaxPostContentLen {
		return validationError(c, "error_post_content_too_long", models.MaxPostContentLen)
	}
	if utf8.RuneCountInString(fullDescription) > models.MaxPostDescLen {
		return validationError(c, "error_post_full_description_too_long", models.MaxPostDescLen)
	}
	if utf8.RuneCountInString(skillTagsJSON) > models.MaxPostSkillsJSONLen {
		return validationError(c, "error_post_skills_too_long", models.MaxPostSkillsJSONLen)
	}
	if utf8.RuneCountInString(experienceLevel) > models.MaxExperienceLabelLen {
		return validationError(c, "error_experience_level_too_long", models.MaxExperienceLabelLen)
	}
	return nil
}

// CreatePost publishes a post and triggers the follower and skill-match
// fan-out. The request returns as soon as the write commits; delivery
// is best-effort and may still be in flight.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	skillTagsJSON, err := json.Marshal(req.SkillTags)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid skill tags")
	}
	if err := h.validatePostFields(c, req.Content, req.FullDescription, string(skillTagsJSON), req.ExperienceLevel); err != nil || c.Response().Committed {
		return err
	}

	post := &models.Post{
		UserID:          currentUserID,
		PostType:        req.PostType,
		Content:         req.Content,
		FullDescription: req.FullDescription,
		SkillTags:       string(skillTagsJSON),
		ExperienceLevel: req.ExperienceLevel,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.dispatcher != nil {
		authorName := "Пользователь"
		if author, err := h.profileRepository.GetByID(currentUserID); err == nil && author.FirstName != "" {
			authorName = author.FirstName
		}
		h.dispatcher.Dispatch(notify.PostCreatedEvent{
			AuthorID:   currentUserID,
			AuthorName: authorName,
			PostID:     post.PostID,
			Content:    post.Content,
			SkillTags:  req.SkillTags,
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": toFeedPost(post, nil)})
}

// GetFeed returns the latest posts with their authors.
func (h *PostHandler) GetFeed(c echo.Context) error {
	posts, err := h.postRepository.GetFeed(50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": h.enrichPosts(posts)}})
}

// GetMyPosts returns the caller's own posts.
func (h *PostHandler) GetMyPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	posts, err := h.postRepository.GetPostsByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": h.enrichPosts(posts)}})
}

func (h *PostHandler) enrichPosts(posts []models.Post) []models.FeedPost {
	enriched := make([]models.FeedPost, len(posts))
	authorCache := make(map[int64]models.PostAuthor)

	for i, p := range posts {
		author, ok := authorCache[p.UserID]
		if !ok {
			author = models.PostAuthor{UserID: p.UserID}
			if profile, err := h.profileRepository.GetByID(p.UserID); err == nil {
				author.FirstName = profile.FirstName
				author.PhotoPath = profile.PhotoPath
			}
			authorCache[p.UserID] = author
		}
		post := p
		enriched[i] = *toFeedPost(&post, &author)
	}
	return enriched
}

func toFeedPost(post *models.Post, author *models.PostAuthor) *models.FeedPost {
	var tags []string
	if err := json.Unmarshal([]byte(post.SkillTags), &tags); err != nil || tags == nil {
		tags = []string{}
	}
	fp := &models.FeedPost{Post: *post, SkillTags: tags}
	if author != nil {
		fp.Author = *author
	} else {
		fp.Author = models.PostAuthor{UserID: post.UserID}
	}
	return fp
}

// loadOwnedPost fetches a post and enforces ownership: 404 when absent,
// 403 when the caller is not the owner.
func (h *PostHandler) loadOwnedPost(c echo.Context, currentUserID int64) (*models.Post, error) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err == gorm.ErrRecordNotFound {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.UserID != currentUserID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Not authorized")
	}
	return post, nil
}

// UpdatePost replaces a post's mutable fields; owner-only.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	post, err := h.loadOwnedPost(c, currentUserID)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	skillTagsJSON, err := json.Marshal(req.SkillTags)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid skill tags")
	}
	if err := h.validatePostFields(c, req.Content, req.FullDescription, string(skillTagsJSON), req.ExperienceLevel); err != nil || c.Response().Committed {
		return err
	}

	post.PostType = req.PostType
	post.Content = req.Content
	post.FullDescription = req.FullDescription
	post.SkillTags = string(skillTagsJSON)
	post.ExperienceLevel = req.ExperienceLevel

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeletePost removes a post; owner-only.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	post, err := h.loadOwnedPost(c, currentUserID)
	if err != nil {
		return err
	}

	if err := h.postRepository.DeletePost(post.PostID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// RespondToPost notifies a post's owner that the caller responded.
func (h *PostHandler) RespondToPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err == gorm.ErrRecordNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.UserID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot respond to your own post")
	}

	if h.dispatcher != nil {
		responderName := "Пользователь"
		if responder, err := h.profileRepository.GetByID(currentUserID); err == nil && responder.FirstName != "" {
			responderName = responder.FirstName
		}
		h.dispatcher.Dispatch(notify.ResponseEvent{
			ResponderID:   currentUserID,
			ResponderName: responderName,
			PostID:        post.PostID,
			PostOwnerID:   post.UserID,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
