package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"networking-hub/internal/models"
	"networking-hub/internal/notify"
	"networking-hub/internal/repositories"
)

var allowedPhotoExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileRepository repositories.ProfileRepository
	followRepository  repositories.FollowRepository
	channel           notify.Channel
	uploadDir         string
	logger            *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(
	profileRepo repositories.ProfileRepository,
	followRepo repositories.FollowRepository,
	channel notify.Channel,
	uploadDir string,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profileRepository: profileRepo,
		followRepository:  followRepo,
		channel:           channel,
		uploadDir:         uploadDir,
		logger:            logger,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.SaveProfile)
	g.DELETE("/profile", h.DeleteProfile)
	g.GET("/users", h.GetDirectory)
	g.GET("/users/:id", h.GetUser)
}

// GetProfile returns the caller's own profile with children and follow
// counts. A missing profile is not an error: the app opens with an
// empty form on first use.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	profile, err := h.profileRepository.GetByID(currentUserID)
	if err == gorm.ErrRecordNotFound {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"profile": nil}})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	view, err := h.buildView(profile, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"profile": view}})
}

// GetUser returns another user's profile, with the viewer's follow flag.
func (h *ProfileHandler) GetUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	profile, err := h.profileRepository.GetByID(targetID)
	if err == gorm.ErrRecordNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	view, err := h.buildView(profile, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"profile": view}})
}

func (h *ProfileHandler) buildView(profile *models.Profile, viewerID int64) (*models.ProfileView, error) {
	followers, err := h.followRepository.GetFollowersCount(profile.UserID)
	if err != nil {
		return nil, err
	}
	following, err := h.followRepository.GetFollowingCount(profile.UserID)
	if err != nil {
		return nil, err
	}

	view := &models.ProfileView{
		Profile:        *profile,
		FollowersCount: followers,
		FollowingCount: following,
	}
	if viewerID != 0 && viewerID != profile.UserID {
		followed, err := h.followRepository.IsFollowing(viewerID, profile.UserID)
		if err != nil {
			return nil, err
		}
		view.IsFollowedByViewer = &followed
	}
	return view, nil
}

// SaveProfile upserts the caller's profile from a multipart form:
// scalar fields, JSON-encoded lists and an optional photo upload. The
// profile row and both child lists are replaced in one transaction.
func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	firstName := c.FormValue("first_name")
	if firstName == "" {
		firstName = "Пользователь"
	}
	bio := c.FormValue("bio")
	skillsJSON := c.FormValue("skills")
	if skillsJSON == "" {
		skillsJSON = "[]"
	}
	lang := c.FormValue("lang")
	if lang == "" {
		lang = "ru"
	}
	experienceJSON := c.FormValue("experience")
	if experienceJSON == "" {
		experienceJSON = "[]"
	}
	educationJSON := c.FormValue("education")
	if educationJSON == "" {
		educationJSON = "[]"
	}

	if utf8.RuneCountInString(firstName) > models.MaxNameLen {
		return validationError(c, "error_name_too_long", models.MaxNameLen)
	}
	if utf8.RuneCountInString(bio) > models.MaxBioLen {
		return validationError(c, "error_bio_too_long", models.MaxBioLen)
	}
	if utf8.RuneCountInString(skillsJSON) > models.MaxSkillsJSONLen {
		return validationError(c, "error_skills_too_long", models.MaxSkillsJSONLen)
	}

	var skills []string
	if err := json.Unmarshal([]byte(skillsJSON), &skills); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid skills payload")
	}
	var experience []models.WorkExperience
	if err := json.Unmarshal([]byte(experienceJSON), &experience); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid experience payload")
	}
	var education []models.Education
	if err := json.Unmarshal([]byte(educationJSON), &education); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid education payload")
	}

	if len(experience) > models.MaxExperienceEntries {
		return validationError(c, "error_experience_max_items", models.MaxExperienceEntries)
	}
	if len(education) > models.MaxEducationEntries {
		return validationError(c, "error_education_max_items", models.MaxEducationEntries)
	}

	photoPath, err := h.savePhoto(c, currentUserID)
	switch err {
	case nil:
	case errPhotoTooLarge:
		return validationError(c, "error_photo_too_large", models.MaxPhotoBytes)
	case errPhotoFormat:
		return echo.NewHTTPError(http.StatusBadRequest, "Photo must be an image with a jpg, jpeg, png, gif or webp extension")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile := &models.Profile{
		UserID:       currentUserID,
		FirstName:    firstName,
		Bio:          bio,
		Link1:        c.FormValue("link1"),
		Link2:        c.FormValue("link2"),
		Link3:        c.FormValue("link3"),
		Link4:        c.FormValue("link4"),
		Link5:        c.FormValue("link5"),
		PhotoPath:    photoPath,
		Skills:       skillsJSON,
		LanguageCode: lang,
	}

	if err := h.profileRepository.Save(profile, experience, education); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.sendSaveConfirmation(currentUserID, lang)

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

var (
	errPhotoTooLarge = errors.New("photo exceeds size limit")
	errPhotoFormat   = errors.New("unsupported photo format")
)

// savePhoto stores an uploaded photo as <userID>.<ext> under the upload
// dir and returns its relative path, or "" when no photo was sent.
func (h *ProfileHandler) savePhoto(c echo.Context, userID int64) (string, error) {
	file, err := c.FormFile("photo")
	if err != nil {
		return "", nil // no photo in the form
	}
	if file.Size > models.MaxPhotoBytes {
		return "", errPhotoTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExts[ext] {
		return "", errPhotoFormat
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", errPhotoFormat
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d%s", userID, ext)
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "uploads/" + filename, nil
}

// sendSaveConfirmation pushes a short confirmation into the user's chat.
// Best-effort: a delivery failure never surfaces to the request.
func (h *ProfileHandler) sendSaveConfirmation(userID int64, lang string) {
	if h.channel == nil {
		return
	}
	text := "✅ Твой профиль успешно обновлён!"
	if lang == "en" {
		text = "✅ Your profile has been successfully updated!"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.channel.Send(ctx, userID, text, nil); err != nil {
		h.logger.Warn("failed to send profile confirmation",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// DeleteProfile removes the caller's profile and all dependent rows.
func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	if err := h.profileRepository.Delete(currentUserID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetDirectory lists every filled-in public profile except the caller's.
func (h *ProfileHandler) GetDirectory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	entries, err := h.profileRepository.Directory(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"profiles": entries}})
}
