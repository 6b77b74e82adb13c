package repositories

import (
	"gorm.io/gorm"

	"networking-hub/internal/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(postID uint) (*models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(postID uint) error
	GetFeed(limit int) ([]models.Post, error)
	GetPostsByUser(userID int64) ([]models.Post, error)
	Count() (int64, error)
}

type postgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

func (r *postgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postgresPostRepository) GetPostByID(postID uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "post_id = ?", postID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Model(&models.Post{}).Where("post_id = ?", post.PostID).Updates(map[string]interface{}{
		"post_type":        post.PostType,
		"content":          post.Content,
		"full_description": post.FullDescription,
		"skill_tags":       post.SkillTags,
		"experience_level": post.ExperienceLevel,
	}).Error
}

func (r *postgresPostRepository) DeletePost(postID uint) error {
	return r.db.Delete(&models.Post{}, "post_id = ?", postID).Error
}

func (r *postgresPostRepository) GetFeed(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *postgresPostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *postgresPostRepository) GetPostsByUser(userID int64) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}
