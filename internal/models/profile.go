package models

import "time"

// Profile validation limits. Text limits count runes, not bytes.
const (
	MaxNameLen            = 100
	MaxBioLen             = 1000
	MaxSkillsJSONLen      = 5000
	MaxLinks              = 5
	MaxExperienceEntries  = 10
	MaxEducationEntries   = 5
	MaxExperienceLabelLen = 50
	MaxPhotoBytes         = 5 << 20
)

// Profile is the per-user profile row. The primary key is the Telegram
// user ID, so a user has at most one profile and no separate account
// table exists.
type Profile struct {
	UserID       int64      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	FirstName    string     `json:"first_name" gorm:"size:100"`
	Bio          string     `json:"bio"`
	Link1        string     `json:"link1"`
	Link2        string     `json:"link2"`
	Link3        string     `json:"link3"`
	Link4        string     `json:"link4"`
	Link5        string     `json:"link5"`
	PhotoPath    string     `json:"photo_path"`
	Skills       string     `json:"skills" gorm:"type:text;default:'[]'"` // JSON array of strings
	LanguageCode string     `json:"language_code" gorm:"size:5;default:ru"`
	Theme        string     `json:"theme" gorm:"size:20;default:auto"`
	CustomTheme  string     `json:"custom_theme"`
	GlassEnabled bool       `json:"is_glass_enabled" gorm:"default:false"`
	Status       string     `json:"status" gorm:"size:30;default:networking"`
	IsPublic     bool       `json:"is_public" gorm:"default:true"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Experience []WorkExperience `json:"experience" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
	Education  []Education      `json:"education" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

// WorkExperience is one job entry in a profile's work history
type WorkExperience struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      int64  `json:"user_id" gorm:"index"`
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	IsCurrent   bool   `json:"is_current" gorm:"default:false"`
}

// Education is one study entry in a profile
type Education struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	UserID       int64  `json:"user_id" gorm:"index"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
}

// ProfileView is a profile enriched with follow counts for API
// responses. IsFollowedByViewer is nil when the viewer looks at their
// own profile.
type ProfileView struct {
	Profile
	FollowersCount     int64 `json:"followers_count"`
	FollowingCount     int64 `json:"following_count"`
	IsFollowedByViewer *bool `json:"is_followed_by_viewer,omitempty"`
}

// DirectoryEntry is one row of the user directory: profile basics plus
// the most recent job.
type DirectoryEntry struct {
	UserID       int64      `json:"user_id"`
	FirstName    string     `json:"first_name"`
	Bio          string     `json:"bio"`
	PhotoPath    string     `json:"photo_path"`
	Skills       string     `json:"skills"`
	LanguageCode string     `json:"language_code"`
	Status       string     `json:"status"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
	JobTitle     string     `json:"job_title"`
	Company      string     `json:"company"`
}

// UpdateLanguageRequest defines the request body for the language setting
type UpdateLanguageRequest struct {
	Lang string `json:"lang" validate:"required,oneof=ru en"`
}

// UpdateThemeRequest defines the request body for the theme setting
type UpdateThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=auto light dark custom"`
}

// UpdateCustomThemeRequest carries a custom color map. Saving it also
// switches the active theme to "custom".
type UpdateCustomThemeRequest struct {
	Colors map[string]string `json:"colors" validate:"required,min=1"`
}

// UpdateGlassRequest defines the request body for the glass-effect flag
type UpdateGlassRequest struct {
	IsEnabled *bool `json:"is_enabled" validate:"required"`
}

// UpdateStatusRequest defines the request body for the networking status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=networking open_to_work hiring open_to_gigs busy"`
}
