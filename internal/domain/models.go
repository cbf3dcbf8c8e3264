package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio entry. Spanish fields are authored; the _en fields are
// machine-translated mirrors.
type Project struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Title         string        `db:"title" json:"title"`
	Description   string        `db:"description" json:"description"`
	Content       string        `db:"content" json:"content"`
	TitleEN       string        `db:"title_en" json:"title_en"`
	DescriptionEN string        `db:"description_en" json:"description_en"`
	ContentEN     string        `db:"content_en" json:"content_en"`
	Slug          string        `db:"slug" json:"slug"`
	Thumbnail     string        `db:"thumbnail" json:"thumbnail"`
	Images        StringList    `db:"images" json:"images"`
	Category      string        `db:"category" json:"category,omitempty"`
	Technologies  StringList    `db:"technologies" json:"technologies"`
	LiveURL       string        `db:"live_url" json:"live_url,omitempty"`
	GithubURL     string        `db:"github_url" json:"github_url,omitempty"`
	MediumURL     string        `db:"medium_url" json:"medium_url,omitempty"`
	Featured      bool          `db:"featured" json:"featured"`
	IsPublished   bool          `db:"is_published" json:"is_published"`
	Status        ProjectStatus `db:"status" json:"status"`
	Order         int           `db:"sort_order" json:"order"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// NeedsTranslation reports whether any English mirror is missing.
func (p *Project) NeedsTranslation() bool {
	return p.TitleEN == "" || p.DescriptionEN == "" || p.ContentEN == ""
}

// LocalizedProject is the public view of a project in one language.
type LocalizedProject struct {
	ID           uuid.UUID     `json:"id"`
	Locale       Locale        `json:"locale"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Content      string        `json:"content"`
	ContentHTML  string        `json:"content_html"`
	Slug         string        `json:"slug"`
	Thumbnail    string        `json:"thumbnail"`
	Images       []string      `json:"images"`
	Category     string        `json:"category,omitempty"`
	Technologies []string      `json:"technologies"`
	LiveURL      string        `json:"live_url,omitempty"`
	GithubURL    string        `json:"github_url,omitempty"`
	MediumURL    string        `json:"medium_url,omitempty"`
	Status       ProjectStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Localize picks the text fields for locale. English falls back to Spanish per field
// when the mirror is empty.
func (p *Project) Localize(locale Locale) *LocalizedProject {
	lp := &LocalizedProject{
		ID:           p.ID,
		Locale:       locale,
		Title:        p.Title,
		Description:  p.Description,
		Content:      p.Content,
		Slug:         p.Slug,
		Thumbnail:    p.Thumbnail,
		Images:       p.Images,
		Category:     p.Category,
		Technologies: p.Technologies,
		LiveURL:      p.LiveURL,
		GithubURL:    p.GithubURL,
		MediumURL:    p.MediumURL,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if locale == LocaleEN {
		lp.Title = pick(p.TitleEN, p.Title)
		lp.Description = pick(p.DescriptionEN, p.Description)
		lp.Content = pick(p.ContentEN, p.Content)
	}
	return lp
}

// Category groups projects on the portfolio page.
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Emoji     string    `db:"emoji" json:"emoji"`
	Color     string    `db:"color" json:"color"`
	Order     int       `db:"sort_order" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Post is a blog entry.
type Post struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Content     string     `db:"content" json:"content"`
	Excerpt     string     `db:"excerpt" json:"excerpt"`
	TitleEN     string     `db:"title_en" json:"title_en"`
	ExcerptEN   string     `db:"excerpt_en" json:"excerpt_en"`
	ContentEN   string     `db:"content_en" json:"content_en"`
	CoverImage  string     `db:"cover_image" json:"cover_image,omitempty"`
	Tags        StringList `db:"tags" json:"tags"`
	IsPublished bool       `db:"is_published" json:"is_published"`
	ReadTime    int        `db:"read_time" json:"read_time"`
	PublishedAt time.Time  `db:"published_at" json:"published_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// NeedsTranslation reports whether any English mirror is missing.
func (p *Post) NeedsTranslation() bool {
	return p.TitleEN == "" || p.ExcerptEN == "" || p.ContentEN == ""
}

// LocalizedPost is the public view of a post in one language.
type LocalizedPost struct {
	ID          uuid.UUID `json:"id"`
	Locale      Locale    `json:"locale"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Tags        []string  `json:"tags"`
	ReadTime    int       `json:"read_time"`
	PublishedAt time.Time `json:"published_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Localize picks the text fields for locale, falling back to Spanish per field.
func (p *Post) Localize(locale Locale) *LocalizedPost {
	lp := &LocalizedPost{
		ID:          p.ID,
		Locale:      locale,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		CoverImage:  p.CoverImage,
		Tags:        p.Tags,
		ReadTime:    p.ReadTime,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if locale == LocaleEN {
		lp.Title = pick(p.TitleEN, p.Title)
		lp.Excerpt = pick(p.ExcerptEN, p.Excerpt)
		lp.Content = pick(p.ContentEN, p.Content)
	}
	return lp
}

// User is an account allowed to sign in to the admin area.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func pick(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
