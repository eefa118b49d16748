// models.go this is our database models
package main

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model replaces gorm.Model with an opaque string ID so records keep
// server-generated, globally unique identifiers.
type Model struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ResourceLink is a titled URL used by Interest and CurrentWork link lists.
type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Category partitions the filter UI per content section. (section, slug) is
// effectively unique but not enforced; content records store the slug/name
// as a plain string, so deleting a category never cascades.
type Category struct {
	Model
	Name        string `json:"name" gorm:"not null"`
	Section     string `json:"section" gorm:"index;not null"` // project | skill | research | achievement | blog | interest | currentwork
	Slug        string `json:"slug" gorm:"index"`
	Icon        string `json:"icon"`
	Color       string `json:"color"` // gradient token, e.g. "from-blue-500 to-cyan-500"
	Description string `json:"description"`
	Order       int    `json:"order" gorm:"column:sort_order;default:0"`
	IsActive    bool   `json:"isActive"` // default applied in handlers; a gorm default would override explicit false on create
}

type Project struct {
	Model
	Title            string   `json:"title" gorm:"not null"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description" gorm:"type:text;not null"`
	Images           []string `json:"images" gorm:"type:text;serializer:json"`
	Thumbnail        string   `json:"thumbnail"`
	TechStack        []string `json:"techStack" gorm:"type:text;serializer:json"`
	Category         string   `json:"category" gorm:"index"`
	Status           string   `json:"status" gorm:"default:'completed'"` // completed | in-progress | archived
	GithubLink       string   `json:"githubLink"`
	LiveDemoLink     string   `json:"liveDemoLink"`
	YoutubeLink      string   `json:"youtubeLink"`
	Featured         bool     `json:"featured" gorm:"default:false"`
}

type Skill struct {
	Model
	Name        string `json:"name" gorm:"not null"`
	Category    string `json:"category" gorm:"index"`
	Proficiency int    `json:"proficiency" gorm:"default:0"` // 0-100
	Icon        string `json:"icon"`
}

type Research struct {
	Model
	Title           string   `json:"title" gorm:"not null"`
	Abstract        string   `json:"abstract" gorm:"type:text"`
	Authors         []string `json:"authors" gorm:"type:text;serializer:json"`
	JournalName     string   `json:"journalName"`
	ConferenceName  string   `json:"conferenceName"`
	PublicationDate string   `json:"publicationDate"`
	PdfLink         string   `json:"pdfLink"`
	DoiLink         string   `json:"doiLink"`
	Citations       int      `json:"citations" gorm:"default:0"`
	Keywords        []string `json:"keywords" gorm:"type:text;serializer:json"`
	Type            string   `json:"type" gorm:"default:'journal'"` // journal | conference | thesis | preprint | other
	Featured        bool     `json:"featured" gorm:"default:false"`
}

type Achievement struct {
	Model
	Title          string `json:"title" gorm:"not null"`
	Description    string `json:"description" gorm:"type:text"`
	Category       string `json:"category" gorm:"index"`
	Date           string `json:"date"`
	Issuer         string `json:"issuer"`
	CredentialLink string `json:"credentialLink"`
	CredentialID   string `json:"credentialId"`
	Position       string `json:"position"`
	Image          string `json:"image"`
	ProfileURL     string `json:"profileUrl"`
	CertificateURL string `json:"certificateUrl"`
	Featured       bool   `json:"featured" gorm:"default:false"`
	Order          int    `json:"order" gorm:"column:sort_order;default:0"`
}

type Blog struct {
	Model
	Title           string   `json:"title" gorm:"not null"`
	Slug            string   `json:"slug" gorm:"uniqueIndex"`
	Content         string   `json:"content" gorm:"type:text;not null"`
	Excerpt         string   `json:"excerpt"`
	CoverImage      string   `json:"coverImage"`
	Category        string   `json:"category" gorm:"index"`
	Tags            []string `json:"tags" gorm:"type:text;serializer:json"`
	Author          string   `json:"author"`
	Published       bool     `json:"published" gorm:"default:false"`
	Featured        bool     `json:"featured" gorm:"default:false"`
	ReadTime        int      `json:"readTime" gorm:"default:1"` // minutes
	Views           int      `json:"views" gorm:"default:0"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
}

type Interest struct {
	Model
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Icon        string         `json:"icon"`
	Category    string         `json:"category" gorm:"index"`
	Image       string         `json:"image"`
	Links       []ResourceLink `json:"links" gorm:"type:text;serializer:json"`
	Order       int            `json:"order" gorm:"column:sort_order;default:0"`
	IsActive    bool           `json:"isActive"`
}

type CurrentWork struct {
	Model
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description" gorm:"type:text;not null"`
	Type            string         `json:"type" gorm:"default:'project'"` // project | learning | research | other
	Category        string         `json:"category" gorm:"index"`
	Status          string         `json:"status" gorm:"default:'planning'"` // planning | in-progress | testing | nearly-done
	Progress        int            `json:"progress" gorm:"default:0"`        // 0-100
	Technologies    []string       `json:"technologies" gorm:"type:text;serializer:json"`
	StartDate       string         `json:"startDate"`
	ExpectedEndDate string         `json:"expectedEndDate"`
	Image           string         `json:"image"`
	Links           []ResourceLink `json:"links" gorm:"type:text;serializer:json"`
	Order           int            `json:"order" gorm:"column:sort_order;default:0"`
	IsFeatured      bool           `json:"isFeatured" gorm:"default:false"`
}

// Settings is a singleton document; exactly one row is expected.
type Settings struct {
	Model
	Name               string            `json:"name"`
	Title              string            `json:"title"`
	Tagline            string            `json:"tagline"`
	Bio                string            `json:"bio" gorm:"type:text"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	Location           string            `json:"location"`
	ResumeLink         string            `json:"resumeLink"`
	IsAvailableForHire bool              `json:"isAvailableForHire" gorm:"default:false"`
	ProfileImage       string            `json:"profileImage"`
	SocialLinks        map[string]string `json:"socialLinks" gorm:"type:text;serializer:json"` // github, linkedin, twitter, website, leetcode, codeforces, codechef, hackerrank
}

type AdminUser struct {
	Model
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Name         string `json:"name"`
}
