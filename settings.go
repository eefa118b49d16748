// settings.go the site-wide profile singleton
package main

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var socialProviders = []string{"github", "linkedin", "twitter", "website", "leetcode", "codeforces", "codechef", "hackerrank"}

// loadSettings returns the singleton row, or a zero-value document when the
// admin has never configured anything. The public site must render either way.
func loadSettings() (Settings, error) {
	var settings Settings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Settings{SocialLinks: map[string]string{}}, nil
	}
	if err != nil {
		return settings, err
	}
	if settings.SocialLinks == nil {
		settings.SocialLinks = map[string]string{}
	}
	return settings, nil
}

func GetSettings(w http.ResponseWriter, r *http.Request) {
	data, err := getCachedData("settings", func() (interface{}, error) {
		return loadSettings()
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// UpdateSettings upserts the singleton: the first write creates the row,
// later writes patch it.
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Name               *string            `json:"name"`
		Title              *string            `json:"title"`
		Tagline            *string            `json:"tagline"`
		Bio                *string            `json:"bio"`
		Email              *string            `json:"email"`
		Phone              *string            `json:"phone"`
		Location           *string            `json:"location"`
		ResumeLink         *string            `json:"resumeLink"`
		IsAvailableForHire *bool              `json:"isAvailableForHire"`
		SocialLinks        *map[string]string `json:"socialLinks"`
	}
	if err := decodeJSON(r, &patch); err != nil {
		writeErr(w, err)
		return
	}
	if patch.SocialLinks != nil {
		for provider := range *patch.SocialLinks {
			if !validEnum(provider, socialProviders...) {
				writeErr(w, validationErr("unrecognized social provider %q; expected one of: %s",
					provider, strings.Join(socialProviders, ", ")))
				return
			}
		}
	}

	settings, err := loadSettings()
	if err != nil {
		writeErr(w, err)
		return
	}

	if patch.Name != nil {
		settings.Name = *patch.Name
	}
	if patch.Title != nil {
		settings.Title = *patch.Title
	}
	if patch.Tagline != nil {
		settings.Tagline = *patch.Tagline
	}
	if patch.Bio != nil {
		settings.Bio = *patch.Bio
	}
	if patch.Email != nil {
		settings.Email = *patch.Email
	}
	if patch.Phone != nil {
		settings.Phone = *patch.Phone
	}
	if patch.Location != nil {
		settings.Location = *patch.Location
	}
	if patch.ResumeLink != nil {
		settings.ResumeLink = *patch.ResumeLink
	}
	if patch.IsAvailableForHire != nil {
		settings.IsAvailableForHire = *patch.IsAvailableForHire
	}
	if patch.SocialLinks != nil {
		settings.SocialLinks = *patch.SocialLinks
	}

	if err := db.Save(&settings).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("settings")
	writeJSON(w, http.StatusOK, settings)
}

func UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeErr(w, validationErr("invalid multipart form: %v", err))
		return
	}
	path, err := fileUpload(r, "profileImage")
	if err != nil {
		writeErr(w, err)
		return
	}
	if path == "" {
		writeErr(w, validationErr("profileImage file is required"))
		return
	}

	settings, err := loadSettings()
	if err != nil {
		writeErr(w, err)
		return
	}
	settings.ProfileImage = path
	if err := db.Save(&settings).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("settings")
	writeJSON(w, http.StatusOK, map[string]string{"profileImage": path})
}
