// achievements.go CRUD handlers for achievements and certifications
package main

import "net/http"

type achievementInput struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Category       *string `json:"category"`
	Date           *string `json:"date"`
	Issuer         *string `json:"issuer"`
	CredentialLink *string `json:"credentialLink"`
	CredentialID   *string `json:"credentialId"`
	Position       *string `json:"position"`
	Image          *string `json:"image"`
	ProfileURL     *string `json:"profileUrl"`
	CertificateURL *string `json:"certificateUrl"`
	Featured       *bool   `json:"featured"`
	Order          *int    `json:"order"`
}

func parseAchievementInput(r *http.Request) (achievementInput, error) {
	var in achievementInput
	if !isMultipart(r) {
		return in, decodeJSON(r, &in)
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return in, validationErr("invalid multipart form: %v", err)
	}
	var err error
	in.Title = formStr(r, "title")
	in.Description = formStr(r, "description")
	in.Category = formStr(r, "category")
	in.Date = formStr(r, "date")
	in.Issuer = formStr(r, "issuer")
	in.CredentialLink = formStr(r, "credentialLink")
	in.CredentialID = formStr(r, "credentialId")
	in.Position = formStr(r, "position")
	in.ProfileURL = formStr(r, "profileUrl")
	in.CertificateURL = formStr(r, "certificateUrl")
	if in.Featured, err = formBool(r, "featured"); err != nil {
		return in, err
	}
	if in.Order, err = formInt(r, "order"); err != nil {
		return in, err
	}
	return in, nil
}

func applyAchievementInput(a *Achievement, in achievementInput) {
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.Date != nil {
		a.Date = *in.Date
	}
	if in.Issuer != nil {
		a.Issuer = *in.Issuer
	}
	if in.CredentialLink != nil {
		a.CredentialLink = *in.CredentialLink
	}
	if in.CredentialID != nil {
		a.CredentialID = *in.CredentialID
	}
	if in.Position != nil {
		a.Position = *in.Position
	}
	if in.Image != nil {
		a.Image = *in.Image
	}
	if in.ProfileURL != nil {
		a.ProfileURL = *in.ProfileURL
	}
	if in.CertificateURL != nil {
		a.CertificateURL = *in.CertificateURL
	}
	if in.Featured != nil {
		a.Featured = *in.Featured
	}
	if in.Order != nil {
		a.Order = *in.Order
	}
}

func ListAchievements(w http.ResponseWriter, r *http.Request) {
	key := listCacheKey("achievements", r.URL.RawQuery)
	data, err := getCachedData(key, func() (interface{}, error) {
		q := db.Model(&Achievement{}).Order("sort_order asc, date desc")
		if category := r.URL.Query().Get("category"); category != "" {
			q = q.Where("category = ?", category)
		}
		if featured := queryBool(r, "featured"); featured != nil {
			q = q.Where("featured = ?", *featured)
		}
		if search := r.URL.Query().Get("search"); search != "" {
			pattern := searchPattern(search)
			q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
		achievements := []Achievement{}
		if err := q.Find(&achievements).Error; err != nil {
			return nil, err
		}
		return achievements, nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func GetAchievement(w http.ResponseWriter, r *http.Request) {
	var achievement Achievement
	if err := db.First(&achievement, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, achievement)
}

func CreateAchievement(w http.ResponseWriter, r *http.Request) {
	in, err := parseAchievementInput(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if in.Title == nil || *in.Title == "" {
		writeErr(w, validationErr("title is required"))
		return
	}

	var achievement Achievement
	applyAchievementInput(&achievement, in)

	if image, err := fileUpload(r, "image"); err != nil {
		writeErr(w, err)
		return
	} else if image != "" {
		achievement.Image = image
	}

	if err := db.Create(&achievement).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("achievements")
	writeJSON(w, http.StatusCreated, achievement)
}

func UpdateAchievement(w http.ResponseWriter, r *http.Request) {
	var achievement Achievement
	if err := db.First(&achievement, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}

	in, err := parseAchievementInput(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	applyAchievementInput(&achievement, in)

	if image, err := fileUpload(r, "image"); err != nil {
		writeErr(w, err)
		return
	} else if image != "" {
		achievement.Image = image
	}

	if err := db.Save(&achievement).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("achievements")
	writeJSON(w, http.StatusOK, achievement)
}

func DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	result := db.Delete(&Achievement{}, "id = ?", r.PathValue("id"))
	if result.Error != nil {
		writeErr(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeErr(w, notFoundErr("achievement "+r.PathValue("id")))
		return
	}
	invalidateCache("achievements")
	writeJSON(w, http.StatusOK, map[string]string{"message": "achievement deleted"})
}

func ToggleAchievementFeatured(w http.ResponseWriter, r *http.Request) {
	value, err := flipFlag(&Achievement{}, r.PathValue("id"), "featured")
	if err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("achievements")
	writeJSON(w, http.StatusOK, map[string]bool{"featured": value})
}
