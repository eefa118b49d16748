// interests.go CRUD handlers for personal interests
package main

import "net/http"

type interestInput struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Icon        *string         `json:"icon"`
	Category    *string         `json:"category"`
	Image       *string         `json:"image"`
	Links       *[]ResourceLink `json:"links"`
	Order       *int            `json:"order"`
	IsActive    *bool           `json:"isActive"`
}

func parseInterestInput(r *http.Request) (interestInput, error) {
	var in interestInput
	if !isMultipart(r) {
		return in, decodeJSON(r, &in)
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return in, validationErr("invalid multipart form: %v", err)
	}
	var err error
	in.Title = formStr(r, "title")
	in.Description = formStr(r, "description")
	in.Icon = formStr(r, "icon")
	in.Category = formStr(r, "category")
	if in.Links, err = formLinks(r, "links"); err != nil {
		return in, err
	}
	if in.Order, err = formInt(r, "order"); err != nil {
		return in, err
	}
	if in.IsActive, err = formBool(r, "isActive"); err != nil {
		return in, err
	}
	return in, nil
}

func applyInterestInput(i *Interest, in interestInput) {
	if in.Title != nil {
		i.Title = *in.Title
	}
	if in.Description != nil {
		i.Description = *in.Description
	}
	if in.Icon != nil {
		i.Icon = *in.Icon
	}
	if in.Category != nil {
		i.Category = *in.Category
	}
	if in.Image != nil {
		i.Image = *in.Image
	}
	if in.Links != nil {
		i.Links = *in.Links
	}
	if in.Order != nil {
		i.Order = *in.Order
	}
	if in.IsActive != nil {
		i.IsActive = *in.IsActive
	}
}

func ListInterests(w http.ResponseWriter, r *http.Request) {
	key := listCacheKey("interests", r.URL.RawQuery)
	data, err := getCachedData(key, func() (interface{}, error) {
		q := db.Model(&Interest{}).Order("sort_order asc, title asc")
		if category := r.URL.Query().Get("category"); category != "" {
			q = q.Where("category = ?", category)
		}
		if active := queryBool(r, "active"); active != nil {
			q = q.Where("is_active = ?", *active)
		}
		if search := r.URL.Query().Get("search"); search != "" {
			pattern := searchPattern(search)
			q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
		interests := []Interest{}
		if err := q.Find(&interests).Error; err != nil {
			return nil, err
		}
		return interests, nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func GetInterest(w http.ResponseWriter, r *http.Request) {
	var interest Interest
	if err := db.First(&interest, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interest)
}

func CreateInterest(w http.ResponseWriter, r *http.Request) {
	in, err := parseInterestInput(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if in.Title == nil || *in.Title == "" {
		writeErr(w, validationErr("title is required"))
		return
	}

	interest := Interest{IsActive: true}
	applyInterestInput(&interest, in)

	if image, err := fileUpload(r, "image"); err != nil {
		writeErr(w, err)
		return
	} else if image != "" {
		interest.Image = image
	}

	if err := db.Create(&interest).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("interests")
	writeJSON(w, http.StatusCreated, interest)
}

func UpdateInterest(w http.ResponseWriter, r *http.Request) {
	var interest Interest
	if err := db.First(&interest, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}

	in, err := parseInterestInput(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	applyInterestInput(&interest, in)

	if image, err := fileUpload(r, "image"); err != nil {
		writeErr(w, err)
		return
	} else if image != "" {
		interest.Image = image
	}

	if err := db.Save(&interest).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("interests")
	writeJSON(w, http.StatusOK, interest)
}

func DeleteInterest(w http.ResponseWriter, r *http.Request) {
	result := db.Delete(&Interest{}, "id = ?", r.PathValue("id"))
	if result.Error != nil {
		writeErr(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeErr(w, notFoundErr("interest "+r.PathValue("id")))
		return
	}
	invalidateCache("interests")
	writeJSON(w, http.StatusOK, map[string]string{"message": "interest deleted"})
}

func ToggleInterestActive(w http.ResponseWriter, r *http.Request) {
	value, err := flipFlag(&Interest{}, r.PathValue("id"), "is_active")
	if err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("interests")
	writeJSON(w, http.StatusOK, map[string]bool{"isActive": value})
}
