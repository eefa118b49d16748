// currentwork.go CRUD handlers for the "what I'm working on now" section
package main

import "net/http"

var (
	currentWorkTypes    = []string{"project", "learning", "research", "other"}
	currentWorkStatuses = []string{"planning", "in-progress", "testing", "nearly-done"}
)

type currentWorkInput struct {
	Title           *string         `json:"title"`
	Description     *string         `json:"description"`
	Type            *string         `json:"type"`
	Category        *string         `json:"category"`
	Status          *string         `json:"status"`
	Progress        *int            `json:"progress"`
	Technologies    *[]string       `json:"technologies"`
	StartDate       *string         `json:"startDate"`
	ExpectedEndDate *string         `json:"expectedEndDate"`
	Image           *string         `json:"image"`
	Links           *[]ResourceLink `json:"links"`
	Order           *int            `json:"order"`
	IsFeatured      *bool           `json:"isFeatured"`
}

func parseCurrentWorkInput(r *http.Request) (currentWorkInput, error) {
	var in currentWorkInput
	if !isMultipart(r) {
		return in, decodeJSON(r, &in)
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return in, validationErr("invalid multipart form: %v", err)
	}
	var err error
	in.Title = formStr(r, "title")
	in.Description = formStr(r, "description")
	in.Type = formStr(r, "type")
	in.Category = formStr(r, "category")
	in.Status = formStr(r, "status")
	in.StartDate = formStr(r, "startDate")
	in.ExpectedEndDate = formStr(r, "expectedEndDate")
	if in.Progress, err = formInt(r, "progress"); err != nil {
		return in, err
	}
	if in.Technologies, err = formList(r, "technologies"); err != nil {
		return in, err
	}
	if in.Links, err = formLinks(r, "links"); err != nil {
		return in, err
	}
	if in.Order, err = formInt(r, "order"); err != nil {
		return in, err
	}
	if in.IsFeatured, err = formBool(r, "isFeatured"); err != nil {
		return in, err
	}
	return in, nil
}

func validateCurrentWorkInput(in currentWorkInput) error {
	if in.Type != nil && !validEnum(*in.Type, currentWorkTypes...) {
		return validationErr("type must be one of: project, learning, research, other")
	}
	if in.Status != nil && !validEnum(*in.Status, currentWorkStatuses...) {
		return validationErr("status must be one of: planning, in-progress, testing, nearly-done")
	}
	if in.Progress != nil && (*in.Progress < 0 || *in.Progress > 100) {
		return validationErr("progress must be between 0 and 100")
	}
	return nil
}

func applyCurrentWorkInput(cw *CurrentWork, in currentWorkInput) {
	if in.Title != nil {
		cw.Title = *in.Title
	}
	if in.Description != nil {
		cw.Description = *in.Description
	}
	if in.Type != nil {
		cw.Type = *in.Type
	}
	if in.Category != nil {
		cw.Category = *in.Category
	}
	if in.Status != nil {
		cw.Status = *in.Status
	}
	if in.Progress != nil {
		cw.Progress = *in.Progress
	}
	if in.Technologies != nil {
		cw.Technologies = *in.Technologies
	}
	if in.StartDate != nil {
		cw.StartDate = *in.StartDate
	}
	if in.ExpectedEndDate != nil {
		cw.ExpectedEndDate = *in.ExpectedEndDate
	}
	if in.Image != nil {
		cw.Image = *in.Image
	}
	if in.Links != nil {
		cw.Links = *in.Links
	}
	if in.Order != nil {
		cw.Order = *in.Order
	}
	if in.IsFeatured != nil {
		cw.IsFeatured = *in.IsFeatured
	}
}

func ListCurrentWork(w http.ResponseWriter, r *http.Request) {
	key := listCacheKey("currentwork", r.URL.RawQuery)
	data, err := getCachedData(key, func() (interface{}, error) {
		q := db.Model(&CurrentWork{}).Order("sort_order asc, created_at desc")
		if typ := r.URL.Query().Get("type"); typ != "" {
			q = q.Where("type = ?", typ)
		}
		if status := r.URL.Query().Get("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if category := r.URL.Query().Get("category"); category != "" {
			q = q.Where("category = ?", category)
		}
		if featured := queryBool(r, "featured"); featured != nil {
			q = q.Where("is_featured = ?", *featured)
		}
		items := []CurrentWork{}
		if err := q.Find(&items).Error; err != nil {
			return nil, err
		}
		return items, nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func GetCurrentWork(w http.ResponseWriter, r *http.Request) {
	var item CurrentWork
	if err := db.First(&item, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func CreateCurrentWork(w http.ResponseWriter, r *http.Request) {
	in, err := parseCurrentWorkInput(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if in.Title == nil || *in.Title == "" {
		writeErr(w, validationErr("title is required"))
		return
	}
	if in.Description == nil || *in.Description == "" {
		writeErr(w, validationErr("description is required"))
		return
	}
	if err := validateCurrentWorkInput(in); err != nil {
		writeErr(w, err)
		return
	}

	item := CurrentWork{Type: "project", Status: "planning"}
	applyCurrentWorkInput(&item, in)

	if image, err := fileUpload(r, "image"); err != nil {
		writeErr(w, err)
		return
	} else if image != "" {
		item.Image = image
	}

	if err := db.Create(&item).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("currentwork")
	writeJSON(w, http.StatusCreated, item)
}

func UpdateCurrentWork(w http.ResponseWriter, r *http.Request) {
	var item CurrentWork
	if err := db.First(&item, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}

	in, err := parseCurrentWorkInput(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := validateCurrentWorkInput(in); err != nil {
		writeErr(w, err)
		return
	}
	applyCurrentWorkInput(&item, in)

	if image, err := fileUpload(r, "image"); err != nil {
		writeErr(w, err)
		return
	} else if image != "" {
		item.Image = image
	}

	if err := db.Save(&item).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("currentwork")
	writeJSON(w, http.StatusOK, item)
}

func DeleteCurrentWork(w http.ResponseWriter, r *http.Request) {
	result := db.Delete(&CurrentWork{}, "id = ?", r.PathValue("id"))
	if result.Error != nil {
		writeErr(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeErr(w, notFoundErr("current work "+r.PathValue("id")))
		return
	}
	invalidateCache("currentwork")
	writeJSON(w, http.StatusOK, map[string]string{"message": "current work deleted"})
}

func ToggleCurrentWorkFeatured(w http.ResponseWriter, r *http.Request) {
	value, err := flipFlag(&CurrentWork{}, r.PathValue("id"), "is_featured")
	if err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("currentwork")
	writeJSON(w, http.StatusOK, map[string]bool{"isFeatured": value})
}
