// projects.go CRUD handlers for portfolio projects
package main

import (
	"net/http"
)

var projectStatuses = []string{"completed", "in-progress", "archived"}

type projectInput struct {
	Title            *string   `json:"title"`
	ShortDescription *string   `json:"shortDescription"`
	Description      *string   `json:"description"`
	Images           *[]string `json:"images"`
	ExistingImages   *[]string `json:"existingImages"`
	Thumbnail        *string   `json:"thumbnail"`
	TechStack        *[]string `json:"techStack"`
	Category         *string   `json:"category"`
	Status           *string   `json:"status"`
	GithubLink       *string   `json:"githubLink"`
	LiveDemoLink     *string   `json:"liveDemoLink"`
	YoutubeLink      *string   `json:"youtubeLink"`
	Featured         *bool     `json:"featured"`
}

// parseProjectInput reads form values only; uploaded files are stored later,
// after validation, so a rejected request never writes blobs.
func parseProjectInput(r *http.Request) (projectInput, error) {
	var in projectInput
	if !isMultipart(r) {
		return in, decodeJSON(r, &in)
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return in, validationErr("invalid multipart form: %v", err)
	}
	var err error
	in.Title = formStr(r, "title")
	in.ShortDescription = formStr(r, "shortDescription")
	in.Description = formStr(r, "description")
	in.Thumbnail = formStr(r, "thumbnail")
	in.Category = formStr(r, "category")
	in.Status = formStr(r, "status")
	in.GithubLink = formStr(r, "githubLink")
	in.LiveDemoLink = formStr(r, "liveDemoLink")
	in.YoutubeLink = formStr(r, "youtubeLink")
	if in.TechStack, err = formList(r, "techStack"); err != nil {
		return in, err
	}
	if in.ExistingImages, err = formList(r, "existingImages"); err != nil {
		return in, err
	}
	if in.Featured, err = formBool(r, "featured"); err != nil {
		return in, err
	}
	return in, nil
}

func ListProjects(w http.ResponseWriter, r *http.Request) {
	key := listCacheKey("projects", r.URL.RawQuery)
	data, err := getCachedData(key, func() (interface{}, error) {
		q := db.Model(&Project{}).Order("created_at desc")
		if category := r.URL.Query().Get("category"); category != "" {
			q = q.Where("category = ?", category)
		}
		if featured := queryBool(r, "featured"); featured != nil {
			q = q.Where("featured = ?", *featured)
		}
		if status := r.URL.Query().Get("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if search := r.URL.Query().Get("search"); search != "" {
			pattern := searchPattern(search)
			q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
		projects := []Project{}
		if err := q.Find(&projects).Error; err != nil {
			return nil, err
		}
		return projects, nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func GetProject(w http.ResponseWriter, r *http.Request) {
	var project Project
	if err := db.First(&project, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func CreateProject(w http.ResponseWriter, r *http.Request) {
	in, err := parseProjectInput(r)
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
	if in.Status != nil && !validEnum(*in.Status, projectStatuses...) {
		writeErr(w, validationErr("status must be one of: completed, in-progress, archived"))
		return
	}

	project := Project{
		Title:       *in.Title,
		Description: *in.Description,
		Status:      "completed",
	}
	if in.ShortDescription != nil {
		project.ShortDescription = *in.ShortDescription
	}
	if in.Category != nil {
		project.Category = *in.Category
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.GithubLink != nil {
		project.GithubLink = *in.GithubLink
	}
	if in.LiveDemoLink != nil {
		project.LiveDemoLink = *in.LiveDemoLink
	}
	if in.YoutubeLink != nil {
		project.YoutubeLink = *in.YoutubeLink
	}
	if in.TechStack != nil {
		project.TechStack = *in.TechStack
	}
	if in.Images != nil {
		project.Images = *in.Images
	}
	if in.Thumbnail != nil {
		project.Thumbnail = *in.Thumbnail
	}
	if in.Featured != nil {
		project.Featured = *in.Featured
	}

	uploaded, err := fileUploads(r, "images")
	if err != nil {
		writeErr(w, err)
		return
	}
	project.Images = append(project.Images, uploaded...)
	if thumb, err := fileUpload(r, "thumbnail"); err != nil {
		writeErr(w, err)
		return
	} else if thumb != "" {
		project.Thumbnail = thumb
	}

	if err := db.Create(&project).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("projects")
	writeJSON(w, http.StatusCreated, project)
}

func UpdateProject(w http.ResponseWriter, r *http.Request) {
	var project Project
	if err := db.First(&project, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}

	in, err := parseProjectInput(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if in.Status != nil && !validEnum(*in.Status, projectStatuses...) {
		writeErr(w, validationErr("status must be one of: completed, in-progress, archived"))
		return
	}

	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.ShortDescription != nil {
		project.ShortDescription = *in.ShortDescription
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Category != nil {
		project.Category = *in.Category
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.GithubLink != nil {
		project.GithubLink = *in.GithubLink
	}
	if in.LiveDemoLink != nil {
		project.LiveDemoLink = *in.LiveDemoLink
	}
	if in.YoutubeLink != nil {
		project.YoutubeLink = *in.YoutubeLink
	}
	if in.TechStack != nil {
		project.TechStack = *in.TechStack
	}
	if in.Featured != nil {
		project.Featured = *in.Featured
	}
	if in.Thumbnail != nil {
		project.Thumbnail = *in.Thumbnail
	}

	// existingImages lists what survives of the previously stored images, so
	// the admin UI can drop some while uploading new ones in the same call.
	switch {
	case in.ExistingImages != nil:
		project.Images = *in.ExistingImages
	case in.Images != nil:
		project.Images = *in.Images
	}

	uploaded, err := fileUploads(r, "images")
	if err != nil {
		writeErr(w, err)
		return
	}
	project.Images = append(project.Images, uploaded...)
	if thumb, err := fileUpload(r, "thumbnail"); err != nil {
		writeErr(w, err)
		return
	} else if thumb != "" {
		project.Thumbnail = thumb
	}

	if err := db.Save(&project).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("projects")
	writeJSON(w, http.StatusOK, project)
}

// DeleteProject removes the record only; uploaded files are left behind.
func DeleteProject(w http.ResponseWriter, r *http.Request) {
	result := db.Delete(&Project{}, "id = ?", r.PathValue("id"))
	if result.Error != nil {
		writeErr(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeErr(w, notFoundErr("project "+r.PathValue("id")))
		return
	}
	invalidateCache("projects")
	writeJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}

func ToggleProjectFeatured(w http.ResponseWriter, r *http.Request) {
	value, err := flipFlag(&Project{}, r.PathValue("id"), "featured")
	if err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("projects")
	writeJSON(w, http.StatusOK, map[string]bool{"featured": value})
}
