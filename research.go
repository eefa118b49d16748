// research.go CRUD handlers for research publications
package main

import "net/http"

var researchTypes = []string{"journal", "conference", "thesis", "preprint", "other"}

func ListResearch(w http.ResponseWriter, r *http.Request) {
	key := listCacheKey("research", r.URL.RawQuery)
	data, err := getCachedData(key, func() (interface{}, error) {
		q := db.Model(&Research{}).Order("publication_date desc, created_at desc")
		if typ := r.URL.Query().Get("type"); typ != "" {
			q = q.Where("type = ?", typ)
		}
		if featured := queryBool(r, "featured"); featured != nil {
			q = q.Where("featured = ?", *featured)
		}
		if search := r.URL.Query().Get("search"); search != "" {
			pattern := searchPattern(search)
			q = q.Where("LOWER(title) LIKE ? OR LOWER(abstract) LIKE ?", pattern, pattern)
		}
		papers := []Research{}
		if err := q.Find(&papers).Error; err != nil {
			return nil, err
		}
		return papers, nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func GetResearch(w http.ResponseWriter, r *http.Request) {
	var paper Research
	if err := db.First(&paper, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paper)
}

func CreateResearch(w http.ResponseWriter, r *http.Request) {
	var paper Research
	if err := decodeJSON(r, &paper); err != nil {
		writeErr(w, err)
		return
	}
	if paper.Title == "" {
		writeErr(w, validationErr("title is required"))
		return
	}
	if paper.Type == "" {
		paper.Type = "journal"
	}
	if !validEnum(paper.Type, researchTypes...) {
		writeErr(w, validationErr("type must be one of: journal, conference, thesis, preprint, other"))
		return
	}
	if paper.Citations < 0 {
		writeErr(w, validationErr("citations must be non-negative"))
		return
	}
	paper.Model = Model{}
	if err := db.Create(&paper).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("research")
	writeJSON(w, http.StatusCreated, paper)
}

func UpdateResearch(w http.ResponseWriter, r *http.Request) {
	var paper Research
	if err := db.First(&paper, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}

	var patch struct {
		Title           *string   `json:"title"`
		Abstract        *string   `json:"abstract"`
		Authors         *[]string `json:"authors"`
		JournalName     *string   `json:"journalName"`
		ConferenceName  *string   `json:"conferenceName"`
		PublicationDate *string   `json:"publicationDate"`
		PdfLink         *string   `json:"pdfLink"`
		DoiLink         *string   `json:"doiLink"`
		Citations       *int      `json:"citations"`
		Keywords        *[]string `json:"keywords"`
		Type            *string   `json:"type"`
		Featured        *bool     `json:"featured"`
	}
	if err := decodeJSON(r, &patch); err != nil {
		writeErr(w, err)
		return
	}
	if patch.Type != nil && !validEnum(*patch.Type, researchTypes...) {
		writeErr(w, validationErr("type must be one of: journal, conference, thesis, preprint, other"))
		return
	}
	if patch.Citations != nil && *patch.Citations < 0 {
		writeErr(w, validationErr("citations must be non-negative"))
		return
	}

	if patch.Title != nil {
		paper.Title = *patch.Title
	}
	if patch.Abstract != nil {
		paper.Abstract = *patch.Abstract
	}
	if patch.Authors != nil {
		paper.Authors = *patch.Authors
	}
	if patch.JournalName != nil {
		paper.JournalName = *patch.JournalName
	}
	if patch.ConferenceName != nil {
		paper.ConferenceName = *patch.ConferenceName
	}
	if patch.PublicationDate != nil {
		paper.PublicationDate = *patch.PublicationDate
	}
	if patch.PdfLink != nil {
		paper.PdfLink = *patch.PdfLink
	}
	if patch.DoiLink != nil {
		paper.DoiLink = *patch.DoiLink
	}
	if patch.Citations != nil {
		paper.Citations = *patch.Citations
	}
	if patch.Keywords != nil {
		paper.Keywords = *patch.Keywords
	}
	if patch.Type != nil {
		paper.Type = *patch.Type
	}
	if patch.Featured != nil {
		paper.Featured = *patch.Featured
	}

	if err := db.Save(&paper).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("research")
	writeJSON(w, http.StatusOK, paper)
}

func DeleteResearch(w http.ResponseWriter, r *http.Request) {
	result := db.Delete(&Research{}, "id = ?", r.PathValue("id"))
	if result.Error != nil {
		writeErr(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeErr(w, notFoundErr("research "+r.PathValue("id")))
		return
	}
	invalidateCache("research")
	writeJSON(w, http.StatusOK, map[string]string{"message": "research deleted"})
}

func ToggleResearchFeatured(w http.ResponseWriter, r *http.Request) {
	value, err := flipFlag(&Research{}, r.PathValue("id"), "featured")
	if err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("research")
	writeJSON(w, http.StatusOK, map[string]bool{"featured": value})
}
