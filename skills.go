// skills.go CRUD handlers for skills
package main

import "net/http"

func ListSkills(w http.ResponseWriter, r *http.Request) {
	key := listCacheKey("skills", r.URL.RawQuery)
	data, err := getCachedData(key, func() (interface{}, error) {
		q := db.Model(&Skill{}).Order("proficiency desc, name asc")
		if category := r.URL.Query().Get("category"); category != "" {
			q = q.Where("category = ?", category)
		}
		if search := r.URL.Query().Get("search"); search != "" {
			q = q.Where("LOWER(name) LIKE ?", searchPattern(search))
		}
		skills := []Skill{}
		if err := q.Find(&skills).Error; err != nil {
			return nil, err
		}
		return skills, nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func GetSkill(w http.ResponseWriter, r *http.Request) {
	var skill Skill
	if err := db.First(&skill, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func CreateSkill(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Proficiency int    `json:"proficiency"`
		Icon        string `json:"icon"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	if in.Name == "" {
		writeErr(w, validationErr("name is required"))
		return
	}
	if in.Proficiency < 0 || in.Proficiency > 100 {
		writeErr(w, validationErr("proficiency must be between 0 and 100"))
		return
	}
	skill := Skill{
		Name:        in.Name,
		Category:    in.Category,
		Proficiency: in.Proficiency,
		Icon:        in.Icon,
	}
	if err := db.Create(&skill).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("skills")
	writeJSON(w, http.StatusCreated, skill)
}

func UpdateSkill(w http.ResponseWriter, r *http.Request) {
	var skill Skill
	if err := db.First(&skill, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}

	var patch struct {
		Name        *string `json:"name"`
		Category    *string `json:"category"`
		Proficiency *int    `json:"proficiency"`
		Icon        *string `json:"icon"`
	}
	if err := decodeJSON(r, &patch); err != nil {
		writeErr(w, err)
		return
	}
	if patch.Proficiency != nil && (*patch.Proficiency < 0 || *patch.Proficiency > 100) {
		writeErr(w, validationErr("proficiency must be between 0 and 100"))
		return
	}

	if patch.Name != nil {
		skill.Name = *patch.Name
	}
	if patch.Category != nil {
		skill.Category = *patch.Category
	}
	if patch.Proficiency != nil {
		skill.Proficiency = *patch.Proficiency
	}
	if patch.Icon != nil {
		skill.Icon = *patch.Icon
	}

	if err := db.Save(&skill).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("skills")
	writeJSON(w, http.StatusOK, skill)
}

func DeleteSkill(w http.ResponseWriter, r *http.Request) {
	result := db.Delete(&Skill{}, "id = ?", r.PathValue("id"))
	if result.Error != nil {
		writeErr(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeErr(w, notFoundErr("skill "+r.PathValue("id")))
		return
	}
	invalidateCache("skills")
	writeJSON(w, http.StatusOK, map[string]string{"message": "skill deleted"})
}
