// categories.go the category registry shared by all content sections
package main

import (
	"net/http"
	"strings"
)

var validSections = []string{"project", "skill", "research", "achievement", "blog", "interest", "currentwork"}

// defaultCategories is the baked-in seed set. seedSectionDefaults only
// inserts a section's defaults while that section has zero categories.
var defaultCategories = map[string][]Category{
	"project": {
		{Name: "Web Apps", Icon: "🌐", Color: "from-blue-500 to-cyan-500", Order: 1},
		{Name: "Mobile Apps", Icon: "📱", Color: "from-purple-500 to-pink-500", Order: 2},
		{Name: "Machine Learning", Icon: "🤖", Color: "from-green-500 to-emerald-500", Order: 3},
		{Name: "Open Source", Icon: "🔓", Color: "from-orange-500 to-amber-500", Order: 4},
	},
	"skill": {
		{Name: "Languages", Icon: "💬", Color: "from-blue-500 to-indigo-500", Order: 1},
		{Name: "Frameworks", Icon: "🧩", Color: "from-pink-500 to-rose-500", Order: 2},
		{Name: "Databases", Icon: "🗄️", Color: "from-teal-500 to-cyan-500", Order: 3},
		{Name: "Tools", Icon: "🛠️", Color: "from-slate-500 to-gray-500", Order: 4},
	},
	"research": {
		{Name: "Journal Papers", Icon: "📄", Color: "from-indigo-500 to-blue-500", Order: 1},
		{Name: "Conference Papers", Icon: "🎤", Color: "from-violet-500 to-purple-500", Order: 2},
	},
	"achievement": {
		{Name: "Awards", Icon: "🏆", Color: "from-yellow-500 to-amber-500", Order: 1},
		{Name: "Certifications", Icon: "📜", Color: "from-emerald-500 to-green-500", Order: 2},
		{Name: "Competitions", Icon: "⚔️", Color: "from-red-500 to-orange-500", Order: 3},
	},
	"blog": {
		{Name: "Tutorials", Icon: "📘", Color: "from-sky-500 to-blue-500", Order: 1},
		{Name: "Deep Dives", Icon: "🔍", Color: "from-fuchsia-500 to-pink-500", Order: 2},
		{Name: "Career", Icon: "🧭", Color: "from-lime-500 to-green-500", Order: 3},
	},
	"interest": {
		{Name: "Hobbies", Icon: "🎨", Color: "from-rose-500 to-red-500", Order: 1},
		{Name: "Reading", Icon: "📚", Color: "from-amber-500 to-yellow-500", Order: 2},
	},
	"currentwork": {
		{Name: "Building", Icon: "🏗️", Color: "from-cyan-500 to-teal-500", Order: 1},
		{Name: "Learning", Icon: "🎓", Color: "from-purple-500 to-indigo-500", Order: 2},
	},
}

// resolveCategory matches a stored content label to a Category record.
// Content stores a denormalized string, not a foreign key, so resolution is
// best-effort: exact slug, then case-insensitive name, then slugified name.
// No match is not an error; the label renders as a freeform category.
func resolveCategory(section, label string) (*Category, bool) {
	if label == "" {
		return nil, false
	}

	var cat Category
	if err := db.First(&cat, "section = ? AND slug = ?", section, label).Error; err == nil {
		return &cat, true
	}
	if err := db.First(&cat, "section = ? AND LOWER(name) = ?", section, strings.ToLower(label)).Error; err == nil {
		return &cat, true
	}

	// Third tier compares slugified names, not the stored slug: an
	// admin-set slug may diverge from the name (name "Machine Learning",
	// slug "ml") and the label must still resolve.
	want := slugify(label)
	var cats []Category
	if err := db.Find(&cats, "section = ?", section).Error; err == nil {
		for i := range cats {
			if slugify(cats[i].Name) == want {
				return &cats[i], true
			}
		}
	}
	return nil, false
}

func ListCategories(w http.ResponseWriter, r *http.Request) {
	key := listCacheKey("categories", r.URL.RawQuery)
	data, err := getCachedData(key, func() (interface{}, error) {
		q := db.Model(&Category{}).Order("sort_order asc, name asc")
		if section := r.URL.Query().Get("section"); section != "" {
			q = q.Where("section = ?", section)
		}
		if active := queryBool(r, "active"); active != nil {
			q = q.Where("is_active = ?", *active)
		}
		categories := []Category{}
		if err := q.Find(&categories).Error; err != nil {
			return nil, err
		}
		return categories, nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func ResolveCategory(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	label := r.URL.Query().Get("label")
	if section == "" || label == "" {
		writeErr(w, validationErr("section and label query parameters are required"))
		return
	}
	cat, ok := resolveCategory(section, label)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"label":    label,
		"resolved": ok,
		"category": cat,
	})
}

func CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Category
		IsActive *bool `json:"isActive"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	category := in.Category
	if category.Name == "" {
		writeErr(w, validationErr("name is required"))
		return
	}
	if !validEnum(category.Section, validSections...) {
		writeErr(w, validationErr("section must be one of: %s", strings.Join(validSections, ", ")))
		return
	}
	if category.Slug == "" {
		category.Slug = slugify(category.Name)
	}
	category.Model = Model{}
	category.IsActive = true
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if err := db.Create(&category).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("categories")
	writeJSON(w, http.StatusCreated, category)
}

func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var category Category
	if err := db.First(&category, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}

	var patch struct {
		Name        *string `json:"name"`
		Section     *string `json:"section"`
		Slug        *string `json:"slug"`
		Icon        *string `json:"icon"`
		Color       *string `json:"color"`
		Description *string `json:"description"`
		Order       *int    `json:"order"`
		IsActive    *bool   `json:"isActive"`
	}
	if err := decodeJSON(r, &patch); err != nil {
		writeErr(w, err)
		return
	}
	if patch.Section != nil && !validEnum(*patch.Section, validSections...) {
		writeErr(w, validationErr("section must be one of: %s", strings.Join(validSections, ", ")))
		return
	}

	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Section != nil {
		category.Section = *patch.Section
	}
	if patch.Slug != nil {
		category.Slug = *patch.Slug
	}
	if patch.Icon != nil {
		category.Icon = *patch.Icon
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if patch.Order != nil {
		category.Order = *patch.Order
	}
	if patch.IsActive != nil {
		category.IsActive = *patch.IsActive
	}

	if err := db.Save(&category).Error; err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("categories")
	writeJSON(w, http.StatusOK, category)
}

func ToggleCategory(w http.ResponseWriter, r *http.Request) {
	value, err := flipFlag(&Category{}, r.PathValue("id"), "is_active")
	if err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("categories")
	writeJSON(w, http.StatusOK, map[string]bool{"isActive": value})
}

// DeleteCategory removes the registry entry only. Content referencing the
// category by name/slug keeps its label; dangling references are tolerated.
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	result := db.Delete(&Category{}, "id = ?", r.PathValue("id"))
	if result.Error != nil {
		writeErr(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeErr(w, notFoundErr("category "+r.PathValue("id")))
		return
	}
	invalidateCache("categories")
	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

// SeedCategories inserts the default set for each section that currently
// has no categories. Idempotent: repeated calls never duplicate.
func SeedCategories(w http.ResponseWriter, r *http.Request) {
	seeded := map[string]int{}
	for _, section := range validSections {
		var count int64
		if err := db.Model(&Category{}).Where("section = ?", section).Count(&count).Error; err != nil {
			writeErr(w, err)
			return
		}
		if count > 0 {
			continue
		}
		for _, def := range defaultCategories[section] {
			def.Section = section
			def.Slug = slugify(def.Name)
			def.IsActive = true
			if err := db.Create(&def).Error; err != nil {
				writeErr(w, err)
				return
			}
			seeded[section]++
		}
	}
	invalidateCache("categories")
	writeJSON(w, http.StatusOK, map[string]interface{}{"seeded": seeded})
}
