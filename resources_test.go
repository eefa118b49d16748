package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillCRUD(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPost, "/skills", token, map[string]interface{}{
		"name": "Go", "category": "languages", "proficiency": 90,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var skill Skill
	decodeBody(t, rec, &skill)

	rec = doJSON(t, h, http.MethodPost, "/skills", token, map[string]interface{}{
		"name": "Bad", "proficiency": 150,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/skills/"+skill.ID, token, map[string]interface{}{
		"proficiency": 95,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated Skill
	decodeBody(t, rec, &updated)
	assert.Equal(t, 95, updated.Proficiency)
	assert.Equal(t, "Go", updated.Name)

	rec = doJSON(t, h, http.MethodDelete, "/skills/"+skill.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/skills/"+skill.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSkillIgnoresClientModelFields(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPost, "/skills", token, map[string]interface{}{
		"name":      "Go",
		"id":        "client-chosen-id",
		"createdAt": "2000-01-01T00:00:00Z",
		"updatedAt": "2000-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var skill Skill
	decodeBody(t, rec, &skill)
	assert.NotEqual(t, "client-chosen-id", skill.ID)
	assert.Greater(t, skill.CreatedAt.Year(), 2000)
}

func TestResearchTypeValidationAndToggle(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPost, "/research", token, map[string]interface{}{
		"title": "Paper", "type": "magazine",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/research", token, map[string]interface{}{
		"title":    "Paper",
		"type":     "conference",
		"authors":  []string{"A. Author", "B. Author"},
		"keywords": []string{"systems"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var paper Research
	decodeBody(t, rec, &paper)
	assert.Equal(t, []string{"A. Author", "B. Author"}, paper.Authors)

	toggle := doJSON(t, h, http.MethodPut, "/research/"+paper.ID+"/featured", token, nil)
	require.Equal(t, http.StatusOK, toggle.Code)
	var resp map[string]bool
	decodeBody(t, toggle, &resp)
	assert.True(t, resp["featured"])
}

func TestInterestActiveToggleAndOrdering(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	for _, in := range []map[string]interface{}{
		{"title": "Chess", "order": 2},
		{"title": "Astronomy", "order": 1},
	} {
		rec := doJSON(t, h, http.MethodPost, "/interests", token, in)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/interests", "", nil)
	var interests []Interest
	decodeBody(t, rec, &interests)
	require.Len(t, interests, 2)
	assert.Equal(t, "Astronomy", interests[0].Title)
	assert.True(t, interests[0].IsActive)

	toggle := doJSON(t, h, http.MethodPut, "/interests/"+interests[0].ID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, toggle.Code)

	rec = doJSON(t, h, http.MethodGet, "/interests?active=true", "", nil)
	decodeBody(t, rec, &interests)
	require.Len(t, interests, 1)
	assert.Equal(t, "Chess", interests[0].Title)
}

func TestCurrentWorkEnumsAndProgress(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPost, "/current-work", token, map[string]interface{}{
		"title": "New thing", "description": "d", "status": "shipped",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/current-work", token, map[string]interface{}{
		"title": "New thing", "description": "d", "progress": 120,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/current-work", token, map[string]interface{}{
		"title":        "Side project",
		"description":  "d",
		"type":         "learning",
		"status":       "in-progress",
		"progress":     40,
		"technologies": []string{"Go", "sqlite"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var item CurrentWork
	decodeBody(t, rec, &item)
	assert.Equal(t, "learning", item.Type)

	toggle := doJSON(t, h, http.MethodPut, "/current-work/"+item.ID+"/featured", token, nil)
	require.Equal(t, http.StatusOK, toggle.Code)
	var resp map[string]bool
	decodeBody(t, toggle, &resp)
	assert.True(t, resp["isFeatured"])
}

func TestAchievementOrderAndFeatured(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPost, "/achievements", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/achievements", token, map[string]interface{}{
		"title": "Gold Medal", "issuer": "Competitive Programming Cup", "order": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var achievement Achievement
	decodeBody(t, rec, &achievement)

	toggle := doJSON(t, h, http.MethodPut, "/achievements/"+achievement.ID+"/featured", token, nil)
	require.Equal(t, http.StatusOK, toggle.Code)

	rec = doJSON(t, h, http.MethodGet, "/achievements?featured=true", "", nil)
	var achievements []Achievement
	decodeBody(t, rec, &achievements)
	require.Len(t, achievements, 1)
	assert.Equal(t, "Gold Medal", achievements[0].Title)
}

func TestListCacheInvalidatedOnWrite(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodGet, "/skills", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var skills []Skill
	decodeBody(t, rec, &skills)
	require.Empty(t, skills)

	create := doJSON(t, h, http.MethodPost, "/skills", token, map[string]interface{}{"name": "Go"})
	require.Equal(t, http.StatusCreated, create.Code)

	rec = doJSON(t, h, http.MethodGet, "/skills", "", nil)
	decodeBody(t, rec, &skills)
	assert.Len(t, skills, 1) // cached empty list was dropped by the write
}
