// blogs.go CRUD handlers for blog posts, including derived fields
package main

import (
	"fmt"
	"net/http"
	"strconv"

	"gorm.io/gorm"
)

type blogInput struct {
	Title           *string   `json:"title"`
	Slug            *string   `json:"slug"`
	Content         *string   `json:"content"`
	Excerpt         *string   `json:"excerpt"`
	CoverImage      *string   `json:"coverImage"`
	Category        *string   `json:"category"`
	Tags            *[]string `json:"tags"`
	Author          *string   `json:"author"`
	Published       *bool     `json:"published"`
	Featured        *bool     `json:"featured"`
	MetaTitle       *string   `json:"metaTitle"`
	MetaDescription *string   `json:"metaDescription"`
}

func parseBlogInput(r *http.Request) (blogInput, error) {
	var in blogInput
	if !isMultipart(r) {
		return in, decodeJSON(r, &in)
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return in, validationErr("invalid multipart form: %v", err)
	}
	var err error
	in.Title = formStr(r, "title")
	in.Slug = formStr(r, "slug")
	in.Content = formStr(r, "content")
	in.Excerpt = formStr(r, "excerpt")
	in.CoverImage = formStr(r, "coverImage")
	in.Category = formStr(r, "category")
	in.Author = formStr(r, "author")
	in.MetaTitle = formStr(r, "metaTitle")
	in.MetaDescription = formStr(r, "metaDescription")
	if in.Tags, err = formList(r, "tags"); err != nil {
		return in, err
	}
	if in.Published, err = formBool(r, "published"); err != nil {
		return in, err
	}
	if in.Featured, err = formBool(r, "featured"); err != nil {
		return in, err
	}
	return in, nil
}

// ListBlogs returns a plain array, or a paginated envelope with total counts
// when page/limit are supplied.
func ListBlogs(w http.ResponseWriter, r *http.Request) {
	key := listCacheKey("blogs", r.URL.RawQuery)
	data, err := getCachedData(key, func() (interface{}, error) {
		q := db.Model(&Blog{}).Order("created_at desc")
		if category := r.URL.Query().Get("category"); category != "" {
			q = q.Where("category = ?", category)
		}
		if published := queryBool(r, "published"); published != nil {
			q = q.Where("published = ?", *published)
		}
		if featured := queryBool(r, "featured"); featured != nil {
			q = q.Where("featured = ?", *featured)
		}
		if tag := r.URL.Query().Get("tag"); tag != "" {
			q = q.Where("tags LIKE ?", "%\""+tag+"\"%")
		}
		if search := r.URL.Query().Get("search"); search != "" {
			pattern := searchPattern(search)
			q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
		}

		pageStr := r.URL.Query().Get("page")
		limitStr := r.URL.Query().Get("limit")
		if pageStr == "" && limitStr == "" {
			blogs := []Blog{}
			if err := q.Find(&blogs).Error; err != nil {
				return nil, err
			}
			return blogs, nil
		}

		page, _ := strconv.Atoi(pageStr)
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(limitStr)
		if limit < 1 {
			limit = 10
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			return nil, err
		}
		blogs := []Blog{}
		if err := q.Offset((page - 1) * limit).Limit(limit).Find(&blogs).Error; err != nil {
			return nil, err
		}
		totalPages := int((total + int64(limit) - 1) / int64(limit))
		return map[string]interface{}{
			"blogs":      blogs,
			"total":      total,
			"page":       page,
			"totalPages": totalPages,
		}, nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// GetBlogBySlug increments the view counter as a side effect of a
// successful read. The increment is a single UPDATE; at-least-once is fine.
func GetBlogBySlug(w http.ResponseWriter, r *http.Request) {
	var blog Blog
	if err := db.First(&blog, "slug = ?", r.PathValue("slug")).Error; err != nil {
		writeErr(w, err)
		return
	}

	if err := db.Model(&Blog{}).Where("id = ?", blog.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		logger.Error().Err(err).Str("slug", blog.Slug).Msg("incrementing views")
	} else {
		blog.Views++
	}
	writeJSON(w, http.StatusOK, blog)
}

func GetBlog(w http.ResponseWriter, r *http.Request) {
	var blog Blog
	if err := db.First(&blog, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

func CreateBlog(w http.ResponseWriter, r *http.Request) {
	in, err := parseBlogInput(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if in.Title == nil || *in.Title == "" {
		writeErr(w, validationErr("title is required"))
		return
	}
	if in.Content == nil || *in.Content == "" {
		writeErr(w, validationErr("content is required"))
		return
	}

	blog := Blog{
		Title:    *in.Title,
		Content:  *in.Content,
		ReadTime: deriveReadTime(*in.Content),
	}

	base := ""
	if in.Slug != nil && *in.Slug != "" {
		base = slugify(*in.Slug)
	} else {
		base = slugify(blog.Title)
	}

	if in.Excerpt != nil && *in.Excerpt != "" {
		blog.Excerpt = *in.Excerpt
	} else {
		blog.Excerpt = deriveExcerpt(blog.Content)
	}
	if in.CoverImage != nil {
		blog.CoverImage = *in.CoverImage
	}
	if in.Category != nil {
		blog.Category = *in.Category
	}
	if in.Tags != nil {
		blog.Tags = *in.Tags
	}
	if in.Author != nil {
		blog.Author = *in.Author
	}
	if in.Published != nil {
		blog.Published = *in.Published
	}
	if in.Featured != nil {
		blog.Featured = *in.Featured
	}
	if in.MetaTitle != nil {
		blog.MetaTitle = *in.MetaTitle
	}
	if in.MetaDescription != nil {
		blog.MetaDescription = *in.MetaDescription
	}

	if cover, err := fileUpload(r, "coverImage"); err != nil {
		writeErr(w, err)
		return
	} else if cover != "" {
		blog.CoverImage = cover
	}

	// Two concurrent creates can both pass the slug count check; the loser
	// hits the unique index and recomputes with the next suffix.
	for attempt := 0; attempt < 5; attempt++ {
		if blog.Slug, err = uniqueBlogSlug(base, ""); err != nil {
			writeErr(w, err)
			return
		}
		if err = db.Create(&blog).Error; err == nil {
			break
		}
		if !isDuplicateKey(err) {
			writeErr(w, err)
			return
		}
	}
	if err != nil {
		writeErr(w, fmt.Errorf("%w: blog slug %q already exists", errConflict, blog.Slug))
		return
	}
	invalidateCache("blogs")
	writeJSON(w, http.StatusCreated, blog)
}

func UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var blog Blog
	if err := db.First(&blog, "id = ?", r.PathValue("id")).Error; err != nil {
		writeErr(w, err)
		return
	}

	in, err := parseBlogInput(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	// Slug stays stable on title changes so published links keep working.
	// An explicit slug in the payload is honored, with disambiguation.
	if in.Slug != nil && *in.Slug != "" && slugify(*in.Slug) != blog.Slug {
		if blog.Slug, err = uniqueBlogSlug(slugify(*in.Slug), blog.ID); err != nil {
			writeErr(w, err)
			return
		}
	}

	if in.Title != nil {
		blog.Title = *in.Title
	}
	if in.Content != nil {
		blog.Content = *in.Content
		blog.ReadTime = deriveReadTime(blog.Content)
		if in.Excerpt == nil && blog.Excerpt == "" {
			blog.Excerpt = deriveExcerpt(blog.Content)
		}
	}
	if in.Excerpt != nil {
		blog.Excerpt = *in.Excerpt
	}
	if in.CoverImage != nil {
		blog.CoverImage = *in.CoverImage
	}
	if in.Category != nil {
		blog.Category = *in.Category
	}
	if in.Tags != nil {
		blog.Tags = *in.Tags
	}
	if in.Author != nil {
		blog.Author = *in.Author
	}
	if in.Published != nil {
		blog.Published = *in.Published
	}
	if in.Featured != nil {
		blog.Featured = *in.Featured
	}
	if in.MetaTitle != nil {
		blog.MetaTitle = *in.MetaTitle
	}
	if in.MetaDescription != nil {
		blog.MetaDescription = *in.MetaDescription
	}

	if cover, err := fileUpload(r, "coverImage"); err != nil {
		writeErr(w, err)
		return
	} else if cover != "" {
		blog.CoverImage = cover
	}

	if err := db.Save(&blog).Error; err != nil {
		if isDuplicateKey(err) {
			writeErr(w, fmt.Errorf("%w: blog slug %q already exists", errConflict, blog.Slug))
			return
		}
		writeErr(w, err)
		return
	}
	invalidateCache("blogs")
	writeJSON(w, http.StatusOK, blog)
}

func DeleteBlog(w http.ResponseWriter, r *http.Request) {
	result := db.Delete(&Blog{}, "id = ?", r.PathValue("id"))
	if result.Error != nil {
		writeErr(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeErr(w, notFoundErr("blog "+r.PathValue("id")))
		return
	}
	invalidateCache("blogs")
	writeJSON(w, http.StatusOK, map[string]string{"message": "blog deleted"})
}

func ToggleBlogFeatured(w http.ResponseWriter, r *http.Request) {
	value, err := flipFlag(&Blog{}, r.PathValue("id"), "featured")
	if err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("blogs")
	writeJSON(w, http.StatusOK, map[string]bool{"featured": value})
}

func ToggleBlogPublished(w http.ResponseWriter, r *http.Request) {
	value, err := flipFlag(&Blog{}, r.PathValue("id"), "published")
	if err != nil {
		writeErr(w, err)
		return
	}
	invalidateCache("blogs")
	writeJSON(w, http.StatusOK, map[string]bool{"published": value})
}
