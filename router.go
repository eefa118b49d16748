// router.go route table and HTTP middleware
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", Healthz)

	mux.HandleFunc("POST /auth/login", Login)
	mux.HandleFunc("GET /auth/me", authMiddleware(Me))
	mux.HandleFunc("PUT /auth/updatepassword", authMiddleware(UpdatePassword))

	mux.HandleFunc("GET /categories", ListCategories)
	mux.HandleFunc("GET /categories/resolve", ResolveCategory)
	mux.HandleFunc("POST /categories", authMiddleware(CreateCategory))
	mux.HandleFunc("POST /categories/seed", authMiddleware(SeedCategories))
	mux.HandleFunc("PUT /categories/{id}", authMiddleware(UpdateCategory))
	mux.HandleFunc("PUT /categories/{id}/toggle", authMiddleware(ToggleCategory))
	mux.HandleFunc("DELETE /categories/{id}", authMiddleware(DeleteCategory))

	mux.HandleFunc("GET /projects", ListProjects)
	mux.HandleFunc("GET /projects/{id}", GetProject)
	mux.HandleFunc("POST /projects", authMiddleware(CreateProject))
	mux.HandleFunc("PUT /projects/{id}", authMiddleware(UpdateProject))
	mux.HandleFunc("PUT /projects/{id}/featured", authMiddleware(ToggleProjectFeatured))
	mux.HandleFunc("DELETE /projects/{id}", authMiddleware(DeleteProject))

	mux.HandleFunc("GET /skills", ListSkills)
	mux.HandleFunc("GET /skills/{id}", GetSkill)
	mux.HandleFunc("POST /skills", authMiddleware(CreateSkill))
	mux.HandleFunc("PUT /skills/{id}", authMiddleware(UpdateSkill))
	mux.HandleFunc("DELETE /skills/{id}", authMiddleware(DeleteSkill))

	mux.HandleFunc("GET /research", ListResearch)
	mux.HandleFunc("GET /research/{id}", GetResearch)
	mux.HandleFunc("POST /research", authMiddleware(CreateResearch))
	mux.HandleFunc("PUT /research/{id}", authMiddleware(UpdateResearch))
	mux.HandleFunc("PUT /research/{id}/featured", authMiddleware(ToggleResearchFeatured))
	mux.HandleFunc("DELETE /research/{id}", authMiddleware(DeleteResearch))

	mux.HandleFunc("GET /achievements", ListAchievements)
	mux.HandleFunc("GET /achievements/{id}", GetAchievement)
	mux.HandleFunc("POST /achievements", authMiddleware(CreateAchievement))
	mux.HandleFunc("PUT /achievements/{id}", authMiddleware(UpdateAchievement))
	mux.HandleFunc("PUT /achievements/{id}/featured", authMiddleware(ToggleAchievementFeatured))
	mux.HandleFunc("DELETE /achievements/{id}", authMiddleware(DeleteAchievement))

	mux.HandleFunc("GET /blogs", ListBlogs)
	mux.HandleFunc("GET /blogs/{slug}", GetBlogBySlug)
	mux.HandleFunc("GET /blogs/id/{id}", GetBlog)
	mux.HandleFunc("POST /blogs", authMiddleware(CreateBlog))
	mux.HandleFunc("PUT /blogs/{id}", authMiddleware(UpdateBlog))
	mux.HandleFunc("PUT /blogs/{id}/featured", authMiddleware(ToggleBlogFeatured))
	mux.HandleFunc("PUT /blogs/{id}/publish", authMiddleware(ToggleBlogPublished))
	mux.HandleFunc("DELETE /blogs/{id}", authMiddleware(DeleteBlog))

	mux.HandleFunc("GET /interests", ListInterests)
	mux.HandleFunc("GET /interests/{id}", GetInterest)
	mux.HandleFunc("POST /interests", authMiddleware(CreateInterest))
	mux.HandleFunc("PUT /interests/{id}", authMiddleware(UpdateInterest))
	mux.HandleFunc("PUT /interests/{id}/toggle", authMiddleware(ToggleInterestActive))
	mux.HandleFunc("DELETE /interests/{id}", authMiddleware(DeleteInterest))

	mux.HandleFunc("GET /current-work", ListCurrentWork)
	mux.HandleFunc("GET /current-work/{id}", GetCurrentWork)
	mux.HandleFunc("POST /current-work", authMiddleware(CreateCurrentWork))
	mux.HandleFunc("PUT /current-work/{id}", authMiddleware(UpdateCurrentWork))
	mux.HandleFunc("PUT /current-work/{id}/featured", authMiddleware(ToggleCurrentWorkFeatured))
	mux.HandleFunc("DELETE /current-work/{id}", authMiddleware(DeleteCurrentWork))

	mux.HandleFunc("GET /settings", GetSettings)
	mux.HandleFunc("PUT /settings", authMiddleware(UpdateSettings))
	mux.HandleFunc("PUT /settings/profile-image", authMiddleware(UploadProfileImage))

	// Uploaded images are served back as server-relative paths.
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir()))))

	frontendURL := os.Getenv("FRONTEND_URL")
	frontendURL2 := os.Getenv("FRONTEND_URL2")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{frontendURL, frontendURL2},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return corsHandler.Handler(requestLogger(mux))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
