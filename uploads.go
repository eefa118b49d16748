// uploads.go multipart file storage
//
// Uploaded images live under UPLOAD_DIR and are served back as
// server-relative /uploads/<name> paths. The store is opaque to the rest of
// the code: handlers only ever see the returned reference path. Deleting a
// record never deletes its files; orphaned blobs are an accepted tradeoff.
package main

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func ensureUploadDir() error {
	return os.MkdirAll(uploadDir(), 0o755)
}

func saveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: opening upload: %v", errStorage, err)
	}
	defer src.Close()

	name := uuid.NewString()[:8] + "-" + unsafeFilenameChars.ReplaceAllString(filepath.Base(fh.Filename), "-")
	dst, err := os.Create(filepath.Join(uploadDir(), name))
	if err != nil {
		return "", fmt.Errorf("%w: writing upload: %v", errStorage, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("%w: writing upload: %v", errStorage, err)
	}
	return "/uploads/" + name, nil
}

// fileUpload stores a single optional file field; empty string when absent.
func fileUpload(r *http.Request, field string) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return "", nil
	}
	return saveUpload(files[0])
}

// fileUploads stores every file submitted under a repeated field.
func fileUploads(r *http.Request, field string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var paths []string
	for _, fh := range r.MultipartForm.File[field] {
		path, err := saveUpload(fh)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
