// forms.go multipart form decoding and shared handler helpers
//
// Image-bearing resources accept both application/json and
// multipart/form-data for the same logical create/update operation. Both
// wire formats decode into the same input struct so validation never
// depends on the transport.
package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const maxUploadSize = 20 << 20 // 20 MiB

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formStr returns nil when the field is absent, so partial updates can
// distinguish "not provided" from "set to empty".
func formStr(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[name]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func formBool(r *http.Request, name string) (*bool, error) {
	s := formStr(r, name)
	if s == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*s)
	if err != nil {
		return nil, validationErr("field %s must be a boolean", name)
	}
	return &b, nil
}

func formInt(r *http.Request, name string) (*int, error) {
	s := formStr(r, name)
	if s == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return nil, validationErr("field %s must be an integer", name)
	}
	return &n, nil
}

// formList accepts a JSON array or a comma-separated string.
func formList(r *http.Request, name string) (*[]string, error) {
	s := formStr(r, name)
	if s == nil {
		return nil, nil
	}
	var list []string
	if strings.HasPrefix(strings.TrimSpace(*s), "[") {
		if err := json.Unmarshal([]byte(*s), &list); err != nil {
			return nil, validationErr("field %s must be a JSON array of strings", name)
		}
		return &list, nil
	}
	for _, part := range strings.Split(*s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return &list, nil
}

func formLinks(r *http.Request, name string) (*[]ResourceLink, error) {
	s := formStr(r, name)
	if s == nil {
		return nil, nil
	}
	var links []ResourceLink
	if err := json.Unmarshal([]byte(*s), &links); err != nil {
		return nil, validationErr("field %s must be a JSON array of {title,url} objects", name)
	}
	return &links, nil
}

func validEnum(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// queryBool parses ?name=true|false; nil when absent or unparseable.
func queryBool(r *http.Request, name string) *bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// flipFlag toggles a boolean column in a single UPDATE so concurrent admin
// requests cannot lose toggles to a read-modify-write race.
func flipFlag(model interface{}, id, column string) (bool, error) {
	res := db.Model(model).Where("id = ?", id).Update(column, gorm.Expr("NOT "+column))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, notFoundErr("record " + id)
	}
	var values []bool
	if err := db.Model(model).Where("id = ?", id).Pluck(column, &values).Error; err != nil {
		return false, err
	}
	if len(values) == 0 {
		return false, notFoundErr("record " + id)
	}
	return values[0], nil
}

func searchPattern(q string) string {
	return "%" + strings.ToLower(q) + "%"
}
