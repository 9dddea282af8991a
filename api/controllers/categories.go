package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/validators"
	categorysvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/categories"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	ParentID    *int64  `json:"parentId"`
}

// CategoryTree serves the nested active category listing.
func CategoryTree(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, err := svc.Tree(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tree)
	}
}

// GetCategoryBySlug serves a single category.
func GetCategoryBySlug(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// AdminCreateCategory handles back-office category creation.
func AdminCreateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), categorysvc.CreateInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			ParentID:    payload.ParentID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// AdminDeleteCategory removes a category.
func AdminDeleteCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
