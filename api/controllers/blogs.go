package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/middleware"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/validators"
	blogsvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/blogs"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
)

type createBlogRequest struct {
	Title         string   `json:"title" validate:"required"`
	Slug          string   `json:"slug"`
	Excerpt       *string  `json:"excerpt"`
	Content       string   `json:"content" validate:"required"`
	FeaturedImage *string  `json:"featuredImage"`
	Tags          []string `json:"tags"`
	Publish       bool     `json:"publish"`
}

type updateBlogRequest struct {
	Title         *string  `json:"title"`
	Excerpt       *string  `json:"excerpt"`
	Content       *string  `json:"content"`
	FeaturedImage *string  `json:"featuredImage"`
	Tags          []string `json:"tags"`
	Status        *string  `json:"status"`
}

// ListBlogs pages published posts, optionally filtered by tag.
func ListBlogs(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListPublished(r.Context(), r.URL.Query().Get("tag"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetBlogBySlug serves one published post and bumps its view counter.
func GetBlogBySlug(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		blog, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blog)
	}
}

// AdminListBlogs pages every post regardless of status.
func AdminListBlogs(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListAll(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminCreateBlog drafts or publishes a new post.
func AdminCreateBlog(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBlogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var authorID *int64
		if id := middleware.UserIDFromContext(r.Context()); id > 0 {
			authorID = &id
		}

		blog, err := svc.Create(r.Context(), blogsvc.CreateInput{
			Title:         payload.Title,
			Slug:          payload.Slug,
			Excerpt:       payload.Excerpt,
			Content:       payload.Content,
			FeaturedImage: payload.FeaturedImage,
			AuthorID:      authorID,
			Tags:          payload.Tags,
			Publish:       payload.Publish,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, blog)
	}
}

// AdminUpdateBlog edits a post. Only fields present in the body change.
func AdminUpdateBlog(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBlogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := blogsvc.UpdateInput{
			Title:         payload.Title,
			Excerpt:       payload.Excerpt,
			Content:       payload.Content,
			FeaturedImage: payload.FeaturedImage,
			Tags:          payload.Tags,
		}
		if payload.Status != nil {
			status, err := enums.ParseBlogStatus(*payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid blog status"))
				return
			}
			input.Status = &status
		}

		blog, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blog)
	}
}

// AdminDeleteBlog removes a post.
func AdminDeleteBlog(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
