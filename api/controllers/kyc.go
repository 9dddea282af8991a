package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/validators"
	kycsvc "github.com/SatyanshPrakash/lunio-technologies-User-backend/internal/kyc"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/enums"
	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
)

type submitKYCRequest struct {
	FullName        string  `json:"fullName" validate:"required"`
	DateOfBirth     *string `json:"dateOfBirth"`
	Address         *string `json:"address"`
	DocumentType    string  `json:"documentType" validate:"required"`
	DocumentNumber  string  `json:"documentNumber" validate:"required"`
	FrontImageURL   *string `json:"frontImageUrl"`
	BackImageURL    *string `json:"backImageUrl"`
	SelfieImageURL  *string `json:"selfieImageUrl"`
}

type reviewKYCRequest struct {
	Status          string  `json:"status" validate:"required,oneof=accepted rejected"`
	RejectionReason *string `json:"rejectionReason"`
}

// SubmitKYC opens a verification application for the caller.
func SubmitKYC(svc kycsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload submitKYCRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		docType, err := enums.ParseKYCDocumentType(payload.DocumentType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid document type"))
			return
		}

		var dob *time.Time
		if payload.DateOfBirth != nil {
			parsed, err := time.Parse("2006-01-02", *payload.DateOfBirth)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "dateOfBirth must be YYYY-MM-DD"))
				return
			}
			dob = &parsed
		}

		app, err := svc.Submit(r.Context(), userID, kycsvc.SubmitInput{
			FullName:       payload.FullName,
			DateOfBirth:    dob,
			Address:        payload.Address,
			DocumentType:   docType,
			DocumentNumber: payload.DocumentNumber,
			FrontImageURL:  payload.FrontImageURL,
			BackImageURL:   payload.BackImageURL,
			SelfieImageURL: payload.SelfieImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, app)
	}
}

// MyKYCStatus returns the caller's active or most recent application.
func MyKYCStatus(svc kycsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		app, err := svc.StatusForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, app)
	}
}

// AdminListKYC pages applications, optionally filtered by status and
// document type.
func AdminListKYC(svc kycsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		result, err := svc.List(r.Context(), q.Get("status"), q.Get("documentType"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminGetKYC serves one application by its public id.
func AdminGetKYC(svc kycsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID := chi.URLParam(r, "applicationId")
		if applicationID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "application id is required"))
			return
		}

		app, err := svc.Get(r.Context(), applicationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, app)
	}
}

// AdminReviewKYC settles an application with a decision.
func AdminReviewKYC(svc kycsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID := chi.URLParam(r, "applicationId")
		if applicationID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "application id is required"))
			return
		}
		reviewerID, err := userFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reviewKYCRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseKYCStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid kyc status"))
			return
		}

		app, err := svc.Review(r.Context(), applicationID, kycsvc.ReviewInput{
			Status:          status,
			RejectionReason: payload.RejectionReason,
			ReviewerID:      reviewerID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, app)
	}
}

// AdminKYCStats summarizes application counts by status, week, and
// document type.
func AdminKYCStats(svc kycsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
