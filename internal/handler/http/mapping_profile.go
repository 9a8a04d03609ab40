package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
	"github.com/wagebook/wagebook-backend-go/internal/handler/http/response"
	"github.com/wagebook/wagebook-backend-go/internal/service/mappingprofile"
)

type MappingProfileHandler interface {
	Save(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type mappingProfileHandlerImpl struct {
	profileService *mappingprofile.ProfileService
}

func NewMappingProfileHandler(profileService *mappingprofile.ProfileService) MappingProfileHandler {
	return &mappingProfileHandlerImpl{profileService: profileService}
}

type saveProfileRequest struct {
	Name    string                 `json:"name"`
	Mapping importer.ColumnMapping `json:"mapping"`
}

func (h *mappingProfileHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req saveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	profile, err := h.profileService.Save(r.Context(), clientID(r), req.Name, req.Mapping)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Mapping profile saved", profile)
}

func (h *mappingProfileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context(), clientID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profiles)
}

func (h *mappingProfileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Get(r.Context(), clientID(r), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

func (h *mappingProfileHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.profileService.Delete(r.Context(), clientID(r), chi.URLParam(r, "name")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}
