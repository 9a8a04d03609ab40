package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
	"github.com/wagebook/wagebook-backend-go/internal/handler/http/response"
	importerService "github.com/wagebook/wagebook-backend-go/internal/service/importer"
	"github.com/wagebook/wagebook-backend-go/internal/service/mappingprofile"
	"github.com/wagebook/wagebook-backend-go/internal/service/workbook"
)

type ImportHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Commit(w http.ResponseWriter, r *http.Request)
}

type importHandlerImpl struct {
	importService  *importerService.ImportService
	profileService *mappingprofile.ProfileService
	maxUploadBytes int64
}

func NewImportHandler(
	importService *importerService.ImportService,
	profileService *mappingprofile.ProfileService,
	maxUploadBytes int64,
) ImportHandler {
	return &importHandlerImpl{
		importService:  importService,
		profileService: profileService,
		maxUploadBytes: maxUploadBytes,
	}
}

// previewResponse is what the operator reviews before any commit is
// possible: the detected schema, the mapping with its confidence, and every
// row with its status and error text.
type previewResponse struct {
	HeaderRow    int                    `json:"header_row"`
	DataStartRow int                    `json:"data_start_row"`
	Mapping      importer.ColumnMapping `json:"mapping"`
	Confidence   float64                `json:"confidence"`
	RowsParsed   int                    `json:"rows_parsed"`
	ValidRows    int                    `json:"valid_rows"`
	Rows         []importer.ParsedRow   `json:"rows"`
}

// buildSession parses the multipart upload into an import session, applying
// a saved profile and/or an inline mapping override when supplied.
func (h *importHandlerImpl) buildSession(w http.ResponseWriter, r *http.Request) (importer.ImportSession, bool) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return importer.ImportSession{}, false
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Workbook file is required", nil)
		return importer.ImportSession{}, false
	}
	defer file.Close()

	matrix, err := workbook.Load(file, fileHeader.Filename)
	if err != nil {
		response.HandleError(w, err)
		return importer.ImportSession{}, false
	}

	overrides := make(importer.ColumnMapping)
	if name := r.FormValue("profile"); name != "" {
		profile, err := h.profileService.Get(r.Context(), clientID(r), name)
		if err != nil {
			response.HandleError(w, err)
			return importer.ImportSession{}, false
		}
		overrides = profile.Mapping
	}
	if raw := r.FormValue("mapping"); raw != "" {
		var manual importer.ColumnMapping
		if err := json.Unmarshal([]byte(raw), &manual); err != nil {
			response.BadRequest(w, "Invalid mapping override JSON", nil)
			return importer.ImportSession{}, false
		}
		overrides = overrides.Merge(manual)
	}

	session, err := importerService.BuildSession(matrix, overrides)
	if err != nil {
		response.HandleError(w, err)
		return importer.ImportSession{}, false
	}
	return session, true
}

func (h *importHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	session, ok := h.buildSession(w, r)
	if !ok {
		return
	}

	response.Success(w, previewResponse{
		HeaderRow:    session.HeaderRow,
		DataStartRow: session.DataStartRow,
		Mapping:      session.Mapping,
		Confidence:   session.Confidence,
		RowsParsed:   len(session.Rows),
		ValidRows:    len(session.ValidRows()),
		Rows:         session.Rows,
	})
}

func (h *importHandlerImpl) Commit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.buildSession(w, r)
	if !ok {
		return
	}

	companyID := r.FormValue("company_id")
	month := r.FormValue("month")
	mode, ok := importer.ParseMode(r.FormValue("mode"))
	if !ok {
		response.BadRequest(w, "Mode must be one of all, attendance, wages", nil)
		return
	}
	workingDays, err := strconv.Atoi(r.FormValue("working_days"))
	if err != nil {
		response.BadRequest(w, "Working days must be a number", nil)
		return
	}

	summary, err := h.importService.Run(r.Context(), session, companyID, month, workingDays, mode)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// clientID identifies the operator's client for mapping-profile ownership.
// Profiles are client-local, not company records.
func clientID(r *http.Request) string {
	if id := r.Header.Get("X-Client-ID"); id != "" {
		return id
	}
	return r.FormValue("client_id")
}
