package mappingprofile

import (
	"time"

	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
)

// MappingProfile is a saved column mapping for a recurring workbook layout.
// Profiles belong to the operator's client, not to a company record, and are
// never validated against the current header; a stale profile only shows up
// through the preview.
type MappingProfile struct {
	Name      string                 `json:"name"`
	ClientID  string                 `json:"client_id"`
	Mapping   importer.ColumnMapping `json:"mapping"`
	CreatedAt time.Time              `json:"created_at"`
}
