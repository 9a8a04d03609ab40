package importer

import (
	"github.com/wagebook/wagebook-backend-go/internal/domain/importer"
)

// BuildSession runs the pre-commit half of the pipeline over a loaded
// matrix: locate the schema, infer the column mapping, overlay any operator
// overrides, validate, and parse every data row. The returned session is the
// value the preview shows and the commit consumes; each step takes the
// session so far and returns a grown copy.
func BuildSession(m importer.Matrix, overrides importer.ColumnMapping) (importer.ImportSession, error) {
	if m.Rows() == 0 {
		return importer.ImportSession{}, importer.ErrEmptyWorkbook
	}

	session := importer.ImportSession{Matrix: m}
	session.HeaderRow, session.DataStartRow = LocateSchema(m)

	header := []string(nil)
	if session.HeaderRow < m.Rows() {
		header = m[session.HeaderRow]
	}
	session.Mapping, session.Confidence = InferMapping(header)
	if len(overrides) > 0 {
		session.Mapping = session.Mapping.Merge(overrides)
	}

	if err := ValidateMapping(session.Mapping, m, session.HeaderRow); err != nil {
		return importer.ImportSession{}, err
	}

	session.Rows = ParseRows(m, session.Mapping, session.DataStartRow)
	return session, nil
}
