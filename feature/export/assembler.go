package export

import (
	"context"
	"encoding/json"
	"fmt"

	"quote-manager/feature/export/models"
)

// Assembler consumes canonical export data to typeset the final document.
// The real typesetter lives outside this service; the engine only produces
// the data feeding it.
type Assembler interface {
	// Assemble renders export data into a document body.
	Assemble(ctx context.Context, data *models.ExportData) ([]byte, error)
	// ContentType returns the MIME type of the assembled body.
	ContentType() string
}

// JSONAssembler renders export data as JSON. It backs the CLI export and
// the HTTP API, and serves as the reference Assembler implementation.
type JSONAssembler struct {
	// Indent enables pretty-printing.
	Indent bool
}

// Assemble renders the export data.
func (a *JSONAssembler) Assemble(_ context.Context, data *models.ExportData) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	if a.Indent {
		body, err = json.MarshalIndent(data, "", "  ")
	} else {
		body, err = json.Marshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assemble export %s: %w", data.ExportID, err)
	}
	return body, nil
}

// ContentType returns the MIME type of the assembled body.
func (a *JSONAssembler) ContentType() string {
	return "application/json"
}
