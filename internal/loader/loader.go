package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kolah/swaggen/internal/model"
	"github.com/kolah/swaggen/internal/swagger"
	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
)

// ErrUnsupportedVersion is returned for any document whose "swagger" field is not 2.0.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// DocumentError reports a document that could not be read or decoded.
type DocumentError struct {
	Location string
	Cause    error
}

func (e *DocumentError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("invalid document: %v", e.Cause)
	}
	return fmt.Sprintf("invalid document %s: %v", e.Location, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

type Result struct {
	Document *swagger.Document
	Version  string
	Info     model.Info
	Warnings []string
	RawData  []byte
}

func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{Location: path, Cause: fmt.Errorf("reading spec file: %w", err)}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	config := &datamodel.DocumentConfiguration{
		BasePath:            filepath.Dir(absPath),
		AllowFileReferences: true,
	}

	result, err := loadWithConfig(data, config)
	if err != nil {
		var docErr *DocumentError
		if errors.As(err, &docErr) && docErr.Location == "" {
			docErr.Location = path
		}
		return nil, err
	}
	return result, nil
}

// Load decodes a document held in memory. External file references are not followed.
func Load(data []byte) (*Result, error) {
	return loadWithConfig(data, nil)
}

func loadWithConfig(data []byte, config *datamodel.DocumentConfiguration) (*Result, error) {
	doc, err := swagger.Decode(data)
	if err != nil {
		return nil, &DocumentError{Cause: err}
	}

	if doc.Swagger != swagger.SupportedVersion {
		return nil, fmt.Errorf("%w: %q (only %s supported)", ErrUnsupportedVersion, doc.Swagger, swagger.SupportedVersion)
	}

	result := &Result{
		Document: doc,
		Version:  doc.Swagger,
		Info: model.Info{
			Title:       doc.Info.Title,
			Description: doc.Info.Description,
			Version:     doc.Info.Version,
		},
		RawData: data,
	}
	result.Warnings = append(result.Warnings, inspectModel(data, config)...)

	return result, nil
}

// inspectModel builds the libopenapi Swagger model over the same bytes. Reference and
// build problems it reports become warnings; the decoded document is not changed.
func inspectModel(data []byte, config *datamodel.DocumentConfiguration) []string {
	var doc libopenapi.Document
	var err error

	if config != nil {
		doc, err = libopenapi.NewDocumentWithConfiguration(data, config)
	} else {
		doc, err = libopenapi.NewDocument(data)
	}
	if err != nil {
		return []string{fmt.Sprintf("document model: %v", err)}
	}

	var warnings []string
	if v := doc.GetVersion(); v != swagger.SupportedVersion {
		warnings = append(warnings, fmt.Sprintf("document model reports version %q", v))
	}
	if _, err := doc.BuildV2Model(); err != nil {
		warnings = append(warnings, fmt.Sprintf("building document model: %v", err))
	}
	return warnings
}
