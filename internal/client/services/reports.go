package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/worklog/internal/client/client"
	"github.com/dmitrijs2005/worklog/internal/client/models"
	"github.com/dmitrijs2005/worklog/internal/filex"
)

// ExportService downloads report documents into a local directory.
type ExportService interface {
	Export(ctx context.Context, format string, f models.Filter) (string, error)
}

type exportService struct {
	client client.Client
	dir    string
}

func NewExportService(client client.Client, dir string) ExportService {
	return &exportService{client: client, dir: dir}
}

// Export fetches the document and saves it under the server-chosen name,
// returning the local path.
func (s *exportService) Export(ctx context.Context, format string, f models.Filter) (string, error) {
	file, err := s.client.Export(ctx, format, f)
	if err != nil {
		return "", err
	}

	path, err := filex.SaveFile(s.dir, file.Name, file.Body)
	if err != nil {
		return "", fmt.Errorf("error saving %s: %w", file.Name, err)
	}
	return path, nil
}
