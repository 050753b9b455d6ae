package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-UtilizationReport/internal/usecase/build_report"
)

// FileRepository пишет отчёты в YAML файлы каталога dir
type FileRepository struct {
	dir string
}

// NewFileRepository создает новый экземпляр файлового репозитория отчётов
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Save пишет отчёт в <dir>/utilization-<MMYY>-<runID>.yaml и возвращает путь к файлу
func (r *FileRepository) Save(ctx context.Context, resp *build_report.Response) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := FromResponse(resp)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: Save - marshal yaml: %v", ErrEncode, err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: Save - create dir %s: %v", ErrWriteFile, r.dir, err)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("utilization-%s-%s.yaml", doc.Period, doc.RunID))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: Save - write %s: %v", ErrWriteFile, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("%w: Save - rename %s: %v", ErrWriteFile, tmp, err)
	}

	return path, nil
}
