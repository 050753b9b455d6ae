package yamlbook

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
	"github.com/m04kA/SMC-UtilizationReport/internal/infra/sheet"
)

// Workbook YAML представление документа: вкладка -> строки -> ячейки, начиная с A1
//
//	tabs:
//	  Settings:
//	    - ["Riverside Padel", 4]
//	    - ["Monday", "09:00-17:00"]
type Workbook struct {
	Tabs map[string][][]interface{} `yaml:"tabs"`
}

// Reader читает диапазоны из YAML книги
type Reader struct {
	path string
}

// NewReader создает reader книги по пути path
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Load читает и разбирает файл книги
func Load(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sheet.ErrReadDocument, err)
	}
	return Parse(data)
}

// Parse разбирает книгу из YAML
func Parse(data []byte) (*Workbook, error) {
	var wb Workbook
	if err := yaml.Unmarshal(data, &wb); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", sheet.ErrReadDocument, err)
	}
	return &wb, nil
}

// ReadRange читает диапазон rng вкладки tab; файл перечитывается на каждый вызов
func (r *Reader) ReadRange(ctx context.Context, tab string, rng sheet.Range) ([][]domain.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wb, err := Load(r.path)
	if err != nil {
		return nil, err
	}
	return wb.ReadRange(tab, rng)
}

// ReadRange читает диапазон из уже загруженной книги
func (wb *Workbook) ReadRange(tab string, rng sheet.Range) ([][]domain.Cell, error) {
	rows, ok := wb.Tabs[tab]
	if !ok {
		return nil, fmt.Errorf("%w: %q", sheet.ErrTabNotFound, tab)
	}

	collector := sheet.NewCollector(rng)
	for i, line := range rows {
		for j, v := range line {
			cell, err := toCell(v)
			if err != nil {
				return nil, fmt.Errorf("%w: tab %q row %d col %d: %v", sheet.ErrReadDocument, tab, i+1, j+1, err)
			}
			collector.Put(i+1, j+1, cell)
		}
	}
	return collector.Matrix(), nil
}

func toCell(v interface{}) (domain.Cell, error) {
	switch val := v.(type) {
	case nil:
		return domain.Cell{}, nil
	case string:
		return domain.TextCell(val), nil
	case int:
		return domain.NumberCell(float64(val)), nil
	case int64:
		return domain.NumberCell(float64(val)), nil
	case uint64:
		return domain.NumberCell(float64(val)), nil
	case float64:
		return domain.NumberCell(val), nil
	case bool:
		return domain.TextCell(fmt.Sprint(val)), nil
	case time.Time:
		return domain.TimeCell(val), nil
	default:
		return domain.Cell{}, fmt.Errorf("unsupported value %T", v)
	}
}
