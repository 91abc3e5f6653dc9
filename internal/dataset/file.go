package dataset

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/actuallystonmai/game-recommender/internal/domain"
	"github.com/actuallystonmai/game-recommender/internal/index"
)

// ReadFile loads a CSV dataset (wide or compact) and returns its records
// with the header row stripped.
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(records) > 0 {
		records = records[1:]
	}
	return records, nil
}

// WriteFile persists the catalog and graph as a compact CSV dataset, header
// included, games ordered by id.
func WriteFile(path string, catalog domain.Catalog, graph *index.WeightedGraph) error {
	records, err := EncodeCatalog(catalog, graph)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write dataset header: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write game record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
