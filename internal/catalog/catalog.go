// Package catalog reads the category definition list that parameterizes a
// crawl run. The list is an ordered CSV with one header row and the columns
// primaryCategory,subCategory,category,pathFragment.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"trendsync/internal/models"
)

// Load reads the category CSV at path. The file is re-read on every call so a
// run always sees the current list.
func Load(path string) ([]models.Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open categories: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("categories file %s has no data rows", path)
	}

	cats := make([]models.Category, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		cats = append(cats, models.Category{
			Primary: strings.ToUpper(strings.TrimSpace(row[0])),
			Sub:     strings.TrimSpace(row[1]),
			Name:    strings.TrimSpace(row[2]),
			Path:    strings.TrimSpace(row[3]),
		})
	}
	return cats, nil
}
