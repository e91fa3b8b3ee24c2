package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/muzaproject/muza-bot/internal/models"
)

// Column headers of the venue CSV export.
const (
	csvColName        = "Название"
	csvColDescription = "Описание"
	csvColCity        = "Местоположение"
	csvColAddress     = "Улица"
)

// LoadMuseumsCSV reads the venue CSV and inserts every complete row as a
// museum. Rows missing any of the four key fields are skipped. The export
// carries HTML remnants in the description, which are stripped.
func LoadMuseumsCSV(ctx context.Context, store Storage, path string, logger *zap.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("error opening museums csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("error reading csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{csvColName, csvColDescription, csvColCity, csvColAddress} {
		if _, ok := columns[required]; !ok {
			return 0, fmt.Errorf("museums csv is missing column %q", required)
		}
	}

	loaded := 0
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return loaded, fmt.Errorf("error reading csv record: %w", err)
		}

		museum := models.Museum{
			Name:        cleanField(field(record, columns[csvColName])),
			Description: cleanField(field(record, columns[csvColDescription])),
			City:        cleanField(field(record, columns[csvColCity])),
			Address:     cleanField(field(record, columns[csvColAddress])),
		}
		if museum.Name == "" || museum.Description == "" || museum.City == "" || museum.Address == "" {
			skipped++
			continue
		}

		if err := store.AddMuseum(ctx, &museum); err != nil {
			return loaded, err
		}
		loaded++
	}

	logger.Info("Loaded museums from CSV",
		zap.String("path", path),
		zap.Int("loaded", loaded),
		zap.Int("skipped", skipped))
	return loaded, nil
}

func field(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return record[index]
}

// cleanField strips the HTML remnants the source export carries.
func cleanField(value string) string {
	value = strings.ReplaceAll(value, "<p>", "")
	value = strings.ReplaceAll(value, "</p>", "")
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "<span>")
	value = strings.TrimSuffix(value, "</span>")
	return strings.TrimSpace(value)
}
