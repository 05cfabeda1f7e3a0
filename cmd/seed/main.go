package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/retailhub/retailhub-backend/config"
	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/internal/app/service"
	"github.com/retailhub/retailhub-backend/internal/store"
	"github.com/xuri/excelize/v2"
)

// Column order of the import sheet. The first row is a header.
const (
	colName = iota
	colLocation
	colCategory
	colContact
	colNote
	colPros
	colCons
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> [--yes]")
	}

	filePath := os.Args[1]
	assumeYes := len(os.Args) > 2 && (os.Args[2] == "--yes" || os.Args[2] == "-y")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx := context.Background()
	repo, closeStore, err := store.Open(ctx, cfg, false)
	if err != nil {
		log.Fatal("Failed to open record store:", err)
	}
	defer closeStore()

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	inputs, skipped, err := readRetailersFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total retailers to import: %d (skipped rows: %d)\n", len(inputs), skipped)

	if !assumeYes {
		fmt.Printf("Import into the %q store? (yes/no): ", cfg.Store.Backend)
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	imported, failed := importRetailers(ctx, service.NewRetailerService(repo), inputs)

	fmt.Println("Import completed!")
	fmt.Printf("Imported: %d, failed: %d\n", imported, failed)
}

// readRetailersFromXLSX reads the first sheet. Rows missing a required
// column or repeating an earlier name and location are skipped.
func readRetailersFromXLSX(filePath string) ([]model.RetailerInput, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var inputs []model.RetailerInput
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}

		input := model.RetailerInput{
			Name:     cell(row, colName),
			Location: cell(row, colLocation),
			Category: cell(row, colCategory),
			Contact:  cell(row, colContact),
			Note:     cell(row, colNote),
		}
		if input.Name == "" || input.Location == "" || input.Category == "" {
			skipped++
			continue
		}

		key := strings.ToLower(input.Name + "|" + input.Location)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		if pros, cons := cell(row, colPros), cell(row, colCons); pros != "" || cons != "" {
			input.ProsCons = pros + "||" + cons
		}
		inputs = append(inputs, input)
	}

	return inputs, skipped, nil
}

// importRetailers creates each input through the service so ids, timestamps
// and validation match records created over HTTP.
func importRetailers(ctx context.Context, svc service.RetailerService, inputs []model.RetailerInput) (imported, failed int) {
	for _, input := range inputs {
		if _, err := svc.CreateRetailer(ctx, input); err != nil {
			var verr *service.ValidationError
			if !errors.As(err, &verr) {
				log.Printf("Failed to import %q: %v", input.Name, err)
			}
			failed++
			continue
		}
		imported++
	}
	return imported, failed
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
