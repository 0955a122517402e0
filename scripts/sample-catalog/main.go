package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Writes a sample catalogue export covering the cases the importer handles:
// serial and text dates, comma decimals, negative prices, a repeated header
// row, duplicate names and rows that must be rejected.
func main() {
	out := flag.String("out", "data/catalogue.xlsx", "output path")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rows := [][]any{
		{"Name", "UpdatedOn", "Prices", "Rate %"},
		{"name", "updated_on", "prices", "rate"},
		{"Cordless Drill", 45000, "129,99;119.5", 20},
		{"Safety Equipment Kit", "15/3/2023", "49.90", "5.5%"},
		// 31 February is kept with an empty date
		{"Bench Vice", "31/2/2023", "75", nil},
		{"Workshop Equipment Cart", 44927.75, "-10;250", "abc"},
		// rejected: no name, then no prices
		{"", "01/01/2023", "10", 1},
		{"Angle Grinder", "02/01/2023", nil, 3},
		// supersedes the first drill
		{"Cordless Drill", "20/04/2023", "139", 18},
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				log.Fatalf("Failed to resolve cell: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				log.Fatalf("Failed to set %s: %v", cell, err)
			}
		}
	}

	if err := f.SaveAs(*out); err != nil {
		log.Fatalf("Failed to write workbook: %v", err)
	}

	fmt.Printf("Sample catalogue written to %s (%d rows)\n", *out, len(rows)-1)
}
