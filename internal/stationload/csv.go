// Package stationload ingests the OPIS retail fuel-price CSV corpus
// into the fuel_stations table, mirroring the teacher's GTFS pipeline
// (parse into memory, validate row by row, bulk insert in batches).
package stationload

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// Row is one validated, normalized CSV record ready for insertion.
type Row struct {
	OPISID      string
	Name        string
	Address     string
	City        string
	State       string
	RetailPrice float64
}

// ParseResult holds the outcome of a CSV parse pass.
type ParseResult struct {
	Rows        []Row
	RowsRead    int
	RowsSkipped int
	Errors      []string
}

// columns required on every row (spec §6's OPIS CSV format).
var requiredColumns = []string{"OPIS Truckstop ID", "Truckstop Name", "Address", "City", "State", "Retail Price"}

// ParseCSV reads the OPIS fuel-price CSV, warning and skipping any row
// that fails validation rather than aborting the whole import —
// grounded on gtfs.parseStopsFromReader's column-map/warn-skip idiom.
func ParseCSV(reader io.Reader) (*ParseResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	colMap := makeColumnMap(header)

	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	result := &ParseResult{}

	for lineNum := 2; ; lineNum++ {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.RowsSkipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", lineNum, err))
			continue
		}
		result.RowsRead++

		row, err := rowFromRecord(record, colMap)
		if err != nil {
			result.RowsSkipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", lineNum, err))
			continue
		}

		result.Rows = append(result.Rows, row)
	}

	if len(result.Errors) > 0 {
		log.Printf("stationload: skipped %d of %d rows", result.RowsSkipped, result.RowsRead)
	}

	return result, nil
}

func rowFromRecord(record []string, colMap map[string]int) (Row, error) {
	opisID := getField(record, colMap, "OPIS Truckstop ID")
	name := getField(record, colMap, "Truckstop Name")
	address := getField(record, colMap, "Address")
	city := getField(record, colMap, "City")
	state := getField(record, colMap, "State")
	priceStr := getField(record, colMap, "Retail Price")

	if opisID == "" || name == "" || address == "" || city == "" || state == "" {
		return Row{}, fmt.Errorf("missing a required field")
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid retail price %q: %w", priceStr, err)
	}

	stateCode := strings.ToUpper(state)
	if len(stateCode) > 2 {
		stateCode = stateCode[:2]
	}

	return Row{
		OPISID:      opisID,
		Name:        name,
		Address:     address,
		City:        city,
		State:       stateCode,
		RetailPrice: price,
	}, nil
}

func makeColumnMap(header []string) map[string]int {
	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(col)] = i
	}
	return colMap
}

func getField(record []string, colMap map[string]int, fieldName string) string {
	if idx, ok := colMap[fieldName]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
