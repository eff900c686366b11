// Package loader reads the historical apartment-management corpus used for
// offline training. Each CSV row joins one tenant payment with one complaint.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// DateLayout is the dd-mm-yyyy payment date format used by the corpus.
const DateLayout = "02-01-2006"

// Row is one joined historical record.
type Row struct {
	TenantID          string
	RoomType          string
	MonthlyRent       float64
	PaymentID         string
	PaymentAmount     float64
	PaymentDate       time.Time
	PaymentStatus     string
	ComplaintID       string
	ComplaintText     string
	ComplaintCategory string
	ComplaintStatus   string
}

// LoadCSV reads the corpus from path. The header row decides column
// positions; missing required columns are an error, malformed data rows are
// an error too since a silently truncated corpus would train a degraded
// model.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses corpus rows from r.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("corpus: read header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	required := []string{
		"tenant_id", "room_type", "monthly_rent",
		"payment_id", "payment_amount", "payment_date", "payment_status",
		"complaint_id", "complaint_text", "complaint_category", "complaint_status",
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("corpus: missing column %q", name)
		}
	}

	var rows []Row
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("corpus: line %d: %w", line, err)
		}
		rent, err := strconv.ParseFloat(rec[col["monthly_rent"]], 64)
		if err != nil {
			return nil, fmt.Errorf("corpus: line %d: monthly_rent: %w", line, err)
		}
		amount, err := strconv.ParseFloat(rec[col["payment_amount"]], 64)
		if err != nil {
			return nil, fmt.Errorf("corpus: line %d: payment_amount: %w", line, err)
		}
		date, err := time.Parse(DateLayout, rec[col["payment_date"]])
		if err != nil {
			return nil, fmt.Errorf("corpus: line %d: payment_date: %w", line, err)
		}
		rows = append(rows, Row{
			TenantID:          rec[col["tenant_id"]],
			RoomType:          rec[col["room_type"]],
			MonthlyRent:       rent,
			PaymentID:         rec[col["payment_id"]],
			PaymentAmount:     amount,
			PaymentDate:       date,
			PaymentStatus:     rec[col["payment_status"]],
			ComplaintID:       rec[col["complaint_id"]],
			ComplaintText:     rec[col["complaint_text"]],
			ComplaintCategory: rec[col["complaint_category"]],
			ComplaintStatus:   rec[col["complaint_status"]],
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("corpus: no data rows")
	}
	return rows, nil
}
