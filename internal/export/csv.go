package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
)

var csvHeader = []string{"Day", "Subject", "Minutes"}

// WriteCSV writes one row per (day, subject, minutes) allocation
func WriteCSV(w io.Writer, plan *domain.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, d := range plan.Days {
		for _, a := range d.Allocations {
			if err := cw.Write([]string{d.Label(), a.Subject, strconv.Itoa(a.Minutes)}); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
