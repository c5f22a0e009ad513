package annotation

import (
	"encoding/csv"
	"io"

	"aws-visibility/internal/errors"
)

// Header is the column layout the platform's CMDB upload endpoint expects
var Header = []string{"IP", "SaaS Provider", "SaaS Region", "SaaS Component"}

// WriteCSV renders the rows as an upload-ready CSV document, header
// included.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return errors.Internal("failed to write annotation header", err)
	}
	for _, row := range rows {
		record := []string{row.IP, row.Provider, row.Region, row.Component}
		if err := cw.Write(record); err != nil {
			return errors.Internal("failed to write annotation row", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Internal("failed to flush annotation csv", err)
	}
	return nil
}
