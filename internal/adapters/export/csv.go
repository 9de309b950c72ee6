// Package export renders rankings for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/screener/internal/domain/model"
)

// ContentType is the media type of WriteCSV output.
const ContentType = "text/csv; charset=utf-8"

// Header is the first CSV row.
var Header = []string{"Rank", "Name", "Email", "Phone", "Experience", "Education", "Match Score"}

// WriteCSV writes one row per ranked candidate after the header. Scores keep
// two decimals.
func WriteCSV(w io.Writer, ranked []model.RankedCandidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range ranked {
		row := []string{
			strconv.Itoa(c.Rank),
			c.Name,
			c.Email,
			c.Phone,
			c.Experience,
			c.Education,
			strconv.FormatFloat(c.Score, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", c.Rank, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
