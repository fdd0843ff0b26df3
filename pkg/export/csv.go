// Package export renders a result row set into downloadable files. Both
// formats are one-shot side effects; nothing flows back into the store.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ilyaedelshtein/kornit-chat/pkg/dataset"
)

// columns is the header row; field names in dataset order.
var columns = []string{"date", "product", "units", "revenue", "country", "channel"}

// WriteCSV writes rows as RFC-4180 CSV with a header row. Values containing
// commas or quotes are escaped by the writer.
func WriteCSV(w io.Writer, rows []dataset.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			r.Product,
			strconv.Itoa(r.Units),
			strconv.Itoa(r.Revenue),
			r.Country,
			r.Channel,
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "failed to write csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}
