package report

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/ksdme/mailreport/internal/models"
	"github.com/pkg/errors"
)

// Writes the records as CSV, with a header row, in the order given.
func WriteCSV(w io.Writer, records []models.Mailbox) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(models.Columns); err != nil {
		return errors.Wrap(err, "could not write csv header")
	}
	for _, record := range records {
		if err := writer.Write(record.Row()); err != nil {
			return errors.Wrap(err, "could not write csv row")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "could not write csv")
}

func ExportCSV(path string, records []models.Mailbox) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create csv file")
	}

	if err := WriteCSV(file, records); err != nil {
		file.Close()
		return err
	}

	return errors.Wrap(file.Close(), "could not close csv file")
}
