package session

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// utf8BOM makes Excel and R read the file as UTF-8 so accented characters
// survive the round trip into spreadsheet and statistical tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeader matches the columns of the durable interactions table
var csvHeader = []string{
	"timestamp",
	"course_code",
	"group_id",
	"author",
	"student_message",
	"ai_response",
	"response_length_metric",
}

// ExportCSV serializes turns as BOM-prefixed UTF-8 CSV: one header row plus
// one row per turn, quoted per standard CSV rules.
func ExportCSV(turns []Turn) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for _, t := range turns {
		row := []string{
			t.Timestamp.Format(time.DateTime),
			t.CourseCode,
			t.GroupID,
			t.Author,
			t.StudentMessage,
			t.AIResponse,
			strconv.Itoa(t.ResponseLength),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportFilename names the research dataset download for a session
func ExportFilename(courseCode, groupID string) string {
	return fmt.Sprintf("data_%s_%s.csv", courseCode, groupID)
}
