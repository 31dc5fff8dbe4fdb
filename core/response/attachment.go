package response

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

var filenameReplacer = strings.NewReplacer("\n", "", "\r", "", `"`, "'")

// ContentDisposition returns an attachment Content-Disposition value for
// filename with line breaks removed and double quotes replaced.
func ContentDisposition(filename string) string {
	return fmt.Sprintf(`attachment; filename="%s"`, filenameReplacer.Replace(filename))
}

// Attachment creates a response that downloads data as filename. An empty
// contentType is detected from the filename extension.
func Attachment(data []byte, filename, contentType string) *Response {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return New(Text(string(data))).
		SetStatus(http.StatusOK).
		SetContentType(contentType).
		SetHeader("Content-Disposition", ContentDisposition(filename))
}

// CSV creates a downloadable CSV response from records. A ".csv" extension
// is added to filename when missing.
func CSV(records [][]string, filename string) (*Response, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}
	return Attachment(buf.Bytes(), filename, "text/csv; charset=utf-8"), nil
}
