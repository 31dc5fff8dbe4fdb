package response

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// ErrorPage is the default HTML error page.
func ErrorPage(data ErrorBody) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(strconv.Itoa(data.StatusCode) + " " + data.Error)
		_, err := io.WriteString(w, `<html style="background-color: #333; color: #bbb;">`+
			`<head><title>`+title+`</title></head>`+
			`<body><center><h1>`+title+`</h1></center>`+
			`<center><h4>`+templ.EscapeString(data.Message)+`</h4></center><hr color="#666">`+
			`</body></html>`)
		return err
	})
}
