package response

import "net/http"

// Redirect creates a response redirecting the client to url. Statuses outside
// the 3xx range default to 302 Found.
func Redirect(url string, status int) *Response {
	if status < 300 || status >= 400 {
		status = http.StatusFound
	}
	return New(Empty()).SetStatus(status).SetHeader("Location", url)
}

// RedirectSeeOther creates a 303 See Other response, the usual reply to a
// POST that should be followed by a GET.
func RedirectSeeOther(url string) *Response {
	return Redirect(url, http.StatusSeeOther)
}
