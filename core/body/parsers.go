package body

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/dmitrymomot/ambient/core/request"
	"github.com/dmitrymomot/ambient/core/response"
)

var (
	boundaryRe = regexp.MustCompile(`boundary=([^;]+)(?:;|$)`)
	partNameRe = regexp.MustCompile(`name=([^;]+)`)
	partTypeRe = regexp.MustCompile(`(?i)content-type:\s?([^;]+)`)
)

func parseJSON(payload []byte) (any, error) {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, response.ErrBadRequest.WithMessage("invalid JSON body").WithError(err)
	}
	return v, nil
}

func parseURLEncoded(payload string) (map[string]any, error) {
	values, err := url.ParseQuery(strings.TrimSpace(payload))
	if err != nil {
		return nil, response.ErrBadRequest.WithMessage("invalid urlencoded body").WithError(err)
	}
	return request.CollectValues(values), nil
}

// parseMultipart reads form-data parts line by line. Value lines of parts
// sharing a name are joined with a newline in part order. Parts declaring a
// JSON content type are stored decoded.
func parseMultipart(contentType, payload string) (map[string]any, error) {
	m := boundaryRe.FindStringSubmatch(contentType)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return nil, response.ErrBadRequest.WithMessage("form-data boundary not recognized")
	}
	boundary := "--" + strings.TrimSpace(m[1])

	result := make(map[string]any)
	var key, partType string

	flush := func() error {
		if key == "" || !strings.Contains(partType, MIMEJSON) {
			return nil
		}
		s, _ := result[key].(string)
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return response.ErrBadRequest.WithMessage("invalid JSON in form-data field " + key).WithError(err)
		}
		result[key] = v
		return nil
	}

	for _, part := range strings.Split(strings.TrimSpace(payload), boundary) {
		if err := flush(); err != nil {
			return nil, err
		}
		key, partType = "", MIMEText
		valueMode := false

		for _, line := range strings.Split(strings.TrimSpace(part), "\n") {
			line = strings.TrimSpace(line)

			if valueMode {
				if s, ok := result[key].(string); ok && s != "" {
					result[key] = s + "\n" + line
				} else {
					result[key] = line
				}
				continue
			}

			lower := strings.ToLower(line)
			switch {
			case line == "" || line == "--":
				valueMode = key != ""
				if valueMode {
					key = unquote(key)
				}
			case strings.HasPrefix(lower, "content-disposition: form-data;"):
				nm := partNameRe.FindStringSubmatch(line)
				if nm == nil || nm[1] == "" {
					return nil, response.ErrBadRequest.WithMessage("could not read multipart name: " + line)
				}
				key = nm[1]
			case strings.HasPrefix(lower, "content-type:"):
				tm := partTypeRe.FindStringSubmatch(line)
				if tm == nil || tm[1] == "" {
					return nil, response.ErrBadRequest.WithMessage("could not read content-type: " + line)
				}
				partType = tm[1]
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return result, nil
}

func unquote(s string) string {
	if s != "" && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if s != "" && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}
