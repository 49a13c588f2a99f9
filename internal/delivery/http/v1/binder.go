package v1

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"sparknest-backend/pkg/apperror"
	"sparknest-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// listFields are form keys that always decode to a list, even when sent once
var listFields = map[string]bool{"features": true}

// bindPayload reads the request body into an untyped payload. JSON and
// urlencoded bodies are accepted.
func bindPayload(c *gin.Context) (map[string]any, error) {
	if c.ContentType() == gin.MIMEPOSTForm {
		if err := c.Request.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		return formPayload(c.Request.PostForm), nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, bodyError(err)
	}
	return validation.DecodeObject(body)
}

func formPayload(values url.Values) map[string]any {
	payload := make(map[string]any, len(values))
	for key, vals := range values {
		name := strings.TrimSuffix(key, "[]")
		if listFields[name] || name != key {
			list := make([]any, 0, len(vals))
			for _, v := range vals {
				list = append(list, v)
			}
			if existing, ok := payload[name].([]any); ok {
				list = append(existing, list...)
			}
			payload[name] = list
			continue
		}
		if len(vals) > 0 {
			payload[name] = vals[0]
		}
	}
	return payload
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.RequestTooLarge("Request body too large")
	}
	return apperror.BadRequest("Could not read request body")
}
