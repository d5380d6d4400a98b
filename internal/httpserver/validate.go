package httpserver

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"
)

// Per-endpoint validation rules are enumerated as a table of fieldRule
// values and checked before any service call.
type fieldRule struct {
	field  string
	value  string
	email  bool
	minLen int
}

func validateFields(rules []fieldRule) error {
	for _, r := range rules {
		v := strings.TrimSpace(r.value)
		if v == "" {
			return echo.NewHTTPError(http.StatusBadRequest, r.field+" is required")
		}
		if r.email {
			if _, err := mail.ParseAddress(v); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, r.field+" must be a valid email address")
			}
		}
		if r.minLen > 0 && len(v) < r.minLen {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("%s must be at least %d characters", r.field, r.minLen))
		}
	}
	return nil
}
