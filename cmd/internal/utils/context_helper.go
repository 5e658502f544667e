package utils

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const HeaderSessionID = "X-Session-Id"

// GetSessionKey identifies the caller for per-client state such as
// predictive search debouncing. Clients should send X-Session-Id; the real
// IP is the fallback.
func GetSessionKey(c echo.Context) string {
	if sid := strings.TrimSpace(c.Request().Header.Get(HeaderSessionID)); sid != "" {
		return "sid:" + sid
	}
	return "ip:" + c.RealIP()
}
