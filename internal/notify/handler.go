package notify

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler returns the echo handler for POST /api/notify. Webhook
// failures surface as 502 so the submitter knows delivery did not
// happen; there is no retry.
func Handler(f *Forwarder, log *zap.Logger) echo.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c echo.Context) error {
		var sub FormSubmission
		if err := c.Bind(&sub); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid submission payload")
		}
		if sub.Type == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "submission type is required")
		}

		if err := f.Forward(c.Request().Context(), sub); err != nil {
			log.Error("forwarding submission failed",
				zap.String("type", sub.Type),
				zap.Error(err),
			)
			return echo.NewHTTPError(http.StatusBadGateway, "failed to deliver notification")
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
