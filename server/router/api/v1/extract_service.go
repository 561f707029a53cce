package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/hrygo/extractdate/server/internal/errors"
	"github.com/hrygo/extractdate/server/internal/observability"
)

// ExtractRequest is the body of POST /api/v1/extract.
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResponse reports one extraction.
type ExtractResponse struct {
	Successful bool   `json:"successful"`
	Timestamp  int64  `json:"timestamp,omitempty"`
	Display    string `json:"display,omitempty"`
	Reason     string `json:"reason"`
	Month      string `json:"month,omitempty"`
	Day        string `json:"day,omitempty"`
	Hour       string `json:"hour,omitempty"`
	Minute     string `json:"minute,omitempty"`
}

// Extract runs a fresh extraction session over the request text.
// Only empty text is rejected; whitespace-only text is extracted like any
// other and reports no_time_mention.
// POST /api/v1/extract
func (s *APIV1Service) Extract(c echo.Context) error {
	reqCtx := s.requestContextOf(c)

	var req ExtractRequest
	if err := c.Bind(&req); err != nil {
		reqCtx.Error("invalid extract request", err)
		return writeError(c, apierrors.Wrap(err, apierrors.ErrCodeInvalidArgument, "invalid request body"))
	}
	if req.Text == "" {
		reqCtx.Warn("empty extract text")
		return writeError(c, apierrors.InvalidArgument("text is required"))
	}

	m, err := s.newExtractor().TryExtract(req.Text)
	if err != nil {
		// A fresh session with non-empty text always yields a result.
		reqCtx.Error("extractor unavailable", err)
		return writeError(c, err)
	}

	s.Metrics.RecordExtraction(m.Successful, string(m.Reason), reqCtx.Duration())
	reqCtx.Info("extract",
		slog.Int(observability.LogFieldTextLen, len(req.Text)),
		slog.String(observability.LogFieldReason, string(m.Reason)),
		reqCtx.DurationAttr(),
	)
	if !m.Successful {
		reqCtx.Debug("extraction failed", slog.String("text", req.Text), slog.String("tokens", m.String()))
	}

	resp := ExtractResponse{Successful: m.Successful, Reason: string(m.Reason)}
	if m.Successful {
		resp.Timestamp = m.Timestamp
		resp.Display = m.Display
		resp.Month = m.Month
		resp.Day = m.Day
		resp.Hour = m.Hour
		resp.Minute = m.Minute
	}
	return c.JSON(http.StatusOK, resp)
}

// writeError renders err as an APIError body; errors without a code are 500.
func writeError(c echo.Context, err error) error {
	code := apierrors.GetCodeFromError(err, apierrors.ErrCodeInternal)
	return c.JSON(code.HTTPStatus(), apierrors.FromError(err))
}
