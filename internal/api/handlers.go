package api

import (
	"errors"
	"net/http"
	"slices"

	"github.com/dmitrymomot/formrelay/handler"
	"github.com/dmitrymomot/formrelay/internal/notification"
	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/internal/submission"
	"github.com/dmitrymomot/formrelay/pkg/clientip"
	"github.com/dmitrymomot/formrelay/pkg/email"
	"github.com/dmitrymomot/formrelay/pkg/ratelimit"
	"github.com/dmitrymomot/formrelay/pkg/validator"
)

// submissionData is the data block of a successful submission response.
type submissionData struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
	Interest  string `json:"interest,omitempty"`
	MessageID string `json:"messageId"`
}

type submitConfig struct {
	missingFields string
}

type submitOption func(*submitConfig)

// withMissingFieldsMessage replaces the missing-fields message for one route.
func withMissingFieldsMessage(msg string) submitOption {
	return func(c *submitConfig) { c.missingFields = msg }
}

// submit handles one form kind. An empty kind is the legacy send-mail
// route, which picks the kind from the input.
func (a *api) submit(kind submission.Kind, opts ...submitOption) handler.HandlerFunc[handler.Context, submission.Input] {
	var cfg submitConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx handler.Context, in submission.Input) handler.Response {
		k := kind
		if k == "" {
			k = submission.LegacyKind(in)
		}

		res, err := a.relay.Submit(ctx, k, clientip.FromContext(ctx), in)
		if err != nil {
			if cfg.missingFields != "" {
				err = rewordMissingFields(err, cfg.missingFields)
			}
			return handler.Error(failure(k, err))
		}
		if res.RateLimit.Limit > 0 {
			ratelimit.SetHeaders(ctx.ResponseWriter().Header(), res.RateLimit)
		}

		data := submissionData{
			Name:      res.Submission.Name,
			Email:     res.Submission.Email,
			Company:   res.Submission.Company,
			MessageID: res.MessageID,
		}
		if k == submission.Waitlist {
			data.Interest = res.Submission.InterestDisplay()
		}
		return handler.Success(successMessages[k], data)
	}
}

// rewordMissingFields swaps the missing-fields message on a validation
// error and leaves every other error untouched.
func rewordMissingFields(err error, msg string) error {
	ve := validator.ExtractValidationErrors(err)
	if len(ve) == 0 || ve[0].Message != submission.MsgMissingFields {
		return err
	}
	out := slices.Clone(ve)
	out[0].Message = msg
	return out
}

// failure attaches the kind's user-facing message to delivery errors.
// Validation and rate-limit errors are classified by the error handler.
func failure(kind submission.Kind, err error) error {
	var de *email.DeliveryError
	if errors.As(err, &de) || errors.Is(err, relay.ErrRender) {
		return handler.NewHTTPError(http.StatusInternalServerError, failureMessages[kind], err)
	}
	return err
}

func (a *api) verify(ctx handler.Context, _ struct{}) handler.Response {
	if err := a.relay.Verify(ctx); err != nil {
		return handler.Error(handler.NewHTTPError(http.StatusInternalServerError, msgTransportFailed, err))
	}
	return handler.Success(msgTransportOK, nil)
}

type healthEndpoints struct {
	Contact       string `json:"contact"`
	Collaboration string `json:"collaboration"`
	SendMail      string `json:"sendMail"`
	Test          string `json:"test"`
}

type healthStatus struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
	Endpoints healthEndpoints `json:"endpoints"`
}

func (a *api) health(handler.Context, struct{}) handler.Response {
	return handler.JSON(healthStatus{
		Success:   true,
		Message:   msgServiceRunning,
		Timestamp: notification.FormatClock(a.now()),
		Endpoints: healthEndpoints{
			Contact:       "POST /api/mail/contact",
			Collaboration: "POST /api/mail/collaboration",
			SendMail:      "POST /api/mail/send-mail",
			Test:          "GET /api/mail/test",
		},
	})
}

func (a *api) banner(handler.Context, struct{}) handler.Response {
	return handler.JSON(map[string]string{"message": msgBanner})
}
