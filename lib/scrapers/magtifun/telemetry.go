package magtifun

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("scrapers/magtifun")

const (
	report_client_is_valid            = "client.is-valid"
	report_client_login               = "client.login"
	report_client_get_account         = "client.get-account"
	report_client_get_balance         = "client.get-balance"
	report_client_get_balance_history = "client.get-balance-history"
	report_client_get_sms_history     = "client.get-sms-history"
	report_client_send_sms            = "client.send-sms"
	report_client_delete_sms          = "client.delete-sms"
	report_account_gender             = "account.gender"
	report_sms_status                 = "sms.status"
)

// fail marks the span as failed and reports err. Rejected credentials are the
// caller's problem, not a broken component, so they are only traced.
func (c *Client) fail(span trace.Span, report string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errors.Is(err, ErrAuthenticationFailure) || errors.Is(err, ErrAuthenticationExpired) {
		return err
	}
	c.tel.ReportBroken(report, err)
	return err
}
