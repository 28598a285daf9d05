package magtifun

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// SendSms submits the compose form. A status code the site answers with that
// is not in the client's StatusTable is not an error, the result carries the
// table's fallback message instead.
func (c *Client) SendSms(ctx context.Context, identity UserIdentity, sms SmsOnSend) (SmsSendResult, error) {
	ctx, span := tracer.Start(ctx, "client:SendSms")
	defer span.End()

	s := c.newSession(identity.Token())
	doc, err := s.getDocument(ctx, pageCompose)
	if err != nil {
		return SmsSendResult{}, c.fail(span, report_client_send_sms, err)
	}
	csrfToken, err := ExtractFieldValue(doc, pageCompose, csrfFieldName)
	if err != nil {
		return SmsSendResult{}, c.fail(span, report_client_send_sms, err)
	}

	res, err := s.postForm(ctx, scriptSendSms, map[string]string{
		csrfFieldName:  csrfToken,
		"recipients":   sms.Recipient,
		"message_body": sms.Message,
	})
	if err != nil {
		return SmsSendResult{}, c.fail(span, report_client_send_sms, err)
	}

	code := strings.TrimSpace(res.String())
	if code == statusNotLoggedIn {
		return SmsSendResult{}, c.fail(span, report_client_send_sms, ErrAuthenticationExpired)
	}

	message, known := c.statuses.Lookup(code)
	if !known {
		c.tel.ReportWarning(report_sms_status, "unknown status code", code)
	}
	return SmsSendResult{
		Status:  code == StatusSuccess,
		Message: message,
		Code:    code,
	}, nil
}

// DeleteSms removes a message from the history, it returns true only if the
// site confirmed the deletion.
func (c *Client) DeleteSms(ctx context.Context, identity UserIdentity, id int) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:DeleteSms")
	defer span.End()

	s := c.newSession(identity.Token())
	res, err := s.postForm(ctx, scriptDeleteMessage, map[string]string{
		"type":   "single",
		"msg_id": strconv.Itoa(id),
	})
	if err != nil {
		return false, c.fail(span, report_client_delete_sms, err)
	}

	// Response.String() trims, the body has to be exactly "success"
	return res.StatusCode() == http.StatusOK && string(res.Body()) == StatusSuccess, nil
}
