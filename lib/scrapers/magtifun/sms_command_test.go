package magtifun

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendSms(t *testing.T) {
	testCases := []struct {
		code     string
		expected SmsSendResult
		warning  bool
	}{
		{code: "success", expected: SmsSendResult{Status: true, Message: "Successfully sent", Code: "success"}},
		{code: "not_enough_credit", expected: SmsSendResult{Status: false, Message: "Not enough credits", Code: "not_enough_credit"}},
		{code: "not_enough_money", expected: SmsSendResult{Status: false, Message: "Not enough money", Code: "not_enough_money"}},
		{code: "max_messages", expected: SmsSendResult{Status: false, Message: "Maximum 3 Messages", Code: "max_messages"}},
		{code: "incorrect_mobile", expected: SmsSendResult{Status: false, Message: "Incorrect mobile number", Code: "incorrect_mobile"}},
		{code: "xyz", expected: SmsSendResult{Status: false, Message: "Unknown error", Code: "xyz"}, warning: true},
	}

	for _, test := range testCases {
		site := newFakeMagtifun(t)
		site.Respond(http.MethodGet, pageCompose, http.StatusOK, string(fixture(t, "compose.html")))
		site.Respond(http.MethodPost, scriptSendSms, http.StatusOK, test.code)

		client, tel := newTestClient(t, site.URL())
		result, err := client.SendSms(context.Background(), goodIdentity(), SmsOnSend{
			Recipient: "599123456",
			Message:   "გამარჯობა",
		})
		require.NoError(t, err, test.code)
		require.Equal(t, test.expected, result, test.code)
		require.Equal(t, test.warning, tel.Has("warning", report_sms_status), test.code)

		requests := site.Requests()
		require.Len(t, requests, 2)
		post := requests[1]
		require.Equal(t, "f00dfeed42", post.Form.Get("csrf_token"))
		require.Equal(t, "599123456", post.Form.Get("recipients"))
		require.Equal(t, "გამარჯობა", post.Form.Get("message_body"))
		require.Equal(t, goodToken, post.Cookies[sessionCookieName])
		require.Equal(t, site.URL(), post.Referer)
	}
}

func TestSendSmsNotLoggedIn(t *testing.T) {
	site := newFakeMagtifun(t)
	site.Respond(http.MethodGet, pageCompose, http.StatusOK, string(fixture(t, "compose.html")))
	site.Respond(http.MethodPost, scriptSendSms, http.StatusOK, "not_logged_in")

	client, tel := newTestClient(t, site.URL())
	_, err := client.SendSms(context.Background(), goodIdentity(), SmsOnSend{Recipient: "599123456", Message: "hi"})
	require.ErrorIs(t, err, ErrAuthenticationExpired)
	require.Equal(t, http.StatusUnauthorized, HTTPStatus(err))
	require.False(t, tel.Has("broken", report_client_send_sms))
}

func TestSendSmsNoCsrfToken(t *testing.T) {
	site := newFakeMagtifun(t)
	site.Respond(http.MethodGet, pageCompose, http.StatusOK, string(fixture(t, "login.html"))[:20])

	client, _ := newTestClient(t, site.URL())
	_, err := client.SendSms(context.Background(), goodIdentity(), SmsOnSend{Recipient: "599123456", Message: "hi"})
	require.ErrorIs(t, err, ErrParse)
	// the form is never posted without a token
	require.Len(t, site.Requests(), 1)
}

func TestSendSmsCustomStatusTable(t *testing.T) {
	site := newFakeMagtifun(t)
	site.Respond(http.MethodGet, pageCompose, http.StatusOK, string(fixture(t, "compose.html")))
	site.Respond(http.MethodPost, scriptSendSms, http.StatusOK, "success")

	client, err := NewClient(ClientOptions{
		BaseUrl:  site.URL(),
		Statuses: NewStatusTable(map[string]string{"success": "გაიგზავნა"}, "შეცდომა"),
	})
	require.NoError(t, err)

	result, err := client.SendSms(context.Background(), goodIdentity(), SmsOnSend{Recipient: "599123456", Message: "hi"})
	require.NoError(t, err)
	require.True(t, result.Status)
	require.Equal(t, "გაიგზავნა", result.Message)
}

func TestStatusTableIsImmutable(t *testing.T) {
	messages := map[string]string{"success": "ok"}
	table := NewStatusTable(messages, "fallback")
	messages["success"] = "changed"

	message, known := table.Lookup("success")
	require.True(t, known)
	require.Equal(t, "ok", message)

	message, known = table.Lookup("missing")
	require.False(t, known)
	require.Equal(t, "fallback", message)
}

func TestDeleteSms(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		expected bool
	}{
		{name: "deleted", status: http.StatusOK, body: "success", expected: true},
		{name: "rejected", status: http.StatusOK, body: "error", expected: false},
		{name: "empty body", status: http.StatusOK, body: "", expected: false},
		{name: "trailing newline", status: http.StatusOK, body: "success\n", expected: false},
		{name: "leading space", status: http.StatusOK, body: " success", expected: false},
		{name: "server error", status: http.StatusInternalServerError, body: "success", expected: false},
		{name: "redirected to login", status: http.StatusForbidden, body: "success", expected: false},
	}

	for _, test := range testCases {
		site := newFakeMagtifun(t)
		site.Respond(http.MethodPost, scriptDeleteMessage, test.status, test.body)

		client, _ := newTestClient(t, site.URL())
		deleted, err := client.DeleteSms(context.Background(), goodIdentity(), 42)
		require.NoError(t, err, test.name)
		require.Equal(t, test.expected, deleted, test.name)

		requests := site.Requests()
		require.Len(t, requests, 1, test.name)
		require.Equal(t, "single", requests[0].Form.Get("type"))
		require.Equal(t, "42", requests[0].Form.Get("msg_id"))
		require.Equal(t, goodToken, requests[0].Cookies[sessionCookieName])
	}
}
