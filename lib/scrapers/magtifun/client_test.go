package magtifun

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ABGEO/magtifun.abgeo.dev/lib/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)
	require.Equal(t, DefaultBaseUrl, client.BaseUrl().String())
	require.Equal(t, 30*time.Second, client.opts.Timeout)
	require.Equal(t, rate.Limit(2), client.limiter.Limit())

	message, known := client.statuses.Lookup("success")
	require.True(t, known)
	require.Equal(t, "Successfully sent", message)
}

func TestNewSessionDoesNotTouchNetwork(t *testing.T) {
	site := testutil.NewFakeSite(t)
	client, _ := newTestClient(t, site.URL())

	s := client.newSession(goodToken)
	value, ok := s.readCookie(sessionCookieName)
	require.True(t, ok)
	require.Equal(t, goodToken, value)
	require.Equal(t, site.URL(), s.http.Header.Get("referer"))
	require.Empty(t, site.Requests())

	anonymous := client.newSession("")
	_, ok = anonymous.readCookie(sessionCookieName)
	require.False(t, ok)
}

func TestRedirectHosts(t *testing.T) {
	testCases := []struct {
		host     string
		expected []string
	}{
		{host: "www.magtifun.ge", expected: []string{"www.magtifun.ge", "magtifun.ge"}},
		{host: "magtifun.ge", expected: []string{"magtifun.ge", "www.magtifun.ge"}},
		{host: "127.0.0.1", expected: []string{"127.0.0.1"}},
		{host: "localhost", expected: []string{"localhost"}},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, redirectHosts(test.host), test.host)
	}
}

func TestRedirectWithinSite(t *testing.T) {
	site := testutil.NewFakeSite(t)
	site.Handle(http.MethodGet, pageHome, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, pageLogin, http.StatusFound)
	})
	site.Respond(http.MethodGet, pageLogin, http.StatusOK, authenticatedMarker)

	client, _ := newTestClient(t, site.URL())
	valid, err := client.IsValid(context.Background(), goodToken)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestUpstreamUnavailable(t *testing.T) {
	site := testutil.NewFakeSite(t)
	baseUrl := site.URL()
	site.Server.Close()

	client, _ := newTestClient(t, baseUrl)
	_, err := client.GetBalance(context.Background(), goodIdentity())
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	require.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.True(t, upstreamErr.Retryable())

	_, err = client.DeleteSms(context.Background(), goodIdentity(), 1)
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestUpstreamTimeout(t *testing.T) {
	site := testutil.NewFakeSite(t)
	site.Handle(http.MethodGet, pageHome, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})

	client, err := NewClient(ClientOptions{
		BaseUrl:   site.URL(),
		Timeout:   50 * time.Millisecond,
		RateLimit: rate.Inf,
	})
	require.NoError(t, err)

	_, err = client.IsValid(context.Background(), goodToken)
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.True(t, upstreamErr.Timeout())
}

func TestServerErrorPage(t *testing.T) {
	site := testutil.NewFakeSite(t)
	site.Respond(http.MethodGet, pageAccount, http.StatusBadGateway, "bad gateway")

	client, _ := newTestClient(t, site.URL())
	_, err := client.GetAccount(context.Background(), goodIdentity())
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{err: nil, status: http.StatusOK},
		{err: ErrAuthenticationFailure, status: http.StatusUnauthorized},
		{err: ErrAuthenticationExpired, status: http.StatusUnauthorized},
		{err: parseErrorf(pageHome, "x"), status: http.StatusServiceUnavailable},
		{err: &UpstreamError{Op: "GET /", Err: context.DeadlineExceeded}, status: http.StatusServiceUnavailable},
		{err: errors.New("other"), status: http.StatusInternalServerError},
	}
	for _, test := range testCases {
		require.Equal(t, test.status, HTTPStatus(test.err))
	}
}
