package magtifun

import (
	"context"
	"strings"
)

// authenticatedMarker only shows up on pages rendered for a logged in user
// ("is on your account", next to the balance).
const authenticatedMarker = "თქვენს ანგარიშზეა"

// IsValid returns true if the site still accepts token. The site answers with
// 200 whether or not the user is logged in, so this looks for the marker in
// the body instead of the status.
func (c *Client) IsValid(ctx context.Context, token SessionToken) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:IsValid")
	defer span.End()

	if token == "" {
		return false, nil
	}

	s := c.newSession(token)
	res, err := s.get(ctx, pageHome)
	if err != nil {
		return false, c.fail(span, report_client_is_valid, err)
	}

	return strings.Contains(string(res.Body()), authenticatedMarker), nil
}

// Login posts the login form and returns the identity of the session the site
// handed out. Rejected credentials are always ErrAuthenticationFailure, no
// detail from the site is passed on.
func (c *Client) Login(ctx context.Context, username, password string) (UserIdentity, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	s := c.newSession("")

	doc, err := s.getDocument(ctx, pageHome)
	if err != nil {
		return UserIdentity{}, c.fail(span, report_client_login, err)
	}
	csrfToken, err := ExtractFieldValue(doc, pageHome, csrfFieldName)
	if err != nil {
		return UserIdentity{}, c.fail(span, report_client_login, err)
	}

	_, err = s.postForm(ctx, pageLogin, map[string]string{
		"user":        username,
		"password":    password,
		"act":         "1",
		csrfFieldName: csrfToken,
	})
	if err != nil {
		return UserIdentity{}, c.fail(span, report_client_login, err)
	}

	key, ok := s.readCookie(sessionCookieName)
	if !ok || key == "" {
		return UserIdentity{}, c.fail(span, report_client_login, ErrAuthenticationFailure)
	}

	valid, err := c.IsValid(ctx, SessionToken(key))
	if err != nil {
		return UserIdentity{}, c.fail(span, report_client_login, err)
	}
	if !valid {
		return UserIdentity{}, c.fail(span, report_client_login, ErrAuthenticationFailure)
	}

	c.tel.ReportDebug("login successful")
	return NewUserIdentity(SessionToken(key)), nil
}
