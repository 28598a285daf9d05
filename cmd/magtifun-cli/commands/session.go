package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ABGEO/magtifun.abgeo.dev/cmd/magtifun-cli/globals"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/keychain"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/scrapers/magtifun"
)

var errNotLoggedIn = errors.New("not logged in")

// currentIdentity loads the session of the selected profile from the keychain.
func currentIdentity(ctx context.Context) (magtifun.UserIdentity, error) {
	g := globals.Get(ctx)
	entry, err := g.Keychain.Get(ctx, g.Profile)
	if errors.Is(err, keychain.ErrNotFound) {
		return magtifun.UserIdentity{}, fmt.Errorf("profile %q: %w, run `magtifun-cli login <username>` first", g.Profile, errNotLoggedIn)
	}
	if err != nil {
		return magtifun.UserIdentity{}, err
	}
	return magtifun.NewUserIdentity(magtifun.SessionToken(entry.Token)), nil
}

// checkSession forgets the stored token when err shows the site stopped
// accepting it. Pages read with an expired session come back as the login
// form, so a parse error is double checked against the landing page.
func checkSession(ctx context.Context, identity magtifun.UserIdentity, err error) error {
	if err == nil {
		return nil
	}

	expired := errors.Is(err, magtifun.ErrAuthenticationExpired)
	if !expired && errors.Is(err, magtifun.ErrParse) {
		valid, validErr := globals.Get(ctx).Client.IsValid(ctx, identity.Token())
		expired = validErr == nil && !valid
	}
	if !expired {
		return err
	}

	g := globals.Get(ctx)
	delErr := g.Keychain.Delete(ctx, g.Profile)
	if delErr != nil {
		slog.Warn("failed to forget expired session", "profile", g.Profile, "err", delErr)
	}
	return fmt.Errorf("profile %q: session expired, log in again: %w", g.Profile, magtifun.ErrAuthenticationExpired)
}
