package globals

import (
	"context"

	"github.com/ABGEO/magtifun.abgeo.dev/lib/keychain"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/scrapers/magtifun"
)

type key struct{}

type Value struct {
	Client   *magtifun.Client
	Keychain keychain.Keychain
	// name of the keychain profile the command acts on
	Profile string
	JSON    bool
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
