package magtifun

import (
	"bytes"
	"embed"
	"net/http"
	"testing"
	"time"

	"github.com/ABGEO/magtifun.abgeo.dev/lib/telemetry"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/testutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

//go:embed testdata/*.html
var fixtures embed.FS

const goodToken = "good-token"

func fixture(t testing.TB, name string) []byte {
	contents, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	return contents
}

func fixtureDocument(t testing.TB, name string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(fixture(t, name)))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func markupDocument(t testing.TB, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func newTestClient(t testing.TB, baseUrl string) (*Client, *telemetry.RecordingAPI) {
	tel := &telemetry.RecordingAPI{}
	client, err := NewClient(ClientOptions{
		BaseUrl:   baseUrl,
		Timeout:   time.Second * 5,
		RateLimit: rate.Inf,
		Telemetry: tel,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client, tel
}

// newFakeMagtifun serves the landing page, logged in or not depending on the
// session cookie.
func newFakeMagtifun(t testing.TB) *testutil.FakeSite {
	site := testutil.NewFakeSite(t)
	home := fixture(t, "home.html")
	login := fixture(t, "login.html")

	site.Handle(http.MethodGet, "/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/html; charset=utf-8")
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil && cookie.Value == goodToken {
			_, _ = w.Write(home)
			return
		}
		_, _ = w.Write(login)
	})
	return site
}

func goodIdentity() UserIdentity {
	return NewUserIdentity(goodToken)
}
