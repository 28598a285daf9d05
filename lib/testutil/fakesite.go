package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Request is what FakeSite recorded about a single request it answered.
type Request struct {
	Method  string
	Path    string
	Form    url.Values
	Cookies map[string]string
	Referer string
}

// FakeSite is an http server standing in for the scraped site. Routes are
// matched on method + path + raw query, unmatched requests get a 404.
type FakeSite struct {
	Server *httptest.Server

	mutex    sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []Request
}

func NewFakeSite(t testing.TB) *FakeSite {
	site := &FakeSite{handlers: map[string]http.HandlerFunc{}}
	site.Server = httptest.NewServer(http.HandlerFunc(site.serve))
	t.Cleanup(site.Server.Close)
	return site
}

func (s *FakeSite) URL() string {
	return s.Server.URL
}

func routeKey(method, pathAndQuery string) string {
	return fmt.Sprintf("%s %s", method, pathAndQuery)
}

// Handle registers handler for method and a path with an optional query,
// ex. `/index.php?page=10&lang=en`.
func (s *FakeSite) Handle(method, pathAndQuery string, handler http.HandlerFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.handlers[routeKey(method, pathAndQuery)] = handler
}

// Respond registers a handler that always answers with status and body.
func (s *FakeSite) Respond(method, pathAndQuery string, status int, body string) {
	s.Handle(method, pathAndQuery, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// Requests returns the requests answered so far, in order.
func (s *FakeSite) Requests() []Request {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *FakeSite) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	cookies := map[string]string{}
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}

	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	s.mutex.Lock()
	s.requests = append(s.requests, Request{
		Method:  r.Method,
		Path:    target,
		Form:    r.PostForm,
		Cookies: cookies,
		Referer: r.Referer(),
	})
	handler, ok := s.handlers[routeKey(r.Method, target)]
	s.mutex.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}
