package magtifun

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/ABGEO/magtifun.abgeo.dev/lib/restyutil"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultBaseUrl = "http://www.magtifun.ge"

const (
	pageHome           = "/"
	pageLogin          = "/index.php?page=11"
	pageCompose        = "/index.php?page=2"
	pageAccount        = "/index.php?page=7"
	pageSmsHistory     = "/index.php?page=10&lang=en"
	pageBalanceHistory = "/index.php?page=16&lang=en"

	scriptSendSms       = "/scripts/sms_send.php"
	scriptDeleteMessage = "/scripts/delete_message.php"
)

const sessionCookieName = "User"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// per request timeout, defaults to 30 seconds
	Timeout time.Duration
	// requests per second shared by every session of the client, defaults to 2,
	// rate.Inf disables limiting
	RateLimit rate.Limit
	Burst     int
	// wraps the transport to get past cloudflare's browser checks
	CloudflareBypass bool
	// defaults to DefaultStatusTable()
	Statuses *StatusTable
	// defaults to telemetry.SlogAPI
	Telemetry telemetry.API
	// if set, every request/response pair is dumped to it while debug logging is on
	DumpOutput restyutil.InstrumentOutput
}

// Client performs the site operations. It holds configuration only, every
// operation builds its own http session so a single Client may be shared
// across goroutines and users.
type Client struct {
	baseUrl  *url.URL
	opts     ClientOptions
	limiter  *rate.Limiter
	statuses *StatusTable
	tel      telemetry.API
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 2
	}
	// max burst >= rate just means that no requests will be dropped
	if opts.Burst == 0 {
		opts.Burst = 2
	}
	if opts.Statuses == nil {
		opts.Statuses = DefaultStatusTable()
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.SlogAPI{}
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseUrl:  baseUrl,
		opts:     opts,
		limiter:  rate.NewLimiter(opts.RateLimit, opts.Burst),
		statuses: opts.Statuses,
		tel:      telemetry.NewScopedAPI("magtifun", opts.Telemetry),
	}, nil
}

func (c *Client) BaseUrl() *url.URL {
	u := *c.baseUrl
	return &u
}

// session is a single http client scoped to one operation (or one short chain
// of requests like paginated history).
type session struct {
	http    *resty.Client
	jar     http.CookieJar
	baseUrl *url.URL
}

// newSession builds an http client carrying token as the session cookie, an
// empty token builds an anonymous session. Nothing is sent over the network.
func (c *Client) newSession(token SessionToken) session {
	// cookiejar.New never fails with nil options
	jar, _ := cookiejar.New(nil)
	if token != "" {
		jar.SetCookies(c.baseUrl, []*http.Cookie{{
			Name:  sessionCookieName,
			Value: string(token),
		}})
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(c.opts.BaseUrl)
	httpClient.SetCookieJar(jar)
	if c.opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetHeader("referer", c.opts.BaseUrl)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(redirectHosts(c.baseUrl.Hostname())...))
	httpClient.SetTimeout(c.opts.Timeout)

	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return c.limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, "magtifun/http", c.tel)
	if c.opts.DumpOutput != nil {
		restyutil.InstrumentClient(httpClient, c.opts.DumpOutput)
	}

	return session{
		http:    httpClient,
		jar:     jar,
		baseUrl: c.baseUrl,
	}
}

// redirectHosts allows redirects between the www and the bare domain of the
// site, the site moves between the two.
func redirectHosts(host string) []string {
	if bare, ok := strings.CutPrefix(host, "www."); ok {
		return []string{host, bare}
	}
	if net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return []string{host}
	}
	return []string{host, "www." + host}
}

// readCookie returns the value of the named cookie the session currently
// holds for the site.
func (s session) readCookie(name string) (string, bool) {
	for _, cookie := range s.jar.Cookies(s.baseUrl) {
		if cookie.Name == name {
			return cookie.Value, true
		}
	}
	return "", false
}

func (s session) get(ctx context.Context, endpoint string) (*resty.Response, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		return nil, &UpstreamError{Op: "GET " + endpoint, Err: err}
	}
	return res, nil
}

func (s session) postForm(ctx context.Context, endpoint string, form map[string]string) (*resty.Response, error) {
	res, err := s.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(endpoint)
	if err != nil {
		return nil, &UpstreamError{Op: "POST " + endpoint, Err: err}
	}
	return res, nil
}

func (s session) getDocument(ctx context.Context, endpoint string) (*goquery.Document, error) {
	res, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return parseDocument(endpoint, res)
}

func (s session) postDocument(ctx context.Context, endpoint string, form map[string]string) (*goquery.Document, error) {
	res, err := s.postForm(ctx, endpoint, form)
	if err != nil {
		return nil, err
	}
	return parseDocument(endpoint, res)
}

func parseDocument(endpoint string, res *resty.Response) (*goquery.Document, error) {
	if res.StatusCode() >= 500 {
		return nil, &UpstreamError{
			Op:  endpoint,
			Err: errUnexpectedStatus(res.Status()),
		}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, parseErrorf(endpoint, "read html: %s", err.Error())
	}
	return doc, nil
}
