package cefetaluno

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"time"

	"cefetid-backend/lib/restyutil"
	"cefetid-backend/lib/telemetry"
	"cefetid-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/cefetaluno")

const (
	DefaultBaseUrl   = "https://alunos.cefet-rj.br"
	DefaultCpaOrigin = "https://cpa.cefet-rj.br"

	// SessionCookie is the upstream session cookie issued on login and
	// expected on every authenticated fetch.
	SessionCookie = "JSESSIONIDSSO"

	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"
	acceptHtml = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

type ClientOptions struct {
	BaseUrl   string
	CpaOrigin string
	// Timeout bounds the whole multi-hop exchange, not a single hop.
	Timeout time.Duration
	// MaxLoginAttempts bounds full credential resubmissions when the
	// session cookie never shows up.
	MaxLoginAttempts int
	RedirectHops     int
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.BaseUrl == "" {
		o.BaseUrl = DefaultBaseUrl
	}
	if o.CpaOrigin == "" {
		o.CpaOrigin = DefaultCpaOrigin
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Second * 30
	}
	if o.MaxLoginAttempts <= 0 {
		o.MaxLoginAttempts = 2
	}
	if o.RedirectHops <= 0 {
		o.RedirectHops = 10
	}
	return o
}

// Client drives one login against the portal. Its cookie jar is created
// fresh and never shared: concurrent logins must each construct their
// own Client, sharing one leaks cookies across users.
type Client struct {
	opts      ClientOptions
	baseUrl   *url.URL
	cpaOrigin *url.URL
	jar       *cookiejar.Jar
	http      *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	opts = opts.withDefaults()

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	cpaOrigin, err := url.Parse(opts.CpaOrigin)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetCookieJar(jar)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", acceptHtml)
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.RedirectHops))

	telemetry.InstrumentResty(client, "scrapers/cefetaluno/http")
	restyutil.DumpExchanges(client, instrumentOutput)

	return &Client{
		opts:      opts,
		baseUrl:   baseUrl,
		cpaOrigin: cpaOrigin,
		jar:       jar,
		http:      client,
	}, nil
}

// Login runs the authentication protocol to one of its terminal states:
// a session plus identity, or a classified failure. Only the
// missing-session-cookie case is retried; a rejection message and a
// missing enrollment id are definitive.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	for attempt := 1; attempt <= c.opts.MaxLoginAttempts; attempt++ {
		res, err := c.http.R().
			SetContext(ctx).
			SetFormData(map[string]string{
				"j_username": username,
				"j_password": password,
			}).
			Post("/aluno/j_security_check")
		if err != nil {
			span.SetStatus(codes.Error, "failed to submit credentials")
			return LoginResult{}, fmt.Errorf("submit credentials: %w", err)
		}

		// the portal answers 200 on bad credentials, the notification
		// script is the only tell
		if msg := ExtractNotifyText(string(res.Body())); msg != "" {
			span.SetStatus(codes.Error, "credentials rejected")
			return LoginResult{}, &InvalidCredentialsError{Message: msg}
		}

		doc, err := c.fetchLanding(ctx)
		if err != nil {
			return LoginResult{}, err
		}

		identity := ParseIndex(doc)
		if identity.StudentId == "" {
			span.SetStatus(codes.Error, ErrMissingIdentity.Error())
			return LoginResult{}, ErrMissingIdentity
		}

		session := c.sessionCookie()
		if session == "" {
			slog.WarnContext(
				ctx, "login looked clean but no session cookie was issued",
				"attempt", attempt,
			)
			continue
		}

		identity.Name = textutil.CapitalizeName(identity.Name)
		return LoginResult{Session: session, Student: identity}, nil
	}

	span.SetStatus(codes.Error, ErrTransientUpstream.Error())
	return LoginResult{}, ErrTransientUpstream
}

// fetchLanding gets the authenticated index page. The first fetch runs
// with redirects disabled so a diversion to the CPA system can be told
// apart from the portal's own redirect chain.
func (c *Client) fetchLanding(ctx context.Context) (*goquery.Document, error) {
	c.http.SetRedirectPolicy(resty.NoRedirectPolicy())
	res, err := c.http.R().
		SetContext(ctx).
		Get("/aluno/index.action")
	c.http.SetRedirectPolicy(resty.FlexibleRedirectPolicy(c.opts.RedirectHops))
	if err != nil && !isRedirectDisabledErr(err) {
		return nil, fmt.Errorf("fetch landing page: %w", err)
	}

	action := classifyRedirect(
		res.StatusCode(),
		res.Header().Get("Location"),
		c.baseUrl,
		c.cpaOrigin,
	)
	switch action.kind {
	case redirectCpaBlocked:
		return nil, ErrCpaBlocked
	case redirectFollow:
		res, err = c.http.R().
			SetContext(ctx).
			Get(action.target.String())
		if err != nil {
			return nil, fmt.Errorf("follow landing redirect: %w", err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse landing page: %w", err)
	}
	return doc, nil
}

func (c *Client) sessionCookie() string {
	target := c.baseUrl.ResolveReference(&url.URL{Path: "/aluno/"})
	for _, cookie := range c.jar.Cookies(target) {
		if cookie.Name == SessionCookie {
			return cookie.Value
		}
	}
	return ""
}
