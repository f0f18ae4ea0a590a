package cefetaluno

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"cefetid-backend/lib/pdftext"
	"cefetid-backend/lib/restyutil"
	"cefetid-backend/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

type SessionOptions struct {
	BaseUrl      string
	Timeout      time.Duration
	RedirectHops int
	// Session is the upstream session cookie value obtained by a prior
	// Login, possibly on another node.
	Session string
}

// SessionClient fetches authenticated pages by bridging an externally
// supplied session value through a direct Cookie header. It holds no
// jar and no state besides the session itself.
type SessionClient struct {
	baseUrl *url.URL
	http    *resty.Client
}

func NewSessionClient(opts SessionOptions) (*SessionClient, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RedirectHops <= 0 {
		opts.RedirectHops = 10
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", acceptHtml)
	client.SetHeader("Cookie", fmt.Sprintf("%s=%s", SessionCookie, opts.Session))
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.RedirectHops))

	telemetry.InstrumentResty(client, "scrapers/cefetaluno/session")
	restyutil.DumpExchanges(client, instrumentOutput)

	return &SessionClient{baseUrl: baseUrl, http: client}, nil
}

func (c *SessionClient) getDocument(ctx context.Context, path string, query map[string]string) (*goquery.Document, error) {
	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	res, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("portal returned %s for %s", res.Status(), path)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Identity re-reads who the session belongs to. The enrollment id is
// the foreign key for every other fetch, so its absence is an error
// here, unlike the other extractions.
func (c *SessionClient) Identity(ctx context.Context) (Identity, error) {
	ctx, span := tracer.Start(ctx, "session:Identity")
	defer span.End()

	doc, err := c.getDocument(ctx, "/aluno/index.action", nil)
	if err != nil {
		return Identity{}, err
	}
	identity := ParseIndex(doc)
	if identity.StudentId == "" {
		return Identity{}, ErrMissingIdentity
	}
	return identity, nil
}

func (c *SessionClient) Profile(ctx context.Context) (Profile, error) {
	ctx, span := tracer.Start(ctx, "session:Profile")
	defer span.End()

	doc, err := c.getDocument(ctx, "/aluno/aluno/perfil/perfil.action", nil)
	if err != nil {
		return Profile{}, err
	}
	return ParseProfile(doc), nil
}

func (c *SessionClient) ReportSummary(ctx context.Context) (ReportSummary, error) {
	ctx, span := tracer.Start(ctx, "session:ReportSummary")
	defer span.End()

	identity, err := c.Identity(ctx)
	if err != nil {
		return ReportSummary{}, err
	}
	doc, err := c.getDocument(
		ctx, "/aluno/aluno/relatorio/relatorios.action",
		map[string]string{"matricula": identity.StudentId},
	)
	if err != nil {
		return ReportSummary{}, err
	}
	return ParseReports(doc), nil
}

func (c *SessionClient) Grades(ctx context.Context) ([]Semester, error) {
	ctx, span := tracer.Start(ctx, "session:Grades")
	defer span.End()

	identity, err := c.Identity(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := c.getDocument(
		ctx, "/aluno/aluno/nota/nota.action",
		map[string]string{"matricula": identity.StudentId},
	)
	if err != nil {
		return nil, err
	}
	return ParseGrades(doc), nil
}

// Schedule fetches the timetable PDF and extracts the discipline names
// and the campus from its text.
func (c *SessionClient) Schedule(ctx context.Context, studentId string) (Schedule, error) {
	ctx, span := tracer.Start(ctx, "session:Schedule")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("matricula", studentId).
		Get("/aluno/aluno/quadrohorario/menu.action")
	if err != nil {
		return Schedule{}, fmt.Errorf("fetch schedule: %w", err)
	}
	if res.IsError() {
		return Schedule{}, fmt.Errorf("portal returned %s for schedule", res.Status())
	}

	text, err := pdftext.Extract(res.Body())
	if err != nil {
		return Schedule{}, fmt.Errorf("extract schedule text: %w", err)
	}
	return Schedule{
		Disciplines: ExtractDisciplineNames(text),
		Campus:      ExtractScheduleCampus(text),
	}, nil
}
