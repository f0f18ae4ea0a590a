package cefetaluno

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"cefetid-backend/lib/htmlutil"
	"cefetid-backend/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// CheckCpaStatus reports whether the portal is currently diverting
// logins to the CPA survey system. Best-effort by contract: any failure
// to decide collapses to false.
func CheckCpaStatus(ctx context.Context, opts ClientOptions) bool {
	ctx, span := tracer.Start(ctx, "CheckCpaStatus")
	defer span.End()

	opts = opts.withDefaults()
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return false
	}
	cpaOrigin, err := url.Parse(opts.CpaOrigin)
	if err != nil {
		return false
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.NoRedirectPolicy())

	telemetry.InstrumentResty(client, "scrapers/cefetaluno/cpa")

	res, err := client.R().
		SetContext(ctx).
		Get("/aluno/index.action")
	if err != nil && !isRedirectDisabledErr(err) {
		return false
	}

	action := classifyRedirect(
		res.StatusCode(),
		res.Header().Get("Location"),
		baseUrl,
		cpaOrigin,
	)
	return action.kind == redirectCpaBlocked
}

// SubmitCpaId runs the survey-system handshake for one national id:
// grab the anti-forgery token cookie from the entry page, post the id,
// and scrape the continuation link out of the answer. Uses its own
// fresh jar, independent of any login.
func SubmitCpaId(ctx context.Context, opts ClientOptions, cpf string) (string, error) {
	ctx, span := tracer.Start(ctx, "SubmitCpaId")
	defer span.End()

	opts = opts.withDefaults()
	cpaOrigin, err := url.Parse(opts.CpaOrigin)
	if err != nil {
		return "", err
	}
	formUrl := opts.CpaOrigin + "/aluno/"

	jar, err := cookiejar.New(nil)
	if err != nil {
		return "", err
	}

	client := resty.New()
	client.SetBaseURL(opts.CpaOrigin)
	client.SetCookieJar(jar)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", acceptHtml)
	client.SetHeader("Origin", opts.CpaOrigin)
	client.SetHeader("Referer", formUrl)
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.RedirectHops))

	telemetry.InstrumentResty(client, "scrapers/cefetaluno/cpa")

	_, err = client.R().
		SetContext(ctx).
		Get("/aluno/")
	if err != nil {
		return "", fmt.Errorf("fetch cpa entry page: %w", err)
	}

	token := cookieByName(jar, cpaOrigin, "csrftoken")
	if token == "" {
		return "", &CpaManualError{
			Reason: "could not obtain the cpa anti-forgery token",
			CpaUrl: formUrl,
		}
	}

	res, err := client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"csrfmiddlewaretoken": token,
			"cpf":                 cpf,
		}).
		Post("/aluno/validar/")
	if err != nil {
		return "", fmt.Errorf("submit cpa id: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", fmt.Errorf("parse cpa response: %w", err)
	}

	// the confirmation page links the student forward with a
	// "clique aqui" anchor
	anchor, ok := htmlutil.FindAnchorByText(doc.Find("a"), cpaOrigin, "aqui")
	if !ok || anchor.Href == "" {
		return "", &CpaManualError{
			Reason: "could not find the cpa continuation link",
			CpaUrl: formUrl,
		}
	}
	return anchor.Href, nil
}

func cookieByName(jar http.CookieJar, origin *url.URL, name string) string {
	target := origin.ResolveReference(&url.URL{Path: "/aluno/"})
	for _, cookie := range jar.Cookies(target) {
		if strings.EqualFold(cookie.Name, name) {
			return cookie.Value
		}
	}
	return ""
}
