// Package browser recovers the daily challenge slug by rendering the
// problem list in a headless browser. It exists for the days the graphql
// path is down or the landing page stops serving a csrf token.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/WomB0ComB0/leetcode/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/leetcode/browser")

var ErrExtractionFailed = fmt.Errorf("could not find today's challenge link in the rendered problem list")

// the calendar icon on today's row is the only thing distinguishing it
// from every other problem link. if the site's styling changes this
// breaks silently, there is no other signal in the markup.
const dailyMarkerSelector = `[class*="text-olive"]`

const problemLinkSelector = `a[href^="/problems/"]`

type Options struct {
	// defaults to https://leetcode.com
	BaseUrl  string
	Headless bool
	// bounds the whole navigate-and-render wait, defaults to 45s
	Timeout time.Duration
}

// FetchDailySlug renders the problem listing and returns the slug of
// today's featured problem. it never fetches problem content, the caller
// re-enters the graphql client with the slug it recovers.
func FetchDailySlug(ctx context.Context, opts Options) (string, error) {
	ctx, span := tracer.Start(ctx, "browser:FetchDailySlug")
	defer span.End()

	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://leetcode.com"
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 45
	}

	control := launcher.New().Headless(opts.Headless).Leakless(true)
	defer control.Cleanup()
	controlUrl, err := control.Launch()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to launch browser")
		return "", err
	}

	browser := rod.New().ControlURL(controlUrl).Context(ctx)
	err = browser.Connect()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to connect to browser")
		return "", err
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{
		URL: opts.BaseUrl + "/problemset/",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open problem list page")
		return "", err
	}
	defer page.Close()

	page = page.Timeout(opts.Timeout)
	err = page.WaitLoad()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "page never finished loading")
		return "", err
	}
	// the listing is client-rendered, wait for the first problem link
	// rather than the load event
	_, err = page.Element(problemLinkSelector)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "problem links never rendered")
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read rendered html")
		return "", err
	}

	return ExtractDailySlug(ctx, html)
}

// ExtractDailySlug is the pure half of the fallback: given the rendered
// listing html, find the problem anchor carrying the daily marker.
func ExtractDailySlug(ctx context.Context, html string) (string, error) {
	ctx, span := tracer.Start(ctx, "browser:ExtractDailySlug")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse rendered html")
		return "", err
	}

	marked := doc.Find(problemLinkSelector).FilterFunction(func(_ int, a *goquery.Selection) bool {
		return a.Find(dailyMarkerSelector).Length() > 0
	})
	anchors := htmlutil.GetAnchors(ctx, marked)
	if len(anchors) == 0 {
		span.SetStatus(codes.Error, ErrExtractionFailed.Error())
		return "", ErrExtractionFailed
	}

	slug, err := slugFromHref(anchors[0].Href)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "daily link had a malformed href")
		return "", err
	}
	return slug, nil
}

func slugFromHref(href string) (string, error) {
	link, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	segments := strings.Split(strings.Trim(link.Path, "/"), "/")
	if len(segments) < 2 || segments[0] != "problems" || segments[1] == "" {
		return "", fmt.Errorf("href %q does not point at a problem", href)
	}
	return segments[1], nil
}
