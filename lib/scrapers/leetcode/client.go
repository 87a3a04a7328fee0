package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"time"

	"github.com/WomB0ComB0/leetcode/lib/restyutil"
	"github.com/WomB0ComB0/leetcode/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("scrapers/leetcode")

var ErrTokenNotFound = fmt.Errorf("could not find a csrf token on the landing page")

// QueryError is any graphql call that came back non-2xx or with a
// populated errors array.
type QueryError struct {
	Status  int
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("graphql query failed: status %d: %s", e.Status, e.Message)
}

// Daily is the identity of today's challenge, resolved once per run.
type Daily struct {
	QuestionId string
	Title      string
	TitleSlug  string
	Difficulty string
}

type CodeSnippet struct {
	Lang     string `json:"lang"`
	LangSlug string `json:"langSlug"`
	Code     string `json:"code"`
}

// Problem is the full content of one challenge. At most one snippet per
// langSlug, order carries no meaning.
type Problem struct {
	Daily
	Content      string
	CodeSnippets []CodeSnippet
}

var instrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	instrumentOutput = output
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	Csrf    string
}

type ClientOptions struct {
	// defaults to https://leetcode.com
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://leetcode.com"
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetHeader("accept", "*/*")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetHeader("referer", opts.BaseUrl+"/")
	client.SetHeader("origin", opts.BaseUrl)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 15)

	telemetry.InstrumentResty(client, "scrapers/leetcode/http")
	restyutil.InstrumentClient(client, tracer, instrumentOutput)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

var csrfTokenRegex = regexp.MustCompile(`csrf[Tt]oken['"]?\s*[:=]\s*['"]([a-zA-Z0-9]+)['"]`)

// RefreshToken fetches the landing page and pulls the anti-forgery token
// out of an embedded script assignment. this coupling to the page source
// is brittle against redesigns but it is the only place the token shows
// up without a logged-in session.
func (c *Client) RefreshToken(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:RefreshToken")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch landing page")
		return err
	}

	groups := csrfTokenRegex.FindSubmatch(res.Body())
	if len(groups) < 2 {
		span.SetStatus(codes.Error, ErrTokenNotFound.Error())
		return ErrTokenNotFound
	}

	c.Csrf = string(groups[1])
	c.Http.SetHeader("x-csrftoken", c.Csrf)
	return nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// a fixed, slightly jittered delay before every query keeps the request
// rate below what trips the site's rate limiter
func queryDelay(ctx context.Context) {
	ms, err := random.IntRange(1000, 1500)
	if err != nil {
		ms = 1250
	}
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
	case <-ctx.Done():
	}
}

func (c *Client) query(ctx context.Context, operation, query string, variables map[string]any, data any) error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("client:query:%s", operation))
	defer span.End()

	queryDelay(ctx)

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(graphqlRequest{Query: query, Variables: variables}).
		Post("/graphql")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make graphql request")
		return err
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		qerr := &QueryError{Status: res.StatusCode(), Message: res.Status()}
		span.SetStatus(codes.Error, qerr.Error())
		return qerr
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	err = json.Unmarshal(res.Body(), &envelope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to unmarshal graphql response")
		return err
	}
	if len(envelope.Errors) > 0 {
		qerr := &QueryError{Status: res.StatusCode(), Message: envelope.Errors[0].Message}
		span.SetStatus(codes.Error, qerr.Error())
		return qerr
	}

	err = json.Unmarshal(envelope.Data, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to unmarshal graphql data")
		return err
	}
	return nil
}

const dailyChallengeQuery = `
query questionOfToday {
	activeDailyCodingChallengeQuestion {
		question {
			questionFrontendId
			title
			titleSlug
			difficulty
		}
	}
}`

func (c *Client) DailyChallenge(ctx context.Context) (Daily, error) {
	ctx, span := tracer.Start(ctx, "client:DailyChallenge")
	defer span.End()

	var data struct {
		ActiveDailyCodingChallengeQuestion struct {
			Question struct {
				QuestionFrontendId string `json:"questionFrontendId"`
				Title              string `json:"title"`
				TitleSlug          string `json:"titleSlug"`
				Difficulty         string `json:"difficulty"`
			} `json:"question"`
		} `json:"activeDailyCodingChallengeQuestion"`
	}
	err := c.query(ctx, "questionOfToday", dailyChallengeQuery, nil, &data)
	if err != nil {
		return Daily{}, err
	}

	q := data.ActiveDailyCodingChallengeQuestion.Question
	if q.TitleSlug == "" {
		qerr := &QueryError{Status: 200, Message: "response carried no daily challenge question"}
		span.SetStatus(codes.Error, qerr.Error())
		return Daily{}, qerr
	}
	return Daily{
		QuestionId: q.QuestionFrontendId,
		Title:      q.Title,
		TitleSlug:  q.TitleSlug,
		Difficulty: q.Difficulty,
	}, nil
}

const questionContentQuery = `
query questionContent($titleSlug: String!) {
	question(titleSlug: $titleSlug) {
		content
	}
}`

const questionSnippetsQuery = `
query questionEditorData($titleSlug: String!) {
	question(titleSlug: $titleSlug) {
		questionFrontendId
		title
		titleSlug
		difficulty
		codeSnippets {
			lang
			langSlug
			code
		}
	}
}`

// Problem fetches the statement and the starter snippets with two
// concurrent queries. either failing fails the whole fetch, there is no
// partial result.
func (c *Client) Problem(ctx context.Context, titleSlug string) (Problem, error) {
	ctx, span := tracer.Start(ctx, "client:Problem")
	defer span.End()

	variables := map[string]any{"titleSlug": titleSlug}

	var content struct {
		Question struct {
			Content string `json:"content"`
		} `json:"question"`
	}
	var editor struct {
		Question struct {
			QuestionFrontendId string        `json:"questionFrontendId"`
			Title              string        `json:"title"`
			TitleSlug          string        `json:"titleSlug"`
			Difficulty         string        `json:"difficulty"`
			CodeSnippets       []CodeSnippet `json:"codeSnippets"`
		} `json:"question"`
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return c.query(groupCtx, "questionContent", questionContentQuery, variables, &content)
	})
	group.Go(func() error {
		return c.query(groupCtx, "questionEditorData", questionSnippetsQuery, variables, &editor)
	})
	err := group.Wait()
	if err != nil {
		span.SetStatus(codes.Error, "content fetch failed")
		return Problem{}, err
	}

	q := editor.Question
	return Problem{
		Daily: Daily{
			QuestionId: q.QuestionFrontendId,
			Title:      q.Title,
			TitleSlug:  q.TitleSlug,
			Difficulty: q.Difficulty,
		},
		Content:      content.Question.Content,
		CodeSnippets: q.CodeSnippets,
	}, nil
}
