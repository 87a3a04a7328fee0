// Package daily sequences one run: resolve today's challenge (graphql
// first, browser fallback second), fetch its content, materialize the
// per-language stub files and fire the post hook.
package daily

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/WomB0ComB0/leetcode/lib/scrapers/leetcode"
	"github.com/WomB0ComB0/leetcode/services/scaffold"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/daily")

type Stage string

const (
	StageAPI     Stage = "api"
	StageBrowser Stage = "browser"
)

// AcquireResult keeps the fallback decision visible as data instead of
// burying it in a catch clause: either an identity, or the stage that
// failed and why.
type AcquireResult struct {
	Identity leetcode.Daily
	Stage    Stage
	Err      error
}

func (r AcquireResult) Ok() bool {
	return r.Err == nil
}

// Client is the slice of the graphql client the orchestrator needs.
type Client interface {
	RefreshToken(ctx context.Context) error
	DailyChallenge(ctx context.Context) (leetcode.Daily, error)
	Problem(ctx context.Context, titleSlug string) (leetcode.Problem, error)
}

// SlugFallback recovers only the slug of today's challenge. content is
// always re-fetched through the Client afterwards.
type SlugFallback func(ctx context.Context) (string, error)

type Options struct {
	OutputRoot string
	PostHook   PostHook
}

type Service struct {
	client   Client
	fallback SlugFallback
	options  Options
}

func NewService(client Client, fallback SlugFallback, options Options) Service {
	if options.OutputRoot == "" {
		options.OutputRoot = "."
	}
	return Service{
		client:   client,
		fallback: fallback,
		options:  options,
	}
}

// acquire tries the api exactly once, then the browser exactly once.
// it never retries a stage within a run.
func (s Service) acquire(ctx context.Context) AcquireResult {
	ctx, span := tracer.Start(ctx, "acquire")
	defer span.End()

	slog.InfoContext(ctx, "acquiring daily challenge", "stage", StageAPI)
	apiErr := s.client.RefreshToken(ctx)
	if apiErr == nil {
		var identity leetcode.Daily
		identity, apiErr = s.client.DailyChallenge(ctx)
		if apiErr == nil {
			return AcquireResult{Identity: identity, Stage: StageAPI}
		}
	}
	span.RecordError(apiErr)
	slog.WarnContext(
		ctx, "api acquisition failed, falling back to browser",
		"err", apiErr,
	)

	slog.InfoContext(ctx, "acquiring daily challenge", "stage", StageBrowser)
	slug, err := s.fallback(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "both acquisition stages failed")
		return AcquireResult{Stage: StageBrowser, Err: err}
	}
	// the browser only recovers the slug, the rest of the identity comes
	// with the content fetch
	return AcquireResult{Identity: leetcode.Daily{TitleSlug: slug}, Stage: StageBrowser}
}

func (s Service) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	acquired := s.acquire(ctx)
	if !acquired.Ok() {
		span.SetStatus(codes.Error, "acquisition exhausted")
		return fmt.Errorf("acquire daily challenge (%s stage): %w", acquired.Stage, acquired.Err)
	}
	slog.InfoContext(
		ctx, "resolved daily challenge",
		"stage", acquired.Stage,
		"slug", acquired.Identity.TitleSlug,
	)

	problem, err := s.client.Problem(ctx, acquired.Identity.TitleSlug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "content fetch failed")
		return fmt.Errorf("fetch problem content: %w", err)
	}

	outcomes := scaffold.Materialize(ctx, s.options.OutputRoot, problem)

	err = s.options.PostHook.Run(ctx, problem.TitleSlug)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "post hook failed", "err", err)
	}

	reportSummary(problem, outcomes)
	return nil
}

func reportSummary(problem leetcode.Problem, outcomes []scaffold.Outcome) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Language", "Action", "Path"})
	counts := map[scaffold.Action]int{}
	for _, outcome := range outcomes {
		t.AppendRow(table.Row{outcome.Language, outcome.Action, outcome.Path})
		counts[outcome.Action]++
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	slog.Info(
		"daily challenge scaffolded",
		"problem", fmt.Sprintf("%s. %s (%s)", problem.QuestionId, problem.Title, problem.Difficulty),
		"created", counts[scaffold.ActionCreated],
		"updated", counts[scaffold.ActionUpdated],
		"skipped", counts[scaffold.ActionSkipped],
	)
}
