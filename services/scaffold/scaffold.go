package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/WomB0ComB0/leetcode/lib/scrapers/leetcode"
	"github.com/WomB0ComB0/leetcode/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("services/scaffold")

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
)

// Outcome is what happened for one catalog language. outcomes are only
// reported, never persisted.
type Outcome struct {
	Language string
	Action   Action
	Path     string
}

// Materialize writes one stub file per catalog language under root,
// skipping any file the user has already put real code into. a write
// failure is logged and that language's outcome omitted, the rest of the
// batch continues.
func Materialize(ctx context.Context, root string, problem leetcode.Problem) []Outcome {
	ctx, span := tracer.Start(ctx, "Materialize")
	defer span.End()

	statement := textutil.HTMLToText(problem.Content)
	slug := textutil.Slugify(problem.Title)
	if slug == "" {
		slug = problem.TitleSlug
	}

	snippets := make(map[string]string, len(problem.CodeSnippets))
	for _, snippet := range problem.CodeSnippets {
		snippets[snippet.LangSlug] = snippet.Code
	}

	outcomes := []Outcome{}
	for _, lang := range Catalog {
		outcome, err := materializeOne(lang, root, slug, statement, snippets[lang.Key], problem)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to write stub file")
			slog.ErrorContext(
				ctx, "failed to write stub file",
				"language", lang.Key,
				"err", err,
			)
			continue
		}

		span.AddEvent("stub", trace.WithAttributes(
			attribute.String("language", outcome.Language),
			attribute.String("action", string(outcome.Action)),
			attribute.String("path", outcome.Path),
		))
		slog.InfoContext(
			ctx, "stub file",
			"language", outcome.Language,
			"action", outcome.Action,
			"path", outcome.Path,
		)
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func materializeOne(lang Language, root, slug, statement, snippet string, problem leetcode.Problem) (Outcome, error) {
	dir := filepath.Join(root, lang.Key, strings.ToLower(problem.Difficulty))
	path := filepath.Join(dir, FileName(lang, problem.QuestionId, slug))

	existing, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return Outcome{}, err
	}
	if exists && hasSubstantiveContent(string(existing)) {
		return Outcome{Language: lang.Key, Action: ActionSkipped, Path: path}, nil
	}

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return Outcome{}, err
	}

	// a missing snippet is not an error, the file becomes a comment-only
	// placeholder the user can fill in
	body := fmt.Sprintf(
		"%s\n%s\n%s\n\n%s",
		lang.CommentOpen, statement, lang.CommentClose, snippet,
	)
	err = os.WriteFile(path, []byte(body), 0644)
	if err != nil {
		return Outcome{}, err
	}

	action := ActionCreated
	if exists {
		action = ActionUpdated
	}
	return Outcome{Language: lang.Key, Action: action, Path: path}, nil
}
