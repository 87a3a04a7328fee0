package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/WomB0ComB0/leetcode/lib/scrapers/leetcode"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testProblem = leetcode.Problem{
	Daily: leetcode.Daily{
		QuestionId: "42",
		Title:      "Trapping Rain Water",
		TitleSlug:  "trapping-rain-water",
		Difficulty: "Hard",
	},
	Content: "<p>Given <code>n</code> non-negative integers representing an elevation map, " +
		"compute how much water it can trap.</p>",
	CodeSnippets: []leetcode.CodeSnippet{
		{Lang: "Python", LangSlug: "python", Code: "class Solution(object):\n    def trap(self, height):\n        pass"},
		{Lang: "Go", LangSlug: "golang", Code: "func trap(height []int) int {\n\n}"},
		{Lang: "Java", LangSlug: "java", Code: "class Solution {\n    public int trap(int[] height) {\n    }\n}"},
	},
}

func outcomeByLanguage(outcomes []Outcome, key string) (Outcome, bool) {
	for _, o := range outcomes {
		if o.Language == key {
			return o, true
		}
	}
	return Outcome{}, false
}

func TestMaterializePaths(t *testing.T) {
	root := t.TempDir()
	outcomes := Materialize(context.Background(), root, testProblem)
	require.Len(t, outcomes, len(Catalog))

	python, ok := outcomeByLanguage(outcomes, "python")
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, "python", "hard", "42-trapping-rain-water.py"), python.Path)
	require.Equal(t, ActionCreated, python.Action)

	java, ok := outcomeByLanguage(outcomes, "java")
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, "java", "hard", "42_trapping_rain_water.java"), java.Path)
}

func TestMaterializeFileBody(t *testing.T) {
	root := t.TempDir()
	Materialize(context.Background(), root, testProblem)

	body, err := os.ReadFile(filepath.Join(root, "golang", "hard", "42-trapping-rain-water.go"))
	require.NoError(t, err)

	contents := string(body)
	require.True(t, strings.HasPrefix(contents, "/*\n"))
	require.Contains(t, contents, "compute how much water it can trap.")
	require.NotContains(t, contents, "<p>")
	require.Contains(t, contents, "*/\n\nfunc trap(height []int) int {")
}

func TestMaterializeIdempotence(t *testing.T) {
	root := t.TempDir()

	first := Materialize(context.Background(), root, testProblem)
	for _, o := range first {
		require.Equal(t, ActionCreated, o.Action, "language: %s", o.Language)
	}

	// every language with a snippet now holds real code and must be left
	// alone. snippet-less languages hold a comment-only placeholder and
	// get rewritten.
	second := Materialize(context.Background(), root, testProblem)
	for _, o := range second {
		switch o.Language {
		case "python", "golang", "java":
			require.Equal(t, ActionSkipped, o.Action, "language: %s", o.Language)
		default:
			require.Equal(t, ActionUpdated, o.Action, "language: %s", o.Language)
		}
	}
}

func TestMaterializeSnippetlessPlaceholder(t *testing.T) {
	root := t.TempDir()
	outcomes := Materialize(context.Background(), root, testProblem)

	ruby, ok := outcomeByLanguage(outcomes, "ruby")
	require.True(t, ok)

	body, err := os.ReadFile(ruby.Path)
	require.NoError(t, err)
	require.False(t, hasSubstantiveContent(string(body)))
	require.True(t, strings.HasPrefix(string(body), "=begin\n"))

	// the user writes a one-line solution into the placeholder, the next
	// run must not clobber it
	solved := string(body) + "def trap(height) = 0\n"
	require.NoError(t, os.WriteFile(ruby.Path, []byte(solved), 0644))

	outcomes = Materialize(context.Background(), root, testProblem)
	ruby, ok = outcomeByLanguage(outcomes, "ruby")
	require.True(t, ok)
	require.Equal(t, ActionSkipped, ruby.Action)
}

func TestMaterializeOverwritesCommentOnlyFile(t *testing.T) {
	root := t.TempDir()

	dir := filepath.Join(root, "cpp", "hard")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "42-trapping-rain-water.cpp")
	stale := "/*\nan old revision of the statement\n*/\n\n"
	require.NoError(t, os.WriteFile(path, []byte(stale), 0644))

	outcomes := Materialize(context.Background(), root, testProblem)
	cpp, ok := outcomeByLanguage(outcomes, "cpp")
	require.True(t, ok)
	require.Equal(t, ActionUpdated, cpp.Action)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(body), "an old revision")
}

func TestMaterializeOutcomesStable(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()

	a := Materialize(context.Background(), rootA, testProblem)
	b := Materialize(context.Background(), rootB, testProblem)

	trim := func(outcomes []Outcome, root string) []Outcome {
		out := make([]Outcome, len(outcomes))
		for i, o := range outcomes {
			rel, err := filepath.Rel(root, o.Path)
			require.NoError(t, err)
			out[i] = Outcome{Language: o.Language, Action: o.Action, Path: rel}
		}
		return out
	}

	diff := cmp.Diff(trim(a, rootA), trim(b, rootB))
	require.Empty(t, diff)
}
