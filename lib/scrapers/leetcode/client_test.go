package leetcode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const landingPage = `<!DOCTYPE html>
<html>
<head><script>
var GLOBAL_DATA = {
	csrfToken: 'AbC123xyz',
	userStatus: {}
};
</script></head>
<body></body>
</html>`

func newFakeSite(t *testing.T, graphql http.HandlerFunc) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, landingPage)
	})
	mux.HandleFunc("/graphql", graphql)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func decodeQuery(t *testing.T, r *http.Request) graphqlRequest {
	var req graphqlRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	require.NoError(t, err)
	return req
}

func TestRefreshToken(t *testing.T) {
	server := newFakeSite(t, func(w http.ResponseWriter, r *http.Request) {})

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.RefreshToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "AbC123xyz", client.Csrf)
}

func TestRefreshTokenNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html><body>nothing to see</body></html>")
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.RefreshToken(context.Background())
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestDailyChallenge(t *testing.T) {
	server := newFakeSite(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeQuery(t, r)
		require.Contains(t, req.Query, "activeDailyCodingChallengeQuestion")
		require.Equal(t, "AbC123xyz", r.Header.Get("x-csrftoken"))

		io.WriteString(w, `{"data": {"activeDailyCodingChallengeQuestion": {"question": {
			"questionFrontendId": "42",
			"title": "Trapping Rain Water",
			"titleSlug": "trapping-rain-water",
			"difficulty": "Hard"
		}}}}`)
	})

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)
	require.NoError(t, client.RefreshToken(context.Background()))

	daily, err := client.DailyChallenge(context.Background())
	require.NoError(t, err)
	require.Equal(t, Daily{
		QuestionId: "42",
		Title:      "Trapping Rain Water",
		TitleSlug:  "trapping-rain-water",
		Difficulty: "Hard",
	}, daily)
}

func TestDailyChallengeResponseErrors(t *testing.T) {
	server := newFakeSite(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": null, "errors": [{"message": "rate limited"}]}`)
	})

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.DailyChallenge(context.Background())
	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, "rate limited", qerr.Message)
}

func TestDailyChallengeBadStatus(t *testing.T) {
	server := newFakeSite(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.DailyChallenge(context.Background())
	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, http.StatusTooManyRequests, qerr.Status)
}

func TestProblem(t *testing.T) {
	server := newFakeSite(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeQuery(t, r)
		require.Equal(t, "trapping-rain-water", req.Variables["titleSlug"])

		if strings.Contains(req.Query, "codeSnippets") {
			io.WriteString(w, `{"data": {"question": {
				"questionFrontendId": "42",
				"title": "Trapping Rain Water",
				"titleSlug": "trapping-rain-water",
				"difficulty": "Hard",
				"codeSnippets": [
					{"lang": "Python3", "langSlug": "python3", "code": "class Solution: ..."},
					{"lang": "Go", "langSlug": "golang", "code": "func trap(height []int) int {}"}
				]
			}}}`)
			return
		}
		io.WriteString(w, `{"data": {"question": {"content": "<p>Given <code>n</code> bars...</p>"}}}`)
	})

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)
	require.NoError(t, client.RefreshToken(context.Background()))

	problem, err := client.Problem(context.Background(), "trapping-rain-water")
	require.NoError(t, err)
	require.Equal(t, "42", problem.QuestionId)
	require.Equal(t, "Hard", problem.Difficulty)
	require.Contains(t, problem.Content, "Given")
	require.Len(t, problem.CodeSnippets, 2)
	require.Equal(t, "golang", problem.CodeSnippets[1].LangSlug)
}

func TestProblemEitherQueryFailing(t *testing.T) {
	server := newFakeSite(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeQuery(t, r)
		if strings.Contains(req.Query, "codeSnippets") {
			io.WriteString(w, `{"data": null, "errors": [{"message": "not found"}]}`)
			return
		}
		io.WriteString(w, `{"data": {"question": {"content": "<p>fine</p>"}}}`)
	})

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.Problem(context.Background(), "whatever")
	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
}
