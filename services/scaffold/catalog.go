package scaffold

import "strings"

// Language is one entry of the fixed stub catalog: where a language's
// files go, how they are named and how the problem statement gets
// wrapped as a comment. the catalog is static configuration, it is not
// derived from the remote data. a snippet whose langSlug has no entry
// here is silently dropped.
type Language struct {
	// matches the langSlug the graphql api uses
	Key          string
	Extension    string
	CommentOpen  string
	CommentClose string
	// java's file naming can't take hyphens, it gets underscore-joined
	// names instead
	UnderscoreNames bool
}

var Catalog = []Language{
	{Key: "python", Extension: "py", CommentOpen: `"""`, CommentClose: `"""`},
	{Key: "javascript", Extension: "js", CommentOpen: "/*", CommentClose: "*/"},
	{Key: "typescript", Extension: "ts", CommentOpen: "/*", CommentClose: "*/"},
	{Key: "java", Extension: "java", CommentOpen: "/*", CommentClose: "*/", UnderscoreNames: true},
	{Key: "cpp", Extension: "cpp", CommentOpen: "/*", CommentClose: "*/"},
	{Key: "c", Extension: "c", CommentOpen: "/*", CommentClose: "*/"},
	{Key: "csharp", Extension: "cs", CommentOpen: "/*", CommentClose: "*/"},
	{Key: "golang", Extension: "go", CommentOpen: "/*", CommentClose: "*/"},
	{Key: "rust", Extension: "rs", CommentOpen: "/*", CommentClose: "*/"},
	{Key: "ruby", Extension: "rb", CommentOpen: "=begin", CommentClose: "=end"},
}

// FileName renders `<id>-<slug>.<ext>`, or the underscore-joined variant
// for languages that can't take hyphens.
func FileName(lang Language, questionId, slug string) string {
	if lang.UnderscoreNames {
		return questionId + "_" + strings.ReplaceAll(slug, "-", "_") + "." + lang.Extension
	}
	return questionId + "-" + slug + "." + lang.Extension
}
