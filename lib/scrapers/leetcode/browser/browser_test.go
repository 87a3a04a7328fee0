package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const renderedListing = `<!DOCTYPE html>
<html><body>
<div role="rowgroup">
	<div role="row">
		<a href="/problems/two-sum/">Two Sum</a>
	</div>
	<div role="row">
		<a href="/problems/trapping-rain-water/?envType=daily-question&envId=2026-08-23">
			<span class="mr-2 text-olive dark:text-dark-olive"><svg></svg></span>
			Trapping Rain Water
		</a>
	</div>
	<div role="row">
		<a href="/problems/valid-parentheses/">Valid Parentheses</a>
	</div>
</div>
</body></html>`

func TestExtractDailySlug(t *testing.T) {
	slug, err := ExtractDailySlug(context.Background(), renderedListing)
	require.NoError(t, err)
	require.Equal(t, "trapping-rain-water", slug)
}

func TestExtractDailySlugNoMarker(t *testing.T) {
	html := `<html><body>
		<a href="/problems/two-sum/">Two Sum</a>
		<a href="/problems/valid-parentheses/">Valid Parentheses</a>
	</body></html>`
	_, err := ExtractDailySlug(context.Background(), html)
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractDailySlugIgnoresNonProblemLinks(t *testing.T) {
	html := `<html><body>
		<a href="/contest/"><span class="text-olive"></span>Contest</a>
		<a href="/problems/edit-distance/"><span class="text-olive"></span>Edit Distance</a>
	</body></html>`
	slug, err := ExtractDailySlug(context.Background(), html)
	require.NoError(t, err)
	require.Equal(t, "edit-distance", slug)
}

func TestSlugFromHref(t *testing.T) {
	slug, err := slugFromHref("/problems/trapping-rain-water/?envType=daily-question")
	require.NoError(t, err)
	require.Equal(t, "trapping-rain-water", slug)

	_, err = slugFromHref("/problemset/")
	require.Error(t, err)
}
