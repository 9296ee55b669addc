package scraper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/scraper"
)

func TestExtractCleanText(t *testing.T) {
	t.Run("Blank", func(t *testing.T) {
		_, err := scraper.ExtractCleanText("  \n\t ")
		assert.Equal(t, apperror.EmptyInput, apperror.KindOf(err))
	})

	t.Run("MainContent", func(t *testing.T) {
		text, err := scraper.ExtractFromPage(articleHTML(300), "https://example.com/plants")
		require.NoError(t, err)
		assert.Contains(t, text, "Plants capture light energy")
		assert.NotContains(t, text, "trackingScript")
		assert.NotContains(t, text, "navlink")
		assert.GreaterOrEqual(t, len(splitWords(text)), 100)
	})

	t.Run("StructuralFallback", func(t *testing.T) {
		text, err := scraper.ExtractCleanText(articleHTML(70))
		require.NoError(t, err)
		assert.Contains(t, text, "Plants capture light energy")
		for _, boiler := range []string{"trackingScript", "navlink", "siteheader", "asidepromo", "sitefooter"} {
			assert.NotContains(t, text, boiler)
		}
		assert.NotContains(t, text, "  ", "whitespace is normalized")
	})

	t.Run("Insufficient", func(t *testing.T) {
		_, err := scraper.ExtractCleanText(articleHTML(10))
		assert.Equal(t, apperror.InsufficientContent, apperror.KindOf(err))
	})
}
