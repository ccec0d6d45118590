package batch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadfoundry/sitebrief/internal/store"
)

func TestParseDetectsWebsiteColumn(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Company,Website,Notes",
		"Acme,acme.io,fast mover",
		"Globex,https://globex.com,",
	}, "\n")

	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.WebsiteCol)
	assert.Equal(t, []string{"acme.io", "https://globex.com"}, doc.Seeds())
}

func TestParseAcceptsAlternateHeaders(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"Website", "website", "url", "URL", "Url", "link", "Link", "web_url", "Web URL"} {
		input := "name," + header + "\nAcme,acme.io\n"
		doc, err := Parse(strings.NewReader(input))
		require.NoError(t, err, "header %q", header)
		assert.Equal(t, 1, doc.WebsiteCol, "header %q", header)
	}
}

func TestParseRejectsMissingColumn(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader("name,city\nAcme,Berlin\n"))
	require.ErrorIs(t, err, ErrNoWebsiteColumn)
	assert.Contains(t, err.Error(), "name, city")
}

func TestSeedsCollapseMissingValues(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Website",
		"  acme.io  ",
		`" "`,
		"nan",
		"None",
	}, "\n")

	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"acme.io", "", "", ""}, doc.Seeds())
}

func TestParseThenPadShortRows(t *testing.T) {
	t.Parallel()

	input := "name,Website\nAcme\n"
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{""}, doc.Seeds())
}

func TestWriteWithSummariesAppendsColumn(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader("Company,Website\nAcme,acme.io\nGlobex,globex.com\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = doc.WriteWithSummaries(&buf, []store.RowResult{
		{Row: 1, URL: "acme.io", Summary: "Acme builds rockets.", WordCount: 3},
		{Row: 2, URL: "globex.com", Summary: "Globex does everything.", WordCount: 3},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Company,Website,summary", lines[0])
	assert.Contains(t, lines[1], "Acme builds rockets.")
	assert.Contains(t, lines[2], "Globex does everything.")
}

func TestWriteWithSummariesReusesExistingColumn(t *testing.T) {
	t.Parallel()

	doc, err := Parse(strings.NewReader("Website,Summary\nacme.io,old text\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = doc.WriteWithSummaries(&buf, []store.RowResult{
		{Row: 1, URL: "acme.io", Summary: "fresh text"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Website,Summary", lines[0])
	assert.Equal(t, "acme.io,fresh text", lines[1])
}

func TestRenderResults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := RenderResults(&buf, []store.RowResult{
		{Row: 1, URL: "acme.io", Summary: "Acme builds rockets.", WordCount: 3},
		{Row: 2, Summary: "No URL provided"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "row,website,summary,word_count", lines[0])
	assert.Equal(t, "1,acme.io,Acme builds rockets.,3", lines[1])
	assert.Equal(t, "2,,No URL provided,0", lines[2])
}
