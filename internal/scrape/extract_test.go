package scrape

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meermanr/whathifi/internal/review"
)

const detailFixture = `<!doctype html><html><head><title>Onkyo TX-NR609 review</title></head><body>
<h1><span class="item"><span class="fn">Onkyo TX-NR609</span></span></h1>
<div class="tested_at_price clear">Tested at £500</div>
<div class="rating"><span class="value">5</span></div>
<table>
<tr><td>THX</td><td>Select2 Plus</td></tr>
<tr><td>Dolby TrueHD</td><td>Yes</td></tr>
<tr><td>HDMI inputs</td><td>6</td></tr>
<tr><td>Channels</td><td>7.1</td></tr>
<tr><td>Power output</td><td>160W</td></tr>
<tr><td>HDMI in/out</td><td>6/1</td></tr>
<tr><td>Min. speaker impedance</td><td>4 ohms</td></tr>
<tr><td>Tuner presets</td><td></td></tr>
</table>
</body></html>`

func testExtractor() *Extractor {
	logger := log.New(io.Discard, "", 0)
	inferrer := review.NewInferrer([]string{"THX", "Video scaling"})
	return NewExtractor(nil, inferrer, logger)
}

func TestParseDetailDocument(t *testing.T) {
	e := testExtractor()

	rec, err := e.Parse("http://example.com/review/onkyo-tx-nr609", []byte(detailFixture))
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/review/onkyo-tx-nr609", rec.URL)
	assert.Equal(t, "Onkyo TX-NR609", rec.Name)
	assert.Equal(t, 500, rec.Price)
	assert.Equal(t, 5, rec.Rating)

	want := map[string]review.SpecValue{
		"THX":                        review.RawValue("Select2 Plus"),
		"Dolby TrueHD":               review.BoolValue(true),
		"HDMI inputs":                review.IntValue(6),
		"Channels":                   review.FloatValue(7.1),
		"Power output":               review.TokenValue("160"),
		"HDMI in/out":                review.TokenListValue([]string{"6", "1"}),
		"Min&#46; speaker impedance": review.TokenValue("4"),
		"Tuner presets":              review.ZeroValue(),
	}
	assert.Equal(t, want, rec.Spec)
}

func TestParseMissingFieldsAreFatal(t *testing.T) {
	e := testExtractor()

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			"missing name",
			`<html><body><div class="tested_at_price clear">Tested at £500</div><span class="value">5</span></body></html>`,
			"name",
		},
		{
			"missing price",
			`<html><body><h1><span class="item"><span class="fn">X</span></span></h1><span class="value">5</span></body></html>`,
			"price",
		},
		{
			"malformed rating",
			`<html><body><h1><span class="item"><span class="fn">X</span></span></h1><div class="tested_at_price clear">Tested at £500</div><span class="value">five</span></body></html>`,
			"rating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Parse("http://example.com/r", []byte(tt.body))
			var perr *review.ParseError
			require.True(t, errors.As(err, &perr), "want ParseError, got %v", err)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}
