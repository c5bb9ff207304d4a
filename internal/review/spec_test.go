package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestKeyEscapingRoundTrips(t *testing.T) {
	keys := []string{
		"Min. speaker impedance",
		"A.B.C",
		".leading",
		"trailing.",
		"no periods here",
	}
	for _, key := range keys {
		escaped := EscapeKey(key)
		if key != escaped {
			assert.NotContains(t, escaped, ".")
		}
		assert.Equal(t, key, UnescapeKey(escaped))
	}
}

func TestEscapeKeyUsesEntity(t *testing.T) {
	assert.Equal(t, "Min&#46; speaker impedance", EscapeKey("Min. speaker impedance"))
}

func TestRecordBSONRoundTrip(t *testing.T) {
	rec := Record{
		URL:    "http://www.whathifi.com/review/onkyo-tx-nr609",
		Name:   "Onkyo TX-NR609",
		Price:  500,
		Rating: 5,
		Spec: map[string]SpecValue{
			"THX":              RawValue("Select2 Plus"),
			"Dolby TrueHD":     BoolValue(true),
			"HDMI inputs":      IntValue(6),
			"Channels":         FloatValue(7.1),
			"Power output":     TokenValue("160"),
			"HDMI in/out":      TokenListValue([]string{"6", "1"}),
		},
	}

	data, err := bson.Marshal(rec)
	require.NoError(t, err)

	var got Record
	require.NoError(t, bson.Unmarshal(data, &got))

	assert.Equal(t, rec.URL, got.URL)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.Price, got.Price)
	assert.Equal(t, rec.Rating, got.Rating)
	assert.Equal(t, rec.Spec, got.Spec)
}

func TestZeroValueDecodesAsInteger(t *testing.T) {
	// The zero fallback is stored as the integer 0, so a scan reads it
	// back as an ordinary integer value.
	rec := Record{
		URL:  "http://example.com/r",
		Spec: map[string]SpecValue{"Remote": ZeroValue()},
	}

	data, err := bson.Marshal(rec)
	require.NoError(t, err)

	var got Record
	require.NoError(t, bson.Unmarshal(data, &got))
	assert.Equal(t, IntValue(0), got.Spec["Remote"])
}
