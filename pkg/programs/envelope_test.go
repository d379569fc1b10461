package programs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPrograms(t *testing.T) {
	t.Run("unwraps single-key entries", func(t *testing.T) {
		got, err := ExtractPrograms([]byte(`{"results":[{"a":{"title":"X","is_online":"1"}}]}`))
		require.NoError(t, err)
		assert.Equal(t, []Program{{"title": "X", "is_online": "1"}}, got)
	})

	t.Run("keeps source order", func(t *testing.T) {
		body := `{"count": 3, "results":[
			{"9": {"title": "first"}},
			{"1": {"title": "second"}},
			{"5": {"title": "third"}}
		]}`
		got, err := ExtractPrograms([]byte(body))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "first", got[0].FieldOr("title", ""))
		assert.Equal(t, "second", got[1].FieldOr("title", ""))
		assert.Equal(t, "third", got[2].FieldOr("title", ""))
	})

	t.Run("empty envelopes", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"results":[]}`, `{"results":null}`, `{"results":"none"}`, `[]`, `null`} {
			got, err := ExtractPrograms([]byte(body))
			require.NoError(t, err, body)
			assert.Empty(t, got, body)
			assert.NotNil(t, got, body)
		}
	})

	t.Run("multi-key entry takes first value in document order", func(t *testing.T) {
		got, err := ExtractPrograms([]byte(`{"results":[{"z":{"title":"Z"},"a":{"title":"A"}}]}`))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Z", got[0].FieldOr("title", ""))
	})

	t.Run("malformed entries are skipped", func(t *testing.T) {
		got, err := ExtractPrograms([]byte(`{"results":[{}, 7, {"k":"scalar"}, {"k":{"title":"ok"}}]}`))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ok", got[0].FieldOr("title", ""))
	})

	t.Run("numbers keep their text", func(t *testing.T) {
		got, err := ExtractPrograms([]byte(`{"results":[{"k":{"amount":1500,"program_id":98765}}]}`))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "1500", got[0].FieldOr("amount", ""))
		assert.Equal(t, "98765", got[0].FieldOr("program_id", ""))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		for _, body := range []string{``, `<html>`, `{"results":[{"a":`} {
			_, err := ExtractPrograms([]byte(body))
			assert.Error(t, err, body)
		}
	})
}

func TestParseNameList(t *testing.T) {
	t.Run("object values in document order", func(t *testing.T) {
		got, err := ParseNameList([]byte(`{"IN":"India","US":"USA","AU":"Australia"}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"India", "USA", "Australia"}, got)
	})

	t.Run("array", func(t *testing.T) {
		got, err := ParseNameList([]byte(`["Chennai","Coimbatore"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Chennai", "Coimbatore"}, got)
	})

	t.Run("non-string values", func(t *testing.T) {
		got, err := ParseNameList([]byte(`{"a":1,"b":true}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "true"}, got)
	})

	t.Run("unexpected shape", func(t *testing.T) {
		_, err := ParseNameList([]byte(`"India"`))
		assert.Error(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := ParseNameList([]byte(`{"a":"India",`))
		assert.Error(t, err)
	})
}
