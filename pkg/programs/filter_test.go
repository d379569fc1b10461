package programs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool {
	return &v
}

func TestFilter_Apply(t *testing.T) {
	input := []Program{
		{"title": "a", "is_online": "1", "is_sadhguru": "0", "language": "English"},
		{"title": "b", "is_online": "0", "is_sadhguru": "1", "language": "Tamil"},
		{"title": "c", "is_online": "1", "is_sadhguru": "1", "language": "English, Hindi"},
		{"title": "d"},
	}

	titles := func(ps []Program) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.FieldOr("title", "")
		}
		return out
	}

	tests := []struct {
		name   string
		filter Filter
		limit  int
		want   []string
	}{
		{"no predicates", Filter{}, 10, []string{"a", "b", "c", "d"}},
		{"online only", Filter{Online: boolPtr(true)}, 10, []string{"a", "c"}},
		{"in person only", Filter{Online: boolPtr(false)}, 10, []string{"b", "d"}},
		{"with presence", Filter{WithPresence: boolPtr(true)}, 10, []string{"b", "c"}},
		{"language substring any case", Filter{Language: "hINDi"}, 10, []string{"c"}},
		{"combined", Filter{Online: boolPtr(true), Language: "english"}, 10, []string{"a", "c"}},
		{"early exit at limit", Filter{Online: boolPtr(true)}, 1, []string{"a"}},
		{"zero limit", Filter{}, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(tt.filter.Apply(input, tt.limit)))
		})
	}
}

func TestFilter_OnlineKeepsRelativeOrder(t *testing.T) {
	input := []Program{
		{"program_id": "1", "is_online": "1"},
		{"program_id": "2", "is_online": "0"},
		{"program_id": "3", "is_online": "1"},
	}

	got := Filter{Online: boolPtr(true)}.Apply(input, 20)
	assert.Equal(t, []Program{input[0], input[2]}, got)
}
