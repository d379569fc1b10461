package programs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEnvelope = `{"results":[
	{"101":{"title":"Surya Kriya","program_category":"Surya Kriya","is_online":"1","language":"English","program_id":"101"}},
	{"102":{"title":"Angamardana","program_category":"Angamardana","is_online":"0","language":"Tamil","program_id":"102"}},
	{"103":{"title":"Hatha Yoga","program_category":"Yogasanas","is_online":"1","language":"Hindi","program_id":"103"}}
]}`

// fakeAPI records the last query per path and answers with canned bodies
type fakeAPI struct {
	mu      sync.Mutex
	queries map[string]url.Values
	status  int
	bodies  map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Gateway) {
	t.Helper()

	api := &fakeAPI{
		queries: make(map[string]url.Values),
		status:  http.StatusOK,
		bodies: map[string]string{
			"/schedule": sampleEnvelope,
			"/list":     `{"IN":"India","US":"USA"}`,
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()

		api.queries[r.URL.Path] = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(api.status)
		_, _ = w.Write([]byte(api.bodies[r.URL.Path]))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientOptions{
		ScheduleURL: server.URL + "/schedule",
		ListURL:     server.URL + "/list",
	})

	return api, NewGateway(client, nil)
}

func (a *fakeAPI) lastQuery(path string) url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.queries[path]
}

func (a *fakeAPI) respond(path string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
	a.bodies[path] = body
}

func TestGateway_SearchByLocation(t *testing.T) {
	api, gw := newFakeAPI(t)

	text := gw.SearchByLocation(context.Background(), "India", "Coimbatore", 0)

	assert.True(t, strings.HasPrefix(text, "Found 3 programs in Coimbatore, India:\n\n1. **Surya Kriya**"), text)
	assert.Contains(t, text, "\n---\n\n2. **Angamardana**")

	q := api.lastQuery("/schedule")
	require.NotNil(t, q)
	assert.Equal(t, "India", q.Get("country"))
	assert.Equal(t, "Coimbatore", q.Get("city"))
	assert.Equal(t, "20", q.Get("count"))
	assert.Equal(t, "filter", q.Get("task"))
}

func TestGateway_SearchByLocation_Empty(t *testing.T) {
	api, gw := newFakeAPI(t)
	api.respond("/schedule", http.StatusOK, `{"results":[]}`)

	assert.Equal(t,
		"No programs found in USA. Try a different location or check back later.",
		gw.SearchByLocation(context.Background(), "USA", "", 20))
}

func TestGateway_SearchByInterest(t *testing.T) {
	api, gw := newFakeAPI(t)

	text := gw.SearchByInterest(context.Background(), "Surya Kriya", nil, "", 5)
	assert.True(t, strings.HasPrefix(text, `Found 3 programs for "Surya Kriya" in India:`), text)

	q := api.lastQuery("/schedule")
	assert.Equal(t, "122", q.Get("category"))
	assert.Equal(t, "India", q.Get("country"))
	assert.Equal(t, "5", q.Get("count"))

	global := ""
	api.respond("/schedule", http.StatusOK, `{}`)
	text = gw.SearchByInterest(context.Background(), "nonexistent xyz123", &global, "", 5)
	assert.Equal(t, `No programs found for "nonexistent xyz123". Try a different category or location.`, text)
	assert.Equal(t, "", api.lastQuery("/schedule").Get("category"))
	assert.Equal(t, "", api.lastQuery("/schedule").Get("country"))

	text = gw.SearchByInterest(context.Background(), "samyama", &global, "Nashville", 5)
	assert.Equal(t, `No programs found for "samyama" in Nashville. Try a different category or location.`, text)
}

func TestGateway_SearchNearby(t *testing.T) {
	api, gw := newFakeAPI(t)

	text := gw.SearchNearby(context.Background(), 11.0, 76.96, 10)
	assert.True(t, strings.HasPrefix(text, "Found 3 programs near (11.0, 76.96):"), text)
	assert.Equal(t, "11.0,76.96", api.lastQuery("/schedule").Get("latlong"))

	api.respond("/schedule", http.StatusOK, `{"results":[]}`)
	assert.Equal(t,
		"No programs found near coordinates (11.0, 76.96). Try expanding your search area.",
		gw.SearchNearby(context.Background(), 11, 76.96, 10))
}

func TestGateway_ProgramDetails(t *testing.T) {
	api, gw := newFakeAPI(t)
	api.respond("/schedule", http.StatusOK, `{"title":"Samyama","program_id":"77","sessions":[1,2]}`)

	text := gw.ProgramDetails(context.Background(), "77")

	want := "Program Details:\n\n{\n  \"title\": \"Samyama\",\n  \"program_id\": \"77\",\n  \"sessions\": [\n    1,\n    2\n  ]\n}"
	assert.Equal(t, want, text)
	assert.Equal(t, "details", api.lastQuery("/schedule").Get("task"))
	assert.Equal(t, "77", api.lastQuery("/schedule").Get("program_id"))
}

func TestGateway_FilterPrograms(t *testing.T) {
	api, gw := newFakeAPI(t)

	online := true
	text := gw.FilterPrograms(context.Background(), "India", Filter{Online: &online}, 1)

	assert.True(t, strings.HasPrefix(text, "Found 1 filtered programs in India:\n\n1. **Surya Kriya**"), text)
	assert.NotContains(t, text, "Hatha Yoga")
	assert.Equal(t, "100", api.lastQuery("/schedule").Get("count"))

	text = gw.FilterPrograms(context.Background(), "India", Filter{Language: "french"}, 20)
	assert.Equal(t, "No programs found matching the specified filters in India.", text)
}

func TestGateway_Lists(t *testing.T) {
	api, gw := newFakeAPI(t)

	assert.Equal(t, "Available Countries:\n\n- India\n- USA", gw.Countries(context.Background()))
	assert.Equal(t, "1", api.lastQuery("/list").Get("country"))
	assert.Equal(t, "0", api.lastQuery("/list").Get("city"))

	api.respond("/list", http.StatusOK, `{"1":"Chennai","2":"Coimbatore"}`)
	assert.Equal(t, "Cities in India:\n\n- Chennai\n- Coimbatore", gw.Cities(context.Background(), "India"))
	assert.Equal(t, "India", api.lastQuery("/list").Get("country"))
	assert.Equal(t, "1", api.lastQuery("/list").Get("city"))
}

func TestGateway_ErrorsBecomeText(t *testing.T) {
	api, gw := newFakeAPI(t)
	api.respond("/schedule", http.StatusInternalServerError, `upstream down`)
	api.respond("/list", http.StatusInternalServerError, `upstream down`)

	ctx := context.Background()
	cases := map[string]string{
		"Error searching programs: ":             gw.SearchByLocation(ctx, "India", "", 5),
		"Error searching programs by interest: ": gw.SearchByInterest(ctx, "ie", nil, "", 5),
		"Error searching programs nearby: ":      gw.SearchNearby(ctx, 1, 2, 5),
		"Error fetching program details: ":       gw.ProgramDetails(ctx, "1"),
		"Error filtering programs: ":             gw.FilterPrograms(ctx, "India", Filter{}, 5),
		"Error fetching countries: ":             gw.Countries(ctx),
		"Error fetching cities: ":                gw.Cities(ctx, "India"),
	}

	for prefix, text := range cases {
		assert.True(t, strings.HasPrefix(text, prefix), "want prefix %q, got %q", prefix, text)
		assert.Contains(t, text, "API error (500): upstream down")
	}
}

func TestGateway_MalformedJSON(t *testing.T) {
	api, gw := newFakeAPI(t)
	api.respond("/schedule", http.StatusOK, `<html>maintenance</html>`)

	text := gw.SearchByLocation(context.Background(), "India", "", 5)
	assert.True(t, strings.HasPrefix(text, "Error searching programs: failed to decode response"), text)

	text = gw.ProgramDetails(context.Background(), "1")
	assert.True(t, strings.HasPrefix(text, "Error fetching program details: failed to decode response"), text)
}

func TestGateway_NetworkFailure(t *testing.T) {
	client := NewClient(ClientOptions{ScheduleURL: "http://127.0.0.1:1/unreachable"})
	gw := NewGateway(client, nil)

	text := gw.SearchByLocation(context.Background(), "India", "", 5)
	assert.True(t, strings.HasPrefix(text, "Error searching programs: request failed"), text)
}

func TestGateway_SendsUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	gw := NewGateway(NewClient(ClientOptions{ScheduleURL: server.URL, UserAgent: "test-agent/1"}), nil)
	gw.SearchByLocation(context.Background(), "India", "", 5)

	assert.Equal(t, "test-agent/1", got)
}

func TestGateway_ListCategoriesIsIdempotent(t *testing.T) {
	gw := NewGateway(NewClient(ClientOptions{}), nil)
	assert.Equal(t, gw.ListCategories(), gw.ListCategories())
	assert.True(t, strings.HasPrefix(gw.ListCategories(), "Available Program Categories:"))
}
