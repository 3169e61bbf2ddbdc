package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/file"
	adapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/modthree"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greeterYAML = `
alphabet: "ab"
initial: start
states:
  start: {}
  seenA:
    output: hello
transitions:
  start:
    a: seenA
  seenA:
    a: seenA
`

func newHandler(t *testing.T) (http.Handler, *observability.Metrics) {
	t.Helper()
	reg := registry.New(memory.NewStore())
	_, err := reg.Register(context.Background(), modthree.Definition())
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	h, err := adapter.NewHandler(reg,
		adapter.WithMetrics(metrics),
		adapter.WithLogger(logging.NewNop()),
		adapter.WithMaxInputSize(64),
	)
	require.NoError(t, err)
	return h, metrics
}

func do(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	return do(h, "POST", "/modthree", "application/x-www-form-urlencoded", values.Encode())
}

func TestWelcomePage(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "GET", "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="binaryInput"`)
	assert.Contains(t, w.Body.String(), `hx-post="/modthree"`)
}

func TestModThree(t *testing.T) {
	h, _ := newHandler(t)

	tests := []struct {
		input string
		want  string
	}{
		{"1000011111", "0"},
		{"110", "0"},
		{"111111111111110000001", "1"},
		{" 110\n", "0"},
		{"", `<strong class="text-red-700">Error!</strong>`},
		{"   ", `<strong class="text-red-700">Error!</strong>`},
		{"x111115", `<strong class="text-red-700">Error!</strong>`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w := postForm(h, url.Values{"binaryInput": {tt.input}})
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}

	t.Run("matches integer arithmetic", func(t *testing.T) {
		for _, in := range []string{"1", "10", "1011", "111111111111110000001"} {
			n, err := strconv.ParseUint(in, 2, 64)
			require.NoError(t, err)
			w := postForm(h, url.Values{"binaryInput": {in}})
			assert.Equal(t, strconv.FormatUint(n%3, 10), w.Body.String())
		}
	})

	t.Run("missing field", func(t *testing.T) {
		w := postForm(h, url.Values{})
		assert.Equal(t, `<strong class="text-red-700">Error!</strong>`, w.Body.String())
	})
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "GET", "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(h, "GET", "/info", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "automata-http", info["app"])
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.NotEmpty(t, info["version"])
	assert.Contains(t, info, "registry")
}

func TestMachineLifecycle(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "PUT", "/machines/greeter", "application/yaml", greeterYAML)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(h, "GET", "/machines", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"machines":["greeter","modthree"]}`, w.Body.String())

	w = do(h, "GET", "/machines/greeter", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"initial":"start"`)

	w = do(h, "POST", "/machines/greeter/process", "application/json", `{"input":"aaa"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp adapter.ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hello", resp.Output)
	assert.EqualValues(t, "seenA", resp.FinalState)
	assert.Len(t, resp.Path, 4)
	assert.NotEmpty(t, resp.RunID)

	w = do(h, "DELETE", "/machines/greeter", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(h, "GET", "/machines/greeter", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"not_found"`)
}

func TestPutMachine_JSONAndErrors(t *testing.T) {
	h, _ := newHandler(t)

	body := `{"alphabet":[0,1],"initial":"E","states":{"E":{"output":true},"O":{"output":false}},
		"transitions":{"E":{"0":"E","1":"O"},"O":{"0":"O","1":"E"}}}`
	w := do(h, "PUT", "/machines/parity", "application/json", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	tests := []struct {
		name string
		body string
		kind string
	}{
		{"bad initial", `{"alphabet":["a"],"initial":"X","states":{"A":{"output":1}},"transitions":{}}`, "invalid_state"},
		{"bad token", `{"alphabet":["a"],"initial":"A","states":{"A":{"output":1}},"transitions":{"A":{"b":"A"}}}`, "invalid_token"},
		{"bad target", `{"alphabet":["a"],"initial":"A","states":{"A":{"output":1}},"transitions":{"A":{"a":"B"}}}`, "invalid_state"},
		{"no states", `{"alphabet":["a"],"initial":"A","states":{},"transitions":{}}`, "invalid_definition"},
		{"not json", `{`, "invalid_definition"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, "PUT", "/machines/broken", "application/json", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"kind":"`+tt.kind+`"`)
		})
	}
}

func TestProcessInput_Errors(t *testing.T) {
	h, _ := newHandler(t)

	tests := []struct {
		name   string
		target string
		body   string
		status int
		kind   string
	}{
		{"invalid token", "/machines/modthree/process", `{"input":"102"}`, http.StatusUnprocessableEntity, "invalid_token"},
		{"missing input", "/machines/modthree/process", `{}`, http.StatusBadRequest, "invalid_input"},
		{"too large", "/machines/modthree/process", `{"input":"` + strings.Repeat("1", 65) + `"}`, http.StatusBadRequest, "invalid_input"},
		{"unknown machine", "/machines/ghost/process", `{"input":"1"}`, http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, "POST", tt.target, "application/json", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"kind":"`+tt.kind+`"`)
		})
	}
}

func TestProcessInput_NonAcceptingFinal(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "PUT", "/machines/greeter", "application/yaml", greeterYAML)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(h, "POST", "/machines/greeter/process", "application/json", `{"input":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"invalid_final_state"`)

	w = do(h, "POST", "/machines/greeter/process", "application/json", `{"input":"b"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"no_transition"`)
}

func TestGetGraph(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "GET", "/machines/modthree/graph", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph LR")
	assert.NotContains(t, w.Body.String(), "classDef")

	w = do(h, "GET", "/machines/modthree/graph?input=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "class S1 current;")

	w = do(h, "GET", "/machines/ghost/graph", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newHandler(t)

	postForm(h, url.Values{"binaryInput": {"11"}})

	w := do(h, "GET", "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `automata_runs_total{machine="modthree",outcome="accepted"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newHandler(t)

	w := do(h, "OPTIONS", "/machines", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenAPISpec(t *testing.T) {
	h, _ := newHandler(t)

	doc, err := adapter.GetSwagger()
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))

	for _, path := range []string{"/health", "/info", "/modthree", "/machines", "/machines/{name}", "/machines/{name}/process", "/machines/{name}/graph", "/metrics"} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}

	w := do(h, "GET", "/openapi.yaml", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestMachines_InvalidStoreName(t *testing.T) {
	reg := registry.New(file.New(t.TempDir()))
	h, err := adapter.NewHandler(reg, adapter.WithLogger(logging.NewNop()))
	require.NoError(t, err)

	// %5C reaches the handler as a backslash, which no file name may hold.
	target := "/machines/a%5Cb"

	w := do(h, "PUT", target, "application/yaml", greeterYAML)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var resp adapter.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, adapter.KindInvalidDefinition, resp.Kind)

	w = do(h, "GET", target, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, "DELETE", target, "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
