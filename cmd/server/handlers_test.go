package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/nlg"
)

func newTestMux(t *testing.T) http.Handler {
	t.Helper()
	rs := realisers{}
	for _, lang := range []nlg.Language{nlg.English, nlg.French} {
		lex, err := nlg.Load(lang)
		require.NoError(t, err)
		r, err := nlg.NewRealiser(lex)
		require.NoError(t, err)
		rs[lang] = r
	}
	return newMux(rs, "test")
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandleRealise(t *testing.T) {
	t.Parallel()
	h := newTestMux(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "french phrase features",
			body: `{"language":"fr","specifier":"un","head":"maison","modifiers":["beau","perdu"],"features":{"gender":"feminine","number":"plural"}}`,
			want: "des belles maisons perdues",
		},
		{
			name: "french head features",
			body: `{"language":"french","specifier":"le","head":"acteur","modifiers":["petit","heureux"],"head_features":{"gender":"feminine"},"features":{"number":"plural"}}`,
			want: "les petites actrices heureuses",
		},
		{
			name: "english",
			body: `{"language":"en","specifier":"a","head":"dog","modifiers":["big"]}`,
			want: "a big dog",
		},
		{
			name: "english plural",
			body: `{"language":"english","specifier":"the","head":"child","modifiers":["happy"],"features":{"number":"plural"}}`,
			want: "the happy children",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/realise", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			resp := decode[realiseResponse](t, rec)
			assert.Equal(t, tt.want, resp.Text)
			assert.Equal(t, strings.Fields(tt.want), resp.Tokens)
		})
	}
}

func TestHandleRealise_Errors(t *testing.T) {
	t.Parallel()
	h := newTestMux(t)

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{name: "wrong method", method: http.MethodGet, status: http.StatusMethodNotAllowed},
		{name: "bad json", method: http.MethodPost, body: `{`, status: http.StatusBadRequest},
		{name: "missing head", method: http.MethodPost, body: `{"language":"en"}`, status: http.StatusBadRequest},
		{name: "missing language", method: http.MethodPost, body: `{"head":"dog"}`, status: http.StatusNotFound},
		{name: "unknown language", method: http.MethodPost, body: `{"language":"de","head":"Hund"}`, status: http.StatusNotFound},
		{name: "bad gender", method: http.MethodPost, body: `{"language":"fr","head":"maison","features":{"gender":"plural"}}`, status: http.StatusBadRequest},
		{name: "bad head number", method: http.MethodPost, body: `{"language":"en","head":"dog","head_features":{"number":"many"}}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, "/api/realise", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
		})
	}
}

func TestHandleLexicon(t *testing.T) {
	t.Parallel()
	h := newTestMux(t)

	rec := do(t, h, http.MethodGet, "/api/lexicon?language=en&key=better", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[lexiconResponse](t, rec)
	assert.Equal(t, "english", resp.Language)
	require.Len(t, resp.Words, 2)
	assert.Equal(t, "good", resp.Words[0].Base)
	assert.Equal(t, "better", resp.Words[0].Comparative)

	rec = do(t, h, http.MethodGet, "/api/lexicon?language=en&key=better&category=adverb", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[lexiconResponse](t, rec)
	require.Len(t, resp.Words, 1)
	assert.Equal(t, "well", resp.Words[0].Base)
	assert.Equal(t, "ADVERB", resp.Words[0].Category)

	rec = do(t, h, http.MethodGet, "/api/lexicon?language=fr&key=acteur", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[lexiconResponse](t, rec)
	require.Len(t, resp.Words, 1)
	assert.Equal(t, "masculine", resp.Words[0].Gender)
	assert.Equal(t, "actrice", resp.Words[0].OppositeGender)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/lexicon?language=en&key=zyzzyva", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/lexicon?language=en", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPost, "/api/lexicon?language=en&key=dog", "").Code)
}

func TestHandleInflect(t *testing.T) {
	t.Parallel()
	h := newTestMux(t)

	tests := []struct {
		query string
		want  string
	}{
		{"language=en&word=child&number=plural", "children"},
		{"language=en&word=good&category=adjective&comparative=true", "better"},
		{"language=en&word=big&superlative=1", "biggest"},
		{"language=en&word=I&number=plural&reflexive=true", "ourselves"},
		{"language=en&word=he&discourse=object", "him"},
		{"language=fr&word=vert&gender=feminine&number=plural", "vertes"},
		{"language=fr&word=acteur&gender=feminine", "actrice"},
		{"language=fr&word=un&gender=feminine", "une"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/inflect?"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, decode[inflectResponse](t, rec).Form)
		})
	}
}

func TestHandleInflect_Errors(t *testing.T) {
	t.Parallel()
	h := newTestMux(t)

	tests := []struct {
		query  string
		status int
	}{
		{"language=en", http.StatusBadRequest},
		{"word=dog", http.StatusNotFound},
		{"language=en&word=zyzzyva", http.StatusNotFound},
		{"language=en&word=dog&comparative=maybe", http.StatusBadRequest},
		{"language=fr&word=vert&gender=plural", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/inflect?"+tt.query, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestHandleLanguages(t *testing.T) {
	t.Parallel()
	h := newTestMux(t)

	rec := do(t, h, http.MethodGet, "/api/languages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[languagesResponse](t, rec)
	assert.Equal(t, []string{"english", "french"}, resp.Languages)
	assert.Equal(t, "test", resp.Version)

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPost, "/api/languages", "").Code)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.DiscardHandler)

	var seen string
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	rec := do(t, withLogging(logger, ok), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestMiddleware_PanicLoggedWithRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	withMiddleware(logger, boom).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode[errorResponse](t, rec).Error)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	var panicLine, accessLine map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		switch m["msg"] {
		case "panic recovered":
			panicLine = m
		case "http request":
			accessLine = m
		}
	}
	require.NotNil(t, panicLine)
	assert.Equal(t, "req-42", panicLine["request_id"])
	assert.Equal(t, "boom", panicLine["error"])
	require.NotNil(t, accessLine)
	assert.EqualValues(t, http.StatusInternalServerError, accessLine["status"])
}
