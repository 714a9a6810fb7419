package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/i18n"
	"github.com/dmitrymomot/shapekit/pkg/logger"
	"github.com/dmitrymomot/shapekit/pkg/plugin"
	"github.com/dmitrymomot/shapekit/pkg/validator"
)

func testApp(stdin string) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return &app{
		cfg: Config{
			SchemaPath:      "testdata/schema.yaml",
			DefaultLanguage: "en",
			CacheStore:      "memory",
			CacheSize:       16,
			CacheTTL:        time.Minute,
			HealthTimeout:   time.Second,
		},
		stdin:  strings.NewReader(stdin),
		stdout: &out,
		stderr: io.Discard,
		log:    logger.Discard(),
	}, &out
}

func runApp(a *app, args ...string) error {
	return newCommand(a).Run(context.Background(), append([]string{"shapecheck"}, args...))
}

func TestCheckCommand(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		a, out := testApp("")
		require.NoError(t, runApp(a, "check", "--shape", "User", "testdata/valid.json"))
		assert.Equal(t, "ok\n", out.String())
	})

	t.Run("invalid file reports every failure", func(t *testing.T) {
		a, out := testApp("")
		err := runApp(a, "check", "--shape", "User", "testdata/invalid.yaml")
		require.ErrorIs(t, err, ErrInvalidInput)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "name: is already taken [unique]", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "email: "))
		assert.True(t, strings.HasSuffix(lines[1], "[email]"))
		assert.Equal(t, "address.city: field is required [required]", lines[2])
	})

	t.Run("stdin with json output", func(t *testing.T) {
		a, out := testApp(`{"name": "al", "email": "al@example.com"}`)
		err := runApp(a, "check", "--shape", "User", "--format", "json", "-")
		require.ErrorIs(t, err, ErrInvalidInput)

		var res struct {
			Success bool `json:"success"`
			Errors  []struct {
				Path []any  `json:"path"`
				Rule string `json:"rule"`
			} `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
		assert.False(t, res.Success)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, []any{"name"}, res.Errors[0].Path)
		assert.Equal(t, "min_length", res.Errors[0].Rule)
	})

	t.Run("translated messages", func(t *testing.T) {
		a, out := testApp("")
		err := runApp(a, "--locales", "testdata/locales", "check", "--shape", "User", "--lang", "de", "testdata/invalid.yaml")
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, out.String(), "email: muss eine gültige E-Mail-Adresse sein [email]")
		assert.Contains(t, out.String(), "address.city: ist erforderlich [required]")
	})

	t.Run("unknown shape", func(t *testing.T) {
		a, _ := testApp("{}")
		err := runApp(a, "check", "--shape", "Nope")
		assert.ErrorIs(t, err, validator.ErrUnknownShape)
	})

	t.Run("missing schema", func(t *testing.T) {
		a, _ := testApp("{}")
		err := runApp(a, "--schema", "testdata/missing.yaml", "check", "--shape", "User")
		assert.Error(t, err)
	})
}

func TestShapesCommand(t *testing.T) {
	t.Parallel()

	t.Run("table", func(t *testing.T) {
		a, out := testApp("")
		require.NoError(t, runApp(a, "shapes"))
		assert.Contains(t, out.String(), "User\n")
		assert.Contains(t, out.String(), "Address\n")
		assert.Contains(t, out.String(), "required min_length unique")
	})

	t.Run("json", func(t *testing.T) {
		a, out := testApp("")
		require.NoError(t, runApp(a, "shapes", "--json"))

		var shapes []shapeInfo
		require.NoError(t, json.Unmarshal(out.Bytes(), &shapes))
		require.Len(t, shapes, 2)
		assert.Equal(t, "User", shapes[0].Name)
		assert.Equal(t, fieldInfo{Name: "address", Rules: []string{}, Optional: true, Shape: "Address"}, shapes[0].Fields[2])
	})
}

func TestRouter(t *testing.T) {
	t.Parallel()

	a, _ := testApp("")
	engine, err := a.engine(a.cfg.SchemaPath, offline)
	require.NoError(t, err)
	cat, err := i18n.New(context.Background(), i18n.MapLoader(map[string]map[string]any{
		"en": {},
		"de": {"validation": map[string]any{"required": "ist erforderlich"}},
	}))
	require.NoError(t, err)

	mws, err := a.plugins(newBackends(context.Background(), a.log), cat)
	require.NoError(t, err)
	router := newRouter(routerDeps{
		engine:        engine,
		validator:     plugin.Chain(engine, mws...),
		catalog:       cat,
		healthTimeout: time.Second,
		log:           a.log,
	})

	do := func(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		for k, v := range header {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}
	jsonHeader := map[string]string{"Content-Type": "application/json"}

	t.Run("healthz", func(t *testing.T) {
		rec := do(http.MethodGet, "/healthz", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("list shapes", func(t *testing.T) {
		rec := do(http.MethodGet, "/shapes", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Shapes []shapeInfo `json:"shapes"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Len(t, body.Shapes, 2)
	})

	t.Run("valid body", func(t *testing.T) {
		rec := do(http.MethodPost, "/shapes/Address/validate", `{"city":"Porto"}`, jsonHeader)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"errors":[]}`, rec.Body.String())
	})

	t.Run("invalid body in the requested language", func(t *testing.T) {
		rec := do(http.MethodPost, "/shapes/Address/validate", `{}`, map[string]string{
			"Content-Type":    "application/json",
			"Accept-Language": "de-DE,de;q=0.9",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"success":false,"errors":[{"path":["city"],"rule":"required","message":"ist erforderlich"}]}`, rec.Body.String())
	})

	t.Run("unknown shape", func(t *testing.T) {
		rec := do(http.MethodPost, "/shapes/Nope/validate", `{}`, jsonHeader)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
