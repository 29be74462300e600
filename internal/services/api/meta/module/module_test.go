package module

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"shelfwatch/internal/modkit"
	"shelfwatch/internal/modkit/repokit"
	phttp "shelfwatch/internal/platform/net/http"
	kit "shelfwatch/internal/platform/testkit"
)

type pingDB struct {
	repokit.TxRunner
	err error
}

func (p pingDB) Ping(context.Context) error { return p.err }

func serve(t *testing.T, m *Module, path string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var env phttp.Envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr, env
}

func TestNew_RequiresServiceName(t *testing.T) {
	kit.MustPanic(t, func() { New(modkit.Deps{}, " ") })
}

func TestHealthAndVersion(t *testing.T) {
	m := New(modkit.Deps{}, "shelfwatch-api")
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name=%q ports=%v", m.Name(), m.Ports())
	}

	rr, env := serve(t, m, "/healthz")
	data, _ := env.Data.(map[string]any)
	if rr.Code != 200 || data["ok"] != true || data["service"] != "shelfwatch-api" {
		t.Fatalf("healthz %d %+v", rr.Code, env)
	}

	rr, env = serve(t, m, "/version")
	data, _ = env.Data.(map[string]any)
	if rr.Code != 200 || data["version"] != "dev" {
		t.Fatalf("version %d %+v", rr.Code, env)
	}
}

func TestReady(t *testing.T) {
	rr, _ := serve(t, New(modkit.Deps{}, "api"), "/readyz")
	if rr.Code != 200 {
		t.Fatalf("no db: %d", rr.Code)
	}

	rr, _ = serve(t, New(modkit.Deps{DB: pingDB{}}, "api"), "/readyz")
	if rr.Code != 200 {
		t.Fatalf("healthy db: %d", rr.Code)
	}

	rr, env := serve(t, New(modkit.Deps{DB: pingDB{err: errors.New("down")}}, "api"), "/readyz")
	if rr.Code != http.StatusServiceUnavailable || env.Error == "" {
		t.Fatalf("down db: %d %+v", rr.Code, env)
	}
}

func TestPrefix(t *testing.T) {
	rr, _ := serve(t, New(modkit.Deps{}, "api", modkit.WithPrefix("meta")), "/meta/healthz")
	if rr.Code != 200 {
		t.Fatalf("prefixed healthz: %d", rr.Code)
	}
}
