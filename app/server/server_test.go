package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"pagesmith/model"
	"pagesmith/store"
	"pagesmith/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const minimalDoc = "<!DOCTYPE html><html><body>ok</body></html>"

type cannedGenerator struct {
	mu    sync.Mutex
	out   string
	calls int
}

func (g *cannedGenerator) Generate(context.Context, model.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.out, nil
}

func newTestServer(t *testing.T, gen model.Generator) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	cfg := &types.Config{
		Port:      "0",
		PublicDir: root,
		LLM:       types.LLMConfig{Model: "gpt-test"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, gen, store.NewMemoryStore(0), logger), root
}

func create(t *testing.T, s *Server, body string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/create", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]string{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCreateEndToEnd(t *testing.T) {
	gen := &cannedGenerator{out: minimalDoc}
	s, root := newTestServer(t, gen)

	status, out := create(t, s, `{"prompt":"add a button"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Regexp(t, `^generated/page-.*\.html$`, out["filename"])

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(out["filename"])))
	require.NoError(t, err)
	assert.Equal(t, minimalDoc, string(data))

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/"+out["filename"], nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, minimalDoc, string(served))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
}

func TestCreateRejectsBeforeCallingModel(t *testing.T) {
	gen := &cannedGenerator{out: minimalDoc}
	s, _ := newTestServer(t, gen)

	status, _ := create(t, s, `{"prompt":""}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = create(t, s, `{"prompt":"add a button","currentPage":"../x"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Zero(t, gen.calls)
}

func TestCreateFencedReplyIsBadGateway(t *testing.T) {
	s, root := newTestServer(t, &cannedGenerator{out: "```html\n" + minimalDoc + "\n```"})

	status, out := create(t, s, `{"prompt":"x"}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "markdown_fence", out["reason"])

	_, err := os.Stat(filepath.Join(root, "generated"))
	assert.True(t, os.IsNotExist(err))
}

func TestCreateConcurrentUniqueFilenames(t *testing.T) {
	s, _ := newTestServer(t, &cannedGenerator{out: minimalDoc})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = s.App().Listener(ln) }()
	t.Cleanup(func() { _ = s.App().Shutdown() })
	url := "http://" + ln.Addr().String() + "/api/create"

	const n = 32
	names := make([]string, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			resp, err := http.Post(url, "application/json", strings.NewReader(`{"prompt":"x"}`))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("request %d: status %d", i, resp.StatusCode)
			}
			var out types.CreateResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return err
			}
			names[i] = out.Filename
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[string]struct{}, n)
	for _, name := range names {
		require.NotEmpty(t, name)
		seen[name] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestStaticServesExistingPages(t *testing.T) {
	s, root := newTestServer(t, &cannedGenerator{})
	require.NoError(t, os.WriteFile(filepath.Join(root, "playground.html"), []byte("<p>play</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("SECRET=1"), 0o644))

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/playground.html", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/.env", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthy(t *testing.T) {
	s, _ := newTestServer(t, &cannedGenerator{})
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/check/healthy", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
