package server

import (
	"bufio"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/floatplane/mitsuqtt-preview/internal/config"
	"github.com/floatplane/mitsuqtt-preview/internal/routes"
	"github.com/floatplane/mitsuqtt-preview/internal/templates"
	"github.com/floatplane/mitsuqtt-preview/internal/testutil"
)

type testServer struct {
	*Server
	fs   afero.Fs
	logs *testutil.LogBuffer
}

func setupServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	fs := testutil.CreateFrontendFs(t)
	logger, logs := testutil.NewLogger()
	renderer := templates.New(templates.NewStore(fs, cfg.Language), templates.DefaultContext(),
		templates.Options{Strict: cfg.Strict}, logger)
	return &testServer{
		Server: New(cfg, routes.Default(), renderer, logger),
		fs:     fs,
		logs:   logs,
	}
}

func get(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServe_EveryPage(t *testing.T) {
	s := setupServer(t, nil)
	h := s.Handler()

	markers := map[string]string{
		"/":               `<main id="index">`,
		"/captive/":       `<input name="hn" value="the_hostname">`,
		"/captive/reboot": `<p id="countdown">`,
		"/captive/save":   `Joining the_ssid as the_hostname`,
		"/mqtt":           `value='mqtt.example.com'`,
		"/control":        `<option value="cool" selected>`,
		"/others":         `MQTT topic debug packets`,
		"/reboot":         `Saving configuration`,
		"/reset":          `reconnect to the_ssid`,
		"/setup":          `<main id="setup">`,
		"/status":         `Uptime 1y 2d 3h 4m 5.060s`,
		"/unit":           `<option value="cel" selected>`,
		"/unit_alt":       `<option value="fah" selected>`,
		"/upgrade":        `<main id="upgrade">`,
		"/upload":         `<main id="upload">`,
		"/wifi":           `<input name="psk" type="password" value="abc123">`,
	}

	for path, marker := range markers {
		t.Run(path, func(t *testing.T) {
			rec := get(t, h, http.MethodGet, path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200; body %q", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), marker) {
				t.Errorf("body missing %q:\n%s", marker, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}

	if got := s.Metrics().Snapshot().Renders; got != int64(len(markers)) {
		t.Errorf("Renders = %d, want %d", got, len(markers))
	}
}

func TestServe_UnitVariants(t *testing.T) {
	h := setupServer(t, nil).Handler()

	unit := get(t, h, http.MethodGet, "/unit").Body.String()
	alt := get(t, h, http.MethodGet, "/unit_alt").Body.String()

	if unit == alt {
		t.Fatal("/unit and /unit_alt should render differently")
	}
	if strings.Contains(unit, `<option value="fah" selected>`) {
		t.Error("/unit should not select Fahrenheit")
	}
	if !strings.Contains(unit, `id="lpw" name="lpw" type="password" value=""`) {
		t.Errorf("/unit should have an empty password:\n%s", unit)
	}
	if !strings.Contains(alt, `id="lpw" name="lpw" type="password" value="abc123"`) {
		t.Errorf("/unit_alt should carry its password:\n%s", alt)
	}
}

func TestServe_StatusErrorCodeZero(t *testing.T) {
	h := setupServer(t, nil).Handler()

	body := get(t, h, http.MethodGet, "/status").Body.String()
	if !strings.Contains(body, `<p id="mqtt">MQTT disconnected (code 0)</p>`) {
		t.Errorf("mqtt_error_code 0 should open its section:\n%s", body)
	}
}

func TestServe_NotFound(t *testing.T) {
	s := setupServer(t, nil)
	h := s.Handler()

	for _, path := range []string{"/does-not-exist", "/captive", "/Unit", "/__reload"} {
		rec := get(t, h, http.MethodGet, path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
		if rec.Body.String() != "not found" {
			t.Errorf("%s: body = %q, want %q", path, rec.Body.String(), "not found")
		}
	}
	if got := s.Metrics().Snapshot().NotFound; got != 4 {
		t.Errorf("NotFound = %d, want 4", got)
	}
}

func TestServe_IgnoresMethodAndQuery(t *testing.T) {
	h := setupServer(t, nil).Handler()
	want := get(t, h, http.MethodGet, "/reset").Body.String()

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec := get(t, h, method, "/reset?x=1&y=2")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", method, rec.Code)
		}
		if rec.Body.String() != want {
			t.Errorf("%s: body differs from GET", method)
		}
	}
}

func TestServe_Stylesheet(t *testing.T) {
	s := setupServer(t, nil)
	h := s.Handler()

	rec := get(t, h, http.MethodGet, "/css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != testutil.Stylesheet {
		t.Errorf("body = %q, want stylesheet bytes", rec.Body.String())
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected an ETag")
	}

	req := httptest.NewRequest(http.MethodGet, "/css", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	h.ServeHTTP(cached, req)
	if cached.Code != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", cached.Code)
	}
	if cached.Body.Len() != 0 {
		t.Errorf("304 should have no body, got %q", cached.Body.String())
	}
}

func TestServe_StylesheetMissing(t *testing.T) {
	s := setupServer(t, nil)
	if err := s.fs.Remove("statics/mvp.css"); err != nil {
		t.Fatal(err)
	}
	rec := get(t, s.Handler(), http.MethodGet, "/css")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestServe_MissingView(t *testing.T) {
	s := setupServer(t, nil)
	if err := s.fs.Remove("en-us/views/wifi.mst"); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s.Handler(), http.MethodGet, "/wifi")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(s.logs.String(), "template not found") {
		t.Errorf("expected the failure to be logged, got:\n%s", s.logs.String())
	}
	if got := s.Metrics().Snapshot().Failures; got != 1 {
		t.Errorf("Failures = %d, want 1", got)
	}
}

func TestServe_MissingSpecialPartial(t *testing.T) {
	s := setupServer(t, nil)
	before := get(t, s.Handler(), http.MethodGet, "/mqtt").Body.String()
	if !strings.Contains(before, `<p class="mqtt-field"><b>Friendly name</b>`) {
		t.Fatalf("expected text field from views/mqtt/_text_field.mst:\n%s", before)
	}

	if err := s.fs.Remove("en-us/views/mqtt/_text_field.mst"); err != nil {
		t.Fatal(err)
	}
	rec := get(t, s.Handler(), http.MethodGet, "/mqtt")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mqtt-field") {
		t.Errorf("partial should be substituted with nothing:\n%s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `value='1883'`) {
		t.Errorf("rest of the page should still render:\n%s", rec.Body.String())
	}
	if !strings.Contains(s.logs.String(), "partial not found") {
		t.Errorf("expected a diagnostic, got:\n%s", s.logs.String())
	}
}

func TestServe_MissingPartialStrict(t *testing.T) {
	s := setupServer(t, func(c *config.Config) { c.Strict = true })
	if err := s.fs.Remove("en-us/views/mqtt/_text_field.mst"); err != nil {
		t.Fatal(err)
	}
	rec := get(t, s.Handler(), http.MethodGet, "/mqtt")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestServe_Gzip(t *testing.T) {
	h := setupServer(t, func(c *config.Config) { c.Gzip = true }).Handler()

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
}

func TestServe_LiveReloadInjectsClient(t *testing.T) {
	h := setupServer(t, func(c *config.Config) { c.LiveReload = true }).Handler()

	body := get(t, h, http.MethodGet, "/setup").Body.String()
	if !strings.Contains(body, liveReloadScript+"</body>") {
		t.Errorf("expected reload client before </body>:\n%s", body)
	}
}

func TestServe_LiveReloadStream(t *testing.T) {
	s := setupServer(t, func(c *config.Config) { c.LiveReload = true })
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + liveReloadPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	r := bufio.NewReader(resp.Body)
	if line, _ := r.ReadString('\n'); line != "data: connected\n" {
		t.Fatalf("first event = %q", line)
	}
	_, _ = r.ReadString('\n')

	deadline := time.Now().Add(2 * time.Second)
	for s.hub.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	s.hub.broadcast()
	if line, _ := r.ReadString('\n'); line != "data: reload\n" {
		t.Errorf("reload event = %q", line)
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := setupServer(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + addr + "/reset")
	if err != nil {
		t.Fatalf("request while serving: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !strings.Contains(string(body), "the_ssid") {
		t.Errorf("unexpected body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() = %v, want nil", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	// The port must be free again.
	again, err := net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("port not released: %v", err)
	}
	_ = again.Close()

	if !strings.Contains(s.logs.String(), "server stopped") {
		t.Errorf("expected shutdown summary, got:\n%s", s.logs.String())
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = ln.Close() }()
	port := ln.Addr().(*net.TCPAddr).Port

	s := setupServer(t, func(c *config.Config) {
		c.Host = "127.0.0.1"
		c.Port = port
	})
	if err := s.Run(context.Background()); err == nil {
		t.Error("Run() should fail when the port is taken")
	}
}
