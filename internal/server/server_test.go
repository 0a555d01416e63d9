package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"medchat/internal/auth"
	"medchat/internal/chat"
	"medchat/internal/config"
	"medchat/internal/metrics"
	"medchat/internal/models"
	"medchat/internal/responder"
	"medchat/internal/store"
)

// TestEncryptCookieSessionRoundTrip verifies that the encryptcookie +
// session middleware stack does not panic when a client replays encrypted
// session cookies across multiple requests.
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	// Use the same key-derivation as production (deriveEncryptionKey).
	secret := "test-secret-that-is-long-enough-for-production"
	encryptionKey := deriveEncryptionKey(secret)

	app := fiber.New()

	// Mirror the production middleware order exactly:
	// 1. encryptcookie  2. session  3. route handler
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: encryptionKey,
	}))

	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	// Handler that writes a session value on POST and reads it on GET.
	app.Post("/session-set", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("user", "alice")
		return c.SendString("ok")
	})
	app.Get("/session-get", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		val, _ := sess.Get("user").(string)
		return c.SendString(val)
	})

	// --- Request 1: establish a session ---
	req, _ := http.NewRequest("POST", "/session-set", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request 1 failed: %v", err)
	}
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("request 1: expected 200, got %d: %s", resp.StatusCode, body)
	}

	// Collect Set-Cookie headers from the response.
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("request 1: no cookies returned")
	}

	// --- Request 2: replay cookies (triggers encryptcookie decryption) ---
	req2, _ := http.NewRequest("GET", "/session-get", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}

	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("request 2 failed (possible encryptcookie panic): %v", err)
	}
	body, _ := io.ReadAll(resp2.Body)
	if resp2.StatusCode != 200 {
		t.Fatalf("request 2: expected 200, got %d: %s", resp2.StatusCode, body)
	}
	if string(body) != "alice" {
		t.Errorf("request 2: expected session value 'alice', got %q", body)
	}

	// --- Request 3: one more round-trip to confirm stability ---
	cookies2 := resp2.Cookies()
	req3, _ := http.NewRequest("GET", "/session-get", nil)
	// Use cookies from resp2 if present, otherwise fall back to original.
	replayCookies := cookies2
	if len(replayCookies) == 0 {
		replayCookies = cookies
	}
	for _, c := range replayCookies {
		req3.AddCookie(c)
	}

	resp3, err := app.Test(req3)
	if err != nil {
		t.Fatalf("request 3 failed: %v", err)
	}
	body3, _ := io.ReadAll(resp3.Body)
	if resp3.StatusCode != 200 {
		t.Fatalf("request 3: expected 200, got %d: %s", resp3.StatusCode, body3)
	}
	if string(body3) != "alice" {
		t.Errorf("request 3: expected session value 'alice', got %q", body3)
	}
}

type testServer struct {
	t        *testing.T
	srv      *Server
	recorder *metrics.Recorder
	cookies  map[string]*http.Cookie
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("down") }

func newTestServer(t *testing.T, d Deps) *testServer {
	t.Helper()

	cfg := &config.Config{
		Env:           "development",
		BaseURL:       "http://localhost:3000",
		SessionSecret: "test-secret-that-is-long-enough-for-production",
		SessionTTL:    time.Hour,
		MaxHistory:    200,
		OTPTTL:        5 * time.Minute,
		ExposeOTP:     true,
		RateLimit:     1000,
		SiteTitle:     "MedChat",
	}
	log := zap.NewNop()
	mem := store.NewMemory()

	r := responder.Default(responder.WithPicker(func(int) int { return 0 }))
	recorder := metrics.NewRecorder(metrics.NewMemoryStore(), log)
	reg := prometheus.NewRegistry()
	if err := recorder.Register(reg); err != nil {
		t.Fatalf("failed to register collector: %v", err)
	}

	d.Chat = chat.NewService(mem, r, recorder, chat.Config{TTL: cfg.SessionTTL, MaxHistory: cfg.MaxHistory}, log)
	d.Auth = auth.NewService(mem, auth.LogSender{Logger: log}, cfg.OTPTTL, log)
	d.Recorder = recorder
	d.Gatherer = reg

	srv := New(cfg, log, nil)
	srv.RegisterRoutes(d)

	return &testServer{t: t, srv: srv, recorder: recorder, cookies: make(map[string]*http.Cookie)}
}

func (ts *testServer) do(method, path string, body any) (*http.Response, envelope) {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			ts.t.Fatalf("failed to encode body: %v", err)
		}
		reader = strings.NewReader(string(data))
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range ts.cookies {
		req.AddCookie(c)
	}

	resp, err := ts.srv.App.Test(req)
	if err != nil {
		ts.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	for _, c := range resp.Cookies() {
		ts.cookies[c.Name] = c
	}

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &env); err != nil {
			ts.t.Fatalf("%s %s: invalid JSON %q: %v", method, path, raw, err)
		}
	} else {
		env.Data = raw
	}
	return resp, env
}

func (ts *testServer) login(phone, name, location string) models.User {
	ts.t.Helper()

	resp, env := ts.do("POST", "/api/auth/otp", fiber.Map{"phone": phone})
	if resp.StatusCode != fiber.StatusOK {
		ts.t.Fatalf("otp: %d %s", resp.StatusCode, env.Error)
	}
	var otpResp models.OTPResponse
	if err := json.Unmarshal(env.Data, &otpResp); err != nil {
		ts.t.Fatalf("otp: %v", err)
	}
	if otpResp.Code == "" {
		ts.t.Fatal("otp: code not exposed")
	}

	resp, env = ts.do("POST", "/api/auth/verify", fiber.Map{"phone": otpResp.Phone, "code": otpResp.Code})
	if resp.StatusCode != fiber.StatusOK {
		ts.t.Fatalf("verify: %d %s", resp.StatusCode, env.Error)
	}

	resp, env = ts.do("POST", "/api/auth/profile", fiber.Map{"name": name, "location": location})
	if resp.StatusCode != fiber.StatusOK {
		ts.t.Fatalf("profile: %d %s", resp.StatusCode, env.Error)
	}
	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		ts.t.Fatalf("profile: %v", err)
	}
	return user
}

func TestClassifyAPI(t *testing.T) {
	ts := newTestServer(t, Deps{})

	resp, env := ts.do("POST", "/api/classify", fiber.Map{"text": "I have a terrible headache"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got responder.Response
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Urgency != responder.UrgencyMedium || got.Outcome != responder.OutcomeKeyword || got.Trigger != "headache" {
		t.Errorf("response = %+v", got)
	}
	if len(got.Suggestions) != 4 {
		t.Errorf("suggestions = %v, want 4", got.Suggestions)
	}

	var raw map[string]any
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, key := range []string{"response", "suggestions", "urgency", "disclaimer"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing JSON field %q", key)
		}
	}
}

func TestClassifyAPI_Errors(t *testing.T) {
	ts := newTestServer(t, Deps{})

	tests := []struct {
		name string
		body any
		want int
	}{
		{"empty text", fiber.Map{"text": "   "}, fiber.StatusBadRequest},
		{"too long", fiber.Map{"text": strings.Repeat("a", 2001)}, fiber.StatusBadRequest},
		{"wrong type", fiber.Map{"text": 42}, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := ts.do("POST", "/api/classify", tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if env.Status != "error" || env.Error == "" {
				t.Errorf("envelope = %+v, want error", env)
			}
		})
	}
}

func TestKeywordsAPI(t *testing.T) {
	ts := newTestServer(t, Deps{})

	_, env := ts.do("GET", "/api/keywords", nil)
	var got models.KeywordsResponse
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(got.Keywords) != 10 || got.Keywords[0] != "chest pain" {
		t.Errorf("keywords = %v", got.Keywords)
	}
	if len(got.EmergencyPhrases) == 0 {
		t.Error("emergency phrases missing")
	}
}

func TestUnknownAPIRouteReturnsJSON(t *testing.T) {
	ts := newTestServer(t, Deps{})

	resp, env := ts.do("GET", "/api/nope", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if env.Status != "error" {
		t.Errorf("envelope = %+v, want JSON error", env)
	}
}

func TestPagesRequireLogin(t *testing.T) {
	ts := newTestServer(t, Deps{})

	resp, _ := ts.do("GET", "/", nil)
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	resp, env := ts.do("GET", "/login", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login page status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(env.Data), "Send code") {
		t.Error("login page not rendered")
	}

	resp, _ = ts.do("GET", "/api/messages", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("messages status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginFlowAndChat(t *testing.T) {
	ts := newTestServer(t, Deps{})

	// Profile before verification is rejected.
	resp, _ := ts.do("POST", "/api/auth/profile", fiber.Map{"name": "Asha"})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("early profile status = %d, want 401", resp.StatusCode)
	}

	user := ts.login("+91 98765 43210", "", "Erode District")
	if user.Name != "User 3210" || user.Location != "Erode District" {
		t.Errorf("user = %+v", user)
	}

	_, env := ts.do("GET", "/api/auth/me", nil)
	var me models.User
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.ID != user.ID {
		t.Errorf("me.ID = %v, want %v", me.ID, user.ID)
	}

	resp, env = ts.do("GET", "/", nil)
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(env.Data), "User 3210") {
		t.Errorf("chat page = %d", resp.StatusCode)
	}

	_, env = ts.do("GET", "/api/messages", nil)
	var history []models.Message
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Text != chat.Greeting {
		t.Fatalf("history = %+v, want greeting", history)
	}

	_, env = ts.do("POST", "/api/messages", fiber.Map{"text": "I have a fever"})
	var reply models.ChatReply
	if err := json.Unmarshal(env.Data, &reply); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(reply.Messages) != 3 || reply.Response == nil || reply.Response.Trigger != "fever" {
		t.Errorf("reply = %+v", reply)
	}

	_, env = ts.do("POST", "/api/symptoms", fiber.Map{"ids": []string{"cough", "fever"}})
	if err := json.Unmarshal(env.Data, &reply); err != nil {
		t.Fatalf("symptoms: %v", err)
	}
	if reply.Messages[0].Text != "I'm experiencing these symptoms: Cough, Fever" {
		t.Errorf("symptom sentence = %q", reply.Messages[0].Text)
	}
	if reply.Response.Trigger != "fever" {
		t.Errorf("trigger = %q, want fever by table order", reply.Response.Trigger)
	}

	resp, _ = ts.do("POST", "/api/symptoms", fiber.Map{"ids": []string{"unknown"}})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("unknown symptom status = %d, want 400", resp.StatusCode)
	}

	_, env = ts.do("POST", "/api/messages/audio", fiber.Map{"audio_url": "blob:abc"})
	if err := json.Unmarshal(env.Data, &reply); err != nil {
		t.Fatalf("audio: %v", err)
	}
	if len(reply.Messages) != 2 || reply.Messages[1].Text != chat.AudioReply {
		t.Errorf("audio reply = %+v", reply.Messages)
	}

	resp, _ = ts.do("DELETE", "/api/messages", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("clear status = %d", resp.StatusCode)
	}
	_, env = ts.do("GET", "/api/messages", nil)
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history after clear = %d messages, want 0", len(history))
	}

	ts.do("POST", "/api/auth/logout", nil)
	resp, _ = ts.do("GET", "/api/auth/me", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("me after logout = %d, want 401", resp.StatusCode)
	}
}

func TestLoginErrors(t *testing.T) {
	ts := newTestServer(t, Deps{})

	resp, _ := ts.do("POST", "/api/auth/otp", fiber.Map{"phone": "123"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("bad phone status = %d, want 400", resp.StatusCode)
	}

	resp, _ = ts.do("POST", "/api/auth/verify", fiber.Map{"phone": "9876543210", "code": "123456"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("no pending code status = %d, want 400", resp.StatusCode)
	}

	resp, _ = ts.do("POST", "/api/auth/verify", fiber.Map{"phone": "9876543210", "code": "12"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("short code status = %d, want 400", resp.StatusCode)
	}
}

func TestLocationsAPI(t *testing.T) {
	ts := newTestServer(t, Deps{})

	_, env := ts.do("GET", "/api/locations?q=kerala", nil)
	var got []map[string]string
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(got) == 0 {
		t.Error("expected Kerala districts")
	}
}

func TestProbes(t *testing.T) {
	ts := newTestServer(t, Deps{})

	resp, _ := ts.do("GET", "/healthz", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("healthz = %d", resp.StatusCode)
	}
	resp, _ = ts.do("GET", "/readyz", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("readyz without database = %d", resp.StatusCode)
	}

	ts = newTestServer(t, Deps{DB: failingPinger{}})
	resp, _ = ts.do("GET", "/readyz", nil)
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("readyz with failing database = %d, want 503", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, Deps{})

	ts.do("POST", "/api/classify", fiber.Map{"text": "fever"})
	ts.do("POST", "/api/classify", fiber.Map{"text": "fever again"})
	ts.do("POST", "/api/classify", fiber.Map{"text": "hello"})
	ts.recorder.Wait()

	resp, env := ts.do("GET", "/metrics", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("metrics status = %d", resp.StatusCode)
	}
	body := string(env.Data)
	for _, want := range []string{
		`medchat_replies_total{keyword="fever",outcome="keyword"} 2`,
		`outcome="general"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
