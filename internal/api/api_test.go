package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/engine"
	"github.com/ericogr/siegebot/internal/game"
	"github.com/ericogr/siegebot/internal/service"
	"github.com/ericogr/siegebot/internal/storage"
)

var testSecret = []byte("test-gateway-secret")

type fakeCommands struct {
	gotPlayer string
	gotText   string
	reply     service.Reply
	err       error
	profiles  map[string]*game.Profile
	top       []game.Profile
	gotLimit  int
}

func (f *fakeCommands) Handle(_ context.Context, playerID, text string) (service.Reply, error) {
	f.gotPlayer, f.gotText = playerID, text
	return f.reply, f.err
}

func (f *fakeCommands) Profile(_ context.Context, playerID string) (*game.Profile, error) {
	p, ok := f.profiles[playerID]
	if !ok {
		return nil, storage.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeCommands) Leaderboard(_ context.Context, limit int) ([]game.Profile, error) {
	f.gotLimit = limit
	return f.top, nil
}

func newTestRouter(f *fakeCommands) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(f), NewTokenVerifier(testSecret))
}

func bearer(t *testing.T, playerID string) string {
	t.Helper()
	tok, err := SignToken(testSecret, playerID, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return constants.BearerPrefix + tok
}

func do(r http.Handler, method, path, auth string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if auth != "" {
		req.Header.Set(constants.HeaderAuthorization, auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleCommand(t *testing.T) {
	f := &fakeCommands{reply: service.Reply{
		Command:   service.Command{Verb: service.VerbSiege},
		Outcome:   engine.OutcomeStarted,
		SessionID: "s-1",
		Lines: []engine.Line{
			{Text: "The walls loom.", PauseAfter: 1500 * time.Millisecond},
			{Text: "Opponent 1 of 3: Peasant Levy"},
		},
	}}
	r := newTestRouter(f)

	w := do(r, http.MethodPost, "/api/commands", bearer(t, "<@u1>"), []byte(`{"text":"/wl-siege","channel":"C1"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if f.gotPlayer != "U1" || f.gotText != "/wl-siege" {
		t.Fatalf("service called with %q %q", f.gotPlayer, f.gotText)
	}
	var resp commandResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != "started" || len(resp.Lines) != 2 || resp.Lines[0].PauseAfterMS != 1500 || resp.Lines[1].PauseAfterMS != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleCommandErrors(t *testing.T) {
	f := &fakeCommands{err: errors.New("boom")}
	r := newTestRouter(f)

	if w := do(r, http.MethodPost, "/api/commands", "", []byte(`{"text":"/wl-siege"}`)); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/commands", constants.BearerPrefix+"garbage", []byte(`{"text":"/wl-siege"}`)); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status %d", w.Code)
	}
	auth := bearer(t, "U1")
	if w := do(r, http.MethodPost, "/api/commands", auth, []byte(`{`)); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/commands", auth, []byte(`{"text":"  "}`)); w.Code != http.StatusBadRequest {
		t.Fatalf("blank text: status %d", w.Code)
	}
	w := do(r, http.MethodPost, "/api/commands", auth, []byte(`{"text":"/wl-siege"}`))
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), constants.ErrFailedHandleCommand) {
		t.Fatalf("hard failure: status %d body %s", w.Code, w.Body.String())
	}
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	other, _ := SignToken([]byte("other-secret"), "U1", time.Hour)
	if _, err := v.Verify(other); err == nil {
		t.Fatalf("token signed with another secret must fail")
	}
	expired, _ := SignToken(testSecret, "U1", -time.Minute)
	if _, err := v.Verify(expired); err == nil {
		t.Fatalf("expired token must fail")
	}
	wrongIssuer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "U1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(testSecret)
	if _, err := v.Verify(wrongIssuer); err == nil {
		t.Fatalf("wrong issuer must fail")
	}
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    constants.TokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(testSecret)
	if _, err := v.Verify(noSubject); err == nil {
		t.Fatalf("missing subject must fail")
	}
	good, _ := SignToken(testSecret, "@u5", time.Hour)
	if id, err := v.Verify(good); err != nil || id != "U5" {
		t.Fatalf("Verify = %q, %v", id, err)
	}
}

func TestGetPlayer(t *testing.T) {
	f := &fakeCommands{profiles: map[string]*game.Profile{
		"U1": {PlayerID: "U1", Rank: "Recruit", Kills: 4, Inventory: game.Inventory{"Bandage": 2}},
		"U2": {PlayerID: "U2", Rank: "Captain", Kills: 9, Inventory: game.Inventory{"Longbow": 1}},
	}}
	r := newTestRouter(f)
	auth := bearer(t, "U1")

	w := do(r, http.MethodGet, "/api/players/U1", auth, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"Bandage":2`) {
		t.Fatalf("own profile: %d %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodGet, "/api/players/u2", auth, nil)
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), "inventory") || !strings.Contains(w.Body.String(), `"kills":9`) {
		t.Fatalf("other profile: %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/api/players/U404", auth, nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing profile: status %d", w.Code)
	}
}

func TestListLeaderboard(t *testing.T) {
	f := &fakeCommands{top: []game.Profile{{PlayerID: "U2", Kills: 9}, {PlayerID: "U1", Kills: 4}}}
	r := newTestRouter(f)

	w := do(r, http.MethodGet, "/api/leaderboard", "", nil)
	if w.Code != http.StatusOK || f.gotLimit != defaultLeaderboardLimit {
		t.Fatalf("status %d limit %d", w.Code, f.gotLimit)
	}
	var out []profileView
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || len(out) != 2 || out[0].PlayerID != "U2" {
		t.Fatalf("unexpected leaderboard %s (%v)", w.Body.String(), err)
	}

	do(r, http.MethodGet, "/api/leaderboard?limit=500", "", nil)
	if f.gotLimit != maxLeaderboardLimit {
		t.Fatalf("limit should be clamped, got %d", f.gotLimit)
	}
	if w := do(r, http.MethodGet, "/api/leaderboard?limit=-1", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("negative limit: status %d", w.Code)
	}
}

func TestHealthAndVersion(t *testing.T) {
	r := newTestRouter(&fakeCommands{})
	if w := do(r, http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/version", "", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"version"`) {
		t.Fatalf("version: %d %s", w.Code, w.Body.String())
	}
}
