package mobile

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/itblio/itbl/src/common"
	"github.com/sirupsen/logrus"
)

type recorder struct {
	sync.Mutex
	successes  []string
	reasons    []string
	data       [][]byte
	actions    []string
	urls       []string
	exceptions []string
}

func (r *recorder) OnSuccess(json string) {
	r.Lock()
	defer r.Unlock()
	r.successes = append(r.successes, json)
}

func (r *recorder) OnFailure(reason string, data []byte) {
	r.Lock()
	defer r.Unlock()
	r.reasons = append(r.reasons, reason)
	r.data = append(r.data, data)
}

func (r *recorder) OnAction(name string) {
	r.Lock()
	defer r.Unlock()
	r.actions = append(r.actions, name)
}

func (r *recorder) OnURL(url string) {
	r.Lock()
	defer r.Unlock()
	r.urls = append(r.urls, url)
}

func (r *recorder) OnException(msg string) {
	r.Lock()
	defer r.Unlock()
	r.exceptions = append(r.exceptions, msg)
}

func newTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "inApp/getMessages"):
			w.Write([]byte(`{"inAppMessages": [
				{"messageId": "a", "content": {"html": "<a href='action://open'>x</a>"}},
				{"messageId": "b", "saveToInbox": true, "content": {"html": "<a href='https://example.com'>x</a>"}}
			]}`))
		case strings.HasSuffix(r.URL.Path, "events/track"):
			w.Write([]byte(`{"code":"Success"}`))
		case strings.HasSuffix(r.URL.Path, "users/update"):
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"msg":"bad field"}`))
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
}

func newTestClient(t *testing.T, r *recorder) (*Client, func()) {
	srv := newTestServer()

	conf := DefaultMobileConfig()
	conf.Endpoint = srv.URL + "/api/"
	conf.LogLevel = "error"

	c := New("key", "user@example.com", "", r, r, r, conf)
	if c == nil {
		t.Fatalf("New failed: %v", r.exceptions)
	}

	return c, func() {
		c.Shutdown()
		srv.Close()
	}
}

func TestNewWithoutKey(t *testing.T) {
	r := &recorder{}
	if c := New("", "", "", r, r, r, DefaultMobileConfig()); c != nil {
		t.Fatal("New without an API key should return nil")
	}
	if len(r.exceptions) != 1 {
		t.Fatalf("expected one exception, got %v", r.exceptions)
	}
}

func TestTrack(t *testing.T) {
	r := &recorder{}
	c, done := newTestClient(t, r)
	defer done()

	c.Track("purchase", `{"total": 3}`, r, r)
	if len(r.successes) != 1 || r.successes[0] != `{"code":"Success"}` {
		t.Fatalf("unexpected successes %v", r.successes)
	}

	c.Track("purchase", `[1, 2]`, r, r)
	if len(r.reasons) != 1 || !strings.HasPrefix(r.reasons[0], "Could not parse json: ") {
		t.Fatalf("unexpected reasons %v", r.reasons)
	}
	if string(r.data[0]) != `[1, 2]` {
		t.Fatalf("failure should carry the input, got %s", r.data[0])
	}
}

func TestUpdateUserFailure(t *testing.T) {
	r := &recorder{}
	c, done := newTestClient(t, r)
	defer done()

	c.UpdateUser(`{"name": "x"}`, false, r, r)
	if len(r.reasons) != 1 || r.reasons[0] != "Invalid Request: bad field" {
		t.Fatalf("unexpected reasons %v", r.reasons)
	}
	if string(r.data[0]) != `{"msg":"bad field"}` {
		t.Fatalf("unexpected data %s", r.data[0])
	}
}

func TestInAppFlow(t *testing.T) {
	r := &recorder{}
	c, done := newTestClient(t, r)
	defer done()

	c.SyncInApp(r, r)
	if len(r.successes) != 1 {
		t.Fatalf("sync failed: %v", r.reasons)
	}

	var inbox []map[string]interface{}
	if err := common.DecodeJSON([]byte(c.InboxJSON()), &inbox); err != nil {
		t.Fatal(err)
	}
	if len(inbox) != 1 || inbox[0]["messageId"] != "b" {
		t.Fatalf("unexpected inbox %v", inbox)
	}

	c.HandleClick("a", "action://open", nil, nil)
	c.HandleClick("b", "https://example.com", nil, nil)
	if len(r.actions) != 1 || r.actions[0] != "open" {
		t.Fatalf("unexpected actions %v", r.actions)
	}
	if len(r.urls) != 1 || r.urls[0] != "https://example.com" {
		t.Fatalf("unexpected urls %v", r.urls)
	}

	c.HandleClick("missing", "action://open", nil, nil)
	if len(r.exceptions) != 1 {
		t.Fatalf("expected one exception, got %v", r.exceptions)
	}

	c.MarkRead("a")
	var all []map[string]interface{}
	if err := common.DecodeJSON([]byte(c.MessagesJSON()), &all); err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0]["read"] != true {
		t.Fatalf("unexpected messages %v", all)
	}
}

func TestFailuresWithoutHandler(t *testing.T) {
	r := &recorder{}
	c, done := newTestClient(t, r)
	defer done()

	c.Track("purchase", `not json`, r, nil)
	c.UpdateUser(`{"name": "x"}`, false, r, nil)

	if len(r.reasons) != 0 {
		t.Fatalf("no FailureHandler was given, got reasons %v", r.reasons)
	}
	if len(r.exceptions) != 2 {
		t.Fatalf("expected two exceptions, got %v", r.exceptions)
	}
	if !strings.HasPrefix(r.exceptions[0], "Could not parse json: ") {
		t.Fatalf("unexpected exception %q", r.exceptions[0])
	}
	if r.exceptions[1] != "Invalid Request: bad field" {
		t.Fatalf("unexpected exception %q", r.exceptions[1])
	}
}

func TestTrailingDataIsRejected(t *testing.T) {
	r := &recorder{}
	c, done := newTestClient(t, r)
	defer done()

	c.Track("purchase", `{"total": 3} garbage`, r, r)
	if len(r.successes) != 0 || len(r.reasons) != 1 {
		t.Fatalf("expected one failure, got successes %v reasons %v", r.successes, r.reasons)
	}
}

func TestNewWithNilConfig(t *testing.T) {
	r := &recorder{}
	c := New("key", "user@example.com", "", r, r, r, nil)
	if c == nil {
		t.Fatalf("New with a nil config failed: %v", r.exceptions)
	}
	c.Shutdown()
}

func TestLoggerLevelIsSetOnce(t *testing.T) {
	r := &recorder{}
	_, done := newTestClient(t, r)
	defer done()

	level := Logger().Level

	conf := DefaultMobileConfig()
	conf.LogLevel = "debug"
	if level == logrus.DebugLevel {
		conf.LogLevel = "error"
	}

	other := New("key", "other@example.com", "", r, r, r, conf)
	if other == nil {
		t.Fatalf("New failed: %v", r.exceptions)
	}
	defer other.Shutdown()

	if Logger().Level != level {
		t.Fatalf("second client changed the shared level from %v to %v", level, Logger().Level)
	}
}
