package commands

import (
	"bytes"
	"io/ioutil"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/dummy"
	"github.com/itblio/itbl/src/version"
)

func newTestServer(t *testing.T) *httptest.Server {
	logger := common.NewTestEntry(t, "dummy")

	state := dummy.NewState(logger)
	_, err := state.LoadMessages([]byte(`{"inAppMessages": [
		{"messageId": "a", "campaignId": 7, "content": {"html": "<a href='action://open'>x</a>"}},
		{"messageId": "b", "saveToInbox": true, "content": {"type": "inboxHtml", "html": "<a href='x'>x</a>"}}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	return httptest.NewServer(dummy.NewServer("key", state, logger))
}

func tempDir(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "itbl-cli")
	if err != nil {
		t.Fatal(err)
	}
	return dir, func() { os.RemoveAll(dir) }
}

func execute(t *testing.T, args ...string) (string, error) {
	root := NewRootCmd()
	root.SilenceUsage = true
	root.SilenceErrors = true

	var out bytes.Buffer
	root.SetOutput(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	dir, clean := tempDir(t)
	defer clean()

	out, err := execute(t, "--datadir", dir, "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version.Version {
		t.Fatalf("expected %s, got %s", version.Version, out)
	}
}

func TestTrack(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	dir, clean := tempDir(t)
	defer clean()

	out, err := execute(t,
		"--datadir", dir,
		"--log", "error",
		"--api-key", "key",
		"--endpoint", srv.URL+"/api/",
		"--email", "user@example.com",
		"track", "purchase", `{"total": 3}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"code":"Success"`) {
		t.Fatalf("unexpected output %q", out)
	}

	_, err = execute(t,
		"--datadir", dir,
		"--log", "error",
		"--api-key", "wrong",
		"--endpoint", srv.URL+"/api/",
		"--email", "user@example.com",
		"track", "purchase")
	if err == nil || !strings.HasPrefix(err.Error(), "Invalid API Key") {
		t.Fatalf("expected Invalid API Key, got %v", err)
	}

	_, err = execute(t, "--datadir", dir, "--api-key", "key", "track", "purchase", "{")
	if err == nil || !strings.HasPrefix(err.Error(), "Could not parse json") {
		t.Fatalf("expected a json error, got %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	dir, clean := tempDir(t)
	defer clean()

	toml := `api-key = "key"
endpoint = "` + srv.URL + `/api/"
user-id = "u1"
log = "error"
`
	if err := ioutil.WriteFile(filepath.Join(dir, "itbl.toml"), []byte(toml), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--datadir", dir, "update-user", "--merge", `{"name": "x"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"code":"Success"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInApp(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	dir, clean := tempDir(t)
	defer clean()

	flags := []string{
		"--datadir", dir,
		"--log", "error",
		"--api-key", "key",
		"--endpoint", srv.URL + "/api/",
		"--email", "user@example.com",
	}

	out, err := execute(t, append(flags, "inapp", "list")...)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "a\tcampaign=7") {
		t.Fatalf("unexpected list %q", out)
	}

	out, err = execute(t, append(flags, "inapp", "list", "--inbox")...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "b\t") || strings.Count(out, "\n") != 1 {
		t.Fatalf("unexpected inbox %q", out)
	}

	out, err = execute(t, append(flags, "inapp", "show", "b")...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"contentType":"inboxHtml"`) {
		t.Fatalf("unexpected show output %q", out)
	}

	out, err = execute(t, append(flags, "inapp", "click", "a", "action://open")...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "action: open") || !strings.Contains(out, "custom click: open") {
		t.Fatalf("unexpected click output %q", out)
	}

	if _, err := execute(t, append(flags, "inapp", "show", "nope")...); err == nil {
		t.Fatal("showing an unknown message should fail")
	}
}

func TestParse(t *testing.T) {
	dir, clean := tempDir(t)
	defer clean()

	file := filepath.Join(dir, "content.json")
	payload := `{
		"type": "inboxHtml",
		"html": "<a href='action://x'>x</a>",
		"inboxTitle": "Hello",
		"inAppDisplaySettings": {"top": {"percentage": 10}, "bottom": {"displayOption": "AutoExpand"}}
	}`
	if err := ioutil.WriteFile(file, []byte(payload), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--datadir", dir, "parse", file)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"contentType":"inboxHtml"`, `"title":"Hello"`, `"top":10`, `"bottom":-1`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q should contain %s", out, want)
		}
	}

	if err := ioutil.WriteFile(file, []byte(`{"html": "no link"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--datadir", dir, "parse", file); err == nil {
		t.Fatal("content without href should fail")
	}
}
