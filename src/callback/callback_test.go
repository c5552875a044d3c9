package callback

import (
	"net/url"
	"reflect"
	"testing"
)

func TestActionBlock(t *testing.T) {
	var got []*string
	var block ActionBlock = func(action *string) {
		got = append(got, action)
	}

	block.Call(nil)
	block.Call(String("open"))

	if len(got) != 2 {
		t.Fatalf("block should have been called 2 times, not %d", len(got))
	}
	if got[0] != nil {
		t.Fatalf("first action should be absent, got %q", *got[0])
	}
	if Value(got[1]) != "open" {
		t.Fatalf("second action should be open, not %q", Value(got[1]))
	}
}

func TestURLCallback(t *testing.T) {
	var got []*url.URL
	var cb URLCallback = func(u *url.URL) {
		got = append(got, u)
	}

	u, _ := url.Parse("https://example.com/a?b=c")
	cb.Call(nil)
	cb.Call(u)

	if len(got) != 2 || got[0] != nil || got[1].String() != u.String() {
		t.Fatalf("unexpected calls %v", got)
	}
}

func TestOnSuccessHandler(t *testing.T) {
	cases := []struct {
		name string
		data map[string]interface{}
	}{
		{"absent", nil},
		{"empty", map[string]interface{}{}},
		{"populated", map[string]interface{}{"a": 1, "b": "two", "c": []interface{}{true}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			called := false
			var h OnSuccessHandler = func(data map[string]interface{}) {
				called = true
				if (data == nil) != (c.data == nil) {
					t.Fatalf("nil-ness of data should be preserved")
				}
				if !reflect.DeepEqual(data, c.data) {
					t.Fatalf("data should be %v, not %v", c.data, data)
				}
			}
			h.Call(c.data)
			if !called {
				t.Fatal("handler not called")
			}
		})
	}
}

func TestOnFailureHandlerCombinations(t *testing.T) {
	reasons := []*string{nil, String("Invalid API Key")}
	datas := [][]byte{nil, []byte(`{"msg":"nope"}`)}

	for _, r := range reasons {
		for _, d := range datas {
			var gotReason *string
			var gotData []byte
			calls := 0
			var h OnFailureHandler = func(reason *string, data []byte) {
				calls++
				gotReason = reason
				gotData = data
			}

			h.Call(r, d)

			if calls != 1 {
				t.Fatalf("handler should be called once, not %d", calls)
			}
			if gotReason != r {
				t.Fatalf("reason should be passed through unchanged")
			}
			if (gotData == nil) != (d == nil) || string(gotData) != string(d) {
				t.Fatalf("data should be %q, not %q", d, gotData)
			}
		}
	}
}

func TestNilCallbacksAreNoops(t *testing.T) {
	var a ActionBlock
	var u URLCallback
	var s OnSuccessHandler
	var f OnFailureHandler

	a.Call(String("x"))
	u.Call(nil)
	s.Call(map[string]interface{}{})
	f.Call(nil, nil)
	f.Fail("reason", nil)
}

type recordingHandler struct {
	actions  []string
	reasons  []string
	payloads []map[string]interface{}
}

func (r *recordingHandler) OnAction(action *string) {
	r.actions = append(r.actions, Value(action))
}

func (r *recordingHandler) OnSuccess(data map[string]interface{}) {
	r.payloads = append(r.payloads, data)
}

func (r *recordingHandler) OnFailure(reason *string, data []byte) {
	r.reasons = append(r.reasons, Value(reason))
}

func TestHandlerAdapters(t *testing.T) {
	r := &recordingHandler{}

	FromActionHandler(r).Call(String("buy"))
	FromSuccessHandler(r).Call(map[string]interface{}{"ok": true})
	FromFailureHandler(r).Fail("boom", nil)

	if !reflect.DeepEqual(r.actions, []string{"buy"}) {
		t.Fatalf("unexpected actions %v", r.actions)
	}
	if len(r.payloads) != 1 || r.payloads[0]["ok"] != true {
		t.Fatalf("unexpected payloads %v", r.payloads)
	}
	if !reflect.DeepEqual(r.reasons, []string{"boom"}) {
		t.Fatalf("unexpected reasons %v", r.reasons)
	}

	if FromActionHandler(nil) != nil || FromURLHandler(nil) != nil ||
		FromSuccessHandler(nil) != nil || FromFailureHandler(nil) != nil {
		t.Fatal("nil handlers should convert to nil callbacks")
	}

	// func types satisfy their interfaces
	var _ ActionHandler = ActionBlock(nil)
	var _ URLHandler = URLCallback(nil)
	var _ SuccessHandler = OnSuccessHandler(nil)
	var _ FailureHandler = OnFailureHandler(nil)
}
