package dummy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/itblio/itbl/src/api"
	"github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/constants"
)

const seed = `{"inAppMessages": [
	{"messageId": "all", "content": {"html": "<a href='x'>x</a>"}},
	{"messageId": "other", "content": {"html": "<a href='x'>x</a>"}}
]}`

func newTestClient(t *testing.T, apiKey string) (*api.Client, *State, func()) {
	logger := common.NewTestEntry(t, "dummy")

	state := NewState(logger)
	srv := httptest.NewServer(NewServer("key", state, logger))

	client, err := api.NewClient(api.ClientConfig{
		APIKey:   apiKey,
		Endpoint: srv.URL + Prefix,
		Platform: "Go",
	}, logger)
	if err != nil {
		t.Fatal(err)
	}

	return client, state, srv.Close
}

func TestTrackAndUpdate(t *testing.T) {
	client, state, done := newTestClient(t, "key")
	defer done()

	ctx := context.Background()

	_, err := client.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   constants.PathTrack,
		Body: map[string]interface{}{
			constants.Email:      "a@b.c",
			constants.EventName:  "open",
			constants.DataFields: map[string]interface{}{"n": 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	events := state.Events()
	expected := []Event{{User: "a@b.c", Name: "open", DataFields: map[string]interface{}{"n": int64(1)}}}
	if !reflect.DeepEqual(events, expected) {
		t.Fatalf("events should be %v, not %v", expected, events)
	}

	update := func(fields map[string]interface{}, mergeNested bool) {
		_, err := client.Do(ctx, &api.Request{
			Method: http.MethodPost,
			Path:   constants.PathUpdateUser,
			Body: map[string]interface{}{
				constants.UserID:      "u1",
				constants.DataFields:  fields,
				constants.MergeNested: mergeNested,
			},
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	update(map[string]interface{}{"a": map[string]interface{}{"x": 1}}, false)
	update(map[string]interface{}{"a": map[string]interface{}{"y": 2}}, true)

	expectedUser := map[string]interface{}{"a": map[string]interface{}{"x": int64(1), "y": int64(2)}}
	if u := state.User("u1"); !reflect.DeepEqual(u, expectedUser) {
		t.Fatalf("user should be %v, not %v", expectedUser, u)
	}

	update(map[string]interface{}{"a": map[string]interface{}{"z": 3}}, false)

	expectedUser = map[string]interface{}{"a": map[string]interface{}{"z": int64(3)}}
	if u := state.User("u1"); !reflect.DeepEqual(u, expectedUser) {
		t.Fatalf("user should be %v, not %v", expectedUser, u)
	}
}

func TestMessages(t *testing.T) {
	client, state, done := newTestClient(t, "key")
	defer done()

	if n, err := state.LoadMessages([]byte(seed)); err != nil || n != 2 {
		t.Fatalf("LoadMessages: %d, %v", n, err)
	}
	state.AddMessage("a@b.c", map[string]interface{}{constants.InAppMessageID: "mine"})

	ctx := context.Background()

	get := func(user string, count string) []string {
		query := url.Values{}
		query.Set(constants.Email, user)
		query.Set(constants.InAppCount, count)

		data, err := client.Do(ctx, &api.Request{
			Method: http.MethodGet,
			Path:   constants.PathGetMessages,
			Query:  query,
		})
		if err != nil {
			t.Fatal(err)
		}

		ids := []string{}
		for _, item := range data[constants.InAppMessages].([]interface{}) {
			ids = append(ids, item.(map[string]interface{})[constants.InAppMessageID].(string))
		}
		return ids
	}

	if ids := get("a@b.c", "10"); !reflect.DeepEqual(ids, []string{"all", "other", "mine"}) {
		t.Fatalf("unexpected messages %v", ids)
	}
	if ids := get("a@b.c", "1"); !reflect.DeepEqual(ids, []string{"all"}) {
		t.Fatalf("count should limit messages, got %v", ids)
	}
	if ids := get("x@y.z", "10"); !reflect.DeepEqual(ids, []string{"all", "other"}) {
		t.Fatalf("unexpected messages %v", ids)
	}

	consume := &api.Request{
		Method: http.MethodPost,
		Path:   constants.PathInAppConsume,
		Body: map[string]interface{}{
			constants.Email:          "a@b.c",
			constants.InAppMessageID: "all",
		},
	}

	if _, err := client.Do(ctx, consume); err != nil {
		t.Fatal(err)
	}

	if ids := get("a@b.c", "10"); !reflect.DeepEqual(ids, []string{"other", "mine"}) {
		t.Fatalf("consumed message should be gone, got %v", ids)
	}
	if ids := get("x@y.z", "10"); !reflect.DeepEqual(ids, []string{"all", "other"}) {
		t.Fatalf("consume should only affect one user, got %v", ids)
	}

	_, err := client.Do(ctx, consume)
	if apiErr, ok := err.(*api.Error); !ok || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("consuming twice should fail, got %v", err)
	}
}

func TestRejections(t *testing.T) {
	client, _, done := newTestClient(t, "wrong")
	defer done()

	_, err := client.Do(context.Background(), &api.Request{
		Method: http.MethodPost,
		Path:   constants.PathTrack,
		Body: map[string]interface{}{
			constants.Email:     "a@b.c",
			constants.EventName: "open",
		},
	})
	apiErr, ok := err.(*api.Error)
	if !ok || apiErr.Reason != "Invalid API Key: Invalid API key" {
		t.Fatalf("unexpected error %v", err)
	}

	client, _, done = newTestClient(t, "key")
	defer done()

	_, err = client.Do(context.Background(), &api.Request{
		Method: http.MethodPost,
		Path:   constants.PathTrack,
		Body: map[string]interface{}{
			constants.EventName: "open",
		},
	})
	apiErr, ok = err.(*api.Error)
	if !ok || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected error %v", err)
	}
}
