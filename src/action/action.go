// Package action turns URLs clicked inside in-app messages into calls to the
// application's ActionBlock or URLCallback.
package action

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/itblio/itbl/src/callback"
	"github.com/itblio/itbl/src/constants"
)

// Kind classifies a clicked URL.
type Kind int

const (
	// Regular is an ordinary URL, handed to the URLCallback.
	Regular Kind = iota
	// Custom is an action://<name> URL, handed to the ActionBlock.
	Custom
	// Internal is an itbl://<name> URL, handled by the SDK itself.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Custom:
		return "custom"
	case Internal:
		return "internal"
	default:
		return "regular"
	}
}

// Internal action names.
const (
	Dismiss = "dismiss"
	Delete  = "delete"
)

// Click is a parsed clicked URL.
type Click struct {
	Kind Kind
	// Name is the action name for Custom and Internal clicks.
	Name string
	URL  *url.URL
}

// ParseClick classifies raw. The action name is everything after the
// "scheme://" prefix, so "action://buy/now" names "buy/now".
func ParseClick(raw string) (Click, error) {
	if raw == "" {
		return Click{}, fmt.Errorf("empty url")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Click{}, err
	}

	if u.Scheme == "" {
		return Click{}, fmt.Errorf("url has no scheme: %s", raw)
	}

	switch strings.ToLower(u.Scheme) {
	case constants.SchemeAction:
		return Click{Kind: Custom, Name: actionName(raw, u.Scheme), URL: u}, nil
	case constants.SchemeInternal:
		return Click{Kind: Internal, Name: actionName(raw, u.Scheme), URL: u}, nil
	default:
		return Click{Kind: Regular, URL: u}, nil
	}
}

func actionName(raw, scheme string) string {
	name := raw[len(scheme)+1:]
	return strings.TrimPrefix(name, "//")
}

// Router dispatches clicks to the application callbacks.
type Router struct {
	Action callback.ActionBlock
	URL    callback.URLCallback
}

// Route calls the callback matching the click and reports whether one was
// set. Internal clicks are never routed.
func (r *Router) Route(c Click) bool {
	switch c.Kind {
	case Custom:
		if r.Action == nil {
			return false
		}
		r.Action(callback.String(c.Name))
		return true
	case Regular:
		if r.URL == nil {
			return false
		}
		r.URL(c.URL)
		return true
	}
	return false
}
