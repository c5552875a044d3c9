package callback

import "net/url"

/*
Handler interfaces for callers that prefer passing objects rather than
closures. Each func type implements its matching interface.
*/

//------------------------------------------------------------------------------

// ActionHandler ...
type ActionHandler interface {
	OnAction(action *string)
}

// URLHandler ...
type URLHandler interface {
	OnURL(u *url.URL)
}

// SuccessHandler ...
type SuccessHandler interface {
	OnSuccess(data map[string]interface{})
}

// FailureHandler ...
type FailureHandler interface {
	OnFailure(reason *string, data []byte)
}

//------------------------------------------------------------------------------

// OnAction implements ActionHandler.
func (f ActionBlock) OnAction(action *string) { f.Call(action) }

// OnURL implements URLHandler.
func (f URLCallback) OnURL(u *url.URL) { f.Call(u) }

// OnSuccess implements SuccessHandler.
func (f OnSuccessHandler) OnSuccess(data map[string]interface{}) { f.Call(data) }

// OnFailure implements FailureHandler.
func (f OnFailureHandler) OnFailure(reason *string, data []byte) { f.Call(reason, data) }

// FromActionHandler converts h to an ActionBlock. A nil handler gives a nil
// block.
func FromActionHandler(h ActionHandler) ActionBlock {
	if h == nil {
		return nil
	}
	return h.OnAction
}

// FromURLHandler converts h to a URLCallback.
func FromURLHandler(h URLHandler) URLCallback {
	if h == nil {
		return nil
	}
	return h.OnURL
}

// FromSuccessHandler converts h to an OnSuccessHandler.
func FromSuccessHandler(h SuccessHandler) OnSuccessHandler {
	if h == nil {
		return nil
	}
	return h.OnSuccess
}

// FromFailureHandler converts h to an OnFailureHandler.
func FromFailureHandler(h FailureHandler) OnFailureHandler {
	if h == nil {
		return nil
	}
	return h.OnFailure
}
