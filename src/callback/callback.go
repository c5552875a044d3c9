// Package callback declares the function types used by the SDK to hand the
// results of asynchronous operations back to the application.
//
// Every parameter is optional. An absent value is a nil pointer, a nil map or
// a nil slice, which callers must not confuse with an error: a failure is only
// ever reported through an OnFailureHandler.
package callback

import "net/url"

// ActionBlock receives the name of a custom action, or nil.
type ActionBlock func(action *string)

// URLCallback receives a URL, or nil.
type URLCallback func(u *url.URL)

// OnSuccessHandler is called when a request to the API succeeds. data is nil
// when the response carried no payload.
type OnSuccessHandler func(data map[string]interface{})

// OnFailureHandler is called when a request to the API fails. reason is a
// human readable description and data, when present, is the raw payload
// returned by the server.
type OnFailureHandler func(reason *string, data []byte)

// Call invokes the block if it is set.
func (f ActionBlock) Call(action *string) {
	if f != nil {
		f(action)
	}
}

// Call invokes the callback if it is set.
func (f URLCallback) Call(u *url.URL) {
	if f != nil {
		f(u)
	}
}

// Call invokes the handler if it is set.
func (f OnSuccessHandler) Call(data map[string]interface{}) {
	if f != nil {
		f(data)
	}
}

// Call invokes the handler if it is set.
func (f OnFailureHandler) Call(reason *string, data []byte) {
	if f != nil {
		f(reason, data)
	}
}

// Fail is a shorthand for Call with a present reason.
func (f OnFailureHandler) Fail(reason string, data []byte) {
	f.Call(String(reason), data)
}

// String returns a pointer to a copy of s, for use as an optional string
// argument.
func String(s string) *string {
	return &s
}

// Value dereferences an optional string, returning "" when it is absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
