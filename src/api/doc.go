// Package api implements the HTTP client that talks to the engagement API.
//
// Every request has two forms. Do returns the decoded response object or an
// *Error, for Go callers. Send, Post and Get deliver the same outcome to an
// OnSuccessHandler or an OnFailureHandler, before returning, on the calling
// goroutine.
//
// Requests are attempted once. There is no retry, batching or offline queue.
package api
