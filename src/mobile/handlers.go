package mobile

/*
These types are exported and need to be implemented and used by the mobile
application.
*/

//------------------------------------------------------------------------------

// SuccessHandler receives the JSON encoded response of a successful request.
// The string is empty when the response had no body.
type SuccessHandler interface {
	OnSuccess(json string)
}

// FailureHandler receives the reason a request failed and the raw response
// body, if any.
type FailureHandler interface {
	OnFailure(reason string, data []byte)
}

// ActionHandler receives the names of custom actions clicked in in-app
// messages.
type ActionHandler interface {
	OnAction(name string)
}

// URLHandler receives regular URLs clicked in in-app messages.
type URLHandler interface {
	OnURL(url string)
}

type ExceptionHandler interface {
	OnException(string)
}
