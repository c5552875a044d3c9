package mobile

import (
	"net/url"

	"github.com/itblio/itbl/src/callback"
	"github.com/itblio/itbl/src/common"
	"github.com/sirupsen/logrus"
)

/*
The functions below turn the handlers implemented by the mobile application
into the callback types of the SDK. Absent values cross the binding as empty
strings.
*/

func successCallback(h SuccessHandler, logger *logrus.Entry) callback.OnSuccessHandler {
	if h == nil {
		return nil
	}
	return func(data map[string]interface{}) {
		if data == nil {
			h.OnSuccess("")
			return
		}

		b, err := common.EncodeJSON(data)
		if err != nil {
			logger.WithError(err).Error("Encoding success data")
			h.OnSuccess("")
			return
		}

		h.OnSuccess(string(b))
	}
}

func failureCallback(h FailureHandler) callback.OnFailureHandler {
	if h == nil {
		return nil
	}
	return func(reason *string, data []byte) {
		h.OnFailure(callback.Value(reason), data)
	}
}

func actionCallback(h ActionHandler) callback.ActionBlock {
	if h == nil {
		return nil
	}
	return func(name *string) {
		h.OnAction(callback.Value(name))
	}
}

func urlCallback(h URLHandler) callback.URLCallback {
	if h == nil {
		return nil
	}
	return func(u *url.URL) {
		if u == nil {
			h.OnURL("")
			return
		}
		h.OnURL(u.String())
	}
}
