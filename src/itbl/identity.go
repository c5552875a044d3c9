package itbl

import (
	"github.com/itblio/itbl/src/constants"
)

const noIdentityReason = "Both email and userId are nil"

// SetEmail identifies the user by email. It replaces any user id.
func (s *SDK) SetEmail(email string) {
	s.identityLock.Lock()
	defer s.identityLock.Unlock()

	s.email = email
	s.userID = ""
}

// SetUserID identifies the user by id. It replaces any email.
func (s *SDK) SetUserID(userID string) {
	s.identityLock.Lock()
	defer s.identityLock.Unlock()

	s.userID = userID
	s.email = ""
}

// Email ...
func (s *SDK) Email() string {
	s.identityLock.RLock()
	defer s.identityLock.RUnlock()

	return s.email
}

// UserID ...
func (s *SDK) UserID() string {
	s.identityLock.RLock()
	defer s.identityLock.RUnlock()

	return s.userID
}

// identity returns the key and value identifying the user in requests, email
// first. ok is false when the user is anonymous.
func (s *SDK) identity() (key, value string, ok bool) {
	s.identityLock.RLock()
	defer s.identityLock.RUnlock()

	if s.email != "" {
		return constants.Email, s.email, true
	}
	if s.userID != "" {
		return constants.UserID, s.userID, true
	}
	return "", "", false
}

// identifiedBody returns body with the identity added, or false.
func (s *SDK) identifiedBody(body map[string]interface{}) (map[string]interface{}, bool) {
	key, value, ok := s.identity()
	if !ok {
		return nil, false
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	body[key] = value
	return body, true
}
