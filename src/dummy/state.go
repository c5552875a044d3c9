package dummy

import (
	"fmt"
	"sync"

	"github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/constants"
	"github.com/sirupsen/logrus"
)

// AllUsers is the user key under which messages are served to every user.
const AllUsers = "*"

// Event is a tracked event as received by the dummy API.
type Event struct {
	User       string
	Name       string
	DataFields map[string]interface{}
}

// Click is a tracked in-app click.
type Click struct {
	User       string
	MessageID  string
	ClickedURL string
}

// State represents the state of our dummy API. It doesn't really do anything
// useful but record what the SDK sends and serve the in-app messages it was
// seeded with. Users are keyed by email, or by user id when no email was sent.
type State struct {
	sync.Mutex

	events   []Event
	clicks   []Click
	users    map[string]map[string]interface{}
	messages map[string][]map[string]interface{}
	consumed map[string]map[string]bool
	logger   *logrus.Entry
}

// NewState creates a new dummy state.
func NewState(logger *logrus.Entry) *State {
	state := &State{
		users:    make(map[string]map[string]interface{}),
		messages: make(map[string][]map[string]interface{}),
		consumed: make(map[string]map[string]bool),
		logger:   logger,
	}

	logger.Debug("Init Dummy State")

	return state
}

// AddMessage seeds an in-app message for user, or for every user when user is
// AllUsers. msg is one item of the inAppMessages array.
func (s *State) AddMessage(user string, msg map[string]interface{}) {
	s.Lock()
	defer s.Unlock()

	s.messages[user] = append(s.messages[user], msg)
}

// TrackEvent records an event.
func (s *State) TrackEvent(user, name string, dataFields map[string]interface{}) {
	s.Lock()
	defer s.Unlock()

	s.logger.WithFields(logrus.Fields{
		"user":  user,
		"event": name,
	}).Debug("TrackEvent")

	s.events = append(s.events, Event{User: user, Name: name, DataFields: dataFields})
}

// UpdateUser sets profile fields. With mergeNested, nested objects are merged
// into the existing ones recursively; otherwise top-level fields replace the
// existing ones.
func (s *State) UpdateUser(user string, dataFields map[string]interface{}, mergeNested bool) {
	s.Lock()
	defer s.Unlock()

	profile, ok := s.users[user]
	if !ok {
		profile = make(map[string]interface{})
		s.users[user] = profile
	}

	if mergeNested {
		merge(profile, dataFields)
	} else {
		for k, v := range dataFields {
			profile[k] = v
		}
	}
}

func merge(dst, src map[string]interface{}) {
	for k, v := range src {
		srcMap, ok := v.(map[string]interface{})
		if !ok {
			dst[k] = v
			continue
		}
		dstMap, ok := dst[k].(map[string]interface{})
		if !ok {
			dstMap = make(map[string]interface{})
			dst[k] = dstMap
		}
		merge(dstMap, srcMap)
	}
}

// RecordClick records a click on an in-app message.
func (s *State) RecordClick(user, messageID, clickedURL string) {
	s.Lock()
	defer s.Unlock()

	s.clicks = append(s.clicks, Click{User: user, MessageID: messageID, ClickedURL: clickedURL})
}

// Consume removes a message from the messages served to user. It fails when
// user has no such message.
func (s *State) Consume(user, messageID string) error {
	s.Lock()
	defer s.Unlock()

	if !s.hasMessage(user, messageID) {
		return fmt.Errorf("Message %s not found", messageID)
	}

	if s.consumed[user] == nil {
		s.consumed[user] = make(map[string]bool)
	}
	s.consumed[user][messageID] = true

	return nil
}

// Messages returns at most count messages for user, those seeded for every
// user first. A count <= 0 means no limit.
func (s *State) Messages(user string, count int) []map[string]interface{} {
	s.Lock()
	defer s.Unlock()

	res := []map[string]interface{}{}
	for _, key := range []string{AllUsers, user} {
		for _, msg := range s.messages[key] {
			if count > 0 && len(res) >= count {
				return res
			}
			if s.consumed[user][messageID(msg)] {
				continue
			}
			res = append(res, msg)
		}
	}
	return res
}

func (s *State) hasMessage(user, id string) bool {
	for _, key := range []string{AllUsers, user} {
		for _, msg := range s.messages[key] {
			if messageID(msg) == id {
				return !s.consumed[user][id]
			}
		}
	}
	return false
}

func messageID(msg map[string]interface{}) string {
	id, _ := msg[constants.InAppMessageID].(string)
	return id
}

// Events returns the tracked events.
func (s *State) Events() []Event {
	s.Lock()
	defer s.Unlock()

	return append([]Event{}, s.events...)
}

// Clicks returns the tracked clicks.
func (s *State) Clicks() []Click {
	s.Lock()
	defer s.Unlock()

	return append([]Click{}, s.clicks...)
}

// User returns the profile fields of user, or nil.
func (s *State) User(user string) map[string]interface{} {
	s.Lock()
	defer s.Unlock()

	return s.users[user]
}

// LoadMessages seeds the in-app messages of a getMessages response for every
// user.
func (s *State) LoadMessages(data []byte) (int, error) {
	resp, err := common.DecodeJSONMap(data)
	if err != nil {
		return 0, err
	}

	items, ok := resp[constants.InAppMessages].([]interface{})
	if !ok {
		return 0, fmt.Errorf("no %s array", constants.InAppMessages)
	}

	n := 0
	for i, item := range items {
		msg, ok := item.(map[string]interface{})
		if !ok {
			return n, fmt.Errorf("item %d is not an object", i)
		}
		s.AddMessage(AllUsers, msg)
		n++
	}

	return n, nil
}
