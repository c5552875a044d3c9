package dummy

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/constants"
	"github.com/sirupsen/logrus"
)

// Prefix is the path under which the dummy API is served. Point the SDK
// endpoint at <server URL> + Prefix.
const Prefix = "/api/"

// Server is an in-memory implementation of the Iterable API. It serves the
// requests the SDK makes against a State, and is meant for tests and local
// development.
type Server struct {
	apiKey string
	state  *State
	mux    *http.ServeMux
	logger *logrus.Entry
}

// NewServer instantiates a Server that accepts requests carrying apiKey.
func NewServer(apiKey string, state *State, logger *logrus.Entry) *Server {
	server := &Server{
		apiKey: apiKey,
		state:  state,
		mux:    http.NewServeMux(),
		logger: logger,
	}

	server.handle(constants.PathTrack, http.MethodPost, server.track)
	server.handle(constants.PathUpdateUser, http.MethodPost, server.updateUser)
	server.handle(constants.PathGetMessages, http.MethodGet, server.getMessages)
	server.handle(constants.PathTrackInAppClick, http.MethodPost, server.trackClick)
	server.handle(constants.PathInAppConsume, http.MethodPost, server.consume)

	return server
}

// State returns the state backing the server.
func (s *Server) State() *State {
	return s.state
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Serve listens on bindAddress until the listener fails.
func (s *Server) Serve(bindAddress string) error {
	s.logger.WithField("bind_address", bindAddress).Info("Serving dummy API")
	return http.ListenAndServe(bindAddress, s)
}

type request struct {
	user  string
	body  map[string]interface{}
	query url.Values
}

type handlerFunc func(w http.ResponseWriter, req *request)

func (s *Server) handle(path, method string, f handlerFunc) {
	s.mux.HandleFunc(Prefix+path, func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		})
		logger.Debug("Dummy API request")

		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "BadMethod")
			return
		}

		if r.Header.Get(constants.HeaderAPIKey) != s.apiKey {
			writeError(w, http.StatusUnauthorized, "Invalid API key", "BadApiKey")
			return
		}

		req := &request{query: r.URL.Query()}

		if r.Method == http.MethodPost {
			data, err := io.ReadAll(r.Body)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error(), "BadParams")
				return
			}
			body, err := common.DecodeJSONMap(data)
			if err != nil || body == nil {
				writeError(w, http.StatusBadRequest, "Could not parse request body", "BadJsonBody")
				return
			}
			req.body = body
			req.user = userKey(body)
		} else {
			req.user = r.URL.Query().Get(constants.Email)
			if req.user == "" {
				req.user = r.URL.Query().Get(constants.UserID)
			}
		}

		if req.user == "" {
			writeError(w, http.StatusBadRequest, "Either email or userId must be passed in", "BadParams")
			return
		}

		f(w, req)
	})
}

func userKey(body map[string]interface{}) string {
	if email, _ := common.StringValue(body, constants.Email); email != "" {
		return email
	}
	userID, _ := common.StringValue(body, constants.UserID)
	return userID
}

func (s *Server) track(w http.ResponseWriter, req *request) {
	name, _ := common.StringValue(req.body, constants.EventName)
	if name == "" {
		writeError(w, http.StatusBadRequest, "eventName is required", "BadParams")
		return
	}

	fields, _ := common.MapValue(req.body, constants.DataFields)
	s.state.TrackEvent(req.user, name, fields)

	writeSuccess(w)
}

func (s *Server) updateUser(w http.ResponseWriter, req *request) {
	fields, _ := common.MapValue(req.body, constants.DataFields)
	s.state.UpdateUser(req.user, fields, common.BoolValue(req.body, constants.MergeNested))

	writeSuccess(w)
}

func (s *Server) getMessages(w http.ResponseWriter, req *request) {
	count, _ := strconv.Atoi(req.query.Get(constants.InAppCount))

	messages := s.state.Messages(req.user, count)
	items := make([]interface{}, len(messages))
	for i, msg := range messages {
		items[i] = msg
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		constants.InAppMessages: items,
	})
}

func (s *Server) trackClick(w http.ResponseWriter, req *request) {
	id, _ := common.StringValue(req.body, constants.InAppMessageID)
	clickedURL, _ := common.StringValue(req.body, constants.InAppClickedURL)
	if id == "" {
		writeError(w, http.StatusBadRequest, "messageId is required", "BadParams")
		return
	}

	s.state.RecordClick(req.user, id, clickedURL)

	writeSuccess(w)
}

func (s *Server) consume(w http.ResponseWriter, req *request) {
	id, _ := common.StringValue(req.body, constants.InAppMessageID)

	if err := s.state.Consume(req.user, id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "BadParams")
		return
	}

	writeSuccess(w)
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"msg":  "",
		"code": "Success",
	})
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, map[string]interface{}{
		"msg":  msg,
		"code": code,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := common.EncodeJSON(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	w.Write(data)
}
