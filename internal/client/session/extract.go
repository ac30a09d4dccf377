package session

import "github.com/krishimitre/krishimitre/internal/client/api"

// User is the authenticated farmer's record. The client enforces no schema:
// whatever keys the server returns pass through untouched.
type User map[string]any

// userExtractor is one strategy for pulling a user record out of an auth
// response body. Strategies are pure functions tried in order, so each
// fallback is testable in isolation.
type userExtractor func(api.Envelope) (User, bool)

// fromUserField reads an explicit "user" object.
func fromUserField(env api.Envelope) (User, bool) {
	return asUser(env["user"])
}

// fromUserInfoField reads an explicit "userInfo" object.
func fromUserInfoField(env api.Envelope) (User, bool) {
	return asUser(env["userInfo"])
}

// fromDataField reads a "data" object; profile updates use it.
func fromDataField(env api.Envelope) (User, bool) {
	return asUser(env["data"])
}

// fromTopLevelIdentity synthesizes a user from a flat DTO carrying "email"
// (and optionally "name") at the top level of the response.
func fromTopLevelIdentity(env api.Envelope) (User, bool) {
	email, ok := asNonEmptyString(env["email"])
	if !ok {
		return nil, false
	}
	u := User{"email": email}
	if name, ok := asNonEmptyString(env["name"]); ok {
		u["name"] = name
	}
	return u, true
}

// loginUserExtractors is the ordered fallback chain for login responses.
var loginUserExtractors = []userExtractor{fromUserField, fromUserInfoField, fromTopLevelIdentity}

// responseUserExtractors covers responses where a flat identity is not
// acceptable (signup falls back to the submitted payload instead).
var responseUserExtractors = []userExtractor{fromUserField, fromUserInfoField}

// profileUserExtractors is the chain for profile-update responses.
var profileUserExtractors = []userExtractor{fromUserField, fromDataField}

// extractUser runs the strategies in order and returns the first match.
func extractUser(env api.Envelope, extractors []userExtractor) (User, bool) {
	for _, extract := range extractors {
		if u, ok := extract(env); ok {
			return u, true
		}
	}
	return nil, false
}

// extractToken reads the session token from the primary field name, then
// the fallback one. An absent or empty token yields "".
func extractToken(env api.Envelope) string {
	if t, ok := asNonEmptyString(env["token"]); ok {
		return t
	}
	if t, ok := asNonEmptyString(env["accessToken"]); ok {
		return t
	}
	return ""
}

func asUser(v any) (User, bool) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return User(m), true
}

func asNonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
