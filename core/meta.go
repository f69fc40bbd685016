package core

import "encoding/json"

// AppMeta is the application metadata document the server attaches to
// responses. Whenever a response carries one, it overwrites the controller's
// copy wholesale.
type AppMeta struct {
	Schema Schema `json:"schema"`
}

// Schema describes the value spaces the client must agree on with the
// server: role ids and the profile option sets used by the settings form.
type Schema struct {
	User    UserSchema    `json:"user"`
	Profile ProfileSchema `json:"profile"`
}

type UserSchema struct {
	Role KeyedOptions `json:"role"`
}

type ProfileSchema struct {
	Visibility KeyedOptions `json:"visibility"`
	Tags       KeyedOptions `json:"tags"`
}

// KeyedOptions is a named option set: Keys maps option names to their
// canonical ids, Values lists them for display in declaration order.
type KeyedOptions struct {
	Keys   map[string]string `json:"keys"`
	Values []Option          `json:"values"`
}

type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// KnownRole reports whether name is a role the schema declares.
func (s Schema) KnownRole(name string) bool {
	_, ok := s.User.Role.Keys[name]
	return ok
}

// RoleID resolves a role name to its canonical id, empty if unknown.
func (s Schema) RoleID(name string) string {
	return s.User.Role.Keys[name]
}

// Response is the envelope every facade call returns. User, App and Server
// are optional: when present, User repopulates the actor and App/Server
// overwrite the controller's metadata copies.
type Response struct {
	User   *ActorFields    `json:"user"`
	Result json.RawMessage `json:"result"`
	App    *AppMeta        `json:"app"`
	Server map[string]any  `json:"server"`
}
