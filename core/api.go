package core

import (
	"encoding/json"
	"errors"
	"net/url"
)

const apiBase = "/api/rest/v1"

// Post is a community post as the server reports it to this user.
type Post struct {
	UID         string   `json:"uid"`
	Data        PostData `json:"data"`
	VotesTotal  int      `json:"votes_total"`
	MyVoteValue int      `json:"my_vote_value"`
	CanDelete   bool     `json:"can_delete"`
}

type PostData struct {
	Content string `json:"content"`
}

// Vote is a vote submission on a post; Value is +1 or -1.
type Vote struct {
	UID   string `json:"uid"`
	Value int    `json:"value"`
}

// Member is a directory entry; Registration is nil for users that never
// completed registration, Profile is nil until they saved one.
type Member struct {
	Registration *ActorFields `json:"registration"`
	Profile      *Profile     `json:"profile"`
}

// API is the set of typed facade bindings. Every call shows a busy message
// for its duration and folds any app/server metadata in the response back
// into the context. Transport errors end in the generic HandleError path;
// business errors go to the caller's error continuation for inline display.
type API struct {
	ctx *AppContext
}

// CheckWhoAmI fetches the server-side identity for the signed-in user.
// The callback is skipped entirely on failure.
func (a *API) CheckWhoAmI(callback func(user *ActorFields)) {
	a.get("/whoami", "checking account status", func(resp *Response) {
		callback(resp.User)
	})
}

// ListMembers fetches the member directory.
func (a *API) ListMembers(callback func(members []Member)) {
	a.get("/members", "loading members", func(resp *Response) {
		var members []Member
		if len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, &members); err != nil {
				a.ctx.HandleError(&TransportError{Err: err})
				return
			}
		}
		callback(members)
	})
}

// ListPosts fetches all posts visible to this user.
func (a *API) ListPosts(callback func(posts []Post)) {
	a.get("/posts", "loading posts", func(resp *Response) {
		var posts []Post
		if len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, &posts); err != nil {
				a.ctx.HandleError(&TransportError{Err: err})
				return
			}
		}
		callback(posts)
	})
}

// RegisterCurrentUser registers the signed-in user. The response carries the
// updated user record, which repopulates the actor before the callback runs.
func (a *API) RegisterCurrentUser(callback func()) {
	a.ctx.loading.Show("registering new user")
	body := url.Values{"settings_etag": {a.ctx.Actor().SettingsEtag}}
	resp, err := a.ctx.opts.Facade.Invoke(apiBase+"/registration", "PUT", body)
	if err != nil {
		a.ctx.loading.Hide()
		a.ctx.HandleError(err)
		return
	}
	a.finishMutation(resp)
	callback()
}

// InsertNewPost saves a new post.
func (a *API) InsertNewPost(post PostData, onsuccess func(*Response), onerror func(*BusinessError)) {
	a.mutate("/posts", "PUT", "saving your post", url.Values{
		"post": {marshalJSON(post)},
	}, onsuccess, onerror)
}

// DeletePost deletes a post by uid.
func (a *API) DeletePost(uid string, onsuccess func(*Response), onerror func(*BusinessError)) {
	a.mutate("/posts", "POST", "deleting your post", url.Values{
		"post": {marshalJSON(map[string]string{"uid": uid})},
	}, onsuccess, onerror)
}

// VoteValue casts a vote on a post; the response result is the updated post.
func (a *API) VoteValue(vote Vote, onsuccess func(*Response), onerror func(*BusinessError)) {
	a.mutate("/votes", "PUT", "voting on post", url.Values{
		"vote": {marshalJSON(vote)},
	}, onsuccess, onerror)
}

// UpdateCurrentUserProfile saves the profile edited on the settings tab.
func (a *API) UpdateCurrentUserProfile(profile Profile, onsuccess func(*Response), onerror func(*BusinessError)) {
	a.mutate("/profile", "POST", "updating user profile", url.Values{
		"settings_etag": {a.ctx.Actor().SettingsEtag},
		"profile":       {marshalJSON(profile)},
	}, onsuccess, onerror)
}

// get runs a read-only call; failures never reach the caller.
func (a *API) get(path, busy string, onsuccess func(*Response)) {
	a.ctx.loading.Show(busy)
	resp, err := a.ctx.opts.Facade.Invoke(apiBase+path, "GET", nil)
	a.ctx.loading.Hide()
	if err != nil {
		a.ctx.HandleError(err)
		return
	}
	a.ctx.updateAppSchema(resp)
	onsuccess(resp)
}

// mutate runs a state-changing call: on success the actor is repopulated
// from the response before the success continuation; a recognized business
// error goes to the error continuation, anything else to HandleError after
// notifying the continuation with nil.
func (a *API) mutate(path, method, busy string, body url.Values, onsuccess func(*Response), onerror func(*BusinessError)) {
	a.ctx.loading.Show(busy)
	resp, err := a.ctx.opts.Facade.Invoke(apiBase+path, method, body)
	if err != nil {
		a.ctx.loading.Hide()
		var business *BusinessError
		if errors.As(err, &business) {
			onerror(business)
			return
		}
		onerror(nil)
		a.ctx.HandleError(err)
		return
	}
	a.finishMutation(resp)
	onsuccess(resp)
}

func (a *API) finishMutation(resp *Response) {
	a.ctx.loading.Hide()
	a.ctx.updateAppSchema(resp)
	if resp.User != nil {
		a.ctx.registry.Replace(*resp.User)
	} else {
		a.ctx.registry.Replace(ActorFields{})
	}
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
