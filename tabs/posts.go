package tabs

import (
	"fmt"

	"lounge/core"
	"lounge/widgets"
)

// PostsTab lists posts and lets the user post, vote and delete.
type PostsTab struct {
	ctx   *core.AppContext
	actor *core.Actor

	posts  []core.Post
	status []string // inline form/business errors
}

func NewPosts(ctx *core.AppContext, actor *core.Actor) *PostsTab {
	return &PostsTab{ctx: ctx, actor: actor}
}

func (t *PostsTab) Name() string  { return "posts" }
func (t *PostsTab) Title() string { return "Posts" }

func (t *PostsTab) CanView() bool {
	return t.actor.IsRegistered()
}

func (t *PostsTab) Init() widgets.Widget {
	t.ctx.API().ListPosts(func(posts []core.Post) {
		t.posts = posts
	})
	return t.render()
}

// SubmitPost validates and saves a new post. Validation failures stay
// inline and never reach the server.
func (t *PostsTab) SubmitPost(content string) {
	t.status = nil
	if content == "" {
		t.status = []string{"Content is required."}
		return
	}

	t.ctx.API().InsertNewPost(core.PostData{Content: content},
		func(*core.Response) {
			t.ctx.ShowFlash("Posted.")
			t.reload()
		},
		func(serverError *core.BusinessError) {
			t.ctx.ShowFlash("Error.")
			t.businessError(serverError)
		})
}

// Delete removes one of the user's own posts.
func (t *PostsTab) Delete(uid string) {
	t.status = nil
	t.ctx.API().DeletePost(uid,
		func(*core.Response) {
			t.ctx.ShowFlash("Deleted.")
			t.reload()
		},
		func(serverError *core.BusinessError) {
			t.ctx.ShowFlash("Error.")
			t.businessError(serverError)
		})
}

// Vote casts value (+1 or -1) on a post and folds the updated post back
// into the list.
func (t *PostsTab) Vote(uid string, value int) {
	t.status = nil
	message := "Voted up."
	if value < 0 {
		message = "Voted down."
	}

	t.ctx.API().VoteValue(core.Vote{UID: uid, Value: value},
		func(resp *core.Response) {
			t.ctx.ShowFlash(message)
			t.reload()
		},
		func(serverError *core.BusinessError) {
			t.ctx.ShowFlash("Error.")
			t.businessError(serverError)
		})
}

// Posts returns the loaded posts, for key routing in the UI.
func (t *PostsTab) Posts() []core.Post { return t.posts }

func (t *PostsTab) reload() {
	t.ctx.API().ListPosts(func(posts []core.Post) {
		t.posts = posts
	})
}

func (t *PostsTab) businessError(serverError *core.BusinessError) {
	if serverError != nil {
		t.status = append(t.status, serverError.Message)
	}
}

func (t *PostsTab) render() widgets.Widget {
	items := make([]string, 0, len(t.posts))
	for _, p := range t.posts {
		line := p.Data.Content
		line += widgets.Muted(fmt.Sprintf("  [%+d]", p.VotesTotal))
		if p.MyVoteValue > 0 {
			line += " ▲"
		}
		if p.MyVoteValue < 0 {
			line += " ▼"
		}
		if p.CanDelete {
			line += widgets.Muted(" (yours)")
		}
		items = append(items, line)
	}
	list := widgets.List{Title: "Posts", Items: items, Empty: "no public posts"}
	if len(t.status) == 0 {
		return list
	}
	errs := make([]widgets.Widget, 0, len(t.status)+1)
	errs = append(errs, list)
	for _, s := range t.status {
		errs = append(errs, widgets.Text(widgets.ErrorLine(s)))
	}
	return widgets.VStack{Widgets: errs}
}
