package tabs

import (
	"reflect"
	"strings"

	"lounge/core"
	"lounge/widgets"
)

// SettingsTab shows the provider profile next to the editable server-side
// profile.
type SettingsTab struct {
	ctx   *core.AppContext
	actor *core.Actor

	status []string
}

func NewSettings(ctx *core.AppContext, actor *core.Actor) *SettingsTab {
	return &SettingsTab{ctx: ctx, actor: actor}
}

func (t *SettingsTab) Name() string  { return "settings" }
func (t *SettingsTab) Title() string { return "Settings" }

func (t *SettingsTab) CanView() bool {
	return t.actor.IsRegistered()
}

func (t *SettingsTab) Init() widgets.Widget {
	account := widgets.Box{
		Title:   "Account",
		Content: t.actor.DisplayName + "\n" + widgets.Muted(t.actor.Email),
	}

	profile := t.currentProfile()
	lines := []string{
		"Visibility: " + t.visibilityText(profile.Visibility),
		"Pronouns:   " + profile.Pronouns,
		"Title:      " + profile.Title,
		"Location:   " + profile.Location,
		"About:      " + profile.About,
		"Tags:       " + strings.Join(t.tagTexts(profile.Tags), ", "),
	}
	body := widgets.Box{Title: "Profile", Content: strings.Join(lines, "\n") +
		"\n\nPress e to edit."}

	ws := []widgets.Widget{account, body}
	for _, s := range t.status {
		ws = append(ws, widgets.Text(widgets.ErrorLine(s)))
	}
	return widgets.VStack{Widgets: ws}
}

// UpdateProfile validates and saves the edited profile. Missing required
// fields and no-op edits stay inline; business errors from the server are
// appended inline after an "Error." flash.
func (t *SettingsTab) UpdateProfile(profile core.Profile) {
	t.status = nil

	current := t.currentProfile()
	if reflect.DeepEqual(profile, current) {
		t.status = []string{"Nothing changed."}
		return
	}

	var errs []string
	if profile.Visibility == "" {
		errs = append(errs, "Visibility is required.")
	}
	if profile.Title == "" {
		errs = append(errs, "Title is required.")
	}
	if profile.Location == "" {
		errs = append(errs, "Location is required.")
	}
	if len(errs) > 0 {
		t.status = errs
		return
	}

	t.ctx.API().UpdateCurrentUserProfile(profile,
		func(*core.Response) {
			t.ctx.ShowFlash("Saved.")
		},
		func(serverError *core.BusinessError) {
			t.ctx.ShowFlash("Error.")
			if serverError != nil {
				t.status = append(t.status, serverError.Message)
			}
		})
}

func (t *SettingsTab) currentProfile() core.Profile {
	if t.actor.Settings != nil && t.actor.Settings.Profile != nil {
		return *t.actor.Settings.Profile
	}
	return core.Profile{}
}

func (t *SettingsTab) visibilityText(key string) string {
	for _, opt := range t.ctx.Schema().Profile.Visibility.Values {
		if opt.Value == key {
			return opt.Text
		}
	}
	return key
}

func (t *SettingsTab) tagTexts(keys []string) []string {
	texts := make([]string, 0, len(keys))
	for _, key := range keys {
		text := key
		for _, opt := range t.ctx.Schema().Profile.Tags.Values {
			if opt.Value == key {
				text = opt.Text
				break
			}
		}
		texts = append(texts, text)
	}
	return texts
}
