package core

import "testing"

func TestNavigateNotifiesHandler(t *testing.T) {
	h := NewHistory()
	var seen []string
	h.Bind(func(fragment string) { seen = append(seen, fragment) })

	h.Navigate("posts")
	h.Navigate("members")

	if h.Fragment() != "members" {
		t.Fatalf("Fragment = %q, want members", h.Fragment())
	}
	if len(seen) != 2 || seen[0] != "posts" || seen[1] != "members" {
		t.Fatalf("handler saw %v", seen)
	}
}

func TestSetFragmentSuppressesHandler(t *testing.T) {
	h := NewHistory()
	var seen []string
	h.Bind(func(fragment string) { seen = append(seen, fragment) })

	h.SetFragment("posts")

	if h.Fragment() != "posts" {
		t.Fatalf("Fragment = %q, want posts", h.Fragment())
	}
	if len(seen) != 0 {
		t.Fatalf("self-generated update reached the handler: %v", seen)
	}

	// suppression must not leak past the call
	h.Navigate("members")
	if len(seen) != 1 {
		t.Fatalf("handler suppressed after SetFragment returned: %v", seen)
	}
}

func TestBackPopsAndNotifies(t *testing.T) {
	h := NewHistory()
	h.SetFragment("home")
	h.SetFragment("posts")

	var seen []string
	h.Bind(func(fragment string) { seen = append(seen, fragment) })

	h.Back()
	if h.Fragment() != "home" {
		t.Fatalf("Fragment = %q, want home", h.Fragment())
	}
	if len(seen) != 1 || seen[0] != "home" {
		t.Fatalf("handler saw %v, want [home]", seen)
	}

	// nothing underneath: Back is a no-op
	h.Back()
	if h.Fragment() != "home" || len(seen) != 1 {
		t.Fatalf("Back on a single-entry stack must do nothing")
	}
}

func TestPushDedupesConsecutiveFragments(t *testing.T) {
	h := NewHistory()
	h.SetFragment("posts")
	h.SetFragment("posts")
	h.SetFragment("home")

	h.Back()
	if h.Fragment() != "posts" {
		t.Fatalf("Fragment = %q, want posts", h.Fragment())
	}
	h.Back()
	// the duplicate was collapsed, so the stack is exhausted
	if h.Fragment() != "posts" {
		t.Fatalf("duplicate fragment was stacked twice")
	}
}
