package tui

// prompt is a minimal line editor for one or more sequential inputs. The
// footer renders it; the update loop feeds it keys.
type prompt struct {
	steps  []promptStep
	index  int
	submit func(values []string)
}

type promptStep struct {
	label string
	value string
}

func newPrompt(submit func(values []string), labels ...string) *prompt {
	steps := make([]promptStep, len(labels))
	for i, l := range labels {
		steps[i] = promptStep{label: l}
	}
	return &prompt{steps: steps, submit: submit}
}

// prefill seeds the value of step i, for edit forms.
func (p *prompt) prefill(i int, value string) *prompt {
	if i >= 0 && i < len(p.steps) {
		p.steps[i].value = value
	}
	return p
}

func (p *prompt) label() string { return p.steps[p.index].label }
func (p *prompt) value() string { return p.steps[p.index].value }

func (p *prompt) typeRune(r rune) {
	p.steps[p.index].value += string(r)
}

func (p *prompt) backspace() {
	v := p.steps[p.index].value
	if len(v) > 0 {
		runes := []rune(v)
		p.steps[p.index].value = string(runes[:len(runes)-1])
	}
}

// enter advances to the next step; on the last step it fires submit and
// reports completion.
func (p *prompt) enter() bool {
	if p.index < len(p.steps)-1 {
		p.index++
		return false
	}
	values := make([]string, len(p.steps))
	for i, s := range p.steps {
		values[i] = s.value
	}
	p.submit(values)
	return true
}
