package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/service"
)

// choice is a form field that cycles through a fixed set of options.
type choice struct {
	options []string
	display func(string) string
	index   int
}

func (c *choice) next() { c.index = (c.index + 1) % len(c.options) }

func (c *choice) prev() { c.index = (c.index + len(c.options) - 1) % len(c.options) }

func (c *choice) value() string { return c.options[c.index] }

func (c *choice) set(v string) {
	for i, o := range c.options {
		if o == v {
			c.index = i
			return
		}
	}
	c.index = 0
}

func (c *choice) text() string {
	if c.display != nil {
		return c.display(c.value())
	}
	return c.value()
}

// field is one row of a form: either a text input or a choice.
type field struct {
	input  *textinput.Model
	choice *choice
	toggle *bool
	label  string
}

// form is a list of fields with one focused at a time.
type form struct {
	heading string
	fields  []field
	focus   int
}

func (f *form) focusField(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		if in := f.fields[j].input; in != nil {
			if j == f.focus {
				in.Focus()
			} else {
				in.Blur()
			}
		}
	}
}

func (f *form) next() { f.focusField(f.focus + 1) }

func (f *form) prev() { f.focusField(f.focus - 1) }

func (f *form) current() *field { return &f.fields[f.focus] }

// update forwards a key to the focused text input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	in := f.current().input
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func newInput(placeholder string, limit int) *textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return &ti
}

func stringsOf[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// taskForm edits the fields of a Draft or Patch.
type taskForm struct {
	form
	id       string
	title    *textinput.Model
	desc     *textinput.Model
	due      *textinput.Model
	priority *choice
	category *choice
}

func newTaskForm(heading string) *taskForm {
	tf := &taskForm{
		title: newInput("What needs doing?", 200),
		desc:  newInput("optional", 1000),
		due:   newInput("YYYY-MM-DD (optional)", len(service.DateLayout)),
		priority: &choice{
			options: stringsOf(service.AllPriorities()),
			display: func(s string) string { return service.Priority(s).Display() },
		},
		category: &choice{
			options: stringsOf(service.AllCategories()),
			display: func(s string) string { return service.Category(s).Display() },
		},
	}
	tf.form = form{
		heading: heading,
		fields: []field{
			{label: "Title", input: tf.title},
			{label: "Description", input: tf.desc},
			{label: "Due", input: tf.due},
			{label: "Priority", choice: tf.priority},
			{label: "Category", choice: tf.category},
		},
	}
	tf.focusField(0)
	return tf
}

// newCreateForm opens an empty form with the default priority and category.
func newCreateForm() *taskForm {
	tf := newTaskForm("New task")
	tf.priority.set(string(service.PriorityMedium))
	tf.category.set(string(service.CategoryPersonal))
	return tf
}

// newEditForm opens a form prefilled from a cached task.
func newEditForm(id string, p service.Patch) *taskForm {
	tf := newTaskForm("Edit task")
	tf.id = id
	tf.title.SetValue(p.Title)
	tf.desc.SetValue(p.Description)
	if p.DueDate != nil {
		tf.due.SetValue(p.DueDate.Date())
	}
	tf.priority.set(string(p.Priority))
	tf.category.set(string(p.Category))
	return tf
}

func (tf *taskForm) dueDate() (*service.DueDate, error) {
	d, err := service.ParseOptionalDueDate(tf.due.Value())
	if err != nil {
		return nil, &service.ValidationError{Field: "due", Message: err.Error()}
	}
	return d, nil
}

func (tf *taskForm) draft() (service.Draft, error) {
	due, err := tf.dueDate()
	if err != nil {
		return service.Draft{}, err
	}
	return service.Draft{
		Title:       tf.title.Value(),
		Description: tf.desc.Value(),
		DueDate:     due,
		Priority:    service.Priority(tf.priority.value()),
		Category:    service.Category(tf.category.value()),
	}, nil
}

func (tf *taskForm) patch() (service.Patch, error) {
	due, err := tf.dueDate()
	if err != nil {
		return service.Patch{}, err
	}
	return service.Patch{
		Title:       tf.title.Value(),
		Description: tf.desc.Value(),
		DueDate:     due,
		Priority:    service.Priority(tf.priority.value()),
		Category:    service.Category(tf.category.value()),
	}, nil
}

const anyOption = ""

func anyDisplay(label func(string) string) func(string) string {
	return func(s string) string {
		if s == anyOption {
			return "Any"
		}
		return label(s)
	}
}

// filterForm edits a Filter. Choice fields include an "Any" option.
type filterForm struct {
	form
	keyword  *textinput.Model
	category *choice
	priority *choice
	status   *choice
	overdue  bool
}

func newFilterForm(f service.Filter) *filterForm {
	ff := &filterForm{
		keyword: newInput("title or description", 100),
		category: &choice{
			options: append([]string{anyOption}, stringsOf(service.AllCategories())...),
			display: anyDisplay(func(s string) string { return service.Category(s).Display() }),
		},
		priority: &choice{
			options: append([]string{anyOption}, stringsOf(service.AllPriorities())...),
			display: anyDisplay(func(s string) string { return service.Priority(s).Display() }),
		},
		status: &choice{
			options: append([]string{anyOption}, stringsOf(service.AllStatuses())...),
			display: anyDisplay(func(s string) string { return service.Status(s).Display() }),
		},
		overdue: f.OverdueOnly,
	}
	ff.keyword.SetValue(f.Keyword)
	ff.category.set(string(f.Category))
	ff.priority.set(string(f.Priority))
	ff.status.set(string(f.Status))
	ff.form = form{
		heading: "Filter",
		fields: []field{
			{label: "Keyword", input: ff.keyword},
			{label: "Category", choice: ff.category},
			{label: "Priority", choice: ff.priority},
			{label: "Status", choice: ff.status},
			{label: "Overdue only", toggle: &ff.overdue},
		},
	}
	ff.focusField(0)
	return ff
}

func (ff *filterForm) filter() service.Filter {
	return service.Filter{
		Keyword:     ff.keyword.Value(),
		Category:    service.Category(ff.category.value()),
		Priority:    service.Priority(ff.priority.value()),
		Status:      service.Status(ff.status.value()),
		OverdueOnly: ff.overdue,
	}
}

// sortForm picks a sort key and direction.
type sortForm struct {
	form
	key       *choice
	ascending bool
}

func newSortForm(s service.Sort) *sortForm {
	sf := &sortForm{
		key: &choice{
			options: stringsOf(service.AllSortKeys()),
		},
		ascending: s.Ascending,
	}
	sf.key.set(string(s.Key))
	sf.form = form{
		heading: "Sort",
		fields: []field{
			{label: "Sort by", choice: sf.key},
			{label: "Ascending", toggle: &sf.ascending},
		},
	}
	sf.focusField(0)
	return sf
}

func (sf *sortForm) sort() service.Sort {
	return service.Sort{Key: service.SortKey(sf.key.value()), Ascending: sf.ascending}
}
