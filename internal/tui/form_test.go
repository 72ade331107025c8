package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

func TestChoice_Cycles(t *testing.T) {
	c := &choice{options: []string{"a", "b", "c"}}

	c.prev()
	assert.Equal(t, "c", c.value())
	c.next()
	assert.Equal(t, "a", c.value())

	c.set("b")
	assert.Equal(t, "b", c.value())
	c.set("zzz")
	assert.Equal(t, "a", c.value())
}

func TestFilterForm_AnyOption(t *testing.T) {
	ff := newFilterForm(service.Filter{})
	assert.Equal(t, "Any", ff.category.text())
	assert.True(t, ff.filter().IsZero())

	ff = newFilterForm(service.Filter{Keyword: "bills", Priority: service.PriorityHigh, OverdueOnly: true})
	got := ff.filter()
	assert.Equal(t, "bills", got.Keyword)
	assert.Equal(t, service.PriorityHigh, got.Priority)
	assert.Equal(t, service.Category(""), got.Category)
	assert.True(t, got.OverdueOnly)
}

func TestSortForm_RoundTrip(t *testing.T) {
	s := service.Sort{Key: service.SortByTitle, Ascending: true}
	assert.Equal(t, s, newSortForm(s).sort())
	assert.Equal(t, service.DefaultSort(), newSortForm(service.DefaultSort()).sort())
}

func TestTaskForm_DueDate(t *testing.T) {
	tf := newCreateForm()
	tf.title.SetValue("Pay bills")

	d, err := tf.draft()
	require.NoError(t, err)
	assert.Nil(t, d.DueDate)

	tf.due.SetValue("2024-03-15")
	d, err = tf.draft()
	require.NoError(t, err)
	assert.Equal(t, testutil.Due("2024-03-15"), d.DueDate)

	tf.due.SetValue("15/03/2024")
	_, err = tf.draft()
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "due", verr.Field)
}

func TestForm_FocusWraps(t *testing.T) {
	tf := newCreateForm()
	assert.True(t, tf.title.Focused())

	tf.prev()
	assert.Equal(t, "Category", tf.current().label)
	assert.False(t, tf.title.Focused())

	tf.next()
	assert.Equal(t, "Title", tf.current().label)
	assert.True(t, tf.title.Focused())
}

func TestConfirmations_ConsumedOnce(t *testing.T) {
	c := NewConfirmations()
	task := testutil.NewTask("a", "Alpha")

	ok, err := c.Confirm(context.Background(), task)
	require.NoError(t, err)
	assert.False(t, ok)

	c.Allow("a")
	ok, _ = c.Confirm(context.Background(), task)
	assert.True(t, ok)
	ok, _ = c.Confirm(context.Background(), task)
	assert.False(t, ok)
}
