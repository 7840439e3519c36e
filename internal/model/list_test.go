package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListPatchApply(t *testing.T) {
	l := TodoList{Title: "Old", Description: "desc", IsPublic: false}
	title, public := "New", true

	ListPatch{Title: &title, IsPublic: &public}.Apply(&l)

	assert.Equal(t, "New", l.Title)
	assert.Equal(t, "desc", l.Description)
	assert.True(t, l.IsPublic)
	assert.True(t, ListPatch{}.Empty())
}

func TestCloneDoesNotAlias(t *testing.T) {
	l := TodoList{Items: []TodoItem{{ID: "a"}}, SharedWith: []string{"2"}}
	c := l.Clone()
	c.Items[0].Content = "changed"
	c.SharedWith[0] = "3"

	assert.Empty(t, l.Items[0].Content)
	assert.Equal(t, "2", l.SharedWith[0])

	empty := TodoList{}.Clone()
	assert.NotNil(t, empty.Items)
	assert.NotNil(t, empty.SharedWith)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, TodoList{}.Progress())

	l := TodoList{Items: []TodoItem{{Completed: true}, {}, {}}}
	assert.Equal(t, 1, l.CompletedCount())
	assert.Equal(t, 33, l.Progress())

	l.Items[1].Completed = true
	assert.Equal(t, 67, l.Progress())
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "https://todo.example/list/abc", ShareLink("https://todo.example/", "abc"))
	assert.Equal(t, "https://todo.example/list/abc", ShareLink("https://todo.example", "abc"))
}

func TestItemIndex(t *testing.T) {
	l := TodoList{Items: []TodoItem{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 1, l.ItemIndex("b"))
	assert.Equal(t, -1, l.ItemIndex("zzz"))
}
