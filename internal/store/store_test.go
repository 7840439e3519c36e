package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todosphere/internal/model"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// tickingClock advances one minute per call so createdAt values are ordered.
func tickingClock() func() time.Time {
	t := epoch
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, p Persister, opts ...Option) *Store {
	t.Helper()
	base := []Option{
		WithClock(tickingClock()),
		WithIDGenerator(sequentialIDs()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	s, err := New(context.Background(), p, append(base, opts...)...)
	require.NoError(t, err)
	return s
}

type failingPersister struct{ Memory }

func (f *failingPersister) Save(context.Context, *Snapshot) error {
	return errors.New("quota exceeded")
}

// ============================================================================
// LISTS
// ============================================================================

func TestCreateList(t *testing.T) {
	s := newTestStore(t, NewMemory())

	l := s.CreateList("Groceries", "", false)

	assert.NotEmpty(t, l.ID)
	assert.Equal(t, "Groceries", l.Title)
	assert.Empty(t, l.Items)
	assert.False(t, l.IsPublic)
	assert.Empty(t, l.SharedWith)
	assert.Equal(t, DefaultUser.ID, l.OwnerID)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, l.ID, cur.ID)

	other := s.CreateList("Errands", "", true)
	assert.NotEqual(t, l.ID, other.ID)
}

func TestCreateListOwnerIsCurrentUser(t *testing.T) {
	u := model.User{ID: "42", Name: "Ada"}
	s := newTestStore(t, NewMemory(), WithCurrentUser(u))
	assert.Equal(t, "42", s.CreateList("x", "", false).OwnerID)
	assert.Equal(t, u, s.CurrentUser())
}

func TestUpdateList(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("Old", "desc", false)

	title, public := "New", true
	s.UpdateList(l.ID, model.ListPatch{Title: &title, IsPublic: &public})

	got, ok := s.List(l.ID)
	require.True(t, ok)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "desc", got.Description)
	assert.True(t, got.IsPublic)

	// the selection is derived, so it sees the same merge
	cur, _ := s.Current()
	assert.Equal(t, got, cur)
}

func TestUpdateListUnknownIsNoop(t *testing.T) {
	s := newTestStore(t, NewMemory())
	s.CreateList("A", "", false)
	before := s.Lists()

	title := "B"
	s.UpdateList("missing", model.ListPatch{Title: &title})

	assert.Equal(t, before, s.Lists())
}

func TestDeleteListClearsSelectionOnlyWhenActive(t *testing.T) {
	s := newTestStore(t, NewMemory())
	a := s.CreateList("A", "", false)
	b := s.CreateList("B", "", false) // b is now selected

	s.DeleteList(a.ID)
	cur, ok := s.Current()
	require.True(t, ok, "deleting another list must keep the selection")
	assert.Equal(t, b.ID, cur.ID)

	s.DeleteList(b.ID)
	_, ok = s.Current()
	assert.False(t, ok)
	assert.Empty(t, s.Lists())
}

func TestDeleteListDiscardsItems(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)
	s.AddTodoItem(l.ID, "one")
	s.ShareList(l.ID, "2")

	s.DeleteList(l.ID)

	_, ok := s.List(l.ID)
	assert.False(t, ok)
	_, ok = s.VisibleItems(l.ID)
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	s := newTestStore(t, NewMemory())
	a := s.CreateList("A", "", false)
	s.CreateList("B", "", false)

	s.Select(a.ID)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, a.ID, cur.ID)

	s.Select("does-not-exist")
	_, ok = s.Current()
	assert.False(t, ok)

	s.Select(a.ID)
	s.Select("")
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestListsReturnsCopies(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)
	s.AddTodoItem(l.ID, "one")

	lists := s.Lists()
	lists[0].Items[0].Content = "mutated"
	lists[0].Title = "mutated"

	got, _ := s.List(l.ID)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "one", got.Items[0].Content)
}

// ============================================================================
// ITEMS
// ============================================================================

func TestAddTodoItemAppends(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)

	s.AddTodoItem(l.ID, "first")
	s.AddTodoItem(l.ID, "second")

	got, _ := s.List(l.ID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "first", got.Items[0].Content)
	assert.Equal(t, "second", got.Items[1].Content)
	assert.False(t, got.Items[1].Completed)
	assert.NotEqual(t, got.Items[0].ID, got.Items[1].ID)
	assert.True(t, got.Items[1].CreatedAt.After(got.Items[0].CreatedAt))

	s.AddTodoItem("missing", "nowhere")
	assert.Len(t, s.Lists(), 1)
}

func TestAddThenDeleteRestoresItems(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)
	s.AddTodoItem(l.ID, "keep")
	before, _ := s.List(l.ID)

	s.AddTodoItem(l.ID, "temporary")
	mid, _ := s.List(l.ID)
	added := mid.Items[len(mid.Items)-1]
	s.DeleteTodoItem(l.ID, added.ID)

	after, _ := s.List(l.ID)
	assert.Equal(t, before.Items, after.Items)
}

func TestToggleTwiceRestores(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)
	s.AddTodoItem(l.ID, "task")
	got, _ := s.List(l.ID)
	itemID := got.Items[0].ID

	s.ToggleTodoItem(l.ID, itemID)
	got, _ = s.List(l.ID)
	assert.True(t, got.Items[0].Completed)

	s.ToggleTodoItem(l.ID, itemID)
	got, _ = s.List(l.ID)
	assert.False(t, got.Items[0].Completed)
}

func TestItemOperationsIgnoreUnknownIDs(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)
	s.AddTodoItem(l.ID, "task")
	before := s.Lists()

	s.ToggleTodoItem(l.ID, "nope")
	s.UpdateTodoItem(l.ID, "nope", "x")
	s.DeleteTodoItem(l.ID, "nope")
	s.ToggleTodoItem("nope", "nope")

	assert.Equal(t, before, s.Lists())
}

func TestUpdateTodoItem(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)
	s.AddTodoItem(l.ID, "old")
	got, _ := s.List(l.ID)

	s.UpdateTodoItem(l.ID, got.Items[0].ID, "new")

	got, _ = s.List(l.ID)
	assert.Equal(t, "new", got.Items[0].Content)
}

// ============================================================================
// SHARING
// ============================================================================

func TestShareListIsIdempotent(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)

	s.ShareList(l.ID, "2")
	s.ShareList(l.ID, "2")

	got, _ := s.List(l.ID)
	assert.Equal(t, []string{"2"}, got.SharedWith)
}

func TestShareListSkipsOwner(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)

	s.ShareList(l.ID, l.OwnerID)
	s.ShareList(l.ID, "")

	got, _ := s.List(l.ID)
	assert.Empty(t, got.SharedWith)
}

func TestRemoveSharedUser(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)
	s.ShareList(l.ID, "2")
	s.ShareList(l.ID, "3")

	s.RemoveSharedUser(l.ID, "2")
	s.RemoveSharedUser(l.ID, "9")

	got, _ := s.List(l.ID)
	assert.Equal(t, []string{"3"}, got.SharedWith)
}

// ============================================================================
// PREFERENCES & PERSISTENCE
// ============================================================================

func TestPreferencesPersistAcrossReload(t *testing.T) {
	mem := NewMemory()
	s := newTestStore(t, mem)
	l := s.CreateList("A", "d", true)
	s.AddTodoItem(l.ID, "x")
	s.ShareList(l.ID, "3")
	s.SetFilter(model.FilterCompleted)
	s.SetSort(model.SortAlphabetical)
	s.SetVisibility(model.VisibilityShared)
	s.SetSearchQuery("milk")

	reloaded := newTestStore(t, mem)

	assert.Equal(t, s.Lists(), reloaded.Lists())
	assert.Equal(t, model.Preferences{
		Filter:      model.FilterCompleted,
		Sort:        model.SortAlphabetical,
		Visibility:  model.VisibilityShared,
		SearchQuery: "milk",
	}, reloaded.Preferences())

	// the selection is transient
	_, ok := reloaded.Current()
	assert.False(t, ok)
}

func TestSeedOnFirstRunOnly(t *testing.T) {
	mem := NewMemory()
	s := newTestStore(t, mem, WithSeed(true))
	lists := s.Lists()
	require.Len(t, lists, 2)
	assert.Equal(t, "Getting Started", lists[0].Title)
	assert.Len(t, lists[0].Items, 3)
	assert.True(t, lists[1].IsPublic)
	assert.Empty(t, lists[0].SharedWith)
	assert.Equal(t, []string{"2"}, lists[1].SharedWith)

	s.DeleteList(lists[0].ID)
	s.DeleteList(lists[1].ID)

	again := newTestStore(t, mem, WithSeed(true))
	assert.Empty(t, again.Lists(), "an emptied store is not reseeded")
}

func TestSeedNeverSharesWithOwner(t *testing.T) {
	jane := model.User{ID: "2", Name: "Jane Smith", Email: "jane@example.com"}
	s := newTestStore(t, NewMemory(), WithSeed(true), WithCurrentUser(jane))

	lists := s.Lists()
	require.Len(t, lists, 2)
	assert.Equal(t, "2", lists[1].OwnerID)
	assert.Empty(t, lists[1].SharedWith)
}

func TestLoadNormalizesSharedWith(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Save(context.Background(), &Snapshot{Lists: []model.TodoList{{
		ID: "l1", Title: "A", OwnerID: "1", SharedWith: []string{"2", "1", "2", ""},
	}}}))

	s := newTestStore(t, mem)
	got, ok := s.List("l1")
	require.True(t, ok)
	assert.Equal(t, []string{"2"}, got.SharedWith)
	assert.NotNil(t, got.Items)
}

func TestPersistErrorIsRecorded(t *testing.T) {
	s := newTestStore(t, &failingPersister{})
	require.NoError(t, s.Err())

	l := s.CreateList("A", "", false)

	assert.EqualError(t, s.Err(), "quota exceeded")
	// state still changed in memory
	_, ok := s.List(l.ID)
	assert.True(t, ok)
}

func TestNoopDoesNotSave(t *testing.T) {
	s := newTestStore(t, NewMemory())
	l := s.CreateList("A", "", false)
	s.persister = &failingPersister{}

	s.ShareList(l.ID, l.OwnerID)
	s.UpdateList(l.ID, model.ListPatch{})
	s.DeleteList("missing")

	assert.NoError(t, s.Err())
}

type brokenLoad struct{ Memory }

func (brokenLoad) Load(context.Context) (*Snapshot, error) { return nil, errors.New("disk gone") }

func TestNewPropagatesLoadError(t *testing.T) {
	_, err := New(context.Background(), &brokenLoad{})
	assert.ErrorContains(t, err, "load snapshot: disk gone")
}
