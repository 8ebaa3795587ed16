package props

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/props/pkg/errors"
)

// requireLockstep asserts the defining invariant of List: one child Value
// per raw element, always.
func requireLockstep(t *testing.T, l *List) {
	t.Helper()
	require.Equal(t, len(l.Get()), len(l.Items()), "raw values and child items out of lock-step")
	for i, item := range l.Items() {
		require.Equal(t, l.Get()[i], item.Get(), "child %d disagrees with the raw value", i)
	}
}

func newIntList(t *testing.T, initial []any, cfg ListConfig) *List {
	t.Helper()
	if cfg.ItemCast == nil {
		cfg.ItemCast = castToInt
	}
	l, err := NewList(nil, initial, cfg)
	require.NoError(t, err)
	return l
}

func TestNewListCastsElements(t *testing.T) {
	l := newIntList(t, []any{"1", 2, 3.0}, ListConfig{})
	if diff := cmp.Diff([]any{1, 2, 3}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestNewListBounds(t *testing.T) {
	_, err := NewList(nil, []any{1}, ListConfig{MinLen: 2})
	require.Error(t, err)
	assert.True(t, errors.IsBounds(err))

	_, err = NewList(nil, []any{1, 2, 3}, ListConfig{MaxLen: 2})
	require.Error(t, err)
	assert.True(t, errors.IsBounds(err))
}

func TestAppend(t *testing.T) {
	l := newIntList(t, nil, ListConfig{})
	var got []notification
	l.AddListener(record(&got))

	require.NoError(t, l.Append(1))
	require.NoError(t, l.Append("2"))

	if diff := cmp.Diff([]any{1, 2}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
	assert.Len(t, got, 2)
}

func TestAppendBeyondMaxLen(t *testing.T) {
	l := newIntList(t, nil, ListConfig{MaxLen: 3})
	require.NoError(t, l.Append(1))
	require.NoError(t, l.Append(2))
	require.NoError(t, l.Append(3))

	err := l.Append(4)
	require.Error(t, err)
	assert.True(t, errors.IsBounds(err))
	if diff := cmp.Diff([]any{1, 2, 3}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestExtend(t *testing.T) {
	l := newIntList(t, []any{1}, ListConfig{MaxLen: 3})
	require.NoError(t, l.Extend(2, 3))
	if diff := cmp.Diff([]any{1, 2, 3}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)

	// The whole batch is rejected up front.
	err := l.Extend(4, 5)
	require.Error(t, err)
	assert.True(t, errors.IsBounds(err))
	assert.Equal(t, 3, l.Len())
	requireLockstep(t, l)
}

func TestExtendNotifiesOnce(t *testing.T) {
	l := newIntList(t, nil, ListConfig{})
	var got []notification
	l.AddListener(record(&got))

	require.NoError(t, l.Extend(1, 2, 3))
	assert.Len(t, got, 1)
}

func TestInsert(t *testing.T) {
	l := newIntList(t, []any{1, 3}, ListConfig{})
	require.NoError(t, l.Insert(1, 2))
	if diff := cmp.Diff([]any{1, 2, 3}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)

	err := l.Insert(7, 9)
	require.Error(t, err)
	assert.True(t, errors.IsIndex(err))
	assert.Equal(t, 3, l.Len())
	requireLockstep(t, l)
}

func TestPop(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3}, ListConfig{})
	v, err := l.Pop()
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = l.PopIndex(0)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	if diff := cmp.Diff([]any{2}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestPopBelowMinLen(t *testing.T) {
	l := newIntList(t, []any{1}, ListConfig{MinLen: 1})
	_, err := l.Pop()
	require.Error(t, err)
	assert.True(t, errors.IsBounds(err))
	if diff := cmp.Diff([]any{1}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestDelete(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3}, ListConfig{})
	require.NoError(t, l.Delete(1))
	if diff := cmp.Diff([]any{1, 3}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestDeleteRange(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3, 4}, ListConfig{})
	require.NoError(t, l.DeleteRange(1, 3))
	if diff := cmp.Diff([]any{1, 4}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestDeleteRangeBelowMinLen(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3}, ListConfig{MinLen: 2})
	err := l.DeleteRange(0, 2)
	require.Error(t, err)
	assert.True(t, errors.IsBounds(err))
	assert.Equal(t, 3, l.Len())
	requireLockstep(t, l)
}

func TestMovePreservesChildIdentity(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3}, ListConfig{})
	moved := l.Item(0)
	var got []notification
	moved.AddListener(record(&got))

	require.NoError(t, l.Move(0, 2))

	if diff := cmp.Diff([]any{2, 3, 1}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
	assert.Same(t, moved, l.Item(2), "the moved element keeps its child Value")
	assert.Equal(t, 1, l.Item(2).ListenerCount())
}

func TestMoveIndexOutOfRange(t *testing.T) {
	l := newIntList(t, []any{1, 2}, ListConfig{})
	err := l.Move(0, 5)
	require.Error(t, err)
	assert.True(t, errors.IsIndex(err))
	if diff := cmp.Diff([]any{1, 2}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
}

func TestSetIndexPreservesChildListeners(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3}, ListConfig{})

	child := l.Item(1)
	var childGot []notification
	child.AddListener(record(&childGot))

	var listGot []notification
	l.AddListener(record(&listGot))

	require.NoError(t, l.SetIndex(1, 20))

	assert.Same(t, child, l.Item(1), "in-place edits never recreate the child")
	require.Len(t, childGot, 1)
	assert.Equal(t, 20, childGot[0].value)
	assert.Len(t, listGot, 1)
	if diff := cmp.Diff([]any{1, 20, 3}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestSetRange(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3, 4}, ListConfig{})
	a, b := l.Item(1), l.Item(2)

	require.NoError(t, l.SetRange(1, 3, []any{20, 30}))

	if diff := cmp.Diff([]any{1, 20, 30, 4}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	assert.Same(t, a, l.Item(1))
	assert.Same(t, b, l.Item(2))
	requireLockstep(t, l)
}

func TestSetRangeShapeMismatch(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3}, ListConfig{})
	err := l.SetRange(0, 2, []any{9})
	require.Error(t, err)
	assert.True(t, errors.IsIndex(err))
	if diff := cmp.Diff([]any{1, 2, 3}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestChildEditSurfacesAtListLevel(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3}, ListConfig{})
	var listGot []notification
	l.AddListener(record(&listGot))

	require.NoError(t, l.Item(1).Set(20))

	require.Len(t, listGot, 1)
	if diff := cmp.Diff([]any{1, 20, 3}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestChildEditWithoutChangeIsSilent(t *testing.T) {
	l := newIntList(t, []any{1, 2, 3}, ListConfig{})
	require.NoError(t, l.Item(1).Set(2)) // prime the child's notification state
	var listGot []notification
	l.AddListener(record(&listGot))

	require.NoError(t, l.Item(1).Set(2))
	assert.Empty(t, listGot)
}

func TestSetRecreateDropsChildListeners(t *testing.T) {
	l := newIntList(t, []any{1, 2}, ListConfig{})
	old := l.Item(0)
	old.AddListener(func(any, bool, any) {})

	require.NoError(t, l.Set([]any{5, 6}, true))

	assert.NotSame(t, old, l.Item(0))
	assert.Equal(t, 0, l.Item(0).ListenerCount())
	requireLockstep(t, l)

	// Edits to the orphaned child no longer reach the list.
	var listGot []notification
	l.AddListener(record(&listGot))
	require.NoError(t, old.Set(99))
	assert.Empty(t, listGot)
	if diff := cmp.Diff([]any{5, 6}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
}

func TestSetWithoutRecreateLeavesChildren(t *testing.T) {
	l := newIntList(t, []any{1, 2}, ListConfig{})
	a, b := l.Item(0), l.Item(1)

	require.NoError(t, l.Set([]any{5, 6}, false))

	assert.Same(t, a, l.Item(0))
	assert.Same(t, b, l.Item(1))
	if diff := cmp.Diff([]any{5, 6}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
}

func TestListValidateControlsListValidity(t *testing.T) {
	evenLength := func(_ any, value any) error {
		if len(value.([]any))%2 != 0 {
			return fmt.Errorf("must have even length")
		}
		return nil
	}
	l, err := NewList(nil, []any{1, 2}, ListConfig{ItemCast: castToInt, ListValidate: evenLength})
	require.NoError(t, err)
	assert.True(t, l.Valid())

	require.NoError(t, l.Append(3))
	assert.False(t, l.Valid())
	assert.Error(t, l.ValidationError())

	require.NoError(t, l.Append(4))
	assert.True(t, l.Valid())
}

func TestItemValidationTrackedOnChildren(t *testing.T) {
	l, err := NewList(nil, []any{1, -2, 3}, ListConfig{ItemCast: castToInt, ItemValidate: requirePositive})
	require.NoError(t, err)

	assert.True(t, l.Valid(), "item failures do not fold into the list-level flag")
	assert.False(t, l.Item(1).Valid())
	assert.True(t, l.Item(0).Valid())

	require.Error(t, l.ItemsError())
	assert.Contains(t, l.ItemsError().Error(), "item 1")
}

func TestStrictListRejectsInvalidElement(t *testing.T) {
	l, err := NewList(nil, []any{1}, ListConfig{ItemCast: castToInt, ItemValidate: requirePositive, Strict: true})
	require.NoError(t, err)
	var got []notification
	l.AddListener(record(&got))

	err = l.Append(-5)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	if diff := cmp.Diff([]any{1}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
	assert.Empty(t, got)

	err = l.SetIndex(0, -9)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	if diff := cmp.Diff([]any{1}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, got)
}

func TestCastFailureLeavesListUntouched(t *testing.T) {
	l := newIntList(t, []any{1, 2}, ListConfig{})
	err := l.Append("bogus")
	require.Error(t, err)
	assert.True(t, errors.IsCoercion(err))
	if diff := cmp.Diff([]any{1, 2}, l.Get()); diff != "" {
		t.Errorf("raw values mismatch (-want +got):\n%s", diff)
	}
	requireLockstep(t, l)
}

func TestIndexContainsCount(t *testing.T) {
	l := newIntList(t, []any{1, 2, 2, 3}, ListConfig{})
	assert.Equal(t, 1, l.Index(2))
	assert.Equal(t, -1, l.Index(9))
	assert.True(t, l.Contains(3))
	assert.False(t, l.Contains(9))
	assert.Equal(t, 2, l.Count(2))
	assert.Equal(t, 0, l.Count(9))
}

func TestLockstepDuringNotification(t *testing.T) {
	l := newIntList(t, []any{1, 2}, ListConfig{})
	checked := 0
	l.AddListener(func(value any, _ bool, _ any) {
		checked++
		assert.Equal(t, len(value.([]any)), len(l.Items()),
			"raw values and child items must agree while listeners run")
	})

	require.NoError(t, l.Append(3))
	_, err := l.Pop()
	require.NoError(t, err)
	require.NoError(t, l.Insert(0, 0))
	require.NoError(t, l.Delete(0))
	assert.Equal(t, 4, checked)
}
