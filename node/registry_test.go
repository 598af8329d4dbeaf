package node_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meritrank/node"
)

func TestKindFromName(t *testing.T) {
	cases := map[string]node.Kind{
		"":               node.KindUnknown,
		"U1":             node.KindUser,
		"Ualice":         node.KindUser,
		"Bsome-beacon":   node.KindBeacon,
		"Cthread-99":     node.KindComment,
		"xyz":            node.KindUnknown,
		"U000000000000":  node.KindUser,
	}
	for name, want := range cases {
		assert.Equal(t, want, node.KindFromName(name), "name=%q", name)
	}
}

func TestRegistry_FindOrAdd_StableIDs(t *testing.T) {
	r := node.NewRegistry()

	idA1 := r.FindOrAdd("Ua")
	idB := r.FindOrAdd("Bb")
	idA2 := r.FindOrAdd("Ua")

	assert.Equal(t, idA1, idA2, "same name must return same id")
	assert.NotEqual(t, idA1, idB)

	info, err := r.Info(idA1)
	require.NoError(t, err)
	assert.Equal(t, "Ua", info.Name)
	assert.Equal(t, node.KindUser, info.Kind)
}

func TestRegistry_Lookup_NotFound(t *testing.T) {
	r := node.NewRegistry()
	_, err := r.Lookup("Unever-seen")
	assert.True(t, errors.Is(err, node.ErrNotFound))
	assert.False(t, r.Exists("Unever-seen"))
}

func TestRegistry_Marks_RoundTrip(t *testing.T) {
	r := node.NewRegistry()
	id := r.FindOrAdd("Bbeacon")

	var m node.Marks
	m[0] = 0xFF
	require.NoError(t, r.SetMarks(id, m))

	got, err := r.GetMarks(id)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	r.ResetMarks()
	got, err = r.GetMarks(id)
	require.NoError(t, err)
	assert.Equal(t, node.Marks{}, got)
}

func TestRegistry_Names_AscendingByID(t *testing.T) {
	r := node.NewRegistry()
	r.FindOrAdd("Ufirst")
	r.FindOrAdd("Bsecond")
	r.FindOrAdd("Cthird")

	assert.Equal(t, []string{"Ufirst", "Bsecond", "Cthird"}, r.Names())
	assert.Equal(t, 3, r.Len())
}
