package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	classDog   Class          = "http://example.org/zoo#Dog"
	propFriend ObjectProperty = "http://example.org/zoo#friend"
	propName   DataProperty   = "http://example.org/zoo#name"
)

func TestMemoryStoreObjectValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.AddObjectValue(ctx, "rex", propFriend, "fido"))
	require.NoError(t, s.AddObjectValue(ctx, "rex", propFriend, "lassie"))
	require.NoError(t, s.AddObjectValue(ctx, "rex", propFriend, "fido"))

	values, err := s.ObjectValues(ctx, "rex", propFriend)
	require.NoError(t, err)
	assert.Equal(t, []string{"fido", "lassie"}, values)

	require.NoError(t, s.RemoveObjectValue(ctx, "rex", propFriend, "fido"))
	values, err = s.ObjectValues(ctx, "rex", propFriend)
	require.NoError(t, err)
	assert.Equal(t, []string{"lassie"}, values)
}

func TestMemoryStoreDeleteIndividual(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.AssertClass(ctx, "rex", classDog))
	require.NoError(t, s.AssertClass(ctx, "fido", classDog))
	require.NoError(t, s.AddObjectValue(ctx, "fido", propFriend, "rex"))
	require.NoError(t, s.AddDataValue(ctx, "rex", propName, Encode("Rex")))

	require.NoError(t, s.DeleteIndividual(ctx, "rex"))

	dogs, err := s.Individuals(ctx, classDog)
	require.NoError(t, err)
	assert.Equal(t, []string{"fido"}, dogs)

	friends, err := s.ObjectValues(ctx, "fido", propFriend)
	require.NoError(t, err)
	assert.Empty(t, friends)

	names, err := s.DataValues(ctx, "rex", propName)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestBaseIndividualLiteralsAreSetValued(t *testing.T) {
	ctx := context.Background()
	b := NewBaseIndividual(NewMemoryStore(), "rex")

	require.NoError(t, b.AssertLiteral(ctx, propName, Encode("Rex")))
	require.NoError(t, b.AssertLiteral(ctx, propName, Encode("Rex")))

	values, err := b.Literals(ctx, propName)
	require.NoError(t, err)
	assert.Len(t, values, 1)

	require.NoError(t, b.ReplaceLiterals(ctx, propName, []Literal{Encode("Max")}))
	values, err = b.Literals(ctx, propName)
	require.NoError(t, err)
	assert.Equal(t, []Literal{Encode("Max")}, values)
}

func TestSetKeysIndividualsByIRI(t *testing.T) {
	store := NewMemoryStore()
	a := NewBaseIndividual(store, "rex")
	b := NewBaseIndividual(store, "rex")

	s := NewIndividualSet[*BaseIndividual](a)
	assert.False(t, s.Add(b))
	assert.True(t, s.Contains(b))
	assert.Equal(t, 1, s.Len())

	nums := NewSet(3, 1, 3, 2)
	assert.Equal(t, []int{3, 1, 2}, nums.Items())
	assert.True(t, nums.Remove(1))
	assert.Equal(t, []int{3, 2}, nums.Items())
}

func TestZeroValueSet(t *testing.T) {
	var names Set[string]
	assert.False(t, names.Contains("rex"))
	assert.False(t, names.Remove("rex"))
	assert.True(t, names.Add("rex"))
	assert.False(t, names.Add("rex"))
	assert.True(t, names.Add("max"))
	assert.True(t, names.Remove("rex"))
	assert.Equal(t, []string{"max"}, names.Items())

	store := NewMemoryStore()
	var dogs Set[*BaseIndividual]
	assert.True(t, dogs.Add(NewBaseIndividual(store, "rex")))
	assert.False(t, dogs.Add(NewBaseIndividual(store, "rex")))
	assert.True(t, dogs.Contains(NewBaseIndividual(store, "rex")))
	assert.Equal(t, 1, dogs.Len())

	var none *Set[string]
	assert.False(t, none.Contains("rex"))
	assert.Empty(t, none.Items())
}

func TestCollect(t *testing.T) {
	seq := func(yield func(int, error) bool) {
		for i := range 3 {
			if !yield(i, nil) {
				return
			}
		}
	}

	values, err := Collect[int](seq)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, values)
}
