package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIDsOrderInsensitive(t *testing.T) {
	a := hashIDs([]string{"ev1", "ev2", "ev3"})
	b := hashIDs([]string{"ev3", "ev1", "ev2"})
	assert.Equal(t, a, b)
}

func TestHashIDsDetectsChanges(t *testing.T) {
	base := hashIDs([]string{"ev1", "ev2"})

	assert.NotEqual(t, base, hashIDs([]string{"ev1"}))
	assert.NotEqual(t, base, hashIDs([]string{"ev1", "ev2", "ev3"}))
	assert.NotEqual(t, base, hashIDs(nil))
}

func TestHashIDsNoAmbiguousConcat(t *testing.T) {
	// separator keeps ["ab","c"] distinct from ["a","bc"]
	assert.NotEqual(t, hashIDs([]string{"ab", "c"}), hashIDs([]string{"a", "bc"}))
}

func TestHashIDsDoesNotMutateInput(t *testing.T) {
	ids := []string{"z", "a"}
	hashIDs(ids)
	assert.Equal(t, []string{"z", "a"}, ids)
}
