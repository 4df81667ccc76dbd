package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synacorvm/vm"
)

type fakeHost struct {
	vm.Machine
	pushed []string
}

func newFakeHost() *fakeHost {
	h := &fakeHost{}
	h.Machine = *vm.NewMachine(func() (string, error) { return "", nil }, nil)
	return h
}

func (h *fakeHost) PushInput(s string) {
	h.pushed = append(h.pushed, s)
	h.Machine.PushInput(s)
}

func TestCoinsGeneratesAllFivePermutations(t *testing.T) {
	h := newFakeHost()
	Coins(h)

	const factorial5 = 120
	const linesPerAttempt = 5 + 5 // use + take
	assert.Len(t, h.pushed, factorial5*linesPerAttempt)
	assert.Equal(t, "use red coin\n", h.pushed[0])
	assert.Equal(t, "take red coin\n", h.pushed[5])
}

func TestShortestPathReachesGoalWithCorrectTotal(t *testing.T) {
	g := vaultGraph()
	path, ok := g.ShortestPath(0, 22, 7, 30)
	require.True(t, ok)
	require.NotEmpty(t, path)

	total := uint16(22)
	node := 0
	for _, mv := range path {
		assert.NotEqual(t, 0, mv.To, "path must not revisit the start room")
		total = mv.Op.apply(total, g.nodes[mv.To].value)
		node = mv.To
	}
	assert.Equal(t, 7, node)
	assert.Equal(t, uint16(30), total)
}

func TestPathPushesOneLinePerMove(t *testing.T) {
	h := newFakeHost()
	path := Path(h)
	require.NotEmpty(t, path)
	assert.Len(t, h.pushed, len(path))
}

func TestTeleportCheckBaseCase(t *testing.T) {
	cache := map[cacheKey]uint16{}
	assert.Equal(t, uint16(6), teleportCheck(0, 5, 1, cache))
}

func TestTeleportCheckMatchesSmallBruteForce(t *testing.T) {
	// With r0 capped low, brute-forcing r7 over a small range should find
	// at least one calibration value reproducing a reachable target,
	// mirroring the original solver's own (deliberately tiny) sanity test.
	found := false
	for r7 := uint16(0); r7 < 10; r7++ {
		cache := map[cacheKey]uint16{}
		if teleportCheck(2, r7, r7, cache) == 6 {
			found = true
			break
		}
	}
	assert.True(t, found)
}
