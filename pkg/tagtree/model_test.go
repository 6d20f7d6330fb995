package tagtree

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// model tracks tag coverage per position.
type model map[string][]bool

func (m model) set(tag string, start, end, size int, v bool) bool {
	cov, ok := m[tag]
	if !ok {
		cov = make([]bool, size)
		m[tag] = cov
	}
	changed := false
	for p := max(start, 0); p < min(end, size); p++ {
		if cov[p] != v {
			changed = true
		}
		cov[p] = v
	}
	return changed
}

func (m model) has(tag string, start, end, size int) bool {
	start, end = max(start, 0), min(end, size)
	if start >= end {
		return false
	}
	cov := m[tag]
	if cov == nil {
		return false
	}
	for p := start; p < end; p++ {
		if !cov[p] {
			return false
		}
	}
	return true
}

func TestRandomOperations(t *testing.T) {
	const size = 40
	tags := []string{"a", "b", "c", "d"}

	for seed := int64(1); seed <= 20; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		tr := newTestTree(t, 0, size)
		m := model{}

		for step := 0; step < 200; step++ {
			tag := tags[rnd.Intn(len(tags))]
			start := rnd.Intn(size+10) - 5
			end := start + 1 + rnd.Intn(size/2)

			if rnd.Intn(3) > 0 {
				tr.AddTag(tag, start, end)
				m.set(tag, start, end, size, true)
			} else {
				had := false
				for p := max(start, 0); p < min(end, size); p++ {
					if m[tag] != nil && m[tag][p] {
						had = true
					}
				}
				removed := tr.RemoveTag(tag, start, end)
				m.set(tag, start, end, size, false)
				require.Equal(t, had, removed, "seed %d step %d: remove %s [%d, %d)\n%s", seed, step, tag, start, end, tr)
			}
			require.NoError(t, tr.Validate(), "seed %d step %d\n%s", seed, step, tr)

			for _, q := range tags {
				qs := rnd.Intn(size)
				qe := qs + 1 + rnd.Intn(size-qs)
				require.Equal(t, m.has(q, qs, qe, size), tr.HasTag(q, qs, qe),
					"seed %d step %d: has %s [%d, %d)\n%s", seed, step, q, qs, qe, tr)
			}
			pos := rnd.Intn(size)
			for _, q := range tags {
				require.Equal(t, m.has(q, pos, pos+1, size), tr.TagsAt(pos).Has(q),
					"seed %d step %d: tags at %d\n%s", seed, step, pos, tr)
			}
		}
	}
}

func TestLogger(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 2})

	tr, err := NewTree[int, string]("logged", 0, 10, WithLogger(logger))
	require.NoError(t, err)
	tr.AddTag("b", 2, 8)
	tr.RemoveTag("b", 0, 10)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, `"msg"="add tag"`)
	assert.Contains(t, joined, `"msg"="remove tag"`)
	assert.Contains(t, joined, `"msg"="rehook"`)
	assert.Contains(t, joined, `"tree"="logged"`)
}
