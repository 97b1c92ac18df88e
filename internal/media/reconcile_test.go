package media

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":                                  "",
		"   ":                               "",
		"/":                                 "",
		"uploads/projects/a.png":            "uploads/projects/a.png",
		`uploads\projects\a.png`:            "uploads/projects/a.png",
		"/uploads/projects/a.png":           "uploads/projects/a.png",
		"./uploads//projects/./a.png":       "uploads/projects/a.png",
		"uploads/projects/../projects/a.png": "uploads/projects/a.png",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestReconcilePartialRemoval(t *testing.T) {
	plan := Reconcile([]string{"a", "b", "c"}, []string{"a", "c"}, []string{"d"})

	assert.Equal(t, []string{"b"}, plan.Delete)
	assert.Equal(t, []string{"a", "c"}, plan.Keep)
	assert.Equal(t, []string{"a", "c", "d"}, plan.Final)
}

func TestReconcileKeepsStoredOrder(t *testing.T) {
	plan := Reconcile([]string{"a", "b", "c"}, []string{"c", "a"}, nil)

	assert.Equal(t, []string{"a", "c"}, plan.Keep)
	assert.Equal(t, []string{"a", "c"}, plan.Final)
}

func TestReconcileEmptyCurrent(t *testing.T) {
	plan := Reconcile(nil, []string{"ghost"}, []string{"n1", "n2"})

	assert.Empty(t, plan.Delete)
	assert.Equal(t, []string{"n1", "n2"}, plan.Final)
}

func TestReconcileNoOp(t *testing.T) {
	current := []string{"uploads/slides/1.png", "uploads/slides/2.png"}
	plan := Reconcile(current, current, nil)

	assert.Empty(t, plan.Delete)
	assert.Equal(t, current, plan.Final)
}

func TestReconcileMissingKeptDeletesEverything(t *testing.T) {
	plan := Reconcile([]string{"a", "b"}, nil, []string{"c"})

	assert.Equal(t, []string{"a", "b"}, plan.Delete)
	assert.Equal(t, []string{"c"}, plan.Final)
}

func TestReconcileMatchesAcrossSeparators(t *testing.T) {
	plan := Reconcile([]string{`uploads\projects\a.png`}, []string{"/uploads/projects/a.png"}, nil)

	assert.Empty(t, plan.Delete)
	assert.Equal(t, []string{"uploads/projects/a.png"}, plan.Final)
}

func TestReconcileProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	pick := func(n int) []string {
		out := make([]string, 0, n)
		for range n {
			out = append(out, fmt.Sprintf("uploads/projects/%d.png", r.IntN(8)))
		}
		return out
	}

	for i := range 500 {
		current := pick(r.IntN(6))
		kept := pick(r.IntN(6))
		uploaded := make([]string, 0)
		for j := range r.IntN(3) {
			uploaded = append(uploaded, fmt.Sprintf("uploads/projects/new-%d-%d.png", i, j))
		}

		plan := Reconcile(current, kept, uploaded)
		again := Reconcile(current, kept, uploaded)
		require.Equal(t, plan, again, "deterministic")

		// Final is Keep followed by the uploads.
		require.Equal(t, append(append([]string{}, plan.Keep...), uploaded...), plan.Final)

		// Keep is a subsequence of current.
		j := 0
		for _, p := range current {
			if j < len(plan.Keep) && plan.Keep[j] == p {
				j++
			}
		}
		require.Equal(t, len(plan.Keep), j, "keep must be a subsequence of current")

		// Delete and Keep partition current.
		keepSet := map[string]bool{}
		for _, p := range plan.Keep {
			keepSet[p] = true
		}
		for _, p := range plan.Delete {
			require.False(t, keepSet[p], "path %s both kept and deleted", p)
		}
		require.Equal(t, len(current), len(plan.Keep)+len(plan.Delete))
	}
}

func TestParseKept(t *testing.T) {
	assert.Equal(t, []string{}, ParseKept(""))
	assert.Equal(t, []string{}, ParseKept("null"))
	assert.Equal(t, []string{}, ParseKept(`{"a":1}`))
	assert.Equal(t, []string{}, ParseKept(`["a",`))
	assert.Equal(t, []string{"a", "b"}, ParseKept(`["a","b"]`))
	assert.Equal(t, []string{"uploads/projects/a.png", "uploads/projects/b.png"},
		ParseKept("uploads/projects/a.png, uploads/projects/b.png,"))
}
