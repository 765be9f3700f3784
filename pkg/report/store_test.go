package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/voldiff"
)

func TestStoreInsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxel_counts.db")

	store, err := OpenStore(path)
	require.NoError(t, err)
	defer store.Close()

	diffs := []voldiff.Diff{
		{Additions: 2, Deletions: 1, Total: 4, Method: models.Trilinear, Path: "a.subdiv.2.mt.trilinear.mnc"},
		{Additions: 1, Deletions: 0, Total: 4, Method: models.Trilinear, Path: "b.subdiv.2.mt.trilinear.mnc"},
		{Additions: 0, Deletions: 8, Total: 0, Method: models.Tricubic, Path: "a.subdiv.2.mt.tricubic.mnc"},
	}
	for _, d := range diffs {
		require.NoError(t, store.Insert(d))
	}

	counts, err := store.CountByMethod()
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.Trilinear])
	assert.Equal(t, 1, counts[models.Tricubic])

	// the degenerate ratio must land as NULL, not NaN
	var nulls int
	require.NoError(t, store.db.QueryRow(
		`SELECT COUNT(*) FROM voxel_counts WHERE percent_change IS NULL`).Scan(&nulls))
	assert.Equal(t, 1, nulls)
}

func TestStoreAccumulatesAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxel_counts.db")

	store, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(voldiff.Diff{
		Additions: 1, Total: 2, Method: models.NearestNeighbour,
		Path: "a.subdiv.2.mt.nearest_neighbour.mnc",
	}))
	require.NoError(t, store.Close())

	reopened, err := OpenStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Insert(voldiff.Diff{
		Additions: 3, Total: 4, Method: models.NearestNeighbour,
		Path: "a.subdiv.2.mt.nearest_neighbour.mnc",
	}))

	counts, err := reopened.CountByMethod()
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.NearestNeighbour])
}
