package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"electrolyzer-analyzer/internal/dataset"
)

func makeDataset(name string, rows int) *dataset.Dataset {
	ds := &dataset.Dataset{Name: name, Columns: []string{"a", "b"}}
	for i := 0; i < rows; i++ {
		ds.Rows = append(ds.Rows, []string{"1", "2"})
	}
	return ds
}

func TestSessionDirectoryResetsListing(t *testing.T) {
	repo := NewSessionRepository("start")
	assert.Equal(t, "start", repo.Directory())

	repo.SetListing([]string{"a.csv", "b.csv"})
	repo.SetSelection([]string{"b.csv"})

	repo.SetDirectory("elsewhere")
	assert.Equal(t, "elsewhere", repo.Directory())
	assert.Empty(t, repo.Listing())
	assert.Empty(t, repo.Selection())
}

func TestSessionSelectionFollowsListingOrder(t *testing.T) {
	repo := NewSessionRepository("")
	repo.SetListing([]string{"a.csv", "b.csv", "c.csv"})

	// Selection order and unknown names are normalized against the listing.
	repo.SetSelection([]string{"c.csv", "ghost.csv", "a.csv"})
	assert.Equal(t, []string{"a.csv", "c.csv"}, repo.Selection())

	repo.SetListing([]string{"a.csv"})
	assert.Empty(t, repo.Selection(), "new listing clears the selection")
}

func TestSessionPutDatasetOverwrites(t *testing.T) {
	repo := NewSessionRepository("")

	repo.PutDataset(makeDataset("run.csv", 2))
	repo.PutDataset(makeDataset("run.csv", 5))

	ds, ok := repo.Dataset("run.csv")
	assert.True(t, ok)
	assert.Equal(t, 5, ds.NumRows())
	assert.Equal(t, 1, repo.Stats().DatasetCount)
}

func TestSessionDatasetsSortedByName(t *testing.T) {
	repo := NewSessionRepository("")
	repo.PutDataset(makeDataset("c.csv", 1))
	repo.PutDataset(makeDataset("a.csv", 1))
	repo.PutDataset(makeDataset("b.csv", 1))

	names := make([]string, 0, 3)
	for _, ds := range repo.Datasets() {
		names = append(names, ds.Name)
	}
	assert.Equal(t, []string{"a.csv", "b.csv", "c.csv"}, names)
}

func TestSessionStats(t *testing.T) {
	repo := NewSessionRepository("")
	repo.SetListing([]string{"a.csv", "b.csv", "c.csv"})
	repo.SetSelection([]string{"a.csv", "b.csv"})
	repo.PutDataset(makeDataset("a.csv", 3))
	repo.PutDataset(makeDataset("b.csv", 4))

	stats := repo.Stats()
	assert.Equal(t, 3, stats.ListedFiles)
	assert.Equal(t, 2, stats.SelectedFiles)
	assert.Equal(t, 2, stats.DatasetCount)
	assert.Equal(t, 7, stats.TotalRows)

	repo.ClearDatasets()
	assert.Equal(t, 0, repo.Stats().DatasetCount)
}
