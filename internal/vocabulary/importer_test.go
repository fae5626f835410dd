package vocabulary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/vocabtrainer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportVocabularyFromCSV(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "topics")
	csvPath := writeCSV(t, dir, "words.csv",
		"English,Vietnamese,Pronunciation,Type,Topic\n"+
			"cat,mèo,/kæt/,Noun,Animals\n"+
			"dog,chó,/dɒɡ/,noun,Animals\n"+
			"rice,cơm,,noun,Food\n")

	config := DefaultImportConfig()
	config.FilePath = csvPath

	result, err := ImportVocabulary(config, dataDir)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 2, result.TopicsWritten)

	source := NewDirSource(dataDir)
	animals, err := source.Load("Animals")
	require.NoError(t, err)
	require.Len(t, animals, 2)
	assert.Equal(t, models.VocabularyEntry{
		English: "cat", Vietnamese: "mèo", Pronunciation: "/kæt/", Type: "noun",
	}, animals[0], "word type is lowercased")

	food, err := source.Load("Food")
	require.NoError(t, err)
	assert.Len(t, food, 1)
}

func TestImportVocabularySkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "topics")
	csvPath := writeCSV(t, dir, "words.csv",
		"English,Vietnamese,Pronunciation,Type,Topic\n"+
			"cat,mèo,/kæt/,noun,Animals\n"+
			",chó,,noun,Animals\n"+
			"rice,cơm,,noun,\n")

	config := DefaultImportConfig()
	config.FilePath = csvPath

	result, err := ImportVocabulary(config, dataDir)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Row 3")
	assert.Contains(t, result.Errors[1], "missing topic")
}

func TestImportVocabularyMergesWithExistingTopic(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "topics")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	writeTopicFile(t, dataDir, "Animals", []models.VocabularyEntry{
		{English: "cat", Vietnamese: "mèo", Pronunciation: "/kæt/", Type: "noun"},
	})

	csvPath := writeCSV(t, dir, "words.csv",
		"English,Vietnamese,Pronunciation,Type,Topic\n"+
			"cat,mèo,/kæt/,noun,Animals\n"+ // duplicate of the stored entry
			"dog,chó,/dɒɡ/,noun,Animals\n")

	config := DefaultImportConfig()
	config.FilePath = csvPath

	result, err := ImportVocabulary(config, dataDir)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	source := NewDirSource(dataDir)
	animals, err := source.Load("Animals")
	require.NoError(t, err)
	require.Len(t, animals, 2, "duplicate identity merged away")
	assert.Equal(t, "cat", animals[0].English)
	assert.Equal(t, "dog", animals[1].English)
}

func TestColumnToIndex(t *testing.T) {
	tests := []struct {
		column string
		index  int
	}{
		{column: "A", index: 0},
		{column: "E", index: 4},
		{column: "Z", index: 25},
		{column: "AA", index: 26},
		{column: "b", index: 1},
		{column: "", index: -1},
		{column: "1", index: -1},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.index, columnToIndex(tc.column), "column %q", tc.column)
	}
}
