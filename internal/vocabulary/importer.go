package vocabulary

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/vocabtrainer/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines how vocabulary rows are read from a spreadsheet
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	EnglishColumn       string // Column with the English word
	VietnameseColumn    string // Column with the Vietnamese meaning
	PronunciationColumn string // Column with the phonetic transcription
	TypeColumn          string // Column with the word type (noun, verb, ...)
	TopicColumn         string // Column with the topic name
	SheetName           string // Name of the sheet to import
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		EnglishColumn:       "A",
		VietnameseColumn:    "B",
		PronunciationColumn: "C",
		TypeColumn:          "D",
		TopicColumn:         "E",
		SheetName:           "Sheet1",
		StartRow:            2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	TopicsWritten  int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportVocabulary reads vocabulary rows from an Excel or CSV file and
// writes them into per-topic JSON files under dataDir, merging with any
// entries already present there.
func ImportVocabulary(config ImportConfig, dataDir string) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	var rows [][]string
	var err error
	if ext == ".csv" {
		rows, err = readCSVRows(config.FilePath)
	} else {
		rows, err = readExcelRows(config)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	byTopic := make(map[string][]models.VocabularyEntry)

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		entry, topic, err := entryFromRow(row, config)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		byTopic[topic] = append(byTopic[topic], entry)
		result.Imported++
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}
	source := NewDirSource(dataDir)
	for topic, entries := range byTopic {
		if err := mergeTopicFile(source, dataDir, topic, entries); err != nil {
			return nil, err
		}
		result.TopicsWritten++
	}

	return result, nil
}

// readExcelRows returns all rows of the configured sheet
func readExcelRows(config ImportConfig) ([][]string, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

// readCSVRows returns all rows of a CSV file
func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// entryFromRow builds a vocabulary entry from one spreadsheet row
func entryFromRow(row []string, config ImportConfig) (models.VocabularyEntry, string, error) {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	entry := models.VocabularyEntry{
		English:       cell(config.EnglishColumn),
		Vietnamese:    cell(config.VietnameseColumn),
		Pronunciation: cell(config.PronunciationColumn),
		Type:          strings.ToLower(cell(config.TypeColumn)),
	}
	topic := cell(config.TopicColumn)

	if entry.English == "" || entry.Vietnamese == "" {
		return entry, topic, fmt.Errorf("missing word or translation")
	}
	if topic == "" {
		return entry, topic, fmt.Errorf("missing topic")
	}
	return entry, topic, nil
}

// mergeTopicFile merges new entries into an existing topic file,
// deduplicating by (english, vietnamese) identity.
func mergeTopicFile(source *DirSource, dataDir, topic string, entries []models.VocabularyEntry) error {
	existing, _ := source.Load(topic)

	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.Key()] = true
	}
	merged := existing
	for _, e := range entries {
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		merged = append(merged, e)
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode topic %s: %v", topic, err)
	}
	path := filepath.Join(dataDir, topic+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write topic %s: %v", topic, err)
	}
	return nil
}

// columnToIndex converts a spreadsheet column letter to a 0-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, c := range column {
		if c < 'A' || c > 'Z' {
			return -1
		}
		index = index*26 + int(c-'A') + 1
	}
	return index - 1
}
