package vocabulary

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/vocabtrainer/pkg/models"
)

// Source supplies vocabulary entries per topic. Implementations must be
// read-only; entries are loaded on demand.
type Source interface {
	// Topics returns the available topic keys.
	Topics() ([]string, error)
	// Load returns the entries of a topic. A missing or unreadable topic
	// yields an empty slice, not an error, so quiz generation degrades to
	// an empty quiz instead of failing.
	Load(topic string) ([]models.VocabularyEntry, error)
}

// DirSource reads topics from a directory of <Topic>.json files, each
// containing an array of vocabulary entries.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over the given data directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Topics lists topic keys derived from the JSON file names, sorted.
func (s *DirSource) Topics() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(files))
	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".json")
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics, nil
}

// Load reads a topic file. Corrupt or missing files degrade to an empty
// slice so callers never have to handle a partial quiz specially.
func (s *DirSource) Load(topic string) ([]models.VocabularyEntry, error) {
	path := filepath.Join(s.dir, topic+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("vocabulary: cannot read topic %s: %v", topic, err)
		return []models.VocabularyEntry{}, nil
	}

	var entries []models.VocabularyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("vocabulary: corrupt topic file %s: %v", topic, err)
		return []models.VocabularyEntry{}, nil
	}
	return entries, nil
}
