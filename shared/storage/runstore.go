package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"cliphunt/internal/models"
)

// RunStore manages a persistent archive of pipeline runs: a manifest
// index plus one blueprint JSON file per run.
type RunStore struct {
	dataDir   string
	indexPath string
	runs      map[string]models.RunRecord
	mu        sync.RWMutex
	maxAge    time.Duration
}

// NewRunStore creates a run store rooted at dataDir. Runs older than
// maxAge are pruned on startup, manifest and blueprint file both.
func NewRunStore(dataDir string, maxAge time.Duration) (*RunStore, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, "runs"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store := &RunStore{
		dataDir:   dataDir,
		indexPath: filepath.Join(dataDir, "runs.json"),
		runs:      make(map[string]models.RunRecord),
		maxAge:    maxAge,
	}

	if err := store.load(); err != nil {
		return nil, fmt.Errorf("failed to load run index: %w", err)
	}

	store.cleanup()

	return store, nil
}

// SaveRun archives a completed run: the blueprint goes into its own
// file, the manifest entry into the index. The generated run ID is
// returned inside the record.
func (rs *RunStore) SaveRun(topic string, maxIdeators int, startedAt time.Time, duration time.Duration, structure *models.FinalVideoStructure) (models.RunRecord, error) {
	record := models.RunRecord{
		RunID:           uuid.NewString(),
		Topic:           topic,
		MaxIdeators:     maxIdeators,
		StartedAt:       startedAt,
		Duration:        duration,
		SegmentCount:    len(structure.Segments),
		ConceptFallback: structure.ConceptFallbacks(),
	}

	if err := rs.writeBlueprint(record.RunID, structure); err != nil {
		return models.RunRecord{}, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.runs[record.RunID] = record
	if err := rs.save(); err != nil {
		return models.RunRecord{}, err
	}
	return record, nil
}

// GetRun looks up a run manifest by ID.
func (rs *RunStore) GetRun(runID string) (models.RunRecord, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	record, ok := rs.runs[runID]
	return record, ok
}

// LoadStructure reads a run's archived blueprint back from disk.
func (rs *RunStore) LoadStructure(runID string) (*models.FinalVideoStructure, error) {
	file, err := os.Open(rs.blueprintPath(runID))
	if err != nil {
		return nil, fmt.Errorf("failed to open blueprint for run %s: %w", runID, err)
	}
	defer file.Close()

	var structure models.FinalVideoStructure
	if err := json.NewDecoder(file).Decode(&structure); err != nil {
		return nil, fmt.Errorf("failed to decode blueprint for run %s: %w", runID, err)
	}
	return &structure, nil
}

// ListRuns returns all run manifests, newest first.
func (rs *RunStore) ListRuns() []models.RunRecord {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	records := make([]models.RunRecord, 0, len(rs.runs))
	for _, record := range rs.runs {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	return records
}

// RunCount returns the number of archived runs.
func (rs *RunStore) RunCount() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.runs)
}

func (rs *RunStore) blueprintPath(runID string) string {
	return filepath.Join(rs.dataDir, "runs", runID+".json")
}

func (rs *RunStore) writeBlueprint(runID string, structure *models.FinalVideoStructure) error {
	file, err := os.Create(rs.blueprintPath(runID))
	if err != nil {
		return fmt.Errorf("failed to create blueprint file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(structure); err != nil {
		return fmt.Errorf("failed to write blueprint: %w", err)
	}
	return nil
}

// cleanup removes runs older than maxAge from the index and deletes
// their blueprint files.
func (rs *RunStore) cleanup() {
	cutoff := time.Now().Add(-rs.maxAge)

	for runID, record := range rs.runs {
		if record.StartedAt.Before(cutoff) {
			delete(rs.runs, runID)
			os.Remove(rs.blueprintPath(runID))
		}
	}
}

// load reads the run index from the JSON file.
func (rs *RunStore) load() error {
	file, err := os.Open(rs.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No index yet, start empty.
			return nil
		}
		return fmt.Errorf("failed to open run index: %w", err)
	}
	defer file.Close()

	var records []models.RunRecord
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return fmt.Errorf("failed to decode run index: %w", err)
	}

	for _, record := range records {
		rs.runs[record.RunID] = record
	}

	return nil
}

// save writes the run index to the JSON file.
func (rs *RunStore) save() error {
	records := make([]models.RunRecord, 0, len(rs.runs))
	for _, record := range rs.runs {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.Before(records[j].StartedAt)
	})

	file, err := os.Create(rs.indexPath)
	if err != nil {
		return fmt.Errorf("failed to create run index: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
