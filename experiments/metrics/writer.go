package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// EpisodeRecord is the flat, writable form of an episode result.
type EpisodeRecord struct {
	ID             string
	Lesson         string
	Input          string
	Final          string
	Solved         bool
	ParseFailed    bool
	Moves          int
	Duration       time.Duration
	Simulations    int64
	OracleCalls    int64
	OracleFailures int64
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subfolder for one run's output files.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteEpisodes writes one CSV of episode records under the given name.
func (w *Writer) WriteEpisodes(name string, records []EpisodeRecord) error {
	path := filepath.Join(w.baseDir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episodes file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"id", "lesson", "input", "final", "solved", "parseFailed",
		"moves", "duration", "simulations", "oracleCalls", "oracleFailures",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write episodes header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			record.Lesson,
			record.Input,
			record.Final,
			strconv.FormatBool(record.Solved),
			strconv.FormatBool(record.ParseFailed),
			strconv.Itoa(record.Moves),
			record.Duration.String(),
			strconv.FormatInt(record.Simulations, 10),
			strconv.FormatInt(record.OracleCalls, 10),
			strconv.FormatInt(record.OracleFailures, 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write episode record: %w", err)
		}
	}
	return writer.Error()
}
