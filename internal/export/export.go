// Package export writes run snapshots to disk. Every run yields exactly
// one new file, named with a sortable timestamp prefix; existing files are
// never overwritten and never pruned.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"leadscout-engine/internal/domain"
)

// Snapshot describes one written export file.
type Snapshot struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Format    string    `json:"format"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

type Writer struct {
	dir    string
	format string // json or csv

	// now is swappable for tests
	now func() time.Time
}

func NewWriter(dir, format string) *Writer {
	if format != "csv" {
		format = "json"
	}
	return &Writer{dir: dir, format: format, now: time.Now}
}

// Write serializes records into a fresh snapshot file. Name allocation and
// the write itself happen under a directory flock so two concurrent runs
// can't race onto the same name, and the content lands via temp file +
// rename so readers only ever see complete files.
func (w *Writer) Write(prefix string, records []domain.EnrichmentRecord) (Snapshot, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Snapshot{}, fmt.Errorf("export dir: %w", err)
	}

	lock := flock.New(filepath.Join(w.dir, ".export.lock"))
	if err := lock.Lock(); err != nil {
		return Snapshot{}, fmt.Errorf("export lock: %w", err)
	}
	defer lock.Unlock()

	created := w.now().UTC()
	name := w.allocateName(prefix, created)
	path := filepath.Join(w.dir, name)

	tmp, err := os.CreateTemp(w.dir, "."+name+".tmp")
	if err != nil {
		return Snapshot{}, fmt.Errorf("export temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	switch w.format {
	case "csv":
		err = writeCSV(tmp, records)
	default:
		err = writeJSON(tmp, records)
	}
	if err != nil {
		tmp.Close()
		return Snapshot{}, fmt.Errorf("export encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Snapshot{}, err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return Snapshot{}, fmt.Errorf("export rename: %w", err)
	}

	return Snapshot{
		Name:      name,
		Path:      path,
		Format:    w.format,
		Count:     len(records),
		CreatedAt: created,
	}, nil
}

// allocateName yields "<prefix>_<timestamp>.<ext>", with a numeric suffix
// when two writes land inside the same second.
func (w *Writer) allocateName(prefix string, created time.Time) string {
	ts := created.Format("20060102_150405")
	base := fmt.Sprintf("%s_%s", prefix, ts)
	name := base + "." + w.format
	for n := 2; fileExists(filepath.Join(w.dir, name)); n++ {
		name = base + "_" + strconv.Itoa(n) + "." + w.format
	}
	return name
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeJSON(f *os.File, records []domain.EnrichmentRecord) error {
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

var csvHeader = []string{
	"query", "company_name", "website", "email", "phone", "linkedin_url",
	"city", "country", "locations", "industry_segment", "industry_type",
	"rating", "review_count", "technology", "buying_triggers", "pain_points",
}

func writeCSV(f *os.File, records []domain.EnrichmentRecord) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Query,
			r.CompanyName,
			r.Website,
			deref(r.Email),
			deref(r.Phone),
			deref(r.LinkedInURL),
			deref(r.City),
			deref(r.Country),
			strings.Join(r.Locations, " | "),
			deref(r.IndustrySegment),
			deref(r.IndustryType),
			floatStr(r.Rating),
			intStr(r.ReviewCount),
			strings.Join(r.Insights.Technology, "; "),
			strings.Join(r.Insights.BuyingTriggers, "; "),
			strings.Join(r.Insights.PainPoints, "; "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatStr(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intStr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
