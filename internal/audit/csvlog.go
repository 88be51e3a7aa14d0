package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// Record is one accepted inventory change. The canonical store only keeps
// current state, so this log is the system of record for what changed when.
type Record struct {
	ProductID      int64
	Name           string
	PackageName    string
	Visible        bool
	TrackInventory bool
	StockQuantity  int
	Timestamp      time.Time
}

// Log receives one record per accepted inventory change.
type Log interface {
	Append(rec Record) error
}

// CSVLog appends records to a local CSV file, header written once on
// creation. Existing contents are never rewritten.
type CSVLog struct {
	mu   sync.Mutex
	path string
}

var header = []string{"id", "productName", "packageName", "visible", "track_inventory", "stock_inventory", "timestamp"}

func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

func (l *CSVLog) Append(rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("audit log dir: %w", err)
		}
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("audit log open: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("audit log stat: %w", err)
	}

	w := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("audit log header: %w", err)
		}
	}

	row := []string{
		strconv.FormatInt(rec.ProductID, 10),
		rec.Name,
		rec.PackageName,
		strconv.FormatBool(rec.Visible),
		strconv.FormatBool(rec.TrackInventory),
		strconv.Itoa(rec.StockQuantity),
		rec.Timestamp.UTC().Format(time.RFC3339),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("audit log write: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("audit log flush: %w", err)
	}
	return file.Sync()
}
