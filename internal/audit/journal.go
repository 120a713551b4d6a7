package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/jsonutil"
	"github.com/nexa-assets/nexa/pkg/model"
)

// JournalFileName is the journal's file name inside the data directory.
const JournalFileName = "audit.jsonl"

// Journal appends audit entries to a JSONL file with a hash chain. It keeps
// the history of assets after they are removed from the live collection.
type Journal struct {
	path string
	mu   sync.Mutex
}

// NewJournal creates a journal backed by path.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// Path returns the journal file location.
func (j *Journal) Path() string {
	return j.path
}

// Append adds entry for assetID to the journal.
func (j *Journal) Append(assetID string, entry model.AuditLogEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("lock journal: %w", err)
	}
	defer unlockFile(file)

	prevHash, err := lastRecordHash(file)
	if err != nil {
		return fmt.Errorf("get last record hash: %w", err)
	}

	record := &model.JournalRecord{
		Timestamp: time.Now().UTC(),
		AssetID:   assetID,
		Entry:     entry,
		PrevHash:  prevHash,
	}
	recordHash, err := computeRecordHash(record)
	if err != nil {
		return fmt.Errorf("compute record hash: %w", err)
	}
	record.RecordHash = recordHash

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal journal record: %w", err)
	}

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}
	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write journal record: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync journal: %w", err)
	}
	return nil
}

// Records reads every well-formed record in file order.
func (j *Journal) Records() ([]model.JournalRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	var records []model.JournalRecord
	scanner := newScanner(file)
	for scanner.Scan() {
		var r model.JournalRecord
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	return records, nil
}

// VerifyResult summarizes a chain walk.
type VerifyResult struct {
	Records   int    `json:"records"`
	Valid     bool   `json:"valid"`
	BrokenAt  int    `json:"broken_at,omitempty"` // 1-based line number
	Reason    string `json:"reason,omitempty"`
	LastHash  string `json:"last_hash,omitempty"`
	Malformed int    `json:"malformed,omitempty"`
}

// Verify walks the chain and reports the first broken link. A broken chain is
// reported both in the result and as ErrAuditChainBroken.
func (j *Journal) Verify() (*VerifyResult, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	res := &VerifyResult{Valid: true}
	file, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return res, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	var prev model.HashValue
	line := 0
	scanner := newScanner(file)
	for scanner.Scan() {
		line++
		var r model.JournalRecord
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			res.Malformed++
			return res.broken(line, "malformed record")
		}
		if r.PrevHash != prev {
			return res.broken(line, "prev_hash does not match previous record")
		}
		want, err := computeRecordHash(&r)
		if err != nil {
			return nil, err
		}
		if want != r.RecordHash {
			return res.broken(line, "record_hash mismatch")
		}
		prev = r.RecordHash
		res.Records++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	res.LastHash = string(prev)
	return res, nil
}

func (r *VerifyResult) broken(line int, reason string) (*VerifyResult, error) {
	r.Valid = false
	r.BrokenAt = line
	r.Reason = reason
	return r, errclass.ErrAuditChainBroken.WithMessagef("line %d: %s", line, reason)
}

// FlattenJournal turns journal records into the flattened view, newest first.
// Names and tags come from the snapshot in each entry.
func FlattenJournal(records []model.JournalRecord) []FlatEntry {
	out := make([]FlatEntry, 0, len(records))
	for _, r := range records {
		out = append(out, FlatEntry{
			AuditLogEntry: r.Entry,
			AssetID:       r.AssetID,
			AssetName:     r.Entry.AssetName,
			AssetTag:      r.Entry.AssetTag,
			at:            r.Entry.Time(),
		})
	}
	// file order is oldest first
	for i, k := 0, len(out)-1; i < k; i, k = i+1, k-1 {
		out[i], out[k] = out[k], out[i]
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].at.After(out[k].at)
	})
	return out
}

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	// signatures are not journaled, but details may be long
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return s
}

func lastRecordHash(file *os.File) (model.HashValue, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek to start: %w", err)
	}

	var lastHash model.HashValue
	scanner := newScanner(file)
	for scanner.Scan() {
		var record model.JournalRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			continue
		}
		lastHash = record.RecordHash
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan journal: %w", err)
	}
	return lastHash, nil
}

// computeRecordHash hashes the record with RecordHash cleared. Struct fields
// marshal in declaration order, so the encoding is stable.
func computeRecordHash(record *model.JournalRecord) (model.HashValue, error) {
	hashRecord := *record
	hashRecord.RecordHash = ""

	data, err := jsonutil.CanonicalMarshal(&hashRecord)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}

	hash := sha256.Sum256(data)
	return model.HashValue(hex.EncodeToString(hash[:])), nil
}
