package postgres

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"medstock/internal/domain/schema"
	"medstock/pkg/logger"
)

// Snapshotter dumps the known tables to a compressed archive so a
// field deployment can be backed up and moved without pg_dump. Each
// table becomes a run of JSON lines prefixed by a table header.
type Snapshotter struct {
	db Querier
}

func NewSnapshotter(db Querier) *Snapshotter {
	return &Snapshotter{db: db}
}

// snapshotLine is one line of the archive stream. Header lines carry a
// table name; data lines carry one row keyed by column.
type snapshotLine struct {
	Table string         `json:"table,omitempty"`
	Row   map[string]any `json:"row,omitempty"`
}

// WriteTo streams a snapshot of every present table to w.
func (s *Snapshotter) WriteTo(ctx context.Context, db schema.Database, w io.Writer) error {
	zout, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("open zstd stream: %w", err)
	}
	buf := bufio.NewWriter(zout)
	enc := json.NewEncoder(buf)

	for _, table := range knownTables {
		if !db.Table(table).Exists() {
			continue
		}
		if err := s.writeTable(ctx, enc, table); err != nil {
			return fmt.Errorf("snapshot %s: %w", table, err)
		}
	}

	if err := buf.Flush(); err != nil {
		return err
	}
	return zout.Close()
}

func (s *Snapshotter) writeTable(ctx context.Context, enc *json.Encoder, table string) error {
	if err := enc.Encode(snapshotLine{Table: table}); err != nil {
		return err
	}

	// Table names come from the fixed known-tables list, never from input.
	rows, err := s.db.Query(ctx, "SELECT * FROM "+table)
	if err != nil {
		return err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return err
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[string(fd.Name)] = values[i]
		}
		if err := enc.Encode(snapshotLine{Row: row}); err != nil {
			return err
		}
	}
	return rows.Err()
}

// SnapshotToFile writes a timestamped snapshot archive into dir and
// returns its path.
func (s *Snapshotter) SnapshotToFile(ctx context.Context, db schema.Database, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	name := fmt.Sprintf("medstock_%s.jsonl.zst", time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	if err := s.WriteTo(ctx, db, f); err != nil {
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	logger.Info(ctx, "snapshot written", "path", path)
	return path, nil
}
