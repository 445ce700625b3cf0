package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"ticketdesk/internal/grid"
	"ticketdesk/internal/model"
)

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
	Skipped int      `json:"skipped,omitempty"`
}

// fileName is "<id>.md", or "" for records without a numeric id.
func fileName(rec grid.Record) string {
	id := grid.NumberField("id")(rec)
	if id.IsAbsent() {
		return ""
	}
	return id.String() + ".md"
}

// WriteRecord writes one card to <toDir>/<collection>/<id>.md.
func WriteRecord(coll model.Collection, rec grid.Record, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	name := fileName(rec)
	if name == "" {
		return WriteResult{}, errors.New("record has no id")
	}
	md, err := RenderRecordMarkdown(coll, rec)
	if err != nil {
		return WriteResult{}, err
	}
	outDir := filepath.Join(filepath.Clean(toDir), string(coll))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, name)
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteCollection writes an index plus one card per record. Records without
// an id are listed in the index but get no card. It stops on the first error.
func WriteCollection(coll model.Collection, records []grid.Record, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	outDir := filepath.Join(filepath.Clean(toDir), string(coll))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(outDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderIndexMarkdown(coll, records)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	res := WriteResult{Written: []string{indexPath}}
	for _, rec := range records {
		if fileName(rec) == "" {
			res.Skipped++
			continue
		}
		one, err := WriteRecord(coll, rec, toDir, opt)
		if err != nil {
			return WriteResult{}, err
		}
		res.Written = append(res.Written, one.Written...)
	}
	return res, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
