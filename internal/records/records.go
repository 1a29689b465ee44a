// Package records loads company records from a data directory or a JSON
// bundle file.
package records

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/mithrel/perktable/pkg/api"
)

const (
	codeDecodeFailed  = "RECORD_DECODE_FAILED"
	codeNotMapping    = "RECORD_NOT_MAPPING"
	codeDuplicateKey  = "RECORD_DUPLICATE_KEY"
	codeBundleInvalid = "RECORD_BUNDLE_INVALID"
)

// DescriptionField receives the body of a Markdown record.
const DescriptionField = "description"

var errNotMapping = errors.New("document is not a mapping")

// Extensions lists the file types LoadDir reads.
var Extensions = []string{".yaml", ".yml", ".json", ".md"}

func invalid(err error, msg, code string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, msg).WithTextCode(code)
}

// LoadDir reads every record file directly inside dir. Each record is keyed
// by its file name without extension. Hidden files, subdirectories and other
// extensions are skipped. The result is sorted by key, case-insensitively.
func LoadDir(ctx context.Context, dir string) ([]api.Keyed, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	seen := make(map[string]string, len(entries))
	out := make([]api.Keyed, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if !isRecordExt(ext) {
			continue
		}
		key := strings.TrimSuffix(name, filepath.Ext(name))
		if prev, dup := seen[key]; dup {
			return nil, invalid(fmt.Errorf("%s and %s share key %q", prev, name, key),
				"duplicate record key", codeDuplicateKey)
		}
		seen[key] = name

		path := filepath.Join(dir, name)
		rec, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, api.Keyed{Key: key, Record: rec})
	}
	Sort(out)
	return out, nil
}

// LoadFile decodes a single record file, choosing the decoder by extension.
func LoadFile(path string) (api.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec api.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		rec, err = DecodeYAML(b)
	case ".json":
		rec, err = DecodeJSON(b)
	case ".md":
		rec, err = DecodeMarkdown(b)
	default:
		err = fmt.Errorf("unsupported record file type %q", filepath.Ext(path))
	}
	if errors.Is(err, errNotMapping) {
		return nil, invalid(fmt.Errorf("%s: %w", path, err), "record is not a mapping", codeNotMapping)
	}
	if err != nil {
		return nil, invalid(fmt.Errorf("%s: %w", path, err), "decode record", codeDecodeFailed)
	}
	return rec, nil
}

func DecodeYAML(b []byte) (api.Record, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return asRecord(doc)
}

func DecodeJSON(b []byte) (api.Record, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return asRecord(doc)
}

// DecodeMarkdown reads the front matter of a Markdown record. A non-empty
// body becomes the description unless the front matter already sets one.
func DecodeMarkdown(b []byte) (api.Record, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(b), &meta)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, errNotMapping
	}
	rec := api.Record(meta)
	if desc := strings.TrimSpace(string(body)); desc != "" {
		if _, ok := rec[DescriptionField]; !ok {
			rec[DescriptionField] = desc
		}
	}
	return rec, nil
}

func asRecord(doc any) (api.Record, error) {
	switch m := doc.(type) {
	case map[string]any:
		return api.Record(m), nil
	case map[any]any:
		out := make(api.Record, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, nil
	default:
		return nil, errNotMapping
	}
}

// LoadBundle reads a JSON file holding either an object of key to record or
// an array of records that each carry their key in a "key" field.
func LoadBundle(ctx context.Context, path string) ([]api.Keyed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	first, err := peekFirstNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalid(fmt.Errorf("%s is empty", path), "invalid bundle", codeBundleInvalid)
		}
		return nil, err
	}
	dec := json.NewDecoder(br)

	var out []api.Keyed
	switch first {
	case '{':
		var byKey map[string]any
		if err := dec.Decode(&byKey); err != nil {
			return nil, invalid(fmt.Errorf("%s: %w", path, err), "invalid bundle", codeBundleInvalid)
		}
		for key, doc := range byKey {
			rec, err := asRecord(doc)
			if err != nil {
				return nil, invalid(fmt.Errorf("%s: record %q: %w", path, key, err), "record is not a mapping", codeNotMapping)
			}
			out = append(out, api.Keyed{Key: key, Record: rec})
		}
	case '[':
		var docs []any
		if err := dec.Decode(&docs); err != nil {
			return nil, invalid(fmt.Errorf("%s: %w", path, err), "invalid bundle", codeBundleInvalid)
		}
		seen := make(map[string]bool, len(docs))
		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rec, err := asRecord(doc)
			if err != nil {
				return nil, invalid(fmt.Errorf("%s: item %d: %w", path, i, err), "record is not a mapping", codeNotMapping)
			}
			key, _ := rec["key"].(string)
			if strings.TrimSpace(key) == "" {
				return nil, invalid(fmt.Errorf("%s: item %d has no key", path, i), "invalid bundle", codeBundleInvalid)
			}
			if seen[key] {
				return nil, invalid(fmt.Errorf("%s: key %q repeated", path, key), "duplicate record key", codeDuplicateKey)
			}
			seen[key] = true
			out = append(out, api.Keyed{Key: key, Record: rec})
		}
	default:
		return nil, invalid(fmt.Errorf("%s: expected a JSON object or array, got %q", path, first), "invalid bundle", codeBundleInvalid)
	}
	Sort(out)
	return out, nil
}

// Sort orders records by key, case-insensitively, ties broken by exact key.
func Sort(recs []api.Keyed) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := strings.ToLower(recs[i].Key), strings.ToLower(recs[j].Key)
		if a != b {
			return a < b
		}
		return recs[i].Key < recs[j].Key
	})
}

// Keys returns the record keys in order.
func Keys(recs []api.Keyed) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Key
	}
	return out
}

func isRecordExt(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func peekFirstNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		// put it back for the decoder
		if err := r.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
