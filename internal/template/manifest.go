package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ManifestFile is the template's package manifest.
const ManifestFile = "package.json"

// Manifest is the subset of package.json the scaffolder reads.
type Manifest struct {
	Name    string            `json:"name"`
	Scripts map[string]string `json:"scripts"`
}

// Load reads dir/package.json, validates it and decodes it.
func Load(fs afero.Fs, dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading template manifest: %w", err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		msgs := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			msgs[i] = issue.String()
		}
		return nil, fmt.Errorf("template manifest %s is invalid: %s", path, strings.Join(msgs, "; "))
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &m, nil
}

// MissingScripts returns the entries of scripts that the manifest does not define.
func (m *Manifest) MissingScripts(scripts []string) []string {
	var missing []string
	for _, s := range scripts {
		if _, ok := m.Scripts[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

// SetName rewrites the "name" field of dir/package.json, keeping the order
// of the other top-level fields.
func SetName(fs afero.Fs, dir, name string) error {
	path := filepath.Join(dir, ManifestFile)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	out, err := replaceTopLevel(data, "name", name)
	if err != nil {
		return fmt.Errorf("rewriting %s: %w", path, err)
	}

	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := afero.WriteFile(fs, path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

type field struct {
	key   string
	value json.RawMessage
}

// replaceTopLevel sets key to value in a JSON object, appending it when
// absent, and re-indents the result with two spaces.
func replaceTopLevel(data []byte, key string, value any) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var fields []field
	replaced := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		k, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if k == key {
			raw = encoded
			replaced = true
		}
		fields = append(fields, field{key: k, value: raw})
	}
	if !replaced {
		fields = append(fields, field{key: key, value: encoded})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(f.value)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
