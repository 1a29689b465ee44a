package editor

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RecordTemplate is the YAML skeleton written for a new company. Every field
// the table knows about is present; empty values render as empty cells.
const RecordTemplate = `# Lines starting with '#' are comments. Remove fields you do not need.
location: ""
career_page: ""
remote: false
office_picture: ""
strike_out: false
glassdoor:
  rating: ""
  link: ""
software_engineer:
  salary: ""
  link: ""
benefits:
  good_insurance: false
  pregnancy: false
  covers_dependents: false
  maternity_leaves: 4
  extras: []
`

// ComposeRecord returns the initial content for the record of key.
func ComposeRecord(key string) string {
	return "# Company: " + key + "\n" + RecordTemplate
}

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// SafeKey reports whether key can be used as a record file stem.
func SafeKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, ".") {
		return false
	}
	return !strings.ContainsAny(key, `/\`) && key == filepath.Base(key)
}

func writeFile0600(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, fs.FileMode(0o600))
}

// Create writes initial to path, refusing to replace an existing file, and
// opens the editor on it.
func Create(path string, initial []byte) (final []byte, err error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fs.ErrExist
	}
	if err := writeFile0600(path, initial); err != nil {
		return nil, err
	}
	final, _, err = Open(path)
	return final, err
}

// Open runs the editor on path and returns the final bytes and whether they
// changed.
func Open(path string) (final []byte, changed bool, err error) {
	initial, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	// Honor VISUAL/EDITOR including flags by running via a shell wrapper.
	ed := os.Getenv("VISUAL")
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	var cmd *exec.Cmd
	if strings.TrimSpace(ed) != "" {
		cmd = exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
	} else {
		prog, err := PreferredEditor()
		if err != nil {
			return nil, false, err
		}
		cmd = exec.Command(prog, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, false, err
	}
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return out, !bytes.Equal(out, initial), nil
}
