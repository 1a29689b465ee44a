package readme

import (
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

// Digest returns a BLAKE3 hash of a table section. Line endings and
// trailing whitespace are normalized first so an editor reflow of the
// README does not count as a change.
func Digest(section string) string {
	h := blake3.New()
	section = strings.ReplaceAll(section, "\r\n", "\n")
	for _, line := range strings.Split(strings.TrimSpace(section), "\n") {
		h.Write([]byte(strings.TrimRight(line, " \t")))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
