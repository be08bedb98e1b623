package segment

import (
	"fmt"
	"strconv"
	"strings"
)

// NameWidth is the zero-padded width of a segment's generation number in
// its filename.
const NameWidth = 9

// Ext is the fixed extension every segment file carries.
const Ext = ".storage"

// FileName formats the on-disk filename for generation gen:
// NNNNNNNNN.storage (spec §3).
func FileName(gen uint32) string {
	return fmt.Sprintf("%0*d%s", NameWidth, gen, Ext)
}

// ParseName strictly parses a segment filename: exactly NameWidth decimal
// digits followed by Ext, with no extra characters. Anything else
// (including a valid number with the wrong width, or a different
// extension) is rejected — directories are expected to silently skip
// non-segment entries rather than fail on them (spec §4.5), so this
// never returns an error: every rejected name, malformed digits included,
// is reported as ok=false.
func ParseName(name string) (gen uint32, ok bool) {
	if !strings.HasSuffix(name, Ext) {
		return 0, false
	}

	digits := strings.TrimSuffix(name, Ext)
	if len(digits) != NameWidth {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
