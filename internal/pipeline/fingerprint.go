package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

// Fingerprint identifies one pipeline input: the exact dataset bytes plus
// the active threshold set and reporting year. Any change to either
// produces a new fingerprint, which is what invalidates cached snapshots.
func Fingerprint(raw []byte, t model.Thresholds, year int) string {
	h := sha256.New()
	h.Write(raw)
	fmt.Fprintf(h, "|under=%v|near=%v|over=%v|severe=%v|review=%v|year=%d",
		t.Under, t.Near, t.Over, t.Severe, t.Review, year)
	return hex.EncodeToString(h.Sum(nil))
}
