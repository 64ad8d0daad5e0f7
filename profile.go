package reflow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// ProfileID is a stable fingerprint of an engine configuration, suitable as
// an external cache key for paginated results. It is derived only from
// configuration content, never from document identity, collaborator
// identity, or memory addresses, so value-equal configurations always
// produce equal ids across processes and runs.
type ProfileID string

// profileVersion is bumped whenever the canonical serialization or the
// layout semantics behind it change, invalidating external caches.
const profileVersion = "reflow/1"

// ProfileID returns the fingerprint of the engine's bound configuration.
func (e *Engine) ProfileID() ProfileID {
	return computeProfileID(e.cfg)
}

// computeProfileID serializes the configuration's semantic fields in a fixed
// canonical order and hashes the result.
func computeProfileID(cfg Config) ProfileID {
	canonical := fmt.Sprintf("%s|w=%s|h=%s|progress=%t|footer=%t",
		profileVersion,
		strconv.FormatFloat(cfg.Width, 'g', -1, 64),
		strconv.FormatFloat(cfg.Height, 'g', -1, 64),
		cfg.ShowProgress,
		cfg.ShowFooter,
	)
	sum := sha256.Sum256([]byte(canonical))
	return ProfileID(hex.EncodeToString(sum[:]))
}
