// In file: internal/version/version.go

// Package version centralizes the versioning for the gateway's logical
// components.
//
// By including these version strings in reply-cache keys, old cached replies
// are automatically invalidated whenever the underlying logic changes. For
// example, fixing a bug in the response normalizer and bumping Normalizer
// from "v1.0" to "v1.1" means no stale pre-fix reply will ever be served.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the logical parts of the
// gateway whose behavior shapes cached replies. Manually increment a version
// here before deploying a change to that component.
var ComponentVersions = struct {
	// Tools covers the execution adapter and the feedback synthesizer.
	Tools string
	// Normalizer covers the response normalizer and output post-processor.
	Normalizer string
	// PromptLogic covers the reasoning-loop prompt template.
	PromptLogic string
}{
	Tools:       "v1.0",
	Normalizer:  "v1.0",
	PromptLogic: "v1.0",
}

// GenerateVersionedCacheKey creates a consistent, version-aware key for
// caching agent replies. It combines a prefix, a hash of the user's message,
// and the current component versions, so a change to either the message or
// the logic yields a fresh key.
//
// Example output: "replycache:a1b2c3d4...:tv1.0_nv1.0_pv1.0"
func GenerateVersionedCacheKey(prefix, message string) string {
	hasher := sha256.New()
	hasher.Write([]byte(message))
	messageHash := hex.EncodeToString(hasher.Sum(nil))

	versionString := fmt.Sprintf("tv%s_nv%s_pv%s",
		ComponentVersions.Tools,
		ComponentVersions.Normalizer,
		ComponentVersions.PromptLogic,
	)

	return fmt.Sprintf("%s:%s:%s", prefix, messageHash, versionString)
}
