package gate

import (
	"fmt"

	"go.uber.org/zap"
)

// versionKey deliberately carries no tour id: the original storage layout
// keeps one version stamp per client.
const versionKey = "tour:version"

func completedKey(tourID string) string {
	return fmt.Sprintf("tour:%s:completed", tourID)
}

// Gate owns the completion/version record for one tour. Bumping the
// definition's version string is the whole migration story: a record
// stamped with an older version re-triggers the tour.
type Gate struct {
	store  Store
	tourID string
	logger *zap.Logger
}

// New creates a gate for the given tour over the given store.
func New(store Store, tourID string, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{store: store, tourID: tourID, logger: logger}
}

// Completed reports whether the tour was completed (or skipped) before.
// A store failure reads as "not completed": an unavailable backend must
// never suppress the tour silently.
func (g *Gate) Completed() bool {
	v, ok, err := g.store.Get(completedKey(g.tourID))
	if err != nil {
		g.logger.Warn("failed to read tour completion, treating as not completed",
			zap.String("tour", g.tourID),
			zap.Error(err))
		return false
	}
	return ok && v == "true"
}

// StoredVersion returns the version stamped at the last completion.
func (g *Gate) StoredVersion() (string, bool) {
	v, ok, err := g.store.Get(versionKey)
	if err != nil {
		g.logger.Warn("failed to read tour version",
			zap.String("tour", g.tourID),
			zap.Error(err))
		return "", false
	}
	return v, ok
}

// MarkCompleted stamps the tour completed at the given version. Idempotent.
// A write failure is logged, not surfaced: the in-memory tour state has
// already transitioned, and the worst outcome is the tour reappearing next
// session.
func (g *Gate) MarkCompleted(version string) {
	err := g.store.SetBatch(map[string]string{
		completedKey(g.tourID): "true",
		versionKey:             version,
	})
	if err != nil {
		g.logger.Warn("failed to persist tour completion",
			zap.String("tour", g.tourID),
			zap.String("version", version),
			zap.Error(err))
	}
}

// Reset clears both fields. Support and testing tooling only.
func (g *Gate) Reset() error {
	if err := g.store.Delete(completedKey(g.tourID)); err != nil {
		return err
	}
	return g.store.Delete(versionKey)
}

// ShouldAutoStart reports whether the tour should run for the given
// current definition version: not yet completed, or completed against a
// different version.
func (g *Gate) ShouldAutoStart(currentVersion string) bool {
	if !g.Completed() {
		return true
	}
	stored, ok := g.StoredVersion()
	if !ok {
		// Completed but no stamp: treat as stale rather than suppressing.
		return true
	}
	return stored != currentVersion
}
