// Package version orchestrates the document version lifecycle: creating
// Major, Minor (auto-save), and AI-suggestion versions, resolving
// suggestions through their accept/reject/partial-accept state machine,
// comparing versions, and applying retention cleanup.
//
// Version numbering and persistence live behind the store.Store interface;
// the manager never computes version numbers itself. Diffing and rendering
// are pure, so a single Manager is safe for concurrent use - the store is
// the only shared mutable resource.
package version

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/render"
	"github.com/redlinehq/redline/internal/store"
)

// Config carries the manager's retention windows and diff defaults.
type Config struct {
	// MinorRetention is how long auto-save versions are kept. Default 24h.
	MinorRetention time.Duration
	// RejectedRetention is how long rejected suggestions are kept. Default 7 days.
	RejectedRetention time.Duration
	// DiffAlgorithm is used for suggestion diffs and version comparison.
	// Default character level.
	DiffAlgorithm diff.Algorithm
	// DiffOptions applies to every comparison the manager performs.
	DiffOptions diff.Options
}

const (
	defaultMinorRetention    = 24 * time.Hour
	defaultRejectedRetention = 7 * 24 * time.Hour
)

// Manager implements the version lifecycle over a Store.
type Manager struct {
	store  store.Store
	engine *diff.Engine
	cfg    Config
	log    zerolog.Logger
}

// New returns a Manager with defaults applied to the zero parts of cfg.
func New(s store.Store, cfg Config) *Manager {
	if cfg.MinorRetention <= 0 {
		cfg.MinorRetention = defaultMinorRetention
	}
	if cfg.RejectedRetention <= 0 {
		cfg.RejectedRetention = defaultRejectedRetention
	}
	if cfg.DiffAlgorithm == "" {
		cfg.DiffAlgorithm = diff.Character
	}
	return &Manager{
		store:  s,
		engine: diff.NewEngine(),
		cfg:    cfg,
		log:    zerolog.Nop(),
	}
}

// WithLogger sets the manager's logger.
func (m *Manager) WithLogger(l zerolog.Logger) *Manager {
	m.log = l
	return m
}

// CreateVersion creates a Major version and then prunes expired auto-saves
// for the document. Cleanup failure is logged, not surfaced - the save
// already succeeded.
func (m *Manager) CreateVersion(ctx context.Context, documentID, content string, owner store.Owner, changeDescription string) (*store.Version, error) {
	v, err := m.create(ctx, store.CreateInput{
		DocumentID:        documentID,
		Content:           content,
		Type:              store.TypeMajor,
		Owner:             owner,
		ChangeDescription: changeDescription,
	})
	if err != nil {
		return nil, err
	}

	if _, err := m.store.CleanupMinor(ctx, documentID, m.cfg.MinorRetention); err != nil {
		m.log.Warn().Err(err).Str("document_id", documentID).Msg("auto-save cleanup failed")
	}
	return v, nil
}

// CreateAutoSave creates a Minor (auto-save) version.
func (m *Manager) CreateAutoSave(ctx context.Context, documentID, content string, owner store.Owner) (*store.Version, error) {
	return m.create(ctx, store.CreateInput{
		DocumentID: documentID,
		Content:    content,
		Type:       store.TypeMinor,
		Owner:      owner,
	})
}

// create fills in the previous-version link and persists.
func (m *Manager) create(ctx context.Context, in store.CreateInput) (*store.Version, error) {
	if in.PreviousID == "" {
		latest, err := m.store.LatestVersion(ctx, in.DocumentID, "")
		switch {
		case err == nil:
			in.PreviousID = latest.ID
		case !errors.Is(err, store.ErrNotFound):
			return nil, wrap("create version", err)
		}
	}
	v, err := m.store.CreateVersion(ctx, in)
	if err != nil {
		return nil, wrap("create version", err)
	}
	return v, nil
}

// GetVersion retrieves a version, enforcing the ownership rule.
func (m *Manager) GetVersion(ctx context.Context, id string, caller store.Owner) (*store.Version, error) {
	v, err := m.store.Version(ctx, id)
	if err != nil {
		return nil, wrap("get version", err)
	}
	if err := checkAccess(v, caller); err != nil {
		return nil, err
	}
	return v, nil
}

// GetLatestVersion retrieves a document's most recent version of the given
// type, enforcing the ownership rule. An empty type matches any version.
func (m *Manager) GetLatestVersion(ctx context.Context, documentID string, t store.Type, caller store.Owner) (*store.Version, error) {
	v, err := m.store.LatestVersion(ctx, documentID, t)
	if err != nil {
		return nil, wrap("get latest version", err)
	}
	if err := checkAccess(v, caller); err != nil {
		return nil, err
	}
	return v, nil
}

// ListVersions returns a page of a document's versions, silently dropping
// versions the caller cannot see. The total reflects the store's count
// before access filtering.
func (m *Manager) ListVersions(ctx context.Context, documentID string, t store.Type, limit, skip int, caller store.Owner) ([]store.Version, int, error) {
	versions, total, err := m.store.ListVersions(ctx, documentID, t, limit, skip)
	if err != nil {
		return nil, 0, wrap("list versions", err)
	}
	visible := versions[:0]
	for i := range versions {
		if accessible(&versions[i], caller) {
			visible = append(visible, versions[i])
		}
	}
	return visible, total, nil
}

// CompareVersions diffs two versions' content and renders the result in the
// requested format. Access is verified on each version independently.
func (m *Manager) CompareVersions(ctx context.Context, baseID, comparisonID string, format render.Format, caller store.Owner) (*render.Formatted, error) {
	base, err := m.GetVersion(ctx, baseID, caller)
	if err != nil {
		return nil, err
	}
	comparison, err := m.GetVersion(ctx, comparisonID, caller)
	if err != nil {
		return nil, err
	}

	d, err := m.engine.Compare(base.Content, comparison.Content, m.cfg.DiffAlgorithm, m.cfg.DiffOptions)
	if err != nil {
		return nil, wrap("compare versions", err)
	}
	formatted, err := render.Render(d, format, render.Options{})
	if err != nil {
		return nil, err
	}
	return formatted, nil
}

// Cleanup applies both retention policies to a document, returning the
// number of auto-save and rejected-suggestion versions deleted.
func (m *Manager) Cleanup(ctx context.Context, documentID string) (minor, rejected int64, err error) {
	minor, err = m.store.CleanupMinor(ctx, documentID, m.cfg.MinorRetention)
	if err != nil {
		return 0, 0, wrap("cleanup auto-saves", err)
	}
	rejected, err = m.store.CleanupRejectedSuggestions(ctx, documentID, m.cfg.RejectedRetention)
	if err != nil {
		return minor, 0, wrap("cleanup rejected suggestions", err)
	}
	return minor, rejected, nil
}

// TransferOwnership claims a document's session-owned versions for a user,
// typically after an anonymous session logs in.
func (m *Manager) TransferOwnership(ctx context.Context, documentID, sessionID, userID string) (int64, error) {
	n, err := m.store.TransferOwnership(ctx, documentID, sessionID, userID)
	if err != nil {
		return 0, wrap("transfer ownership", err)
	}
	return n, nil
}
