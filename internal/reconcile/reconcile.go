// Package reconcile defines the contract between the path engine and a
// synchronization engine. The interfaces describe what a sync planner
// consumes; NameMapper is the concrete glue that moves names between
// the decoded cloud namespace and an escaped local volume.
package reconcile

import (
	"context"

	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
)

// ActionKind classifies a planned reconciliation step.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionUpload
	ActionDownload
	ActionDeleteLocal
	ActionDeleteRemote
	ActionConflict
)

// Action is one planned step for a single path.
type Action struct {
	Kind   ActionKind
	Path   fspath.RemotePath
	Local  *domain.FileInfo
	Remote *domain.FileInfo
}

// Planner turns two directory listings into an ordered action list.
// Orderings rely on path comparison: a folder sorts before everything
// it contains, so creation runs parents-first and deletion can walk
// the plan backwards.
type Planner interface {
	Plan(ctx context.Context, local, remote []domain.FileInfo) ([]Action, error)
}

// Reconciler executes a plan against a pair of endpoints.
type Reconciler interface {
	Reconcile(ctx context.Context, actions []Action) error
}

// NameMapper converts names between the decoded cloud namespace and an
// escaped local volume, using one filesystem policy per instance.
type NameMapper struct {
	fsType fspath.FilesystemType
}

// NewNameMapper builds a mapper for the given escape policy.
func NewNameMapper(t fspath.FilesystemType) *NameMapper {
	return &NameMapper{fsType: t}
}

// Filesystem returns the policy in effect.
func (m *NameMapper) Filesystem() fspath.FilesystemType {
	return m.fsType
}

// ToLocal escapes one remote component into a name safe to create on
// the target volume.
func (m *NameMapper) ToLocal(component string) fspath.LocalPath {
	return fspath.FromRelativeName(component, m.fsType)
}

// ToRemote decodes an on-disk name back into its remote component.
func (m *NameMapper) ToRemote(name string) string {
	return fspath.Unescape(name)
}

// LocalizePath maps a whole remote path onto a local root, escaping
// every component.
func (m *NameMapper) LocalizePath(root fspath.LocalPath, remote fspath.RemotePath) fspath.LocalPath {
	full := root
	index := 0
	for {
		component, ok := remote.NextPathComponent(&index)
		if !ok {
			return full
		}
		full.AppendWithSeparator(m.ToLocal(string(component)), true)
	}
}
