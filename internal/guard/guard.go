// Package guard protects the developer's unstaged work while commands run.
//
// The protocol has three steps:
//  1. StashSave records the index tree, then stashes index and working tree
//     with --keep-index so commands only see staged content.
//  2. FoldFixes (success only) captures what commands changed in the index,
//     as a patch limited to the files of executed tasks.
//  3. StashPop resets to HEAD, pops the stash with its index, and re-applies
//     the captured patch to the index and then to the working tree.
//
// When StashPop conflicts, the stash entry is kept and ErrRestoreConflict is
// returned; nothing is dropped that the developer cannot recover.
package guard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rodrigobdz/lint-staged/internal/constants"
	"github.com/rodrigobdz/lint-staged/internal/ctxutil"
	lserrors "github.com/rodrigobdz/lint-staged/internal/errors"
)

// VCS is the set of git primitives the guard composes.
// It is satisfied by *git.CLIRunner.
type VCS interface {
	HasUnstagedChanges(ctx context.Context) (bool, error)
	WriteTree(ctx context.Context) (string, error)
	StashPush(ctx context.Context, message string) (string, error)
	StashPop(ctx context.Context, hash string) error
	StashExists(ctx context.Context, hash string) (bool, error)
	ResetHard(ctx context.Context) error
	DiffTrees(ctx context.Context, from, to string, paths []string) (string, error)
	ApplyPatch(ctx context.Context, patch string, cached bool) error
}

// Stash is a handle to the stash entry created by StashSave.
// The zero value means nothing was stashed.
type Stash struct {
	// Ref is the stash@{n} selector at creation time. Commands may shift it;
	// Hash identifies the entry.
	Ref string `json:"ref,omitempty"`
	// Hash is the stash commit.
	Hash string `json:"hash,omitempty"`
	// IndexTree is the tree of the index before any command ran.
	IndexTree string `json:"index_tree,omitempty"`
	// Message is the stash entry's message.
	Message string `json:"message,omitempty"`
}

// IsZero reports whether the handle refers to no stash entry.
func (s Stash) IsZero() bool {
	return s.Hash == ""
}

// FixPatch holds the index changes commands made, limited to Files.
type FixPatch struct {
	Patch string   `json:"-"`
	Files []string `json:"files,omitempty"`
}

// Empty reports whether there is nothing to fold.
func (p FixPatch) Empty() bool {
	return p.Patch == ""
}

// Guard implements the stash, fold and restore protocol over a VCS.
type Guard struct {
	vcs     VCS
	message string
}

// Option configures a Guard.
type Option func(*Guard)

// WithStashMessage overrides the stash entry message.
func WithStashMessage(msg string) Option {
	return func(g *Guard) {
		if msg != "" {
			g.message = msg
		}
	}
}

// New creates a Guard.
func New(vcs VCS, opts ...Option) *Guard {
	g := &Guard{vcs: vcs, message: constants.StashMessage}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HasUnstagedChanges reports whether tracked files differ from the index.
func (g *Guard) HasUnstagedChanges(ctx context.Context) (bool, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}
	dirty, err := g.vcs.HasUnstagedChanges(ctx)
	if err != nil {
		return false, lserrors.Wrap(err, "failed to detect unstaged changes")
	}
	return dirty, nil
}

// StashSave stashes unstaged changes while keeping the index checked out.
// On error nothing was stashed and the tree is as found. A zero Stash with
// a nil error means git found nothing to stash.
func (g *Guard) StashSave(ctx context.Context) (Stash, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return Stash{}, err
	}
	log := zerolog.Ctx(ctx)

	indexTree, err := g.vcs.WriteTree(ctx)
	if err != nil {
		return Stash{}, fmt.Errorf("%w: %w", lserrors.ErrStashFailed, err)
	}

	hash, err := g.vcs.StashPush(ctx, g.message)
	if err != nil {
		return Stash{}, fmt.Errorf("%w: %w", lserrors.ErrStashFailed, err)
	}
	if hash == "" {
		log.Debug().Msg("nothing to stash")
		return Stash{}, nil
	}

	stash := Stash{Ref: "stash@{0}", Hash: hash, IndexTree: indexTree, Message: g.message}
	log.Info().
		Str("stash", stash.Hash).
		Str("index_tree", stash.IndexTree).
		Msg("stashed unstaged changes")
	return stash, nil
}

// FoldFixes captures the index changes commands made since StashSave,
// limited to files. Files outside the list keep their original staged
// content even if a command touched them.
func (g *Guard) FoldFixes(ctx context.Context, stash Stash, files []string) (FixPatch, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return FixPatch{}, err
	}
	if stash.IsZero() || len(files) == 0 {
		return FixPatch{}, nil
	}

	fixedTree, err := g.vcs.WriteTree(ctx)
	if err != nil {
		return FixPatch{}, fmt.Errorf("%w: %w", lserrors.ErrFoldFailed, err)
	}

	patch, err := g.vcs.DiffTrees(ctx, stash.IndexTree, fixedTree, files)
	if err != nil {
		return FixPatch{}, fmt.Errorf("%w: %w", lserrors.ErrFoldFailed, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("fixed_tree", fixedTree).
		Int("patch_bytes", len(patch)).
		Msg("captured staged fixes")
	return FixPatch{Patch: patch, Files: files}, nil
}

// StashPop restores the stashed state and re-applies fixes.
//
// Returns ErrRestoreConflict when the stash cannot be restored; the entry is
// kept. Returns ErrFoldFailed when the stash was restored but the fixes did
// not apply; the index then still holds the original staged content or the
// working tree lacks the fixes.
func (g *Guard) StashPop(ctx context.Context, stash Stash, fixes FixPatch) error {
	if stash.IsZero() {
		return nil
	}
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	log := zerolog.Ctx(ctx)

	if err := g.vcs.ResetHard(ctx); err != nil {
		return fmt.Errorf("%w: %w", lserrors.ErrRestoreConflict, err)
	}

	if err := g.vcs.StashPop(ctx, stash.Hash); err != nil {
		if exists, existsErr := g.vcs.StashExists(ctx, stash.Hash); existsErr == nil && !exists {
			log.Error().Err(err).Str("stash", stash.Hash).Msg("stash entry missing after failed restore")
		}
		return fmt.Errorf("%w: %w", lserrors.ErrRestoreConflict, err)
	}
	log.Info().Str("stash", stash.Hash).Msg("restored unstaged changes")

	if fixes.Empty() {
		return nil
	}

	if err := g.vcs.ApplyPatch(ctx, fixes.Patch, true); err != nil {
		return fmt.Errorf("%w: index: %w", lserrors.ErrFoldFailed, err)
	}
	if err := g.vcs.ApplyPatch(ctx, fixes.Patch, false); err != nil {
		return fmt.Errorf("%w: working tree: %w", lserrors.ErrFoldFailed, err)
	}

	log.Info().Strs("files", fixes.Files).Msg("folded staged fixes into restored changes")
	return nil
}
