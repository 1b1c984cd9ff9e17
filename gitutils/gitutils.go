// Package gitutils is the version-control collaborator: it locates
// unresolved notebook conflicts in a git index and reads both staged
// sides of each one.
package gitutils

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/nbmend/nbmend/conflicts"
	"github.com/nbmend/nbmend/logging"
)

// ErrNoRepository reports that no git repository contains the given
// path.
var ErrNoRepository = errors.New("no git repository found")

// Repo locates the repository containing path, searching parent
// directories, and returns it with its worktree root.
func Repo(path string) (*git.Repository, string, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, "", fmt.Errorf("%w at %s", ErrNoRepository, path)
		}
		return nil, "", err
	}
	root := path
	if wt, err := r.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	logging.Infof("repo found at %s", root)
	return r, root, nil
}

// ConflictFiles lists the paths whose index entries could not be
// merged, with the contents and revision descriptors of both non-base
// staged sides. Entries that still carry a merged (stage 0) entry are
// skipped, as are conflicts missing one of the two sides.
func ConflictFiles(r *git.Repository, root string) ([]conflicts.ConflictFile, error) {
	idx, err := r.Storer.Index()
	if err != nil {
		return nil, err
	}
	staged := map[string]map[int]plumbing.Hash{}
	var order []string
	for _, e := range idx.Entries {
		st, ok := staged[e.Name]
		if !ok {
			st = map[int]plumbing.Hash{}
			staged[e.Name] = st
			order = append(order, e.Name)
		}
		st[int(e.Stage)] = e.Hash
	}

	var files []conflicts.ConflictFile
	for _, name := range order {
		st := staged[name]
		if _, merged := st[0]; merged {
			continue
		}
		first, okFirst := st[2]
		last, okLast := st[3]
		if !okFirst || !okLast {
			logging.Debugf("skipping %s: conflict is missing a staged side", name)
			continue
		}
		firstContents, err := blobContent(r, first)
		if err != nil {
			logging.Warnf("skipping %s: %v", name, err)
			continue
		}
		lastContents, err := blobContent(r, last)
		if err != nil {
			logging.Warnf("skipping %s: %v", name, err)
			continue
		}
		files = append(files, conflicts.ConflictFile{
			Filename:      filepath.Join(root, name),
			FirstLog:      commitDescriptor(r, name, first),
			LastLog:       commitDescriptor(r, name, last),
			FirstContents: firstContents,
			LastContents:  lastContents,
		})
	}
	return files, nil
}

func blobContent(r *git.Repository, h plumbing.Hash) ([]byte, error) {
	blob, err := object.GetBlob(r.Storer, h)
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", h, err)
	}
	rd, err := blob.Reader()
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	return io.ReadAll(rd)
}

// commitDescriptor finds the newest commit in which path holds the
// blob and renders a one-line log descriptor. When no commit holds the
// blob, because the content exists only in the index, a staged-object
// descriptor is used instead.
func commitDescriptor(r *git.Repository, path string, h plumbing.Hash) string {
	desc := ""
	iter, err := r.Log(&git.LogOptions{
		All:        true,
		PathFilter: func(p string) bool { return p == path },
	})
	if err == nil {
		defer iter.Close()
		iter.ForEach(func(c *object.Commit) error {
			f, err := c.File(path)
			if err != nil || f.Hash != h {
				return nil
			}
			desc = shortHash(c.Hash) + " " + subject(c.Message)
			return storer.ErrStop
		})
	}
	if desc == "" {
		desc = shortHash(h) + " (staged)"
	}
	if logging.Git() {
		logging.Tracef("descriptor for %s@%s: %s", path, h, desc)
	}
	return desc
}

func shortHash(h plumbing.Hash) string {
	return h.String()[:7]
}

func subject(message string) string {
	return strings.TrimSpace(strings.SplitN(message, "\n", 2)[0])
}
