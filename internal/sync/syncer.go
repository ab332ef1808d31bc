// Package sync implements the data-directory git syncer, extending
// _examples/xvierd-flow-cli's read-only internal/adapters/git detector
// with init/commit/push support (SPEC_FULL.md §4.8).
package sync

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/mootimer/daemon/internal/domain"
)

const remoteName = "origin"

// Syncer wraps the data directory as a git working tree.
type Syncer struct {
	dataDir string
}

func NewSyncer(dataDir string) *Syncer {
	return &Syncer{dataDir: dataDir}
}

// IsInitialized reports whether the data directory already has a .git
// directory.
func (s *Syncer) IsInitialized() bool {
	_, err := os.Stat(s.dataDir + "/.git")
	return err == nil
}

// Init creates a new git repository rooted at the data directory. It is a
// no-op if one already exists.
func (s *Syncer) Init() error {
	if s.IsInitialized() {
		return nil
	}
	if _, err := git.PlainInit(s.dataDir, false); err != nil {
		return domain.Storage("failed to init sync repository", err)
	}
	return nil
}

func (s *Syncer) open() (*git.Repository, error) {
	repo, err := git.PlainOpen(s.dataDir)
	if err != nil {
		return nil, domain.Storage("failed to open sync repository", err)
	}
	return repo, nil
}

// HasChanges reports whether the working tree has uncommitted changes.
func (s *Syncer) HasChanges() (bool, error) {
	repo, err := s.open()
	if err != nil {
		return false, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, domain.Storage("failed to get sync worktree", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, domain.Storage("failed to get sync status", err)
	}
	return !status.IsClean(), nil
}

// AutoCommit stages every change in the data directory and commits it with
// message, returning the new commit hash. It is a no-op (returning "", nil)
// when there is nothing to commit.
func (s *Syncer) AutoCommit(message string) (string, error) {
	repo, err := s.open()
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", domain.Storage("failed to get sync worktree", err)
	}

	if _, err := wt.Add("."); err != nil {
		return "", domain.Storage("failed to stage sync changes", err)
	}

	status, err := wt.Status()
	if err != nil {
		return "", domain.Storage("failed to get sync status", err)
	}
	if status.IsClean() {
		return "", nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "mootimer",
			Email: "mootimer@localhost",
			When:  time.Now().UTC(),
		},
	})
	if err != nil {
		return "", domain.Storage("failed to commit sync changes", err)
	}
	return hash.String(), nil
}

// Status summarizes the syncer's view of the data directory for
// sync.status (SPEC_FULL.md §4.8).
type Status struct {
	Initialized   bool   `json:"initialized"`
	HasChanges    bool   `json:"has_changes"`
	CurrentBranch string `json:"current_branch,omitempty"`
	LastCommit    string `json:"last_commit,omitempty"`
}

func (s *Syncer) Status() (Status, error) {
	if !s.IsInitialized() {
		return Status{Initialized: false}, nil
	}
	changed, err := s.HasChanges()
	if err != nil {
		return Status{}, err
	}

	repo, err := s.open()
	if err != nil {
		return Status{}, err
	}

	branch := ""
	lastCommit := ""
	if head, err := repo.Head(); err == nil {
		branch = head.Name().Short()
		if commit, err := repo.CommitObject(head.Hash()); err == nil {
			lastCommit = commit.Message
		}
	}

	return Status{Initialized: true, HasChanges: changed, CurrentBranch: branch, LastCommit: lastCommit}, nil
}

// Sync ensures the origin remote matches cfg.RemoteURL, attempts a pull,
// and if cfg.AutoPush pushes local commits. Auto-commit is handled
// separately by the timer.stop/drain glue (SPEC_FULL.md §4.6/§4.7), not by
// Sync itself. Pull failures are logged as warnings and otherwise ignored
// — the common case is a fresh repository with nothing to pull yet.
func (s *Syncer) Sync(cfg domain.SyncConfig) (Status, error) {
	if !s.IsInitialized() {
		if err := s.Init(); err != nil {
			return Status{}, err
		}
	}

	if cfg.RemoteURL != nil {
		if err := s.ensureRemote(*cfg.RemoteURL); err != nil {
			return Status{}, err
		}

		if err := s.pull(); err != nil {
			slog.Warn("sync: pull failed, continuing", "error", err)
		}

		if cfg.AutoPush {
			if err := s.push(); err != nil {
				return Status{}, err
			}
		}
	} else if cfg.AutoPush {
		return Status{}, domain.Validation("auto_push requires a remote_url")
	}

	return s.Status()
}

// ensureRemote creates the origin remote if absent, or updates its URL if
// it has drifted from url.
func (s *Syncer) ensureRemote(url string) error {
	repo, err := s.open()
	if err != nil {
		return err
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		if _, createErr := repo.CreateRemote(&config.RemoteConfig{
			Name: remoteName,
			URLs: []string{url},
		}); createErr != nil {
			return domain.Storage("failed to configure sync remote", createErr)
		}
		return nil
	}

	urls := remote.Config().URLs
	if len(urls) == 1 && urls[0] == url {
		return nil
	}
	if err := repo.DeleteRemote(remoteName); err != nil {
		return domain.Storage("failed to update sync remote", err)
	}
	if _, err := repo.CreateRemote(&config.RemoteConfig{Name: remoteName, URLs: []string{url}}); err != nil {
		return domain.Storage("failed to update sync remote", err)
	}
	return nil
}

func (s *Syncer) pull() error {
	repo, err := s.open()
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return domain.Storage("failed to get sync worktree", err)
	}

	err = wt.Pull(&git.PullOptions{RemoteName: remoteName})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return domain.Storage("failed to pull sync changes", err)
	}
	return nil
}

func (s *Syncer) push() error {
	repo, err := s.open()
	if err != nil {
		return err
	}

	err = repo.Push(&git.PushOptions{RemoteName: remoteName})
	if err != nil {
		if err == git.NoErrAlreadyUpToDate {
			return nil
		}
		return domain.Storage("failed to push sync changes", err)
	}
	return nil
}
