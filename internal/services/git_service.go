package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// GitService finds Markdown documents in a git worktree.
type GitService struct {
	context context.Context
}

func (g *GitService) Startup(ctx context.Context) {
	g.context = ctx
}

func NewGitService() *GitService {
	return &GitService{}
}

// Init initializes a new git repo at given path
func (g *GitService) Init(path string) (*git.Repository, error) {
	repo, err := git.PlainInit(path, false)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Open opens the repository containing path, walking up to find .git.
func (g *GitService) Open(path string) (*git.Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("repository path cannot be empty")
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return repo, nil
}

// ChangedMarkdownFiles returns absolute paths of .md files under the worktree
// that are modified, added or untracked. Deleted files are skipped. The
// result is sorted.
func (g *GitService) ChangedMarkdownFiles(repoPath string) ([]string, error) {
	repo, err := g.Open(repoPath)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	root := wt.Filesystem.Root()
	var files []string
	for name, st := range status {
		if !strings.EqualFold(filepath.Ext(name), ".md") {
			continue
		}
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(name)))
	}
	sort.Strings(files)
	return files, nil
}
