package toolchain

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/alimzhanovlr/rsbackend/errors"
	"github.com/alimzhanovlr/rsbackend/logger"
	"github.com/go-git/go-billy/v5"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Identity is the author and committer of the initial commit.
type Identity struct {
	Name  string
	Email string
}

// Git creates repositories with go-git; no git binary is required.
type Git struct {
	author  Identity
	message string
	now     func() time.Time
	logger  *logger.Logger
}

// NewGit creates a Git adapter committing as author with message.
func NewGit(author Identity, message string, log *logger.Logger) *Git {
	if log == nil {
		log = logger.Nop()
	}
	return &Git{
		author:  author,
		message: message,
		now:     time.Now,
		logger:  log,
	}
}

// Init turns the directory behind fs into a repository holding one commit of
// every file not excluded by its .gitignore. A repository already present,
// such as the one `cargo new` creates, is reused.
func (g *Git) Init(ctx context.Context, fs billy.Filesystem) (plumbing.Hash, error) {
	if err := ctx.Err(); err != nil {
		return plumbing.ZeroHash, errors.ErrVCS.WithErr(err)
	}

	dot, err := fs.Chroot(git.GitDirName)
	if err != nil {
		return plumbing.ZeroHash, errors.ErrVCS.WithErr(err)
	}
	storage := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())

	repo, err := git.Init(storage, fs)
	if stderrors.Is(err, git.ErrRepositoryAlreadyExists) {
		g.logger.Debug("reusing existing repository")
		repo, err = git.Open(storage, fs)
	}
	if err != nil {
		return plumbing.ZeroHash, errors.ErrVCS.WithErr(err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, errors.ErrVCS.WithErr(err)
	}

	patterns, err := gitignore.ReadPatterns(fs, nil)
	if err != nil {
		return plumbing.ZeroHash, errors.ErrVCS.WithErr(err)
	}
	wt.Excludes = append(wt.Excludes, patterns...)

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return plumbing.ZeroHash, errors.ErrVCS.WithErr(err)
	}

	sig := &object.Signature{
		Name:  g.author.Name,
		Email: g.author.Email,
		When:  g.now(),
	}
	hash, err := wt.Commit(g.message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return plumbing.ZeroHash, errors.ErrVCS.WithErr(err)
	}

	g.logger.Debug("created initial commit",
		logger.String("hash", hash.String()),
		logger.String("author", g.author.Name),
	)
	return hash, nil
}
