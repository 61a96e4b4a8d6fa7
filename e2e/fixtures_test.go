//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RepoOption is a function that configures repository creation
type RepoOption func(*repoOptions)

type repoOptions struct {
	branch string
	files  map[string]string // filename -> contents
}

// WithBranch checks out the named branch instead of main
func WithBranch(branch string) RepoOption {
	return func(opts *repoOptions) {
		opts.branch = branch
	}
}

// WithFiles creates the repository with specific files and contents
func WithFiles(files map[string]string) RepoOption {
	return func(opts *repoOptions) {
		opts.files = files
	}
}

// CreateTestWorkspace creates a temporary directory for lists and repositories
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateListFile writes a candidate list into the workspace
func (tf *TUITestFramework) CreateListFile(name string, lines ...string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// CreateTestRepo creates a Git repository with one commit in the workspace
func (tf *TUITestFramework) CreateTestRepo(name string, options ...RepoOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	opts := &repoOptions{branch: "main"}
	for _, opt := range options {
		opt(opts)
	}

	repoPath := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		return "", err
	}

	if err := tf.runGitCommand(repoPath, "init"); err != nil {
		return "", err
	}
	if err := tf.runGitCommand(repoPath, "checkout", "-b", opts.branch); err != nil {
		return "", err
	}

	files := map[string]string{"README.md": fmt.Sprintf("# %s\n", name)}
	for filename, content := range opts.files {
		files[filename] = content
	}
	for filename, content := range files {
		if err := os.WriteFile(filepath.Join(repoPath, filename), []byte(content), 0644); err != nil {
			return "", err
		}
	}

	if err := tf.runGitCommand(repoPath, "add", "."); err != nil {
		return "", err
	}
	if err := tf.runGitCommand(repoPath, "commit", "-m", "Initial commit"); err != nil {
		return "", err
	}

	return repoPath, nil
}

func (tf *TUITestFramework) runGitCommand(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	// Set deterministic git environment
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Typeahead Test",
		"GIT_AUTHOR_EMAIL=test@typeahead.test",
		"GIT_COMMITTER_NAME=Typeahead Test",
		"GIT_COMMITTER_EMAIL=test@typeahead.test",
		"GIT_CONFIG_GLOBAL=/dev/null", // ignore user ~/.gitconfig
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %v failed: %v; out=%s", args, err, out)
	}
	return nil
}
