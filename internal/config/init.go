package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// historyFileName is the REPL history file kept in a stride directory.
const historyFileName = "history"

// ErrConfigExists is returned when initializing over an existing file
// without force.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// localOnly lists what a project .stride directory keeps out of version
// control. config.yaml is shared and stays tracked.
//
//nolint:gochecknoglobals // Fixed list.
var localOnly = []string{historyFileName, "*.log"}

// GitignoreContent returns the .gitignore written into a project .stride
// directory.
func GitignoreContent() string {
	return "# stride project-local data (auto-generated)\n" + strings.Join(localOnly, "\n") + "\n"
}

// InitResult reports what an init wrote.
type InitResult struct {
	ConfigPath string
	// GitignoreCreated is false when the project already had a .gitignore.
	GitignoreCreated bool
}

// InitGlobal writes the default configuration to the global config file.
func InitGlobal(force bool) (InitResult, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return InitResult{}, err
	}
	return initDefaults(filepath.Join(dir, configFileName), force)
}

// InitProject writes the default configuration to projectDir/config.yaml
// and adds a .gitignore covering the local history and logs. An existing
// .gitignore is left alone, even with force.
func InitProject(projectDir string, force bool) (InitResult, error) {
	res, err := initDefaults(filepath.Join(projectDir, configFileName), force)
	if err != nil {
		return res, err
	}

	res.GitignoreCreated, err = writeGitignore(projectDir)
	if err != nil {
		return res, err
	}
	return res, nil
}

func initDefaults(path string, force bool) (InitResult, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return InitResult{}, ErrConfigExists
		} else if !errors.Is(err, fs.ErrNotExist) {
			return InitResult{}, fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := Default()
	cfg.SetConfigPath(path)
	if err := cfg.Save(); err != nil {
		return InitResult{}, fmt.Errorf("failed to save configuration: %w", err)
	}
	return InitResult{ConfigPath: path}, nil
}

// writeGitignore creates dir/.gitignore exclusively, reporting false when
// one was already there.
func writeGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")

	//nolint:gosec // .gitignore is meant to be world-readable.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err = f.WriteString(GitignoreContent()); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
