package confkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv overrides project root discovery.
const RootEnv = "MLTRADING_ROOT"

const maxRootDepth = 8

// ProjectRoot returns $MLTRADING_ROOT when set, otherwise the nearest directory at or
// above the working directory that contains go.mod or etc/market.yaml.
func ProjectRoot() (string, error) {
	if root := os.Getenv(RootEnv); root != "" {
		return filepath.Abs(root)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	if dir, ok := findUp(wd, isProjectRoot); ok {
		return dir, nil
	}
	return wd, nil
}

// ProjectPath joins the project root with rel.
func ProjectPath(rel string) (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// MustProjectPath returns ProjectPath(rel) and panics on failure.
func MustProjectPath(rel string) string {
	p, err := ProjectPath(rel)
	if err != nil {
		panic(err)
	}
	return p
}

func isProjectRoot(dir string) bool {
	return exists(filepath.Join(dir, "go.mod")) || exists(filepath.Join(dir, "etc", "market.yaml"))
}

// findUp walks from start towards the filesystem root and returns the first dir matching.
func findUp(start string, match func(string) bool) (string, bool) {
	dir := start
	for i := 0; i < maxRootDepth; i++ {
		if match(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
