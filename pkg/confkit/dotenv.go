package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads .env files once per process.
//
// ENV_FILE names a single file to load. Otherwise every .env from the working
// directory up to the project root is loaded, nearest first, so nested files
// take precedence. Variables already in the environment win unless
// DOTENV_OVERLOAD=1. NO_DOTENV=1 disables loading.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}
	files := dotenvFiles()
	if len(files) == 0 {
		return
	}
	if os.Getenv("DOTENV_OVERLOAD") == "1" {
		// Overload applies in order; reverse so the nearest file is applied last.
		for i := len(files) - 1; i >= 0; i-- {
			_ = godotenv.Overload(files[i])
		}
		return
	}
	_ = godotenv.Load(files...)
}

func dotenvFiles() []string {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return []string{envFile}
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	var files []string
	findUp(wd, func(dir string) bool {
		if p := filepath.Join(dir, ".env"); exists(p) {
			files = append(files, p)
		}
		return isProjectRoot(dir)
	})
	return files
}
