package devstatic

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"

	"github.com/pkg/errors"
)

var (
	ErrRootMissing  = errors.New("root directory not found")
	ErrIndexMissing = errors.New("index file not found")
)

// Config is fixed at startup and passed by value.
type Config struct {
	Port    int
	RootDir string
	Index   string
}

func DefaultConfig() Config {
	return Config{
		Port:    3000,
		RootDir: "client",
		Index:   "index.html",
	}
}

// Addr listens on all interfaces.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) URL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}

func (c Config) IndexURL(port int) string {
	return c.URL(port) + "/" + c.Index
}

// CheckError carries the operator-facing lines printed before exiting.
type CheckError struct {
	err   error
	Lines []string
}

func (e *CheckError) Error() string { return e.err.Error() }
func (e *CheckError) Unwrap() error { return e.err }

// Check verifies that the root directory and its index exist. It never
// touches the network.
func Check(cfg Config) error {
	st, err := os.Stat(cfg.RootDir)
	if err != nil || !st.IsDir() {
		slog.Error("root directory check failed", "root", cfg.RootDir, "error", err)
		return &CheckError{
			err: errors.Wrapf(ErrRootMissing, "%s", cfg.RootDir),
			Lines: []string{
				fmt.Sprintf("Error: %s directory not found!", cfg.RootDir),
				fmt.Sprintf("Please make sure the %s folder exists with %s", cfg.RootDir, cfg.Index),
			},
		}
	}
	fsys := os.DirFS(cfg.RootDir).(fs.StatFS)
	ist, err := fsys.Stat(cfg.Index)
	if err != nil || ist.IsDir() {
		slog.Error("index check failed", "root", cfg.RootDir, "index", cfg.Index, "error", err)
		return &CheckError{
			err: errors.Wrapf(ErrIndexMissing, "%s", path.Join(cfg.RootDir, cfg.Index)),
			Lines: []string{
				fmt.Sprintf("Error: %s not found in %s directory!", cfg.Index, cfg.RootDir),
			},
		}
	}
	slog.Debug("startup checks passed", "root", cfg.RootDir, "index", cfg.Index)
	return nil
}
