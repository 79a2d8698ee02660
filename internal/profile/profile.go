package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where dinedex stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// InstanceURL is the url of your dinedex instance.
	InstanceURL string

	// ImportMaxBytes caps the size of an uploaded CSV import payload.
	ImportMaxBytes int64 // DINEDEX_IMPORT_MAX_BYTES (default: 3000000)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

const defaultImportMaxBytes = 3_000_000

// FromEnv loads configuration from DINEDEX_* environment variables.
// Values already set on the profile (e.g. from flags) are only overridden
// when the corresponding variable is present.
func (p *Profile) FromEnv() {
	if v := os.Getenv("DINEDEX_MODE"); v != "" {
		p.Mode = v
	}
	if v := os.Getenv("DINEDEX_ADDR"); v != "" {
		p.Addr = v
	}
	if v := os.Getenv("DINEDEX_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			p.Port = port
		}
	}
	if v := os.Getenv("DINEDEX_DATA"); v != "" {
		p.Data = v
	}
	if v := os.Getenv("DINEDEX_DRIVER"); v != "" {
		p.Driver = v
	}
	if v := os.Getenv("DINEDEX_DSN"); v != "" {
		p.DSN = v
	}
	if v := os.Getenv("DINEDEX_INSTANCE_URL"); v != "" {
		p.InstanceURL = v
	}
	if v := os.Getenv("DINEDEX_IMPORT_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			p.ImportMaxBytes = n
		}
	}
	if p.ImportMaxBytes == 0 {
		p.ImportMaxBytes = defaultImportMaxBytes
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "dinedex")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/dinedex"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("dinedex_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	if p.ImportMaxBytes <= 0 {
		p.ImportMaxBytes = defaultImportMaxBytes
	}

	return nil
}
