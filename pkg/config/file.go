package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// AppName names the configuration directory.
const AppName = "carousel"

// GetPath returns the configuration file path: $XDG_CONFIG_HOME/carousel,
// then ~/.config/carousel, then a directory under the temp dir.
func GetPath() string {
	const file = "config.yaml"

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, file)
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", AppName, file)
	}

	tmp := filepath.Join(os.TempDir(), AppName, file)
	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmp),
		slog.Any("err", err),
	)

	return tmp
}

// ReadFile reads a regular file.
func ReadFile(path string) ([]byte, error) {
	exists, err := fileExists(path)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: User-provided config path.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// WriteDefault writes the default configuration to path if no file exists.
// With force, an existing file is renamed to a timestamped backup first.
func WriteDefault(path string, force bool) error {
	exists, err := fileExists(path)
	if err != nil {
		return err
	}

	if exists && !force {
		slog.Debug("config already exists, skipping write", slog.String("path", path))

		return nil
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if exists {
		backup := fmt.Sprintf("%s.%d.old", path, time.Now().UnixNano())
		slog.Info("backing up existing config", slog.String("path", backup))

		err = os.Rename(path, backup)
		if err != nil {
			return fmt.Errorf("back up existing config: %w", err)
		}
	}

	slog.Info("write default config", slog.String("path", path))

	err = os.WriteFile(path, defaultConfigYAML, 0o600)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// fileExists reports whether path is a regular file. Other file types are
// errors.
func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat file: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("%s: path is a directory", path)
	case !info.Mode().IsRegular():
		return false, fmt.Errorf("%s: unknown file state", path)
	}

	return true, nil
}
