package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrNoConfig       = errors.New("no config selected")
	ErrProfileMissing = errors.New("config does not exist")
	ErrProfileExists  = errors.New("config already exists")
)

const (
	DefaultLabel = "Default"
	profileExt   = ".yaml"
	appDir       = "mangasrc"
)

// ConfigRoot is %APPDATA%/mangasrc on Windows, else $XDG_CONFIG_HOME/mangasrc
// or ~/.config/mangasrc.
func ConfigRoot() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, appDir)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDir)
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0o755)
}

// profileFile maps a label to its file. Labels are plain names; anything
// that would escape the configs directory is rejected.
func profileFile(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return "", fmt.Errorf("invalid label %q", label)
	}
	return filepath.Join(ConfigsDir(), label+profileExt), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// existingProfile resolves label and checks the file is there.
func existingProfile(label string) (string, error) {
	path, err := profileFile(label)
	if err != nil {
		return "", err
	}
	if !exists(path) {
		return "", fmt.Errorf("%w: %q", ErrProfileMissing, label)
	}
	return path, nil
}

func setCurrent(label string) error {
	return os.WriteFile(CurrentLabelFile(), []byte(label), 0o644)
}

// ConfigPathByLabel returns the profile file for label, which must exist.
func ConfigPathByLabel(label string) (string, error) {
	return existingProfile(label)
}

func CurrentLabel() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(CurrentLabelFile())
	switch {
	case os.IsNotExist(err):
		return "", ErrNoConfig
	case err != nil:
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil || label == "" {
		return "", ErrNoConfig
	}
	return profileFile(label)
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

// ListConfigs returns every profile sorted by label.
func ListConfigs() ([]ConfigInfo, error) {
	if err := ensureDirs(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(ConfigsDir(), "*"+profileExt))
	if err != nil {
		return nil, err
	}

	active, _ := CurrentLabel()
	out := make([]ConfigInfo, 0, len(matches))
	for _, path := range matches {
		if fi, err := os.Stat(path); err != nil || fi.IsDir() {
			continue
		}
		label := strings.TrimSuffix(filepath.Base(path), profileExt)
		out = append(out, ConfigInfo{Label: label, Path: path, Active: label == active})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	if err := ensureDirs(); err != nil {
		return err
	}
	if _, err := existingProfile(label); err != nil {
		return err
	}
	return setCurrent(strings.TrimSpace(label))
}

// newProfile resolves a label that must not be taken yet.
func newProfile(label string) (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}
	path, err := profileFile(label)
	if err != nil {
		return "", err
	}
	if exists(path) {
		return "", fmt.Errorf("%w: %q", ErrProfileExists, label)
	}
	return path, nil
}

// AddConfig copies srcPath in as a new profile. The file must parse.
func AddConfig(label, srcPath string) error {
	dst, err := newProfile(label)
	if err != nil {
		return err
	}
	if _, err := loadYAML(srcPath); err != nil {
		return fmt.Errorf("read %s: %w", srcPath, err)
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, raw, 0o644)
}

func CreateEmptyConfig(label string) (string, error) {
	path, err := newProfile(label)
	if err != nil {
		return "", err
	}
	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}
	return path, nil
}

// RenameConfig moves a profile and keeps it active if it was.
func RenameConfig(oldLabel, newLabel string) error {
	oldPath, err := existingProfile(oldLabel)
	if err != nil {
		return err
	}
	newPath, err := newProfile(newLabel)
	if err != nil {
		return err
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}

	if active, _ := CurrentLabel(); active == strings.TrimSpace(oldLabel) {
		return setCurrent(strings.TrimSpace(newLabel))
	}
	return nil
}

// RemoveConfig deletes a profile. Removing the active one makes Default
// active again; the returned bool reports that fallback.
func RemoveConfig(label string) (bool, error) {
	if strings.TrimSpace(label) == DefaultLabel {
		return false, errors.New("cannot remove the Default config")
	}
	if err := ensureDirs(); err != nil {
		return false, err
	}
	path, err := existingProfile(label)
	if err != nil {
		return false, err
	}

	fellBack := false
	if active, _ := CurrentLabel(); active == strings.TrimSpace(label) {
		if err := SwitchConfig(DefaultLabel); err != nil {
			return false, fmt.Errorf("failed switching to Default: %w", err)
		}
		fellBack = true
	}

	return fellBack, os.Remove(path)
}

// InitDefaultConfig writes Default.yaml and makes it active. An existing
// file is kept and reported with os.ErrExist.
func InitDefaultConfig() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path, _ := profileFile(DefaultLabel)
	if exists(path) {
		_ = setCurrent(DefaultLabel)
		return path, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}
	_ = setCurrent(DefaultLabel)
	return path, nil
}
