// Package registry reads named storage profiles from an INI file.
// Every section with keys is a profile holding a driver and a path.
package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const DefaultFileName = ".maturityatlascfg"

type ProfileRegistry interface {
	GetProfiles() ([]domain.StorageProfile, error)
	GetProfile(name string) (domain.StorageProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultPath returns the profiles file under the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profiles %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles() ([]domain.StorageProfile, error) {
	var profiles []domain.StorageProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		p, err := toProfile(section)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(name string) (domain.StorageProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.StorageProfile{}, fmt.Errorf("profile %s: %w", name, domain.ErrNotFound)
	}
	return toProfile(section)
}

func toProfile(section *ini.Section) (domain.StorageProfile, error) {
	driver := domain.StorageDriver(section.Key("driver").MustString(string(domain.StorageDriverDuckDB)))
	if !driver.Valid() {
		return domain.StorageProfile{}, domain.InvalidField(section.Name()+".driver", driver)
	}
	path := section.Key("path").String()
	if path == "" {
		return domain.StorageProfile{}, domain.InvalidField(section.Name()+".path", path)
	}
	return domain.StorageProfile{
		Name:   section.Name(),
		Driver: driver,
		Path:   path,
	}, nil
}
