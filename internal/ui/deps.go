// Package ui provides the GTK4 presentation layer for the medusa browser.
package ui

import (
	"context"

	"github.com/bnema/medusa/internal/application/usecase"
	"github.com/bnema/medusa/internal/infrastructure/config"
	"github.com/bnema/medusa/internal/infrastructure/filtering"
	"github.com/bnema/medusa/internal/infrastructure/tor"
)

// Dependencies holds everything built before GTK starts. Engine objects
// are created in the activate handler because they need GTK initialised.
type Dependencies struct {
	// Core context and configuration
	Ctx           context.Context
	ConfigManager *config.Manager
	InitialURL    string // URL to open on startup (optional)

	// Directories for website data and compiled filters
	WebsiteDataDir string
	CacheDir       string
	FilterStoreDir string

	// Infrastructure
	BlockLists *filtering.Lists
	TorManager *tor.Manager

	// Use Cases
	NavigateUC *usecase.NavigateUseCase
	PrivacyUC  *usecase.ApplyPrivacyUseCase
	HistoryUC  *usecase.HistoryUseCase
}

// Validate checks that all required dependencies are set.
func (d *Dependencies) Validate() error {
	if d.Ctx == nil {
		return ErrMissingDependency("Ctx")
	}
	if d.ConfigManager == nil {
		return ErrMissingDependency("ConfigManager")
	}
	if d.TorManager == nil {
		return ErrMissingDependency("TorManager")
	}
	if d.NavigateUC == nil {
		return ErrMissingDependency("NavigateUC")
	}
	if d.PrivacyUC == nil {
		return ErrMissingDependency("PrivacyUC")
	}
	// BlockLists and HistoryUC are optional: the browser runs without
	// filtering or history when they failed to load.
	return nil
}

// DependencyError indicates a missing required dependency.
type DependencyError struct {
	Name string
}

func (e DependencyError) Error() string {
	return "missing required dependency: " + e.Name
}

// ErrMissingDependency creates a new DependencyError.
func ErrMissingDependency(name string) error {
	return DependencyError{Name: name}
}
