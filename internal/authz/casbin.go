// Package authz wraps the Casbin enforcer guarding the HTTP surface.
// Roles gate routes here; share-link access levels are advisory and
// resolved by the application layer.
package authz

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

var (
	mu       sync.RWMutex
	enforcer *casbin.Enforcer
)

// Init loads the RBAC model and policy and installs the singleton
// enforcer.
func Init(modelPath, policyPath string) error {
	m, err := model.NewModelFromFile(filepath.FromSlash(modelPath))
	if err != nil {
		return fmt.Errorf("casbin: load model: %w", err)
	}
	a := fileadapter.NewAdapter(filepath.FromSlash(policyPath))
	e, err := casbin.NewEnforcer(m, a)
	if err != nil {
		return fmt.Errorf("casbin: create enforcer: %w", err)
	}
	if err := e.LoadPolicy(); err != nil {
		return fmt.Errorf("casbin: load policy: %w", err)
	}

	mu.Lock()
	enforcer = e
	mu.Unlock()
	return nil
}

// GetEnforcer returns the installed enforcer, or nil before Init.
func GetEnforcer() *casbin.Enforcer {
	mu.RLock()
	defer mu.RUnlock()
	return enforcer
}
