package rbac

import (
	"context"
	"fmt"
	"sync"

	"leavesync/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	// Load seeds the default permissions into an empty table and rebuilds the in-memory policy.
	Load(ctx context.Context) error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) Load(ctx context.Context) error {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count role permissions: %w", err)
	}
	if total == 0 {
		if err := s.repo.Seed(ctx, DefaultPermissions); err != nil {
			return fmt.Errorf("seed role permissions: %w", err)
		}
		s.logger.Info("rbac default permissions seeded", zap.Int("count", len(DefaultPermissions)))
	}

	rows, err := s.repo.ListRolePermissions(ctx)
	if err != nil {
		return fmt.Errorf("list role permissions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, pair := range RoleHierarchy {
		if _, err := s.enforcer.AddGroupingPolicy(string(pair[0]), string(pair[1])); err != nil {
			return err
		}
	}
	for _, rp := range rows {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policy loaded", zap.Int("permissions", len(rows)))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if !domain.Role(req.Role).Valid() {
		s.logger.Debug("rbac enforce unknown role", zap.String("role", req.Role))
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
