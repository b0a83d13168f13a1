package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type Service interface {
	Enforce(role, resource, action string) (bool, error)
	PermissionsFor(role string) []Permission
}

type service struct {
	enforcer *casbin.SyncedEnforcer
	policy   [][]string
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}
	if _, err := e.AddPolicies(defaultPolicy); err != nil {
		return nil, fmt.Errorf("rbac policy: %w", err)
	}

	l.Info("rbac policy loaded", zap.Int("rules", len(defaultPolicy)))
	return &service{enforcer: e, policy: defaultPolicy, logger: l}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) PermissionsFor(role string) []Permission {
	perms := make([]Permission, 0)
	for _, rule := range s.policy {
		if rule[0] == role {
			perms = append(perms, Permission{Resource: rule[1], Action: rule[2]})
		}
	}
	return perms
}
