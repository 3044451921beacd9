package services

import (
	"context"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
)

type HookService interface {
	AddHook(hook Hook) error
	OnSubmit(ctx context.Context, snapshot models.ActionConfig, result *SubmitResult) error
}

type hookService struct {
	hooks []Hook
}

func NewHookService() HookService {
	return &hookService{
		hooks: []Hook{},
	}
}

func (h *hookService) AddHook(hook Hook) error {
	h.hooks = append(h.hooks, hook)
	return nil
}

func (h *hookService) OnSubmit(ctx context.Context, snapshot models.ActionConfig, result *SubmitResult) error {
	for _, hook := range h.hooks {
		if hook.CanHandle(snapshot.Type) {
			if err := hook.OnSubmit(ctx, snapshot, result); err != nil {
				return err
			}
		}
	}
	return nil
}
