package service

import (
	"context"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

type toolService struct {
	store repository.Store
}

func NewToolService(store repository.Store) ToolService {
	return &toolService{store: store}
}

func (s *toolService) ListTools(ctx context.Context) ([]domain.Tool, error) {
	var tools []domain.Tool
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		tools, err = tx.Tools().List(ctx)
		return err
	})
	return tools, err
}

func (s *toolService) GetTool(ctx context.Context, id int32) (*domain.Tool, []domain.Review, error) {
	var (
		tool    *domain.Tool
		reviews []domain.Review
	)
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		if tool, err = tx.Tools().GetByID(ctx, id); err != nil {
			return notFoundAs(err, ErrToolNotFound)
		}
		if tool.Owner, err = tx.Users().GetByID(ctx, tool.OwnerID); err != nil {
			return err
		}
		reviews, err = tx.Reviews().ListByTool(ctx, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return tool, reviews, nil
}

func (s *toolService) AddTool(ctx context.Context, ownerID int32, tool *domain.Tool) error {
	if ownerID <= 0 {
		return ErrUnauthenticated
	}
	tool.OwnerID = ownerID
	if err := tool.Validate(); err != nil {
		return err
	}

	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Tools().Create(ctx, tool)
	})
	if err != nil {
		return translate(err)
	}
	logger.InfoContext(ctx, "Tool listed", "tool_id", tool.ID, "owner_id", ownerID)
	return nil
}

// UpdateTool applies patch to a tool owned by userID. Only the fields of
// domain.ToolPatch can change; the owner and timestamps are never touched.
func (s *toolService) UpdateTool(ctx context.Context, userID, toolID int32, patch domain.ToolPatch) (*domain.Tool, error) {
	var tool *domain.Tool
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		if tool, err = s.ownedTool(ctx, tx, userID, toolID); err != nil {
			return err
		}

		patch.Apply(tool)
		if err := tool.Validate(); err != nil {
			return err
		}
		return notFoundAs(tx.Tools().Update(ctx, tool), ErrToolNotFound)
	})
	if err != nil {
		return nil, translate(err)
	}
	return tool, nil
}

func (s *toolService) DeleteTool(ctx context.Context, userID, toolID int32) error {
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if _, err := s.ownedTool(ctx, tx, userID, toolID); err != nil {
			return err
		}
		return notFoundAs(tx.Tools().Delete(ctx, toolID), ErrToolNotFound)
	})
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Tool deleted", "tool_id", toolID, "owner_id", userID)
	return nil
}

// ownedTool loads a tool and checks that userID owns it. A missing tool wins
// over a missing session, so anonymous callers see 404 before 403.
func (s *toolService) ownedTool(ctx context.Context, tx repository.Tx, userID, toolID int32) (*domain.Tool, error) {
	tool, err := tx.Tools().GetByID(ctx, toolID)
	if err != nil {
		return nil, notFoundAs(err, ErrToolNotFound)
	}
	if userID <= 0 || tool.OwnerID != userID {
		logger.WarnContext(ctx, "Tool ownership check failed", "tool_id", toolID, "user_id", userID)
		return nil, ErrForbidden
	}
	return tool, nil
}
