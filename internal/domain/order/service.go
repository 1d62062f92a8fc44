package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/go-faster/sdk/zctx"
)

// Remote is the server-side order store as seen from the client. All calls
// can fail when the backend is unreachable; AdminService degrades to the
// local log in that case.
type Remote interface {
	List(ctx context.Context) ([]Order, error)
	Update(ctx context.Context, id string, p Patch) error
	Delete(ctx context.Context, id string) error
}

// AdminService serves the admin order views: it reconciles the remote store
// with the local log and routes mutations to both.
type AdminService struct {
	remote Remote
	local  Log
}

// NewAdminService wires the admin order service.
func NewAdminService(remote Remote, local Log) *AdminService {
	return &AdminService{remote: remote, local: local}
}

// List returns the reconciled order list, newest first. When the remote
// store is unreachable it serves the local log alone.
func (s *AdminService) List(ctx context.Context) ([]Order, error) {
	local, err := s.local.List()
	if err != nil {
		return nil, err
	}

	remote, err := s.remote.List(ctx)
	if err != nil {
		zctx.From(ctx).Warn("Remote order list unavailable, serving local log",
			zap.Error(err))
		SortNewestFirst(local)
		return local, nil
	}
	return Merge(remote, local), nil
}

// MarkPaid flips the paid flag on the order, remote first, local always.
func (s *AdminService) MarkPaid(ctx context.Context, id string) error {
	return s.patch(ctx, id, MarkPaid())
}

// MarkDelivered flips the delivered flag on the order.
func (s *AdminService) MarkDelivered(ctx context.Context, id string) error {
	return s.patch(ctx, id, MarkDelivered())
}

// Patch applies an arbitrary partial update to the order.
func (s *AdminService) Patch(ctx context.Context, id string, p Patch) error {
	return s.patch(ctx, id, p)
}

func (s *AdminService) patch(ctx context.Context, id string, p Patch) error {
	remoteErr := s.remote.Update(ctx, id, p)
	if remoteErr != nil {
		zctx.From(ctx).Warn("Remote order update failed, keeping local copy",
			zap.String("order_id", id), zap.Error(remoteErr))
	}

	localErr := s.local.Update(id, p)
	if localErr == nil || remoteErr == nil {
		// The update landed somewhere; reconciliation carries it forward.
		return nil
	}
	return localErr
}

// Delete removes the order from both stores. Missing on one side is fine as
// long as the other side had it.
func (s *AdminService) Delete(ctx context.Context, id string) error {
	remoteErr := s.remote.Delete(ctx, id)
	if remoteErr != nil {
		zctx.From(ctx).Warn("Remote order delete failed",
			zap.String("order_id", id), zap.Error(remoteErr))
	}

	localErr := s.local.Delete(id)
	if localErr == nil || remoteErr == nil {
		return nil
	}
	return localErr
}
