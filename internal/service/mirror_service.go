package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"espejo-admin/internal/domain"
)

// ErrInvalidSnapshot means the backend answered but the body was not a
// usable snapshot. The synchronizer treats it like any other failed refresh
// and keeps the previous snapshot.
var ErrInvalidSnapshot = errors.New("snapshot response was not usable")

type MirrorService struct {
	api Doer
	now func() time.Time
}

func NewMirrorService(api Doer) *MirrorService {
	return &MirrorService{api: api, now: time.Now}
}

// FetchSnapshot retrieves the consolidated mirror. The whole response is
// validated before anything is returned, so a partial or malformed body can
// never end up half-installed in the store.
func (s *MirrorService) FetchSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var resp domain.SnapshotResponse
	if err := s.api.Request(ctx, http.MethodGet, "/espejo", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, resp.Message)
		}
		return nil, ErrInvalidSnapshot
	}

	snapshot := *resp.Data
	snapshot.FetchedAt = s.now()
	return &snapshot, nil
}

var _ SnapshotFetcher = (*MirrorService)(nil)
