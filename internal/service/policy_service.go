package service

import (
	"context"
	"net/http"

	"espejo-admin/internal/domain"
)

type PolicyService struct {
	api Doer
}

func NewPolicyService(api Doer) *PolicyService {
	return &PolicyService{api: api}
}

// Save replaces the whole policy set. The backend applies last-write-wins;
// no partial patch merge is attempted on either side.
func (s *PolicyService) Save(ctx context.Context, policies domain.Policies) (*domain.Result, error) {
	var resp domain.Result
	if err := s.api.Request(ctx, http.MethodPut, "/admin/politicas", policies, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ PolicyServiceInterface = (*PolicyService)(nil)
