package service

import (
	"context"
	"log/slog"

	"github.com/sadaqa/backend/pkg/fundapi"
)

// FundService exposes the external fund's programs to the API. Any adapter
// failure degrades to "no data": the front end renders an empty section
// instead of an error.
type FundService interface {
	Programs(ctx context.Context) []fundapi.Program
	Program(ctx context.Context, id string) *fundapi.Program
}

type fundService struct {
	client fundapi.Client
}

// NewFundService creates a FundService.
func NewFundService(client fundapi.Client) FundService {
	return &fundService{client: client}
}

func (s *fundService) Programs(ctx context.Context) []fundapi.Program {
	programs, err := s.client.GetPrograms(ctx)
	if err != nil {
		slog.Warn("fund programs unavailable", "error", err)
		return []fundapi.Program{}
	}
	if programs == nil {
		return []fundapi.Program{}
	}
	return programs
}

func (s *fundService) Program(ctx context.Context, id string) *fundapi.Program {
	program, err := s.client.GetProgramByID(ctx, id)
	if err != nil {
		slog.Warn("fund program unavailable", "program_id", id, "error", err)
		return nil
	}
	return program
}
