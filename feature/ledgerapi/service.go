package ledgerapi

import (
	"context"
	"os"

	"loot-ledger/core/journal"
	"loot-ledger/core/ledgerfile"

	"go.uber.org/zap"
)

// Service exposes the persisted ledger documents and the run journal.
type Service struct {
	paths   ledgerfile.Config
	journal *journal.Journal
	logger  *zap.Logger
}

// NewService creates a ledger API service. The journal may be nil when
// journaling is disabled.
func NewService(paths ledgerfile.Config, j *journal.Journal, l *zap.Logger) *Service {
	return &Service{paths: paths, journal: j, logger: l}
}

// LootDocument returns the persisted loot ledger verbatim.
// A missing document is served as empty state, matching load semantics.
func (s *Service) LootDocument() ([]byte, error) {
	return s.document(s.paths.LootFile, []byte("{}"))
}

// SoftresDocument returns the persisted soft-reserve ledger verbatim.
func (s *Service) SoftresDocument() ([]byte, error) {
	return s.document(s.paths.SoftresFile, []byte("[]"))
}

// Runs lists journaled runs, most recent first.
func (s *Service) Runs(ctx context.Context) ([]journal.Run, error) {
	if s.journal == nil {
		return []journal.Run{}, nil
	}
	return s.journal.Runs(ctx)
}

func (s *Service) document(path string, empty []byte) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return empty, nil
	}
	return data, nil
}
