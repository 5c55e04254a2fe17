package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/arklim/hall-of-fame-creators/internal/repository"
)

func TestSimpleAuthenticate_RecordsNewIP(t *testing.T) {
	stored := storedCreator()
	repo := &mockCreatorRepository{getByExternalIDResult: &stored}
	service := NewSimpleAuthService(repo, nil)

	creator, err := service.Authenticate(context.Background(), testExternalID, "198.51.100.20")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}

	if repo.getByExternalIDLast != testExternalID {
		t.Fatalf("unexpected lookup key %q", repo.getByExternalIDLast)
	}
	if repo.historyCalls != 1 {
		t.Fatalf("expected 1 history write, got %d", repo.historyCalls)
	}
	if len(repo.historyIPs) != 2 || repo.historyIPs[0] != "198.51.100.20" {
		t.Fatalf("unexpected ip history %v", repo.historyIPs)
	}
	if len(creator.IPHistory) != 2 || creator.IPHistory[0] != "198.51.100.20" {
		t.Fatalf("unexpected returned ip history %v", creator.IPHistory)
	}
}

func TestSimpleAuthenticate_RepeatIPSkipsWrite(t *testing.T) {
	stored := storedCreator()
	repo := &mockCreatorRepository{getByExternalIDResult: &stored}
	service := NewSimpleAuthService(repo, nil)

	creator, err := service.Authenticate(context.Background(), testExternalID, stored.IPHistory[0])
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if repo.historyCalls != 0 {
		t.Fatalf("expected no history write, got %d", repo.historyCalls)
	}
	if creator.ID != stored.ID {
		t.Fatalf("expected stored creator, got %q", creator.ID)
	}
}

func TestSimpleAuthenticate_EmptyIPSkipsWrite(t *testing.T) {
	stored := storedCreator()
	repo := &mockCreatorRepository{getByExternalIDResult: &stored}
	service := NewSimpleAuthService(repo, nil)

	if _, err := service.Authenticate(context.Background(), testExternalID, ""); err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if repo.historyCalls != 0 {
		t.Fatalf("expected no history write, got %d", repo.historyCalls)
	}
}

func TestSimpleAuthenticate_UnknownExternalID(t *testing.T) {
	repo := &mockCreatorRepository{getByExternalIDErr: repository.ErrNotFound}
	service := NewSimpleAuthService(repo, nil)

	_, err := service.Authenticate(context.Background(), testExternalID, "198.51.100.20")
	if !errors.Is(err, ErrCreatorNotFound) {
		t.Fatalf("expected ErrCreatorNotFound, got %v", err)
	}
}

func TestSimpleAuthenticate_BlankExternalID(t *testing.T) {
	repo := &mockCreatorRepository{}
	service := NewSimpleAuthService(repo, nil)

	_, err := service.Authenticate(context.Background(), "   ", "198.51.100.20")
	if !errors.Is(err, ErrCreatorNotFound) {
		t.Fatalf("expected ErrCreatorNotFound, got %v", err)
	}
	if repo.getByExternalIDCalls != 0 {
		t.Fatalf("expected no lookup for blank id, got %d", repo.getByExternalIDCalls)
	}
}
