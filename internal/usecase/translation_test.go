package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
)

type fakeTranslator struct {
	eligible bool
	result   domain.NameTranslation
	err      error

	translateCalls int
	lastCreatorID  string
	lastName       string
}

func (f *fakeTranslator) IsEligible(string) bool {
	return f.eligible
}

func (f *fakeTranslator) Translate(_ context.Context, creatorID, name string) (domain.NameTranslation, error) {
	f.translateCalls++
	f.lastCreatorID = creatorID
	f.lastName = name
	return f.result, f.err
}

func TestTranslationRefresh_IneligibleNameClearsState(t *testing.T) {
	repo := &mockCreatorRepository{}
	translator := &fakeTranslator{eligible: false}
	publisher := &fakePublisher{}
	service := NewTranslationService(repo, translator, publisher, &fakeReporter{}, nil)

	creator := storedCreator()
	creator.NeedsTranslation = true

	translated, refreshed, err := service.Refresh(context.Background(), creator)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if translated {
		t.Fatal("expected no translation for an ineligible name")
	}

	if repo.translationCalls != 1 {
		t.Fatalf("expected 1 translation write, got %d", repo.translationCalls)
	}
	if repo.translationNeeds {
		t.Fatal("expected needs_translation cleared")
	}
	if repo.translationValue != nil {
		t.Fatalf("expected stored translation cleared, got %v", repo.translationValue)
	}
	if refreshed.NeedsTranslation || refreshed.Locale != nil {
		t.Fatal("expected refreshed creator without translation state")
	}
	if translator.translateCalls != 0 {
		t.Fatalf("expected no translate call, got %d", translator.translateCalls)
	}
	if len(publisher.translated) != 0 {
		t.Fatalf("expected no event, got %d", len(publisher.translated))
	}
}

func TestTranslationRefresh_MissingNameClearsState(t *testing.T) {
	repo := &mockCreatorRepository{}
	service := NewTranslationService(repo, &fakeTranslator{eligible: true}, &fakePublisher{}, &fakeReporter{}, nil)

	creator := storedCreator()
	creator.DisplayName = nil
	creator.DisplayNameSlug = nil

	translated, _, err := service.Refresh(context.Background(), creator)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if translated {
		t.Fatal("expected no translation without a display name")
	}
	if repo.translationCalls != 1 || repo.translationNeeds || repo.translationValue != nil {
		t.Fatalf("expected cleared translation state, got calls=%d needs=%v value=%v",
			repo.translationCalls, repo.translationNeeds, repo.translationValue)
	}
}

func TestTranslationRefresh_PersistsAndPublishes(t *testing.T) {
	repo := &mockCreatorRepository{}
	translator := &fakeTranslator{
		eligible: true,
		result: domain.NameTranslation{
			Locale:         "ru",
			LatinizedName:  "Stiv",
			TranslatedName: "Steve",
		},
	}
	publisher := &fakePublisher{}
	service := NewTranslationService(repo, translator, publisher, &fakeReporter{}, nil)

	creator := storedCreator()
	creator.DisplayName = strPtr("Стив")

	translated, refreshed, err := service.Refresh(context.Background(), creator)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if !translated {
		t.Fatal("expected a translation to be produced")
	}

	if translator.lastCreatorID != creator.ID || translator.lastName != "Стив" {
		t.Fatalf("unexpected translate args: id=%q name=%q", translator.lastCreatorID, translator.lastName)
	}
	if repo.translationCalls != 1 || repo.translationNeeds {
		t.Fatalf("expected persisted translation with needs_translation cleared, calls=%d needs=%v",
			repo.translationCalls, repo.translationNeeds)
	}
	if repo.translationValue == nil || repo.translationValue.LatinizedName != "Stiv" {
		t.Fatalf("unexpected persisted translation %v", repo.translationValue)
	}
	if refreshed.Locale == nil || *refreshed.Locale != "ru" {
		t.Fatalf("expected refreshed locale ru, got %v", refreshed.Locale)
	}

	if len(publisher.translated) != 1 {
		t.Fatalf("expected 1 translated event, got %d", len(publisher.translated))
	}
	if publisher.translated[0].LatinizedName != "Stiv" {
		t.Fatalf("unexpected event payload %+v", publisher.translated[0])
	}
}

func TestScheduleRefresh_AbsorbsFailures(t *testing.T) {
	repo := &mockCreatorRepository{}
	translator := &fakeTranslator{eligible: true, err: errors.New("upstream down")}
	reporter := &fakeReporter{}
	service := NewTranslationService(repo, translator, &fakePublisher{}, reporter, nil)

	creator := storedCreator()
	service.ScheduleRefresh(creator)
	service.Wait()

	if reporter.calls != 1 {
		t.Fatalf("expected failure to be reported once, got %d", reporter.calls)
	}
	if reporter.fields[0]["task"] != "translation_refresh" {
		t.Fatalf("unexpected report fields %v", reporter.fields[0])
	}
}

func TestScheduleRefresh_CompletesInBackground(t *testing.T) {
	repo := &mockCreatorRepository{}
	translator := &fakeTranslator{
		eligible: true,
		result:   domain.NameTranslation{Locale: "ja", LatinizedName: "Sutibu", TranslatedName: "Steve"},
	}
	reporter := &fakeReporter{}
	service := NewTranslationService(repo, translator, &fakePublisher{}, reporter, nil)

	service.ScheduleRefresh(storedCreator())
	service.Wait()

	if repo.translationCalls != 1 {
		t.Fatalf("expected translation persisted, got %d calls", repo.translationCalls)
	}
	if reporter.calls != 0 {
		t.Fatalf("expected no failure report, got %d", reporter.calls)
	}
}
