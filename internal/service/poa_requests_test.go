package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/legatora/admin-backend/internal/domain/model"
	"github.com/legatora/admin-backend/internal/repository"
	"github.com/legatora/admin-backend/internal/repository/repositorytest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func validPOAInput() *POARequestInput {
	return &POARequestInput{
		FullName:           "Иван Петров",
		ContactInfo:        "ivan@example.com",
		Address:            "Москва, ул. Ленина, 1",
		Category:           "Business",
		DescriptionOfPower: "Управление банковскими счетами",
	}
}

func TestPOACreateDefaults(t *testing.T) {
	repo := repositorytest.NewPOARequestRepository()
	svc := NewPOARequestService(repo, "Unassigned", testLogger())
	ctx := context.Background()

	req, err := svc.Create(ctx, validPOAInput())
	if err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	// Формат идентификатора: POA- и 8 hex-символов в верхнем регистре
	idPattern := regexp.MustCompile(`^POA-[0-9A-F]{8}$`)
	if !idPattern.MatchString(req.RequestID) {
		t.Errorf("RequestID = %q, не соответствует формату POA-XXXXXXXX", req.RequestID)
	}
	if req.Status != model.StatusPending {
		t.Errorf("Status = %q, ожидалось %q", req.Status, model.StatusPending)
	}
	if req.AssignedAgent != "Unassigned" {
		t.Errorf("AssignedAgent = %q, ожидалось Unassigned", req.AssignedAgent)
	}
	if req.SubmittedDate.IsZero() {
		t.Error("SubmittedDate не назначена")
	}

	// Заявка читается обратно
	got, err := svc.Get(ctx, req.RequestID)
	if err != nil {
		t.Fatalf("Get() ошибка: %v", err)
	}
	if got.Principal != "Иван Петров" {
		t.Errorf("Principal = %q", got.Principal)
	}
	if got.Files == nil || len(got.Files) != 0 {
		t.Errorf("Files = %v, ожидался пустой список", got.Files)
	}
}

func TestPOACreateIDsUnique(t *testing.T) {
	repo := repositorytest.NewPOARequestRepository()
	svc := NewPOARequestService(repo, "Unassigned", testLogger())
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		req, err := svc.Create(ctx, validPOAInput())
		if err != nil {
			t.Fatalf("Create() ошибка: %v", err)
		}
		if seen[req.RequestID] {
			t.Fatalf("повторный RequestID: %s", req.RequestID)
		}
		seen[req.RequestID] = true
	}
}

func TestPOACreateValidation(t *testing.T) {
	repo := repositorytest.NewPOARequestRepository()
	svc := NewPOARequestService(repo, "Unassigned", testLogger())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*POARequestInput)
	}{
		{"пустое имя", func(in *POARequestInput) { in.FullName = "" }},
		{"имя из пробелов", func(in *POARequestInput) { in.FullName = "   " }},
		{"пустые контакты", func(in *POARequestInput) { in.ContactInfo = "" }},
		{"пустой адрес", func(in *POARequestInput) { in.Address = "" }},
		{"пустая категория", func(in *POARequestInput) { in.Category = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validPOAInput()
			tt.mutate(in)
			if _, err := svc.Create(ctx, in); !errors.Is(err, ErrValidation) {
				t.Errorf("Create() = %v, ожидался ErrValidation", err)
			}
		})
	}

	// Невалидный ввод не попадает в хранилище
	if len(repo.Requests) != 0 {
		t.Errorf("в хранилище %d заявок после отклонённых запросов", len(repo.Requests))
	}
}

func TestPOAUpdatePreservesServerFields(t *testing.T) {
	repo := repositorytest.NewPOARequestRepository()
	svc := NewPOARequestService(repo, "Unassigned", testLogger())
	ctx := context.Background()

	req, err := svc.Create(ctx, validPOAInput())
	if err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	in := validPOAInput()
	in.FullName = "Пётр Сидоров"
	exp := time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC)
	in.ExpirationDate = &exp
	if err := svc.Update(ctx, req.RequestID, in); err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}

	got, err := svc.Get(ctx, req.RequestID)
	if err != nil {
		t.Fatalf("Get() ошибка: %v", err)
	}
	if got.Principal != "Пётр Сидоров" {
		t.Errorf("Principal = %q", got.Principal)
	}
	if got.ExpirationDate == nil || !got.ExpirationDate.Equal(exp) {
		t.Errorf("ExpirationDate = %v", got.ExpirationDate)
	}
	// Серверные поля не меняются обновлением
	if got.Status != model.StatusPending {
		t.Errorf("Status изменился: %q", got.Status)
	}
	if got.AssignedAgent != "Unassigned" {
		t.Errorf("AssignedAgent изменился: %q", got.AssignedAgent)
	}
	if !got.SubmittedDate.Equal(req.SubmittedDate) {
		t.Errorf("SubmittedDate изменилась: %v", got.SubmittedDate)
	}
}

func TestPOANotFound(t *testing.T) {
	repo := repositorytest.NewPOARequestRepository()
	svc := NewPOARequestService(repo, "Unassigned", testLogger())
	ctx := context.Background()

	if _, err := svc.Get(ctx, "POA-MISSING1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() = %v, ожидался ErrNotFound", err)
	}
	if err := svc.Update(ctx, "POA-MISSING1", validPOAInput()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() = %v, ожидался ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "POA-MISSING1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() = %v, ожидался ErrNotFound", err)
	}
}

func TestPOADeleteRemovesFiles(t *testing.T) {
	repo := repositorytest.NewPOARequestRepository()
	svc := NewPOARequestService(repo, "Unassigned", testLogger())
	ctx := context.Background()

	req, err := svc.Create(ctx, validPOAInput())
	if err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	if err := repo.AddFile(ctx, &model.POAFile{
		RequestID: req.RequestID, DocumentType: "passport",
		FileLink: "https://files.example.com/p.pdf", SubmittedDate: req.SubmittedDate,
	}); err != nil {
		t.Fatalf("AddFile() ошибка: %v", err)
	}

	if err := svc.Delete(ctx, req.RequestID); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}
	if len(repo.Files[req.RequestID]) != 0 {
		t.Error("документы остались после удаления заявки")
	}
	// Повторное удаление — не найдено (идемпотентность уровня ошибки)
	if err := svc.Delete(ctx, req.RequestID); !errors.Is(err, ErrNotFound) {
		t.Errorf("повторный Delete() = %v, ожидался ErrNotFound", err)
	}
}

func TestPOAListFiltersAndSort(t *testing.T) {
	repo := repositorytest.NewPOARequestRepository()
	svc := NewPOARequestService(repo, "Unassigned", testLogger())
	ctx := context.Background()

	seed := []*model.POARequest{
		{RequestID: "POA-00000001", Principal: "Anna Smith", Category: "Business",
			SubmittedDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
			AssignedAgent: "Agent K", Status: model.StatusPending},
		{RequestID: "POA-00000002", Principal: "Boris Volkov", Category: "Medical",
			SubmittedDate: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
			AssignedAgent: "Unassigned", Status: model.StatusActive},
		{RequestID: "POA-00000003", Principal: "Clara Moore", Category: "Business",
			SubmittedDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			AssignedAgent: "Agent Smith", Status: model.StatusPending},
	}
	for _, r := range seed {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create(%s) ошибка: %v", r.RequestID, err)
		}
	}

	// Конъюнкция фильтров
	list, err := svc.List(ctx, repository.POAListFilters{
		Category: strPtr("Business"),
		Status:   strPtr("Pending"),
	})
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("Business+Pending: len = %d, ожидалось 2", len(list))
	}

	// Поиск по агенту и доверителю
	list, err = svc.List(ctx, repository.POAListFilters{Search: strPtr("smith")})
	if err != nil {
		t.Fatalf("List(search) ошибка: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("search=smith: len = %d, ожидалось 2", len(list))
	}

	// Сортировка newest — первая запись самая свежая
	list, err = svc.List(ctx, repository.POAListFilters{SortBy: repository.SortNewest})
	if err != nil {
		t.Fatalf("List(newest) ошибка: %v", err)
	}
	if len(list) != 3 || list[0].RequestID != "POA-00000003" {
		t.Errorf("newest: неожиданный порядок: %v", requestIDs(list))
	}

	// Пустая выборка — пустой срез, не nil
	list, err = svc.List(ctx, repository.POAListFilters{Category: strPtr("Property")})
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if list == nil {
		t.Error("пустая выборка вернула nil")
	}
}

func requestIDs(list []*model.POARequest) string {
	ids := make([]string, len(list))
	for i, r := range list {
		ids[i] = r.RequestID
	}
	return strings.Join(ids, ",")
}
