// Пакет repositorytest — фейковые репозитории заявок в памяти
// для юнит-тестов сервисного слоя и HTTP-обработчиков.
// Воспроизводят контракты реального слоя: ErrNotFound, ErrConflict,
// сентинел "All", сортировку по дате подачи и порядок вставки
// (порядок хранилища) для выборок без сортировки.
package repositorytest

import (
	"context"
	"sort"
	"strings"

	"github.com/legatora/admin-backend/internal/domain/model"
	"github.com/legatora/admin-backend/internal/repository"
)

// FakePOARequestRepository — репозиторий заявок POA в памяти.
// Поля открыты для посева и проверок в тестах.
type FakePOARequestRepository struct {
	Requests []*model.POARequest
	Files    map[string][]*model.POAFile
	nextFile int64
}

// NewPOARequestRepository создаёт пустой фейковый репозиторий заявок POA.
func NewPOARequestRepository() *FakePOARequestRepository {
	return &FakePOARequestRepository{Files: make(map[string][]*model.POAFile)}
}

func (f *FakePOARequestRepository) List(_ context.Context, filters repository.POAListFilters) ([]*model.POARequest, error) {
	var out []*model.POARequest
	for _, r := range f.Requests {
		if filterActive(filters.Category) && r.Category != *filters.Category {
			continue
		}
		if filterActive(filters.Status) && string(r.Status) != *filters.Status {
			continue
		}
		if filters.Search != nil && *filters.Search != "" {
			term := strings.ToLower(*filters.Search)
			if !strings.Contains(strings.ToLower(r.Principal), term) &&
				!strings.Contains(strings.ToLower(r.AssignedAgent), term) {
				continue
			}
		}
		out = append(out, r)
	}
	switch filters.SortBy {
	case repository.SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[j].SubmittedDate.Before(out[i].SubmittedDate) })
	case repository.SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedDate.Before(out[j].SubmittedDate) })
	}
	return out, nil
}

func (f *FakePOARequestRepository) GetByRequestID(_ context.Context, requestID string) (*model.POARequest, error) {
	for _, r := range f.Requests {
		if r.RequestID == requestID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakePOARequestRepository) ListFiles(_ context.Context, requestID string) ([]*model.POAFile, error) {
	return f.Files[requestID], nil
}

func (f *FakePOARequestRepository) Create(_ context.Context, req *model.POARequest) error {
	for _, r := range f.Requests {
		if r.RequestID == req.RequestID {
			return repository.ErrConflict
		}
	}
	cp := *req
	f.Requests = append(f.Requests, &cp)
	return nil
}

func (f *FakePOARequestRepository) Update(_ context.Context, req *model.POARequest) error {
	for _, r := range f.Requests {
		if r.RequestID == req.RequestID {
			r.Principal = req.Principal
			r.Category = req.Category
			r.ContactInfo = req.ContactInfo
			r.Address = req.Address
			r.ExpirationDate = req.ExpirationDate
			r.DescriptionOfPower = req.DescriptionOfPower
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *FakePOARequestRepository) Delete(_ context.Context, requestID string) error {
	for i, r := range f.Requests {
		if r.RequestID == requestID {
			f.Requests = append(f.Requests[:i], f.Requests[i+1:]...)
			delete(f.Files, requestID)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *FakePOARequestRepository) AddFile(_ context.Context, file *model.POAFile) error {
	f.nextFile++
	file.FileID = f.nextFile
	cp := *file
	f.Files[file.RequestID] = append(f.Files[file.RequestID], &cp)
	return nil
}

// FakeExternalDocRepository — репозиторий заявок на верификацию в памяти.
type FakeExternalDocRepository struct {
	Requests []*model.ExternalDocVerification
	Files    map[string][]*model.ExternalDocFile
	nextFile int64
}

// NewExternalDocRepository создаёт пустой фейковый репозиторий заявок на верификацию.
func NewExternalDocRepository() *FakeExternalDocRepository {
	return &FakeExternalDocRepository{Files: make(map[string][]*model.ExternalDocFile)}
}

func (f *FakeExternalDocRepository) List(_ context.Context, filters repository.VerificationListFilters) ([]*model.ExternalDocVerification, error) {
	var out []*model.ExternalDocVerification
	for _, v := range f.Requests {
		if filterActive(filters.Category) && v.Category != *filters.Category {
			continue
		}
		if filterActive(filters.Status) && string(v.Status) != *filters.Status {
			continue
		}
		out = append(out, v)
	}
	switch filters.SortBy {
	case repository.SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[j].SubmittedDate.Before(out[i].SubmittedDate) })
	case repository.SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedDate.Before(out[j].SubmittedDate) })
	}
	return out, nil
}

func (f *FakeExternalDocRepository) GetByRequestID(_ context.Context, requestID string) (*model.ExternalDocVerification, error) {
	for _, v := range f.Requests {
		if v.RequestID == requestID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeExternalDocRepository) ListFiles(_ context.Context, requestID string) ([]*model.ExternalDocFile, error) {
	return f.Files[requestID], nil
}

func (f *FakeExternalDocRepository) Create(_ context.Context, v *model.ExternalDocVerification) error {
	for _, r := range f.Requests {
		if r.RequestID == v.RequestID {
			return repository.ErrConflict
		}
	}
	cp := *v
	f.Requests = append(f.Requests, &cp)
	return nil
}

func (f *FakeExternalDocRepository) Update(_ context.Context, v *model.ExternalDocVerification) error {
	for _, r := range f.Requests {
		if r.RequestID == v.RequestID {
			r.Status = v.Status
			r.Category = v.Category
			r.Applicant = v.Applicant
			r.ContactInfo = v.ContactInfo
			r.Address = v.Address
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *FakeExternalDocRepository) Delete(_ context.Context, requestID string) error {
	for i, r := range f.Requests {
		if r.RequestID == requestID {
			f.Requests = append(f.Requests[:i], f.Requests[i+1:]...)
			delete(f.Files, requestID)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *FakeExternalDocRepository) AddFile(_ context.Context, file *model.ExternalDocFile) error {
	f.nextFile++
	file.FileID = f.nextFile
	cp := *file
	f.Files[file.RequestID] = append(f.Files[file.RequestID], &cp)
	return nil
}

// filterActive повторяет контракт фильтров реального слоя:
// nil, пустая строка и сентинел "All" означают «без фильтра».
func filterActive(v *string) bool {
	return v != nil && *v != "" && *v != repository.FilterAll
}
