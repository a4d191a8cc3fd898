// poa_requests.go — сервис заявок POA.
// Список с фильтрами, детали с документами, создание, обновление, удаление.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legatora/admin-backend/internal/domain/model"
	"github.com/legatora/admin-backend/internal/repository"
)

// POARequestInput — входные данные создания и обновления заявки POA.
// FullName отображается в поле principal заявки.
type POARequestInput struct {
	FullName           string
	ContactInfo        string
	Address            string
	Category           string
	ExpirationDate     *time.Time
	DescriptionOfPower string
}

// Validate проверяет обязательные поля.
func (in *POARequestInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(in.ContactInfo) == "" {
		missing = append(missing, "contact_info")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: не заполнены обязательные поля: %s",
			ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// POARequestService — сервис заявок POA.
type POARequestService struct {
	repo            repository.POARequestRepository
	unassignedAgent string
	logger          *slog.Logger
}

// NewPOARequestService создаёт сервис заявок POA.
// unassignedAgent — маркер агента для новых заявок (из конфигурации).
func NewPOARequestService(repo repository.POARequestRepository, unassignedAgent string, logger *slog.Logger) *POARequestService {
	return &POARequestService{
		repo:            repo,
		unassignedAgent: unassignedAgent,
		logger:          logger.With(slog.String("component", "poa_service")),
	}
}

// List возвращает заявки по фильтрам категории, статуса,
// подстроки поиска и параметра сортировки.
func (s *POARequestService) List(ctx context.Context, filters repository.POAListFilters) ([]*model.POARequest, error) {
	list, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	// Пустая выборка — валидный результат, не ошибка
	if list == nil {
		list = []*model.POARequest{}
	}
	return list, nil
}

// Get возвращает заявку с приложенными документами.
func (s *POARequestService) Get(ctx context.Context, requestID string) (*model.POARequestDetails, error) {
	req, err := s.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	files, err := s.repo.ListFiles(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []*model.POAFile{}
	}

	return &model.POARequestDetails{POARequest: *req, Files: files}, nil
}

// Create создаёт новую заявку POA.
// Идентификатор, дата подачи, статус и агент назначаются сервером,
// клиентские значения этих полей игнорируются.
func (s *POARequestService) Create(ctx context.Context, in *POARequestInput) (*model.POARequest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	req := &model.POARequest{
		RequestID:          newPOARequestID(),
		Principal:          in.FullName,
		Category:           in.Category,
		SubmittedDate:      time.Now().UTC().Truncate(24 * time.Hour),
		AssignedAgent:      s.unassignedAgent,
		Status:             model.StatusPending,
		ContactInfo:        in.ContactInfo,
		Address:            in.Address,
		ExpirationDate:     in.ExpirationDate,
		DescriptionOfPower: in.DescriptionOfPower,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.logger.Info("Создана заявка POA",
		slog.String("request_id", req.RequestID),
		slog.String("category", req.Category))

	return req, nil
}

// Update заменяет изменяемые поля заявки.
// Идентификатор, дата подачи, статус и агент остаются неизменными.
func (s *POARequestService) Update(ctx context.Context, requestID string, in *POARequestInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	req := &model.POARequest{
		RequestID:          requestID,
		Principal:          in.FullName,
		Category:           in.Category,
		ContactInfo:        in.ContactInfo,
		Address:            in.Address,
		ExpirationDate:     in.ExpirationDate,
		DescriptionOfPower: in.DescriptionOfPower,
	}

	if err := s.repo.Update(ctx, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("Обновлена заявка POA", slog.String("request_id", requestID))
	return nil
}

// Delete удаляет заявку вместе с документами.
func (s *POARequestService) Delete(ctx context.Context, requestID string) error {
	if err := s.repo.Delete(ctx, requestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("Удалена заявка POA", slog.String("request_id", requestID))
	return nil
}

// newPOARequestID генерирует внешний идентификатор заявки:
// префикс POA- и первые 8 hex-символов UUID в верхнем регистре.
func newPOARequestID() string {
	return "POA-" + strings.ToUpper(uuid.New().String()[:8])
}
