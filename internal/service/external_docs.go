// external_docs.go — сервис заявок на внешнюю верификацию документов.
// Список с фильтрами, детали с документами, обновление со сменой статуса, удаление.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/legatora/admin-backend/internal/domain/model"
	"github.com/legatora/admin-backend/internal/repository"
)

// VerificationInput — входные данные обновления заявки на верификацию.
type VerificationInput struct {
	Status      string
	Category    string
	Applicant   string
	ContactInfo string
	Address     string
}

// Validate проверяет обязательные поля и допустимость статуса.
func (in *VerificationInput) Validate() (model.RequestStatus, error) {
	var missing []string
	if strings.TrimSpace(in.Applicant) == "" {
		missing = append(missing, "applicant")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(in.ContactInfo) == "" {
		missing = append(missing, "contact_info")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: не заполнены обязательные поля: %s",
			ErrValidation, strings.Join(missing, ", "))
	}

	status, err := model.ParseRequestStatus(in.Status)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return status, nil
}

// ExternalDocService — сервис заявок на внешнюю верификацию документов.
type ExternalDocService struct {
	repo   repository.ExternalDocRepository
	logger *slog.Logger
}

// NewExternalDocService создаёт сервис верификации документов.
func NewExternalDocService(repo repository.ExternalDocRepository, logger *slog.Logger) *ExternalDocService {
	return &ExternalDocService{
		repo:   repo,
		logger: logger.With(slog.String("component", "external_doc_service")),
	}
}

// List возвращает заявки по фильтрам категории, статуса и параметру сортировки.
func (s *ExternalDocService) List(ctx context.Context, filters repository.VerificationListFilters) ([]*model.ExternalDocVerification, error) {
	list, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*model.ExternalDocVerification{}
	}
	return list, nil
}

// Get возвращает заявку с документами, включая причины отклонения.
func (s *ExternalDocService) Get(ctx context.Context, requestID string) (*model.ExternalDocVerificationDetails, error) {
	v, err := s.repo.GetByRequestID(ctx, requestID)
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
		files = []*model.ExternalDocFile{}
	}

	return &model.ExternalDocVerificationDetails{ExternalDocVerification: *v, Files: files}, nil
}

// Update заменяет основные поля заявки, включая статус.
// Смена статуса проверяется по матрице переходов: из Pending допустимы
// Active, Verified и Rejected; конечные статусы не меняются.
func (s *ExternalDocService) Update(ctx context.Context, requestID string, in *VerificationInput) error {
	status, err := in.Validate()
	if err != nil {
		return err
	}

	current, err := s.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !current.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	updated := &model.ExternalDocVerification{
		RequestID:   requestID,
		Applicant:   in.Applicant,
		Category:    in.Category,
		Status:      status,
		ContactInfo: in.ContactInfo,
		Address:     in.Address,
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("Обновлена заявка на верификацию",
		slog.String("request_id", requestID),
		slog.String("status", string(status)))
	return nil
}

// Delete удаляет заявку вместе с документами.
func (s *ExternalDocService) Delete(ctx context.Context, requestID string) error {
	if err := s.repo.Delete(ctx, requestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("Удалена заявка на верификацию", slog.String("request_id", requestID))
	return nil
}
