// external_docs.go — обработчики заявок на внешнюю верификацию документов.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/legatora/admin-backend/internal/api/errors"
	"github.com/legatora/admin-backend/internal/domain/model"
	"github.com/legatora/admin-backend/internal/repository"
	"github.com/legatora/admin-backend/internal/service"
)

// verificationJSON — заявка на верификацию в списочном представлении.
type verificationJSON struct {
	RequestID     string `json:"request_id"`
	Applicant     string `json:"applicant"`
	Category      string `json:"category"`
	SubmittedDate string `json:"submitted_date"`
	Status        string `json:"status"`
	ContactInfo   string `json:"contact_info"`
	Address       string `json:"address"`
}

// verificationFileJSON — документ заявки на верификацию.
// RejectionReason и Comment присутствуют только у отклонённых документов.
type verificationFileJSON struct {
	FileID          int64   `json:"file_id"`
	DocumentType    string  `json:"document_type"`
	FileLink        string  `json:"file_link"`
	SubmittedDate   string  `json:"submitted_date"`
	RejectionReason *string `json:"rejection_reason"`
	Comment         *string `json:"comment"`
}

// verificationDetailsJSON — детальное представление заявки с документами.
type verificationDetailsJSON struct {
	verificationJSON
	Files []verificationFileJSON `json:"files"`
}

// verificationInputJSON — входные данные обновления заявки.
type verificationInputJSON struct {
	Status      string `json:"status"`
	Category    string `json:"category"`
	Applicant   string `json:"applicant"`
	ContactInfo string `json:"contact_info"`
	Address     string `json:"address"`
}

func toVerificationJSON(v *model.ExternalDocVerification) verificationJSON {
	return verificationJSON{
		RequestID:     v.RequestID,
		Applicant:     v.Applicant,
		Category:      v.Category,
		SubmittedDate: dateString(v.SubmittedDate),
		Status:        string(v.Status),
		ContactInfo:   v.ContactInfo,
		Address:       v.Address,
	}
}

// ListVerifications — GET /external-doc-verification.
// Query-параметры: category, status, sort_by (newest/oldest).
func (h *APIHandler) ListVerifications(w http.ResponseWriter, r *http.Request) {
	filters := repository.VerificationListFilters{
		Category: queryParam(r, "category"),
		Status:   queryParam(r, "status"),
		SortBy:   r.URL.Query().Get("sort_by"),
	}

	list, err := h.externalDocs.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("Ошибка получения списка заявок на верификацию", slog.String("error", err.Error()))
		apierrors.InternalError(w, "не удалось получить список заявок")
		return
	}

	out := make([]verificationJSON, 0, len(list))
	for _, v := range list {
		out = append(out, toVerificationJSON(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetVerification — GET /external-doc-verification/{request_id}.
// Возвращает заявку с документами, включая причины отклонения.
func (h *APIHandler) GetVerification(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "request_id")

	details, err := h.externalDocs.Get(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, fmt.Sprintf("заявка на верификацию %s не найдена", requestID))
			return
		}
		h.logger.Error("Ошибка получения заявки на верификацию",
			slog.String("request_id", requestID), slog.String("error", err.Error()))
		apierrors.InternalError(w, "не удалось получить заявку")
		return
	}

	files := make([]verificationFileJSON, 0, len(details.Files))
	for _, f := range details.Files {
		files = append(files, verificationFileJSON{
			FileID:          f.FileID,
			DocumentType:    f.DocumentType,
			FileLink:        f.FileLink,
			SubmittedDate:   dateString(f.SubmittedDate),
			RejectionReason: f.RejectionReason,
			Comment:         f.Comment,
		})
	}

	writeJSON(w, http.StatusOK, verificationDetailsJSON{
		verificationJSON: toVerificationJSON(&details.ExternalDocVerification),
		Files:            files,
	})
}

// UpdateVerification — PATCH /external-doc-verification/{request_id}.
// Заменяет основные поля заявки; смена статуса проверяется по матрице переходов.
func (h *APIHandler) UpdateVerification(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "request_id")

	var body verificationInputJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	in := &service.VerificationInput{
		Status:      body.Status,
		Category:    body.Category,
		Applicant:   body.Applicant,
		ContactInfo: body.ContactInfo,
		Address:     body.Address,
	}

	if err := h.externalDocs.Update(r.Context(), requestID, in); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, fmt.Sprintf("заявка на верификацию %s не найдена", requestID))
		case errors.Is(err, service.ErrInvalidTransition):
			apierrors.InvalidTransition(w, err.Error())
		default:
			h.logger.Error("Ошибка обновления заявки на верификацию",
				slog.String("request_id", requestID), slog.String("error", err.Error()))
			apierrors.InternalError(w, "не удалось обновить заявку")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("External Doc Verification %s updated successfully.", requestID),
	})
}

// DeleteVerification — DELETE /external-doc-verification/{request_id}.
// Удаляет заявку вместе с документами.
func (h *APIHandler) DeleteVerification(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "request_id")

	if err := h.externalDocs.Delete(r.Context(), requestID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, fmt.Sprintf("заявка на верификацию %s не найдена", requestID))
			return
		}
		h.logger.Error("Ошибка удаления заявки на верификацию",
			slog.String("request_id", requestID), slog.String("error", err.Error()))
		apierrors.InternalError(w, "не удалось удалить заявку")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("External Doc Verification %s deleted successfully.", requestID),
	})
}
