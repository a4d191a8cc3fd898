// poa_requests.go — обработчики заявок POA.
// Список с фильтрами, детали, создание, обновление, удаление.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/legatora/admin-backend/internal/api/errors"
	"github.com/legatora/admin-backend/internal/domain/model"
	"github.com/legatora/admin-backend/internal/repository"
	"github.com/legatora/admin-backend/internal/service"
)

// poaRequestJSON — заявка POA в списочном представлении.
type poaRequestJSON struct {
	RequestID     string `json:"request_id"`
	Principal     string `json:"principal"`
	Category      string `json:"category"`
	SubmittedDate string `json:"submitted_date"`
	AssignedAgent string `json:"assigned_agent"`
	Status        string `json:"status"`
	ContactInfo   string `json:"contact_info"`
	Address       string `json:"address"`
}

// poaFileJSON — документ заявки POA.
type poaFileJSON struct {
	FileID        int64  `json:"file_id"`
	DocumentType  string `json:"document_type"`
	FileLink      string `json:"file_link"`
	SubmittedDate string `json:"submitted_date"`
}

// poaRequestDetailsJSON — детальное представление заявки с документами.
type poaRequestDetailsJSON struct {
	poaRequestJSON
	ExpirationDate     *string       `json:"expiration_date"`
	DescriptionOfPower string        `json:"description_of_power"`
	Files              []poaFileJSON `json:"files"`
}

// poaRequestInputJSON — входные данные создания и обновления заявки.
// ChecklistItems принимается для совместимости с формой портала и не сохраняется.
type poaRequestInputJSON struct {
	FullName           string   `json:"full_name"`
	ContactInfo        string   `json:"contact_info"`
	Address            string   `json:"address"`
	Category           string   `json:"category"`
	ExpirationDate     *string  `json:"expiration_date"`
	DescriptionOfPower string   `json:"description_of_power"`
	ChecklistItems     []string `json:"checklist_items"`
}

// toServiceInput преобразует DTO во входные данные сервисного слоя.
func (in *poaRequestInputJSON) toServiceInput() (*service.POARequestInput, error) {
	out := &service.POARequestInput{
		FullName:           in.FullName,
		ContactInfo:        in.ContactInfo,
		Address:            in.Address,
		Category:           in.Category,
		DescriptionOfPower: in.DescriptionOfPower,
	}
	if in.ExpirationDate != nil && *in.ExpirationDate != "" {
		t, err := time.Parse(dateLayout, *in.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("expiration_date: ожидается формат %s", dateLayout)
		}
		out.ExpirationDate = &t
	}
	return out, nil
}

func toPOARequestJSON(req *model.POARequest) poaRequestJSON {
	return poaRequestJSON{
		RequestID:     req.RequestID,
		Principal:     req.Principal,
		Category:      req.Category,
		SubmittedDate: dateString(req.SubmittedDate),
		AssignedAgent: req.AssignedAgent,
		Status:        string(req.Status),
		ContactInfo:   req.ContactInfo,
		Address:       req.Address,
	}
}

// ListPOARequests — GET /poa-requests.
// Query-параметры: category, status, search, sort_by (newest/oldest).
func (h *APIHandler) ListPOARequests(w http.ResponseWriter, r *http.Request) {
	filters := repository.POAListFilters{
		Category: queryParam(r, "category"),
		Status:   queryParam(r, "status"),
		Search:   queryParam(r, "search"),
		SortBy:   r.URL.Query().Get("sort_by"),
	}

	list, err := h.poaRequests.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("Ошибка получения списка заявок POA", slog.String("error", err.Error()))
		apierrors.InternalError(w, "не удалось получить список заявок")
		return
	}

	out := make([]poaRequestJSON, 0, len(list))
	for _, req := range list {
		out = append(out, toPOARequestJSON(req))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPOARequest — GET /poa-requests/{request_id}.
// Возвращает заявку вместе с приложенными документами.
func (h *APIHandler) GetPOARequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "request_id")

	details, err := h.poaRequests.Get(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, fmt.Sprintf("заявка POA %s не найдена", requestID))
			return
		}
		h.logger.Error("Ошибка получения заявки POA",
			slog.String("request_id", requestID), slog.String("error", err.Error()))
		apierrors.InternalError(w, "не удалось получить заявку")
		return
	}

	files := make([]poaFileJSON, 0, len(details.Files))
	for _, f := range details.Files {
		files = append(files, poaFileJSON{
			FileID:        f.FileID,
			DocumentType:  f.DocumentType,
			FileLink:      f.FileLink,
			SubmittedDate: dateString(f.SubmittedDate),
		})
	}

	writeJSON(w, http.StatusOK, poaRequestDetailsJSON{
		poaRequestJSON:     toPOARequestJSON(&details.POARequest),
		ExpirationDate:     optionalDateString(details.ExpirationDate),
		DescriptionOfPower: details.DescriptionOfPower,
		Files:              files,
	})
}

// CreatePOARequest — POST /poa-requests.
// Возвращает 201 с назначенным идентификатором и статусом.
func (h *APIHandler) CreatePOARequest(w http.ResponseWriter, r *http.Request) {
	var body poaRequestInputJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	in, err := body.toServiceInput()
	if err != nil {
		apierrors.ValidationError(w, err.Error())
		return
	}

	req, err := h.poaRequests.Create(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, service.ErrConflict):
			apierrors.Conflict(w, "заявка с таким идентификатором уже существует")
		default:
			h.logger.Error("Ошибка создания заявки POA", slog.String("error", err.Error()))
			apierrors.InternalError(w, "не удалось создать заявку")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":    "POA Request submitted successfully",
		"request_id": req.RequestID,
		"status":     string(req.Status),
	})
}

// UpdatePOARequest — PATCH /poa-requests/{request_id}.
// Заменяет изменяемые поля заявки; статус и агент не меняются этим путём.
func (h *APIHandler) UpdatePOARequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "request_id")

	var body poaRequestInputJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	in, err := body.toServiceInput()
	if err != nil {
		apierrors.ValidationError(w, err.Error())
		return
	}

	if err := h.poaRequests.Update(r.Context(), requestID, in); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, fmt.Sprintf("заявка POA %s не найдена", requestID))
		default:
			h.logger.Error("Ошибка обновления заявки POA",
				slog.String("request_id", requestID), slog.String("error", err.Error()))
			apierrors.InternalError(w, "не удалось обновить заявку")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("POA Request %s updated successfully.", requestID),
	})
}

// DeletePOARequest — DELETE /poa-requests/{request_id}.
// Удаляет заявку вместе с документами.
func (h *APIHandler) DeletePOARequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "request_id")

	if err := h.poaRequests.Delete(r.Context(), requestID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, fmt.Sprintf("заявка POA %s не найдена", requestID))
			return
		}
		h.logger.Error("Ошибка удаления заявки POA",
			slog.String("request_id", requestID), slog.String("error", err.Error()))
		apierrors.InternalError(w, "не удалось удалить заявку")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("POA Request %s deleted successfully.", requestID),
	})
}
