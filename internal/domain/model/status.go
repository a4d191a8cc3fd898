// status.go — статусы заявок и конечный автомат переходов.
//
// Жизненный цикл заявки: Pending → {Active, Verified, Rejected}.
// Active/Verified/Rejected — конечные статусы, переходы из них запрещены.
// Повторная установка текущего статуса допустима (идемпотентное обновление).
package model

import "fmt"

// RequestStatus — статус заявки (POA или внешней верификации документов).
type RequestStatus string

const (
	// StatusPending — заявка подана, ожидает рассмотрения (статус по умолчанию)
	StatusPending RequestStatus = "Pending"
	// StatusActive — заявка POA одобрена и действует
	StatusActive RequestStatus = "Active"
	// StatusVerified — документы прошли внешнюю верификацию
	StatusVerified RequestStatus = "Verified"
	// StatusRejected — заявка отклонена
	StatusRejected RequestStatus = "Rejected"
)

// validStatusTransitions — матрица допустимых переходов.
// Ключ — текущий статус, значение — набор допустимых целевых статусов.
var validStatusTransitions = map[RequestStatus]map[RequestStatus]bool{
	StatusPending:  {StatusActive: true, StatusVerified: true, StatusRejected: true},
	StatusActive:   {},
	StatusVerified: {},
	StatusRejected: {},
}

// ParseRequestStatus преобразует строку в RequestStatus.
// Возвращает ошибку для недопустимых значений.
func ParseRequestStatus(s string) (RequestStatus, error) {
	st := RequestStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("недопустимый статус: %q, допустимые: Pending, Active, Verified, Rejected", s)
	}
	return st, nil
}

// Valid проверяет, является ли значение допустимым статусом.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusVerified, StatusRejected:
		return true
	default:
		return false
	}
}

// CanTransitionTo проверяет, допустим ли переход в указанный статус.
// Переход в текущий статус (s == target) всегда допустим.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	if !target.Valid() {
		return false
	}
	if s == target {
		return true
	}
	transitions, ok := validStatusTransitions[s]
	if !ok {
		return false
	}
	return transitions[target]
}
