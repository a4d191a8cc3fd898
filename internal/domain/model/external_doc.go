package model

import "time"

// ExternalDocVerification — заявка на внешнюю верификацию документов.
// Хранится в таблице external_doc_verifications.
type ExternalDocVerification struct {
	// RequestID — внешний идентификатор заявки, неизменяемый
	RequestID string
	// Applicant — заявитель
	Applicant string
	// Category — категория документов
	Category string
	// SubmittedDate — дата подачи
	SubmittedDate time.Time
	// Status — статус верификации
	Status RequestStatus
	// ContactInfo — контактные данные заявителя
	ContactInfo string
	// Address — адрес заявителя
	Address string
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// ExternalDocFile — документ в заявке на верификацию.
// RejectionReason и Comment заполняются внешним процессом проверки
// только для отклонённых документов.
type ExternalDocFile struct {
	// FileID — идентификатор файла (последовательность БД)
	FileID int64
	// RequestID — внешний ключ на заявку
	RequestID string
	// DocumentType — тип документа
	DocumentType string
	// FileLink — ссылка на файл
	FileLink string
	// SubmittedDate — дата загрузки документа
	SubmittedDate time.Time
	// RejectionReason — причина отклонения (только для отклонённых)
	RejectionReason *string
	// Comment — комментарий проверяющего (только для отклонённых)
	Comment *string
}

// ExternalDocVerificationDetails — составное представление заявки:
// поля заявки плюс список документов.
type ExternalDocVerificationDetails struct {
	ExternalDocVerification
	Files []*ExternalDocFile
}
