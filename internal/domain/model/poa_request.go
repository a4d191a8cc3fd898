package model

import "time"

// POARequest — заявка на оформление доверенности (Power of Attorney).
// Хранится в таблице poa_requests. Суррогатный ключ таблицы наружу не выходит,
// внешний идентификатор — RequestID (формат POA-XXXXXXXX).
type POARequest struct {
	// RequestID — внешний идентификатор заявки, неизменяемый
	RequestID string
	// Principal — доверитель (ФИО заявителя)
	Principal string
	// Category — категория доверенности (Property, Medical, ...)
	Category string
	// SubmittedDate — дата подачи, назначается сервером при создании
	SubmittedDate time.Time
	// AssignedAgent — назначенный агент (маркер из конфигурации, пока не назначен)
	AssignedAgent string
	// Status — статус заявки
	Status RequestStatus
	// ContactInfo — контактные данные заявителя
	ContactInfo string
	// Address — адрес заявителя
	Address string
	// ExpirationDate — дата окончания действия доверенности (опционально)
	ExpirationDate *time.Time
	// DescriptionOfPower — описание передаваемых полномочий
	DescriptionOfPower string
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// POAFile — документ, приложенный к заявке POA.
// Хранится в таблице poa_request_files, идентификатор назначается хранилищем.
type POAFile struct {
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
}

// POARequestDetails — составное представление заявки: поля заявки
// плюс список приложенных документов.
type POARequestDetails struct {
	POARequest
	Files []*POAFile
}
