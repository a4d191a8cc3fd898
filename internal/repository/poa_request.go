package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/legatora/admin-backend/internal/domain/model"
)

// POARequestRepository — интерфейс доступа к таблицам poa_requests / poa_request_files.
type POARequestRepository interface {
	// List возвращает заявки, удовлетворяющие всем заданным фильтрам.
	List(ctx context.Context, filters POAListFilters) ([]*model.POARequest, error)
	// GetByRequestID возвращает заявку по внешнему идентификатору.
	GetByRequestID(ctx context.Context, requestID string) (*model.POARequest, error)
	// ListFiles возвращает документы заявки в порядке хранилища.
	ListFiles(ctx context.Context, requestID string) ([]*model.POAFile, error)
	// Create создаёт новую заявку.
	Create(ctx context.Context, req *model.POARequest) error
	// Update заменяет изменяемые поля заявки (идентификатор, дата подачи,
	// статус и агент не входят в путь общего обновления).
	Update(ctx context.Context, req *model.POARequest) error
	// Delete удаляет заявку вместе с документами в одной транзакции:
	// сначала дочерние записи, затем родительскую.
	Delete(ctx context.Context, requestID string) error
	// AddFile прикрепляет документ к заявке (загрузка документов —
	// внешний коллаборатор, REST-поверхности у этой операции нет).
	AddFile(ctx context.Context, f *model.POAFile) error
}

// POAListFilters — фильтры списка заявок POA.
// Значение nil, "" или "All" означает «без фильтра».
type POAListFilters struct {
	Category *string
	Status   *string
	// Search — поиск по подстроке в principal или assigned_agent
	Search *string
	// SortBy — newest, oldest или пусто (порядок хранилища)
	SortBy string
}

// poaRequestRepo — реализация POARequestRepository.
type poaRequestRepo struct {
	db DBTX
	tx *TxRunner
}

// NewPOARequestRepository создаёт репозиторий заявок POA.
func NewPOARequestRepository(pool *pgxpool.Pool) POARequestRepository {
	return &poaRequestRepo{db: pool, tx: NewTxRunner(pool)}
}

const poaColumns = `request_id, principal, category, submitted_date, assigned_agent,
		status, contact_info, address, expiration_date, description_of_power,
		created_at, updated_at`

// buildPOAWhere строит WHERE-условие и аргументы для фильтрации заявок.
func buildPOAWhere(filters POAListFilters, startArg int) (string, []any) {
	var conditions []string
	var args []any
	argNum := startArg

	if filterActive(filters.Category) {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argNum))
		args = append(args, *filters.Category)
		argNum++
	}
	if filterActive(filters.Status) {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, *filters.Status)
		argNum++
	}
	if filters.Search != nil && *filters.Search != "" {
		// Поиск по доверителю или назначенному агенту
		conditions = append(conditions,
			fmt.Sprintf("(principal ILIKE $%d OR assigned_agent ILIKE $%d)", argNum, argNum+1))
		term := "%" + *filters.Search + "%"
		args = append(args, term, term)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func (r *poaRequestRepo) List(ctx context.Context, filters POAListFilters) ([]*model.POARequest, error) {
	where, args := buildPOAWhere(filters, 1)

	query := fmt.Sprintf(`
		SELECT %s
		FROM poa_requests
		%s
		%s`, poaColumns, where, orderBySubmittedDate(filters.SortBy))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка заявок POA: %w", err)
	}
	defer rows.Close()

	var result []*model.POARequest
	for rows.Next() {
		req := &model.POARequest{}
		if err := scanPOARequest(rows, req); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки POA: %w", err)
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

func (r *poaRequestRepo) GetByRequestID(ctx context.Context, requestID string) (*model.POARequest, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM poa_requests
		WHERE request_id = $1`, poaColumns)

	req := &model.POARequest{}
	err := scanPOARequest(r.db.QueryRow(ctx, query, requestID), req)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки POA: %w", err)
	}
	return req, nil
}

func (r *poaRequestRepo) ListFiles(ctx context.Context, requestID string) ([]*model.POAFile, error) {
	// Порядок документов не задаётся — остаётся порядок хранилища
	query := `
		SELECT file_id, request_id, document_type, file_link, submitted_date
		FROM poa_request_files
		WHERE request_id = $1`

	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения документов заявки POA: %w", err)
	}
	defer rows.Close()

	var result []*model.POAFile
	for rows.Next() {
		f := &model.POAFile{}
		if err := rows.Scan(&f.FileID, &f.RequestID, &f.DocumentType, &f.FileLink, &f.SubmittedDate); err != nil {
			return nil, fmt.Errorf("ошибка сканирования документа POA: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *poaRequestRepo) Create(ctx context.Context, req *model.POARequest) error {
	query := `
		INSERT INTO poa_requests (request_id, principal, category, submitted_date,
			assigned_agent, status, contact_info, address, expiration_date, description_of_power)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		req.RequestID, req.Principal, req.Category, req.SubmittedDate,
		req.AssignedAgent, string(req.Status), req.ContactInfo, req.Address,
		req.ExpirationDate, req.DescriptionOfPower,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: request_id %s уже занят", ErrConflict, req.RequestID)
		}
		return fmt.Errorf("ошибка создания заявки POA: %w", err)
	}
	return nil
}

func (r *poaRequestRepo) Update(ctx context.Context, req *model.POARequest) error {
	// submitted_date, status и assigned_agent намеренно не обновляются
	query := `
		UPDATE poa_requests
		SET principal = $2, contact_info = $3, address = $4, category = $5,
			expiration_date = $6, description_of_power = $7
		WHERE request_id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		req.RequestID, req.Principal, req.ContactInfo, req.Address,
		req.Category, req.ExpirationDate, req.DescriptionOfPower,
	).Scan(&req.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления заявки POA: %w", err)
	}
	return nil
}

// Delete удаляет документы и заявку одной транзакцией.
// Порядок фиксирован: сначала дочерние записи, затем родительская —
// прерывание не оставляет осиротевших документов.
func (r *poaRequestRepo) Delete(ctx context.Context, requestID string) error {
	return r.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM poa_request_files WHERE request_id = $1`, requestID); err != nil {
			return fmt.Errorf("ошибка удаления документов заявки POA: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM poa_requests WHERE request_id = $1`, requestID)
		if err != nil {
			return fmt.Errorf("ошибка удаления заявки POA: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *poaRequestRepo) AddFile(ctx context.Context, f *model.POAFile) error {
	query := `
		INSERT INTO poa_request_files (request_id, document_type, file_link, submitted_date)
		VALUES ($1, $2, $3, $4)
		RETURNING file_id`

	err := r.db.QueryRow(ctx, query,
		f.RequestID, f.DocumentType, f.FileLink, f.SubmittedDate,
	).Scan(&f.FileID)
	if err != nil {
		return fmt.Errorf("ошибка прикрепления документа к заявке POA: %w", err)
	}
	return nil
}

// scanPOARequest сканирует строку в model.POARequest.
// Порядок полей соответствует poaColumns.
func scanPOARequest(row pgx.Row, req *model.POARequest) error {
	var status string
	err := row.Scan(
		&req.RequestID, &req.Principal, &req.Category, &req.SubmittedDate,
		&req.AssignedAgent, &status, &req.ContactInfo, &req.Address,
		&req.ExpirationDate, &req.DescriptionOfPower,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return err
	}
	req.Status = model.RequestStatus(status)
	return nil
}
