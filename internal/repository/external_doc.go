package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/legatora/admin-backend/internal/domain/model"
)

// ExternalDocRepository — интерфейс доступа к таблицам
// external_doc_verifications / external_doc_files.
type ExternalDocRepository interface {
	// List возвращает заявки на верификацию по заданным фильтрам.
	List(ctx context.Context, filters VerificationListFilters) ([]*model.ExternalDocVerification, error)
	// GetByRequestID возвращает заявку по внешнему идентификатору.
	GetByRequestID(ctx context.Context, requestID string) (*model.ExternalDocVerification, error)
	// ListFiles возвращает документы заявки в порядке хранилища.
	ListFiles(ctx context.Context, requestID string) ([]*model.ExternalDocFile, error)
	// Create создаёт новую заявку (используется внешним коллаборатором и тестами).
	Create(ctx context.Context, v *model.ExternalDocVerification) error
	// Update заменяет основные поля заявки, включая статус.
	Update(ctx context.Context, v *model.ExternalDocVerification) error
	// Delete удаляет заявку вместе с документами в одной транзакции.
	Delete(ctx context.Context, requestID string) error
	// AddFile прикрепляет документ к заявке.
	AddFile(ctx context.Context, f *model.ExternalDocFile) error
}

// VerificationListFilters — фильтры списка заявок на верификацию.
// Значение nil, "" или "All" означает «без фильтра».
type VerificationListFilters struct {
	Category *string
	Status   *string
	// SortBy — newest, oldest или пусто (порядок хранилища)
	SortBy string
}

// externalDocRepo — реализация ExternalDocRepository.
type externalDocRepo struct {
	db DBTX
	tx *TxRunner
}

// NewExternalDocRepository создаёт репозиторий заявок на верификацию.
func NewExternalDocRepository(pool *pgxpool.Pool) ExternalDocRepository {
	return &externalDocRepo{db: pool, tx: NewTxRunner(pool)}
}

const verificationColumns = `request_id, applicant, category, submitted_date,
		status, contact_info, address, created_at, updated_at`

// buildVerificationWhere строит WHERE-условие и аргументы для фильтрации заявок.
func buildVerificationWhere(filters VerificationListFilters, startArg int) (string, []any) {
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
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func (r *externalDocRepo) List(ctx context.Context, filters VerificationListFilters) ([]*model.ExternalDocVerification, error) {
	where, args := buildVerificationWhere(filters, 1)

	query := fmt.Sprintf(`
		SELECT %s
		FROM external_doc_verifications
		%s
		%s`, verificationColumns, where, orderBySubmittedDate(filters.SortBy))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка заявок на верификацию: %w", err)
	}
	defer rows.Close()

	var result []*model.ExternalDocVerification
	for rows.Next() {
		v := &model.ExternalDocVerification{}
		if err := scanVerification(rows, v); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки на верификацию: %w", err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *externalDocRepo) GetByRequestID(ctx context.Context, requestID string) (*model.ExternalDocVerification, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM external_doc_verifications
		WHERE request_id = $1`, verificationColumns)

	v := &model.ExternalDocVerification{}
	err := scanVerification(r.db.QueryRow(ctx, query, requestID), v)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки на верификацию: %w", err)
	}
	return v, nil
}

func (r *externalDocRepo) ListFiles(ctx context.Context, requestID string) ([]*model.ExternalDocFile, error) {
	query := `
		SELECT file_id, request_id, document_type, file_link, submitted_date,
			rejection_reason, comment
		FROM external_doc_files
		WHERE request_id = $1`

	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения документов заявки на верификацию: %w", err)
	}
	defer rows.Close()

	var result []*model.ExternalDocFile
	for rows.Next() {
		f := &model.ExternalDocFile{}
		if err := rows.Scan(&f.FileID, &f.RequestID, &f.DocumentType, &f.FileLink,
			&f.SubmittedDate, &f.RejectionReason, &f.Comment); err != nil {
			return nil, fmt.Errorf("ошибка сканирования документа верификации: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *externalDocRepo) Create(ctx context.Context, v *model.ExternalDocVerification) error {
	query := `
		INSERT INTO external_doc_verifications (request_id, applicant, category,
			submitted_date, status, contact_info, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		v.RequestID, v.Applicant, v.Category, v.SubmittedDate,
		string(v.Status), v.ContactInfo, v.Address,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: request_id %s уже занят", ErrConflict, v.RequestID)
		}
		return fmt.Errorf("ошибка создания заявки на верификацию: %w", err)
	}
	return nil
}

func (r *externalDocRepo) Update(ctx context.Context, v *model.ExternalDocVerification) error {
	// submitted_date намеренно не обновляется
	query := `
		UPDATE external_doc_verifications
		SET status = $2, category = $3, applicant = $4, contact_info = $5, address = $6
		WHERE request_id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		v.RequestID, string(v.Status), v.Category, v.Applicant, v.ContactInfo, v.Address,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления заявки на верификацию: %w", err)
	}
	return nil
}

// Delete удаляет документы и заявку одной транзакцией,
// сначала дочерние записи, затем родительскую.
func (r *externalDocRepo) Delete(ctx context.Context, requestID string) error {
	return r.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM external_doc_files WHERE request_id = $1`, requestID); err != nil {
			return fmt.Errorf("ошибка удаления документов заявки на верификацию: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM external_doc_verifications WHERE request_id = $1`, requestID)
		if err != nil {
			return fmt.Errorf("ошибка удаления заявки на верификацию: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *externalDocRepo) AddFile(ctx context.Context, f *model.ExternalDocFile) error {
	query := `
		INSERT INTO external_doc_files (request_id, document_type, file_link,
			submitted_date, rejection_reason, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING file_id`

	err := r.db.QueryRow(ctx, query,
		f.RequestID, f.DocumentType, f.FileLink, f.SubmittedDate,
		f.RejectionReason, f.Comment,
	).Scan(&f.FileID)
	if err != nil {
		return fmt.Errorf("ошибка прикрепления документа к заявке на верификацию: %w", err)
	}
	return nil
}

// scanVerification сканирует строку в model.ExternalDocVerification.
func scanVerification(row pgx.Row, v *model.ExternalDocVerification) error {
	var status string
	err := row.Scan(
		&v.RequestID, &v.Applicant, &v.Category, &v.SubmittedDate,
		&status, &v.ContactInfo, &v.Address, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	v.Status = model.RequestStatus(status)
	return nil
}
