package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exam-api/internal/domain"
	"exam-api/internal/repository/models"
	"exam-api/internal/util"

	"github.com/jmoiron/sqlx"
)

// Oracle folds unquoted identifiers to upper case, so every column is aliased
// back to the lower-case name the db tags use.
const examColumns = `id "id",
		title "title",
		description "description",
		code "code",
		duration "duration",
		start_time "start_time",
		end_time "end_time",
		is_active "is_active",
		created_at "created_at",
		updated_at "updated_at"`

// ExamDatabaseAdapter implements domain.ExamRepository using sqlx.DB
type ExamDatabaseAdapter struct {
	db *sqlx.DB
}

func NewExamDatabaseAdapter(db *sqlx.DB) domain.ExamRepository {
	return &ExamDatabaseAdapter{db: db}
}

func (a *ExamDatabaseAdapter) ListExams(ctx context.Context) ([]*domain.Exam, error) {
	var rows []models.Exam
	query := `SELECT ` + examColumns + ` FROM exams ORDER BY created_at DESC`

	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, classifyError(err, "list exams")
	}
	return toDomainExams(rows), nil
}

func (a *ExamDatabaseAdapter) ListExamsByCode(ctx context.Context, code string) ([]*domain.Exam, error) {
	var rows []models.Exam
	query := `SELECT ` + examColumns + ` FROM exams WHERE code = :1 ORDER BY created_at DESC`

	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, code); err != nil {
		return nil, classifyError(err, "list exams by code")
	}
	return toDomainExams(rows), nil
}

func (a *ExamDatabaseAdapter) GetExamByID(ctx context.Context, id string) (*domain.Exam, error) {
	var row models.Exam
	query := `SELECT ` + examColumns + ` FROM exams WHERE id = :1`

	if err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, id); err != nil {
		return nil, classifyError(err, "get exam "+id)
	}
	return toDomainExam(&row), nil
}

// CreateExam assigns the id and timestamps before inserting.
func (a *ExamDatabaseAdapter) CreateExam(ctx context.Context, exam *domain.Exam) error {
	if exam == nil {
		return fmt.Errorf("cannot save nil exam")
	}
	now := time.Now().UTC()
	if exam.ID == "" {
		exam.ID = util.NewULID()
	}
	exam.CreatedAt = now
	exam.UpdatedAt = now
	row := toModelExam(exam)

	query := `INSERT INTO exams (
		id, title, description, code, duration,
		start_time, end_time, is_active, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10
	)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		row.ID,
		row.Title,
		row.Description,
		row.Code,
		row.Duration,
		row.StartTime,
		row.EndTime,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
	return classifyError(err, "create exam")
}

// UpdateExam writes only the columns present in update.
func (a *ExamDatabaseAdapter) UpdateExam(ctx context.Context, id string, update domain.ExamUpdate) error {
	set := newSetClause()
	if update.Title.Set {
		set.add("title", update.Title.Value)
	}
	if update.Description.Set {
		set.add("description", update.Description.Value)
	}
	if update.Code.Set {
		set.add("code", update.Code.Value)
	}
	if update.Duration.Set {
		set.add("duration", update.Duration.Value)
	}
	if update.StartTime.Set {
		set.add("start_time", update.StartTime.Value)
	}
	if update.EndTime.Set {
		set.add("end_time", update.EndTime.Value)
	}
	if update.IsActive.Set {
		set.add("is_active", util.BoolToNumber(update.IsActive.Value))
	}
	set.add("updated_at", time.Now().UTC())

	query, args := set.build("exams", id)
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, args...)
	if err != nil {
		return classifyError(err, "update exam "+id)
	}
	return rowsAffectedOrNotFound(res, "update exam "+id)
}

func (a *ExamDatabaseAdapter) DeleteExam(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM exams WHERE id = :1`, id)
	if err != nil {
		return classifyError(err, "delete exam "+id)
	}
	return rowsAffectedOrNotFound(res, "delete exam "+id)
}

// setClause accumulates "col = :n" pairs with Oracle positional binds.
type setClause struct {
	columns []string
	args    []interface{}
}

func newSetClause() *setClause {
	return &setClause{}
}

func (s *setClause) add(column string, value interface{}) {
	s.args = append(s.args, value)
	s.columns = append(s.columns, fmt.Sprintf("%s = :%d", column, len(s.args)))
}

// build appends the id bind and returns the full UPDATE statement.
func (s *setClause) build(table, id string) (string, []interface{}) {
	args := append(s.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = :%d", table, strings.Join(s.columns, ", "), len(args))
	return query, args
}

func toDomainExam(m *models.Exam) *domain.Exam {
	if m == nil {
		return nil
	}
	return &domain.Exam{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Code:        m.Code,
		Duration:    m.Duration,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		IsActive:    m.IsActive != 0,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainExams(rows []models.Exam) []*domain.Exam {
	exams := make([]*domain.Exam, 0, len(rows))
	for i := range rows {
		exams = append(exams, toDomainExam(&rows[i]))
	}
	return exams
}

func toModelExam(e *domain.Exam) *models.Exam {
	if e == nil {
		return nil
	}
	return &models.Exam{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Code:        e.Code,
		Duration:    e.Duration,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		IsActive:    util.BoolToNumber(e.IsActive),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
