package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"exam-api/internal/domain"
	"exam-api/internal/repository/models"
	"exam-api/internal/util"

	"github.com/jmoiron/sqlx"
)

const resultColumns = `id "id",
		exam_id "exam_id",
		student_name "student_name",
		score "score",
		correct_count "correct_count",
		total_questions "total_questions",
		grading_status "grading_status",
		submitted_at "submitted_at"`

const answerColumns = `id "id",
		result_id "result_id",
		question_id "question_id",
		answer "answer",
		manual_grade "manual_grade",
		feedback "feedback",
		grading_status "grading_status"`

// ResultDatabaseAdapter implements domain.ResultRepository using sqlx.DB
type ResultDatabaseAdapter struct {
	db *sqlx.DB
}

func NewResultDatabaseAdapter(db *sqlx.DB) domain.ResultRepository {
	return &ResultDatabaseAdapter{db: db}
}

// ListResultsByExam returns results newest first, each with its answers.
func (a *ResultDatabaseAdapter) ListResultsByExam(ctx context.Context, examID string) ([]*domain.ExamResult, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.ExamResult
	query := `SELECT ` + resultColumns + ` FROM exam_results WHERE exam_id = :1 ORDER BY submitted_at DESC, id DESC`
	if err := exec.SelectContext(ctx, &rows, query, examID); err != nil {
		return nil, classifyError(err, "list results for exam "+examID)
	}
	if len(rows) == 0 {
		return []*domain.ExamResult{}, nil
	}

	var answerRows []models.Answer
	answerQuery := `SELECT ` + answerColumns + ` FROM answers
	WHERE result_id IN (SELECT id FROM exam_results WHERE exam_id = :1)
	ORDER BY result_id, id`
	if err := exec.SelectContext(ctx, &answerRows, answerQuery, examID); err != nil {
		return nil, classifyError(err, "list answers for exam "+examID)
	}

	byResult := make(map[string][]domain.Answer, len(rows))
	for _, ans := range answerRows {
		byResult[ans.ResultID] = append(byResult[ans.ResultID], toDomainAnswer(ans))
	}

	results := make([]*domain.ExamResult, 0, len(rows))
	for i := range rows {
		r := toDomainResult(&rows[i])
		if answers, ok := byResult[r.ID]; ok {
			r.Answers = answers
		}
		results = append(results, r)
	}
	return results, nil
}

func (a *ResultDatabaseAdapter) GetResultByID(ctx context.Context, id string) (*domain.ExamResult, error) {
	exec := GetExecutor(ctx, a.db)

	var row models.ExamResult
	query := `SELECT ` + resultColumns + ` FROM exam_results WHERE id = :1`
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		return nil, classifyError(err, "get result "+id)
	}

	var answerRows []models.Answer
	answerQuery := `SELECT ` + answerColumns + ` FROM answers WHERE result_id = :1 ORDER BY id`
	if err := exec.SelectContext(ctx, &answerRows, answerQuery, id); err != nil {
		return nil, classifyError(err, "get answers for result "+id)
	}

	r := toDomainResult(&row)
	for _, ans := range answerRows {
		r.Answers = append(r.Answers, toDomainAnswer(ans))
	}
	return r, nil
}

// ResultExists checks for the row without loading answers. Inside a
// transaction the row stays locked until commit.
func (a *ResultDatabaseAdapter) ResultExists(ctx context.Context, id string) (bool, error) {
	var found string
	query := `SELECT id FROM exam_results WHERE id = :1 FOR UPDATE`
	err := GetExecutor(ctx, a.db).GetContext(ctx, &found, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, classifyError(err, "check result "+id)
	}
	return true, nil
}

func (a *ResultDatabaseAdapter) CreateResult(ctx context.Context, result *domain.ExamResult) error {
	if result == nil {
		return fmt.Errorf("cannot save nil result")
	}
	if result.ID == "" {
		result.ID = util.NewULID()
	}
	if result.SubmittedAt.IsZero() {
		result.SubmittedAt = time.Now().UTC()
	}
	row := toModelResult(result)

	query := `INSERT INTO exam_results (
		id, exam_id, student_name, score, correct_count,
		total_questions, grading_status, submitted_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		row.ID,
		row.ExamID,
		row.StudentName,
		row.Score,
		row.CorrectCount,
		row.TotalQuestions,
		row.GradingStatus,
		row.SubmittedAt,
	)
	return classifyError(err, "create result")
}

// CreateAnswers inserts answers in order and fills in their ids. A repeated
// question id hits the (question_id, result_id) unique index.
func (a *ResultDatabaseAdapter) CreateAnswers(ctx context.Context, resultID string, answers []domain.Answer) error {
	exec := GetExecutor(ctx, a.db)
	query := `INSERT INTO answers (
		id, result_id, question_id, answer, manual_grade, feedback, grading_status
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7
	)`

	for i := range answers {
		answers[i].ID = util.NewULID()
		answers[i].ResultID = resultID
		row := toModelAnswer(&answers[i])
		_, err := exec.ExecContext(ctx, query,
			row.ID,
			row.ResultID,
			row.QuestionID,
			row.Answer,
			row.ManualGrade,
			row.Feedback,
			row.GradingStatus,
		)
		if err != nil {
			return classifyError(err, "create answer for result "+resultID)
		}
	}
	return nil
}

// UpdateResultSummary writes score and grading status when present.
func (a *ResultDatabaseAdapter) UpdateResultSummary(ctx context.Context, id string, update domain.GradingUpdate) error {
	set := newSetClause()
	if update.Score.Set {
		set.add("score", update.Score.Value)
	}
	if update.GradingStatus.Set {
		set.add("grading_status", util.StringPtrToNullString(update.GradingStatus.Value))
	}
	if len(set.columns) == 0 {
		return nil
	}

	query, args := set.build("exam_results", id)
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, args...)
	if err != nil {
		return classifyError(err, "update result "+id)
	}
	return rowsAffectedOrNotFound(res, "update result "+id)
}

func (a *ResultDatabaseAdapter) SetManualGrade(ctx context.Context, resultID, questionID string, grade *float64) (int64, error) {
	query := `UPDATE answers SET manual_grade = :1 WHERE question_id = :2 AND result_id = :3`
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, util.FloatPtrToNullFloat(grade), questionID, resultID)
	if err != nil {
		return 0, classifyError(err, "grade answer "+questionID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classifyError(err, "grade answer "+questionID)
	}
	return n, nil
}

func (a *ResultDatabaseAdapter) DeleteAnswers(ctx context.Context, resultID string) error {
	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM answers WHERE result_id = :1`, resultID)
	return classifyError(err, "delete answers of result "+resultID)
}

func (a *ResultDatabaseAdapter) DeleteResult(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM exam_results WHERE id = :1`, id)
	if err != nil {
		return classifyError(err, "delete result "+id)
	}
	return rowsAffectedOrNotFound(res, "delete result "+id)
}

func toDomainResult(m *models.ExamResult) *domain.ExamResult {
	if m == nil {
		return nil
	}
	return &domain.ExamResult{
		ID:             m.ID,
		ExamID:         m.ExamID,
		StudentName:    m.StudentName,
		Score:          m.Score,
		CorrectCount:   m.CorrectCount,
		TotalQuestions: m.TotalQuestions,
		GradingStatus:  util.NullStringToPtr(m.GradingStatus),
		SubmittedAt:    m.SubmittedAt,
		Answers:        []domain.Answer{},
	}
}

func toModelResult(r *domain.ExamResult) *models.ExamResult {
	return &models.ExamResult{
		ID:             r.ID,
		ExamID:         r.ExamID,
		StudentName:    r.StudentName,
		Score:          r.Score,
		CorrectCount:   r.CorrectCount,
		TotalQuestions: r.TotalQuestions,
		GradingStatus:  util.StringPtrToNullString(r.GradingStatus),
		SubmittedAt:    r.SubmittedAt,
	}
}

func toDomainAnswer(m models.Answer) domain.Answer {
	return domain.Answer{
		ID:            m.ID,
		ResultID:      m.ResultID,
		QuestionID:    m.QuestionID,
		Answer:        m.Answer.String,
		ManualGrade:   util.NullFloatToPtr(m.ManualGrade),
		Feedback:      util.NullStringToPtr(m.Feedback),
		GradingStatus: util.NullStringToPtr(m.GradingStatus),
	}
}

// toModelAnswer stores an empty answer as NULL. Oracle does not distinguish the two.
func toModelAnswer(a *domain.Answer) *models.Answer {
	answer := a.Answer
	return &models.Answer{
		ID:            a.ID,
		ResultID:      a.ResultID,
		QuestionID:    a.QuestionID,
		Answer:        util.StringPtrToNullString(emptyToNil(&answer)),
		ManualGrade:   util.FloatPtrToNullFloat(a.ManualGrade),
		Feedback:      util.StringPtrToNullString(a.Feedback),
		GradingStatus: util.StringPtrToNullString(a.GradingStatus),
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
