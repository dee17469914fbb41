package repository

import (
	"context"
	"fmt"
	"time"

	"exam-api/internal/domain"
	"exam-api/internal/repository/models"
	"exam-api/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id "id",
		exam_id "exam_id",
		type "type",
		text "text",
		points "points",
		image_url "image_url",
		correct_answer "correct_answer",
		sample_answer "sample_answer",
		keywords "keywords",
		difficulty "difficulty",
		tags "tags",
		created_at "created_at",
		updated_at "updated_at"`

const optionColumns = `id "id",
		question_id "question_id",
		text "text",
		is_correct "is_correct",
		position "position"`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// ListQuestionsByExam returns the exam's questions in creation order, each with its options.
func (a *QuestionDatabaseAdapter) ListQuestionsByExam(ctx context.Context, examID string) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE exam_id = :1 ORDER BY created_at ASC, id ASC`
	if err := exec.SelectContext(ctx, &rows, query, examID); err != nil {
		return nil, classifyError(err, "list questions for exam "+examID)
	}
	if len(rows) == 0 {
		return []*domain.Question{}, nil
	}

	var optionRows []models.Option
	optionQuery := `SELECT ` + optionColumns + ` FROM options
	WHERE question_id IN (SELECT id FROM questions WHERE exam_id = :1)
	ORDER BY question_id, position`
	if err := exec.SelectContext(ctx, &optionRows, optionQuery, examID); err != nil {
		return nil, classifyError(err, "list options for exam "+examID)
	}

	byQuestion := make(map[string][]domain.Option, len(rows))
	for _, o := range optionRows {
		byQuestion[o.QuestionID] = append(byQuestion[o.QuestionID], toDomainOption(o))
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		q := toDomainQuestion(&rows[i])
		if opts, ok := byQuestion[q.ID]; ok {
			q.Options = opts
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var row models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = :1`
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		return nil, classifyError(err, "get question "+id)
	}

	var optionRows []models.Option
	optionQuery := `SELECT ` + optionColumns + ` FROM options WHERE question_id = :1 ORDER BY position`
	if err := exec.SelectContext(ctx, &optionRows, optionQuery, id); err != nil {
		return nil, classifyError(err, "get options for question "+id)
	}

	q := toDomainQuestion(&row)
	for _, o := range optionRows {
		q.Options = append(q.Options, toDomainOption(o))
	}
	return q, nil
}

// CreateQuestion inserts the question row followed by its options.
// Run it inside a transaction so a failing option leaves no orphan question.
func (a *QuestionDatabaseAdapter) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	now := time.Now().UTC()
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	question.CreatedAt = now
	question.UpdatedAt = now
	row := toModelQuestion(question)

	query := `INSERT INTO questions (
		id, exam_id, type, text, points, image_url, correct_answer,
		sample_answer, keywords, difficulty, tags, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13
	)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		row.ID,
		row.ExamID,
		row.Type,
		row.Text,
		row.Points,
		row.ImageURL,
		row.CorrectAnswer,
		row.SampleAnswer,
		row.Keywords,
		row.Difficulty,
		row.Tags,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return classifyError(err, "create question")
	}

	return a.insertOptions(ctx, question.ID, question.Options)
}

// UpdateQuestion writes the present columns and always bumps updated_at, so it
// doubles as the existence check when only the options change.
func (a *QuestionDatabaseAdapter) UpdateQuestion(ctx context.Context, id string, update domain.QuestionUpdate) error {
	set := newSetClause()
	if update.ExamID.Set {
		set.add("exam_id", update.ExamID.Value)
	}
	if update.Type.Set {
		set.add("type", update.Type.Value)
	}
	if update.Text.Set {
		set.add("text", update.Text.Value)
	}
	if update.Points.Set {
		set.add("points", update.Points.Value)
	}
	if update.ImageURL.Set {
		set.add("image_url", util.StringPtrToNullString(update.ImageURL.Value))
	}
	if update.CorrectAnswer.Set {
		set.add("correct_answer", util.StringPtrToNullString(update.CorrectAnswer.Value))
	}
	if update.SampleAnswer.Set {
		set.add("sample_answer", util.StringPtrToNullString(update.SampleAnswer.Value))
	}
	if update.Keywords.Set {
		set.add("keywords", models.StringSlice(update.Keywords.Value))
	}
	if update.Difficulty.Set {
		set.add("difficulty", util.StringPtrToNullString(update.Difficulty.Value))
	}
	if update.Tags.Set {
		set.add("tags", models.StringSlice(update.Tags.Value))
	}
	set.add("updated_at", time.Now().UTC())

	query, args := set.build("questions", id)
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, args...)
	if err != nil {
		return classifyError(err, "update question "+id)
	}
	return rowsAffectedOrNotFound(res, "update question "+id)
}

func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM questions WHERE id = :1`, id)
	if err != nil {
		return classifyError(err, "delete question "+id)
	}
	return rowsAffectedOrNotFound(res, "delete question "+id)
}

// ReplaceOptions swaps the whole option set. Callers provide the transaction.
func (a *QuestionDatabaseAdapter) ReplaceOptions(ctx context.Context, questionID string, options []domain.Option) error {
	if err := a.DeleteOptions(ctx, questionID); err != nil {
		return err
	}
	return a.insertOptions(ctx, questionID, options)
}

func (a *QuestionDatabaseAdapter) DeleteOptions(ctx context.Context, questionID string) error {
	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM options WHERE question_id = :1`, questionID)
	return classifyError(err, "delete options of question "+questionID)
}

// insertOptions stores options in slice order and fills in their ids.
func (a *QuestionDatabaseAdapter) insertOptions(ctx context.Context, questionID string, options []domain.Option) error {
	exec := GetExecutor(ctx, a.db)
	query := `INSERT INTO options (id, question_id, text, is_correct, position) VALUES (:1, :2, :3, :4, :5)`

	for i := range options {
		options[i].ID = util.NewULID()
		options[i].QuestionID = questionID
		_, err := exec.ExecContext(ctx, query,
			options[i].ID,
			questionID,
			options[i].Text,
			util.BoolToNumber(options[i].IsCorrect),
			i,
		)
		if err != nil {
			return classifyError(err, "create option for question "+questionID)
		}
	}
	return nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	keywords := []string(m.Keywords)
	if keywords == nil {
		keywords = []string{}
	}
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &domain.Question{
		ID:            m.ID,
		ExamID:        m.ExamID,
		Type:          m.Type,
		Text:          m.Text,
		Points:        m.Points,
		ImageURL:      util.NullStringToPtr(m.ImageURL),
		CorrectAnswer: util.NullStringToPtr(m.CorrectAnswer),
		SampleAnswer:  util.NullStringToPtr(m.SampleAnswer),
		Keywords:      keywords,
		Difficulty:    util.NullStringToPtr(m.Difficulty),
		Tags:          tags,
		Options:       []domain.Option{},
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:            q.ID,
		ExamID:        q.ExamID,
		Type:          q.Type,
		Text:          q.Text,
		Points:        q.Points,
		ImageURL:      util.StringPtrToNullString(q.ImageURL),
		CorrectAnswer: util.StringPtrToNullString(q.CorrectAnswer),
		SampleAnswer:  util.StringPtrToNullString(q.SampleAnswer),
		Keywords:      models.StringSlice(q.Keywords),
		Difficulty:    util.StringPtrToNullString(q.Difficulty),
		Tags:          models.StringSlice(q.Tags),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func toDomainOption(m models.Option) domain.Option {
	return domain.Option{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Text:       m.Text,
		IsCorrect:  m.IsCorrect != 0,
	}
}
