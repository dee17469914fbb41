package models

import (
	"database/sql"
	"time"
)

// ExamResult maps a row of the exam_results table
type ExamResult struct {
	ID             string         `db:"id"`
	ExamID         string         `db:"exam_id"`
	StudentName    string         `db:"student_name"`
	Score          float64        `db:"score"`
	CorrectCount   int            `db:"correct_count"`
	TotalQuestions int            `db:"total_questions"`
	GradingStatus  sql.NullString `db:"grading_status"`
	SubmittedAt    time.Time      `db:"submitted_at"`
}

// Answer maps a row of the answers table
type Answer struct {
	ID            string          `db:"id"`
	ResultID      string          `db:"result_id"`
	QuestionID    string          `db:"question_id"`
	Answer        sql.NullString  `db:"answer"`
	ManualGrade   sql.NullFloat64 `db:"manual_grade"`
	Feedback      sql.NullString  `db:"feedback"`
	GradingStatus sql.NullString  `db:"grading_status"`
}
