package models

import (
	"database/sql"
	"time"
)

// Question maps a row of the questions table
type Question struct {
	ID            string         `db:"id"`
	ExamID        string         `db:"exam_id"`
	Type          string         `db:"type"`
	Text          string         `db:"text"`
	Points        int            `db:"points"`
	ImageURL      sql.NullString `db:"image_url"`
	CorrectAnswer sql.NullString `db:"correct_answer"`
	SampleAnswer  sql.NullString `db:"sample_answer"`
	Keywords      StringSlice    `db:"keywords"`
	Difficulty    sql.NullString `db:"difficulty"`
	Tags          StringSlice    `db:"tags"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Option maps a row of the options table
type Option struct {
	ID         string `db:"id"`
	QuestionID string `db:"question_id"`
	Text       string `db:"text"`
	IsCorrect  int    `db:"is_correct"`
	Position   int    `db:"position"`
}
