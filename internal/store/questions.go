package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mcqtrainer/internal/question"
)

// DefaultLimit caps the number of rows returned by random-order queries.
const DefaultLimit = 1000

// Query describes a filtered read of the question bank. Zero values
// disable the corresponding predicate.
type Query struct {
	Category    string
	SubCategory string

	// WeakBelow keeps questions whose recent streak is below this value.
	WeakBelow int

	// Unanswered keeps questions that were never answered.
	Unanswered bool

	// Incorrect keeps questions answered wrong at least once.
	Incorrect bool

	// Random orders the result with RANDOM() instead of by id.
	Random bool

	// Limit caps the result size. Zero means no limit.
	Limit int
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (s *Store) selectQuestions() *entsql.Selector {
	b := builder()
	return b.Select(questionColumns...).From(b.Table(questionsTable))
}

// Get returns the question with the given id.
func (s *Store) Get(ctx context.Context, id int) (question.Question, error) {
	return getQuestion(ctx, s.db, id)
}

func getQuestion(ctx context.Context, q queryer, id int) (question.Question, error) {
	b := builder()
	query, args := b.Select(questionColumns...).
		From(b.Table(questionsTable)).
		Where(entsql.EQ(colID, id)).
		Query()
	qs, err := scanQuestions(ctx, q, query, args)
	if err != nil {
		return question.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	if len(qs) == 0 {
		return question.Question{}, fmt.Errorf("get question %d: %w", id, ErrNotFound)
	}
	return qs[0], nil
}

// All returns every question ordered by id.
func (s *Store) All(ctx context.Context) ([]question.Question, error) {
	query, args := s.selectQuestions().OrderBy(colID).Query()
	qs, err := scanQuestions(ctx, s.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return qs, nil
}

// Find returns the questions matching q.
func (s *Store) Find(ctx context.Context, q Query) ([]question.Question, error) {
	sel := s.selectQuestions()
	if q.Category != "" {
		sel.Where(entsql.EQ(colCategory, q.Category))
	}
	if q.SubCategory != "" {
		sel.Where(entsql.EQ(colSubCategory, q.SubCategory))
	}
	if q.WeakBelow > 0 {
		sel.Where(entsql.LT(colTimesCorrectRecent, q.WeakBelow))
	}
	if q.Unanswered {
		sel.Where(entsql.EQ(colTimesAnswered, 0))
	}
	if q.Incorrect {
		sel.Where(entsql.And(
			entsql.GT(colTimesAnswered, 0),
			entsql.ColumnsLT(colTimesCorrect, colTimesAnswered),
		))
	}
	if q.Random {
		sel.OrderExpr(entsql.Expr("RANDOM()"))
	} else {
		sel.OrderBy(colID)
	}
	if q.Limit > 0 {
		sel.Limit(q.Limit)
	}

	query, args := sel.Query()
	qs, err := scanQuestions(ctx, s.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	return qs, nil
}

// InsertBatch inserts all questions in a single transaction and returns
// them with their assigned ids. Incoming ids are ignored.
func (s *Store) InsertBatch(ctx context.Context, qs []question.Question) ([]question.Question, error) {
	out := make([]question.Question, 0, len(qs))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, q := range qs {
			query, args := builder().Insert(questionsTable).
				Columns(questionColumns[1:]...).
				Values(insertValues(q)...).
				Query()
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			q.ID = int(id)
			out = append(out, q)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert questions: %w", err)
	}
	return out, nil
}

// Update writes every field of q back to its row.
func (s *Store) Update(ctx context.Context, q question.Question) error {
	if err := updateQuestion(ctx, s.db, q); err != nil {
		return fmt.Errorf("update question %d: %w", q.ID, err)
	}
	return nil
}

// Mutate reads the live row for id, applies fn and writes the result back
// in one transaction. The stored question is returned.
func (s *Store) Mutate(ctx context.Context, id int, fn func(question.Question) question.Question) (question.Question, error) {
	var updated question.Question
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cur, err := getQuestion(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = fn(cur)
		updated.ID = cur.ID
		return updateQuestion(ctx, tx, updated)
	})
	if err != nil {
		return question.Question{}, fmt.Errorf("mutate question %d: %w", id, err)
	}
	return updated, nil
}

func updateQuestion(ctx context.Context, q queryer, qu question.Question) error {
	query, args := builder().Update(questionsTable).
		Set(colCategory, qu.Category).
		Set(colSubCategory, qu.SubCategory).
		Set(colNumber, qu.Number).
		Set(colText, qu.Text).
		Set(colOptionA, qu.OptionA).
		Set(colOptionB, qu.OptionB).
		Set(colOptionC, qu.OptionC).
		Set(colOptionD, qu.OptionD).
		Set(colCorrectAnswer, qu.CorrectAnswer).
		Set(colImageName, nullString(qu.ImageName)).
		Set(colTimesAnswered, qu.TimesAnswered).
		Set(colTimesCorrect, qu.TimesCorrect).
		Set(colTimesChosenA, qu.TimesChosenA).
		Set(colTimesChosenB, qu.TimesChosenB).
		Set(colTimesChosenC, qu.TimesChosenC).
		Set(colTimesChosenD, qu.TimesChosenD).
		Set(colTimesCorrectRecent, qu.TimesCorrectRecent).
		Where(entsql.EQ(colID, qu.ID)).
		Query()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetStats zeroes every counter of the questions in the given
// category / sub-category pair and returns the number of rows touched.
func (s *Store) ResetStats(ctx context.Context, category, subCategory string) (int, error) {
	query, args := builder().Update(questionsTable).
		Set(colTimesAnswered, 0).
		Set(colTimesCorrect, 0).
		Set(colTimesChosenA, 0).
		Set(colTimesChosenB, 0).
		Set(colTimesChosenC, 0).
		Set(colTimesChosenD, 0).
		Set(colTimesCorrectRecent, 0).
		Where(entsql.And(
			entsql.EQ(colCategory, category),
			entsql.EQ(colSubCategory, subCategory),
		)).
		Query()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset stats %s/%s: %w", category, subCategory, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset stats %s/%s: %w", category, subCategory, err)
	}
	return int(n), nil
}

// DeleteAll removes every question.
func (s *Store) DeleteAll(ctx context.Context) error {
	query, args := builder().Delete(questionsTable).Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	return nil
}

// Count returns the number of stored questions.
func (s *Store) Count(ctx context.Context) (int, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).From(b.Table(questionsTable)).Query()
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// Categories returns the distinct categories in lexicographic order.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	b := builder()
	query, args := b.Select(colCategory).Distinct().
		From(b.Table(questionsTable)).
		OrderBy(colCategory).
		Query()
	out, err := scanStrings(ctx, s.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// SubCategories returns the distinct sub-categories of category.
func (s *Store) SubCategories(ctx context.Context, category string) ([]string, error) {
	b := builder()
	query, args := b.Select(colSubCategory).Distinct().
		From(b.Table(questionsTable)).
		Where(entsql.EQ(colCategory, category)).
		OrderBy(colSubCategory).
		Query()
	out, err := scanStrings(ctx, s.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("list sub-categories of %s: %w", category, err)
	}
	return out, nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
		return err
	}
	return tx.Commit()
}

func insertValues(q question.Question) []any {
	return []any{
		q.Category, q.SubCategory, q.Number, q.Text,
		q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer, nullString(q.ImageName),
		q.TimesAnswered, q.TimesCorrect,
		q.TimesChosenA, q.TimesChosenB, q.TimesChosenC, q.TimesChosenD,
		q.TimesCorrectRecent,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanQuestions(ctx context.Context, q queryer, query string, args []any) ([]question.Question, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []question.Question
	for rows.Next() {
		var (
			qu    question.Question
			image sql.NullString
		)
		if err := rows.Scan(
			&qu.ID, &qu.Category, &qu.SubCategory, &qu.Number, &qu.Text,
			&qu.OptionA, &qu.OptionB, &qu.OptionC, &qu.OptionD, &qu.CorrectAnswer, &image,
			&qu.TimesAnswered, &qu.TimesCorrect,
			&qu.TimesChosenA, &qu.TimesChosenB, &qu.TimesChosenC, &qu.TimesChosenD,
			&qu.TimesCorrectRecent,
		); err != nil {
			return nil, err
		}
		qu.ImageName = image.String
		out = append(out, qu)
	}
	return out, rows.Err()
}

func scanStrings(ctx context.Context, q queryer, query string, args []any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
