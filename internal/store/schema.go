package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const questionsTable = "questions"

const (
	colID                 = "id"
	colCategory           = "category"
	colSubCategory        = "sub_category"
	colNumber             = "question_number"
	colText               = "text"
	colOptionA            = "option_a"
	colOptionB            = "option_b"
	colOptionC            = "option_c"
	colOptionD            = "option_d"
	colCorrectAnswer      = "correct_answer"
	colImageName          = "image_name"
	colTimesAnswered      = "times_answered"
	colTimesCorrect       = "times_correct"
	colTimesChosenA       = "times_chosen_a"
	colTimesChosenB       = "times_chosen_b"
	colTimesChosenC       = "times_chosen_c"
	colTimesChosenD       = "times_chosen_d"
	colTimesCorrectRecent = "times_correct_recent"
)

var (
	// QuestionsColumns holds the columns for the "questions" table.
	QuestionsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colCategory, Type: field.TypeString},
		{Name: colSubCategory, Type: field.TypeString},
		{Name: colNumber, Type: field.TypeString, Default: ""},
		{Name: colText, Type: field.TypeString, Size: 2147483647},
		{Name: colOptionA, Type: field.TypeString, Size: 2147483647},
		{Name: colOptionB, Type: field.TypeString, Size: 2147483647},
		{Name: colOptionC, Type: field.TypeString, Size: 2147483647},
		{Name: colOptionD, Type: field.TypeString, Size: 2147483647},
		{Name: colCorrectAnswer, Type: field.TypeString},
		{Name: colImageName, Type: field.TypeString, Nullable: true},
		{Name: colTimesAnswered, Type: field.TypeInt, Default: 0},
		{Name: colTimesCorrect, Type: field.TypeInt, Default: 0},
		{Name: colTimesChosenA, Type: field.TypeInt, Default: 0},
		{Name: colTimesChosenB, Type: field.TypeInt, Default: 0},
		{Name: colTimesChosenC, Type: field.TypeInt, Default: 0},
		{Name: colTimesChosenD, Type: field.TypeInt, Default: 0},
		{Name: colTimesCorrectRecent, Type: field.TypeInt, Default: 0},
	}
	// QuestionsTable holds the schema information for the "questions" table.
	QuestionsTable = &schema.Table{
		Name:       questionsTable,
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "question_category_sub_category",
				Unique:  false,
				Columns: []*schema.Column{QuestionsColumns[1], QuestionsColumns[2]},
			},
			{
				Name:    "question_times_correct_recent",
				Unique:  false,
				Columns: []*schema.Column{QuestionsColumns[17]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		QuestionsTable,
	}
)

// questionColumns lists every column in scan order.
var questionColumns = []string{
	colID, colCategory, colSubCategory, colNumber, colText,
	colOptionA, colOptionB, colOptionC, colOptionD, colCorrectAnswer, colImageName,
	colTimesAnswered, colTimesCorrect,
	colTimesChosenA, colTimesChosenB, colTimesChosenC, colTimesChosenD,
	colTimesCorrectRecent,
}
