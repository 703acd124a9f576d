package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/quizhub/internal/database"
	"github.com/example/quizhub/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	CourseID       int64  // Course the imported exercises belong to
	ExerciseColumn string // Column with the exercise title
	QuestionColumn string // Column with the question text
	TypeColumn     string // Column with the question type
	OptionsColumn  string // Column with pipe-separated answer options
	AnswerColumn   string // Column with the correct answer
	SheetName      string // Name of the sheet to import
	StartRow       int    // The row to start importing from (1-based index)
	OpenForPractice bool  // Whether created exercises accept practice right away
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		ExerciseColumn:  "A",
		QuestionColumn:  "B",
		TypeColumn:      "C",
		OptionsColumn:   "D",
		AnswerColumn:    "E",
		SheetName:       "Sheet1",
		StartRow:        2, // By default, start from the second row (skip header)
		OpenForPractice: true,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed   int
	ExercisesCreated int
	Created          int
	Updated          int
	Errors           []string
}

// ImportQuestions imports quiz questions from an Excel or CSV file
func ImportQuestions(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(ctx, config)
	}
	return importFromExcel(ctx, config)
}

// importFromExcel imports questions from an Excel file
func importFromExcel(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	importer, err := newImporter(ctx, config)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		importer.result.TotalProcessed++

		if err := importer.processRow(ctx, row); err != nil {
			importer.result.Errors = append(importer.result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return importer.result, nil
}

// importFromCSV imports questions from a CSV file
func importFromCSV(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	importer, err := newImporter(ctx, config)
	if err != nil {
		return nil, err
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		importer.result.TotalProcessed++

		if err := importer.processRow(ctx, row); err != nil {
			importer.result.Errors = append(importer.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return importer.result, nil
}

// importer carries the shared state of one import run
type importer struct {
	config       ImportConfig
	exerciseRepo *database.ExerciseRepository
	questionRepo *database.QuestionRepository
	exerciseMap  map[string]int64 // lowercased title -> id
	result       *ImportResult
}

func newImporter(ctx context.Context, config ImportConfig) (*importer, error) {
	// Importing into a missing course would only fail row by row later
	if _, err := database.NewCourseRepository().GetByID(ctx, config.CourseID); err != nil {
		return nil, err
	}

	exerciseRepo := database.NewExerciseRepository()

	// Map existing exercise titles to IDs for quick lookup
	existing, err := exerciseRepo.GetByCourse(ctx, config.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing exercises: %v", err)
	}
	exerciseMap := make(map[string]int64, len(existing))
	for _, exercise := range existing {
		exerciseMap[strings.ToLower(exercise.Title)] = exercise.ID
	}

	return &importer{
		config:       config,
		exerciseRepo: exerciseRepo,
		questionRepo: database.NewQuestionRepository(),
		exerciseMap:  exerciseMap,
		result:       &ImportResult{Errors: make([]string, 0)},
	}, nil
}

// processRow imports a single spreadsheet row
func (im *importer) processRow(ctx context.Context, row []string) error {
	exerciseTitle := cellValue(row, im.config.ExerciseColumn)
	questionText := cellValue(row, im.config.QuestionColumn)
	questionType := cellValue(row, im.config.TypeColumn)
	optionsRaw := cellValue(row, im.config.OptionsColumn)
	correctAnswer := cellValue(row, im.config.AnswerColumn)

	if exerciseTitle == "" {
		return fmt.Errorf("exercise title cannot be empty")
	}
	if questionText == "" {
		return fmt.Errorf("question text cannot be empty")
	}
	if questionType == "" {
		questionType = models.QuestionTypeShortAnswer
	}

	options, err := models.EncodeOptions(ParseOptions(optionsRaw))
	if err != nil {
		return fmt.Errorf("failed to encode options: %v", err)
	}
	if questionType == models.QuestionTypeMultipleChoice && options == "" {
		return fmt.Errorf("multiple choice question needs options")
	}

	exerciseID, err := im.getOrCreateExercise(ctx, exerciseTitle)
	if err != nil {
		return err
	}

	existing, err := im.questionRepo.GetByTextAndExercise(ctx, questionText, exerciseID)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.QuestionType = questionType
		existing.Options = options
		existing.CorrectAnswer = correctAnswer
		if err := im.questionRepo.Update(ctx, existing); err != nil {
			return err
		}
		im.result.Updated++
		return nil
	}

	question := &models.QuizQuestion{
		ExerciseID:    exerciseID,
		Text:          questionText,
		QuestionType:  questionType,
		Options:       options,
		CorrectAnswer: correctAnswer,
	}
	if err := im.questionRepo.Create(ctx, question); err != nil {
		return err
	}
	im.result.Created++
	return nil
}

// getOrCreateExercise returns the exercise ID for a title, creating the
// exercise when it doesn't exist yet
func (im *importer) getOrCreateExercise(ctx context.Context, title string) (int64, error) {
	key := strings.ToLower(strings.TrimSpace(title))
	if id, exists := im.exerciseMap[key]; exists {
		return id, nil
	}

	exercise := &models.QuizExercise{
		CourseID:          im.config.CourseID,
		Title:             strings.TrimSpace(title),
		IsOpenForPractice: im.config.OpenForPractice,
	}
	if err := im.exerciseRepo.Create(ctx, exercise); err != nil {
		return 0, fmt.Errorf("failed to create exercise: %v", err)
	}

	im.exerciseMap[key] = exercise.ID
	im.result.ExercisesCreated++
	return exercise.ID, nil
}

// ParseOptions splits a pipe-separated option cell ("Paris|London|Berlin")
// into trimmed, non-empty options.
func ParseOptions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	options := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	return options
}

// cellValue reads a column (by Excel letter) from a row, empty when out of
// bounds
func cellValue(row []string, column string) string {
	if column == "" {
		return ""
	}
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
