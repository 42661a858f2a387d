// Package questions loads the clue archive that boards and final rounds draw
// from. The archive is a CSV export of historical episodes; rows with type J
// or DJ form five-row categories, rows with type FJ form the final-round
// pool. Malformed rows and incomplete categories are skipped, not fatal: a
// partial archive still makes a playable game.
package questions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/quizshow/internal/board"
	"github.com/lox/quizshow/internal/game"
)

var (
	ErrNoCategories = errors.New("questions: no categories loaded")
	ErrNoFinals     = errors.New("questions: no final questions loaded")
)

// Store is an immutable in-memory question pool. Draws take the caller's
// generator, so the store itself is safe for concurrent use.
type Store struct {
	categories []board.Category
	finals     []game.FinalQuestion
	minYear    int
	maxYear    int
	ddRows     [board.CategoryHeight]int
}

var _ game.QuestionSource = (*Store)(nil)

// New builds a store from already-assembled material. The year span is
// derived from the categories.
func New(categories []board.Category, finals []game.FinalQuestion) *Store {
	s := &Store{categories: categories, finals: finals}
	for i, cat := range categories {
		if i == 0 || cat.AirYear < s.minYear {
			s.minYear = cat.AirYear
		}
		if cat.AirYear > s.maxYear {
			s.maxYear = cat.AirYear
		}
	}
	return s
}

// RandomCategory draws one category uniformly.
func (s *Store) RandomCategory(rng *rand.Rand) (board.Category, error) {
	if len(s.categories) == 0 {
		return board.Category{}, ErrNoCategories
	}
	return s.categories[rng.IntN(len(s.categories))], nil
}

// RandomFinal draws one final-round question uniformly.
func (s *Store) RandomFinal(rng *rand.Rand) (game.FinalQuestion, error) {
	if len(s.finals) == 0 {
		return game.FinalQuestion{}, ErrNoFinals
	}
	return s.finals[rng.IntN(len(s.finals))], nil
}

// Categories reports how many five-row categories are loaded.
func (s *Store) Categories() int { return len(s.categories) }

// Finals reports how many final-round questions are loaded.
func (s *Store) Finals() int { return len(s.finals) }

// YearSpan reports the earliest and latest air years in the pool.
func (s *Store) YearSpan() (min, max int) { return s.minYear, s.maxYear }

// DailyDoubleRows reports, per board row, how often the archive placed a
// daily double there. The location sampler's weights come from these counts.
func (s *Store) DailyDoubleRows() [board.CategoryHeight]int { return s.ddRows }

// archive column names. Columns not listed here are present in the export
// but unused.
const (
	colAirYear     = "air_year"
	colType        = "type"
	colCatID       = "cat_id"
	colCategory    = "category"
	colCommentary  = "category_comm"
	colClueText    = "clue_text"
	colDailyDouble = "daily_double_flg"
	colAnswerText  = "answer_text"
	colClueLink    = "clue_link"
)

var requiredColumns = []string{
	colAirYear, colType, colCatID, colCategory, colCommentary,
	colClueText, colDailyDouble, colAnswerText, colClueLink,
}

type row struct {
	airYear     string
	rowType     string
	catID       string
	category    string
	commentary  string
	clueText    string
	dailyDouble bool
	answerText  string
	clueLink    string
}

func (r row) square() board.Square {
	return board.NewSquare(board.Clue{Text: r.clueText, Link: r.clueLink}, r.answerText)
}

// Load reads the archive at path.
func Load(path string, logger *log.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("questions: open archive: %w", err)
	}
	defer f.Close()

	s, err := parse(f, logger.WithPrefix("questions"))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func parse(r io.Reader, logger *log.Logger) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("questions: read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("questions: archive missing column %q", name)
		}
	}
	width := len(header)

	s := &Store{}
	var (
		group    []row
		groupCat string
		skipped  int
	)
	flush := func() {
		if len(group) == 0 {
			return
		}
		if !s.addCategory(group) {
			skipped += len(group)
			logger.Warn("skipping malformed category", "cat_id", groupCat, "rows", len(group))
		}
		group = group[:0]
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("questions: read archive: %w", err)
		}
		if len(record) != width {
			skipped++
			continue
		}

		rw, ok := parseRow(record, cols)
		if !ok {
			skipped++
			continue
		}

		if rw.rowType == "FJ" {
			s.finals = append(s.finals, game.FinalQuestion{
				Category: rw.category,
				Clue:     board.Clue{Text: rw.clueText, Link: rw.clueLink},
				Answer:   rw.answerText,
			})
			continue
		}

		// Categories are consecutive runs of one cat_id.
		if rw.catID != groupCat {
			flush()
			groupCat = rw.catID
		}
		group = append(group, rw)
	}
	flush()

	if len(s.categories) == 0 {
		return nil, ErrNoCategories
	}
	logger.Info("archive loaded",
		"categories", len(s.categories),
		"finals", len(s.finals),
		"min_year", s.minYear,
		"max_year", s.maxYear,
		"daily_double_rows", s.ddRows,
		"skipped_rows", skipped)
	return s, nil
}

func parseRow(record []string, cols map[string]int) (row, bool) {
	rw := row{
		airYear:    record[cols[colAirYear]],
		rowType:    record[cols[colType]],
		catID:      record[cols[colCatID]],
		category:   record[cols[colCategory]],
		commentary: record[cols[colCommentary]],
		clueText:   record[cols[colClueText]],
		answerText: record[cols[colAnswerText]],
		clueLink:   record[cols[colClueLink]],
	}
	switch rw.rowType {
	case "J", "DJ", "FJ":
	default:
		return row{}, false
	}
	flag, err := strconv.Atoi(record[cols[colDailyDouble]])
	if err != nil {
		return row{}, false
	}
	rw.dailyDouble = flag != 0
	return rw, true
}

// addCategory turns a run of rows into one category. Runs that are not
// exactly board height, or carry an unparseable air year, are rejected.
func (s *Store) addCategory(group []row) bool {
	if len(group) != board.CategoryHeight {
		return false
	}
	airYear, err := strconv.Atoi(group[0].airYear)
	if err != nil {
		return false
	}

	cat := board.Category{
		Title:      group[0].category,
		Commentary: group[0].commentary,
		AirYear:    airYear,
	}
	for i, rw := range group {
		cat.Squares[i] = rw.square()
		if rw.dailyDouble {
			s.ddRows[i]++
		}
	}

	if len(s.categories) == 0 || airYear < s.minYear {
		s.minYear = airYear
	}
	if airYear > s.maxYear {
		s.maxYear = airYear
	}
	s.categories = append(s.categories, cat)
	return true
}
