package board

// View is the JSON shape of a board for one audience. Moderators see
// everything; players only see what play has revealed so far.
type View struct {
	Multiplier int64          `json:"value_multiplier"`
	ETag       int            `json:"etag"`
	ID         int            `json:"id"`
	Seed       string         `json:"seed"`
	Categories []CategoryView `json:"categories"`
}

type CategoryView struct {
	Title      string       `json:"title"`
	Commentary string       `json:"commentary,omitempty"`
	AirYear    int          `json:"air_year"`
	Squares    []SquareView `json:"squares"`
}

type SquareView struct {
	State         SquareState `json:"state"`
	Clue          *Clue       `json:"clue,omitempty"`
	Answer        string      `json:"answer,omitempty"`
	IsDailyDouble *bool       `json:"is_daily_double,omitempty"`
}

// View renders the board for one audience. dailyDoubleEntered reports
// whether the pending daily-double wager (if any) has been submitted; until
// it has, players must not see the clue they would be wagering on.
func (b *Board) View(forModerator, dailyDoubleEntered bool) View {
	v := View{
		Multiplier: b.multiplier,
		ETag:       b.etag,
		ID:         b.id,
		Seed:       b.seed.String(),
		Categories: make([]CategoryView, len(b.categories)),
	}
	for i := range b.categories {
		cat := &b.categories[i]
		cv := CategoryView{
			Title:      cat.Title,
			Commentary: cat.Commentary,
			AirYear:    cat.AirYear,
			Squares:    make([]SquareView, CategoryHeight),
		}
		for j := range cat.Squares {
			cv.Squares[j] = cat.Squares[j].view(forModerator, dailyDoubleEntered)
		}
		v.Categories[i] = cv
	}
	return v
}

func (s *Square) view(forModerator, dailyDoubleEntered bool) SquareView {
	out := SquareView{State: s.state}
	clue := s.Clue

	if forModerator {
		dd := s.IsDailyDouble
		out.Clue = &clue
		out.Answer = s.Answer
		out.IsDailyDouble = &dd
		return out
	}

	switch {
	case s.state == Flipped, s.state == DailyDoubleRevealed && dailyDoubleEntered:
		out.Clue = &clue
	case s.state == Finished:
		out.Clue = &clue
		out.Answer = s.Answer
	}
	return out
}
