package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"token-pulse-go/internal/api/constant"
	"token-pulse-go/internal/dashboard"
	"token-pulse-go/internal/infrastructure/repository"
	marketengine "token-pulse-go/internal/market-engine"
	"token-pulse-go/internal/models"
	"token-pulse-go/internal/view"
)

type UsecaseItf interface {
	GetBoard(ctx context.Context) (dashboard.Board, error)
	GetColumn(ctx context.Context, category string) (dashboard.Column, error)
	GetToken(ctx context.Context, id string) (dashboard.TokenDetail, error)
	GetPrices(ctx context.Context) (marketengine.Snapshot, error)
	SetSearchQuery(ctx context.Context, query string) error
	SetSortField(ctx context.Context, category string, field string) (view.QueryState, error)
	ToggleSortDirection(ctx context.Context, category string) (view.QueryState, error)
	SetFilter(ctx context.Context, category string, dimension string, bucket string) (view.QueryState, error)
	ResetFilters(ctx context.Context, category string) (view.QueryState, error)
	StartEngine(ctx context.Context, intervalMs int) (time.Duration, error)
	StopEngine(ctx context.Context) error
	Regenerate(ctx context.Context, category string, count int) ([]models.Token, error)
	ExportColumn(ctx context.Context, category string, w io.Writer) error
}

type Usecase struct {
	board  *dashboard.Dashboard
	writer *repository.CsvTokenWriter
}

func NewUsecase(board *dashboard.Dashboard, writer *repository.CsvTokenWriter) *Usecase {
	return &Usecase{board: board, writer: writer}
}

func parseCategory(raw string) (models.Category, error) {
	category, ok := models.ParseCategory(raw)
	if !ok {
		return "", constant.ErrUnknownCategory
	}
	return category, nil
}

// translate maps dashboard and view errors onto API errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dashboard.ErrNotLoaded):
		return constant.ErrNotLoaded
	case errors.Is(err, dashboard.ErrUnknownCategory):
		return constant.ErrUnknownCategory
	case errors.Is(err, dashboard.ErrUnknownSortKey):
		return constant.ErrUnknownSortField
	case errors.Is(err, dashboard.ErrTokenNotFound):
		return constant.ErrTokenNotFound
	case errors.Is(err, view.ErrUnknownBucket), errors.Is(err, view.ErrUnknownDimension):
		return constant.NewCError(constant.ErrUnknownBucket.StatusCode, err.Error())
	default:
		return err
	}
}

func (uc *Usecase) GetBoard(ctx context.Context) (dashboard.Board, error) {
	board, err := uc.board.Board()
	return board, translate(err)
}

func (uc *Usecase) GetColumn(ctx context.Context, category string) (dashboard.Column, error) {
	c, err := parseCategory(category)
	if err != nil {
		return dashboard.Column{}, err
	}
	column, err := uc.board.Column(c)
	return column, translate(err)
}

func (uc *Usecase) GetToken(ctx context.Context, id string) (dashboard.TokenDetail, error) {
	detail, err := uc.board.Token(id)
	return detail, translate(err)
}

func (uc *Usecase) GetPrices(ctx context.Context) (marketengine.Snapshot, error) {
	if !uc.board.Loaded() {
		return marketengine.Snapshot{}, constant.ErrNotLoaded
	}
	return uc.board.Snapshot(), nil
}

func (uc *Usecase) SetSearchQuery(ctx context.Context, query string) error {
	uc.board.SetSearchQuery(query)
	return nil
}

func (uc *Usecase) SetSortField(ctx context.Context, category string, field string) (view.QueryState, error) {
	c, err := parseCategory(category)
	if err != nil {
		return view.QueryState{}, err
	}
	state, err := uc.board.SetSortField(c, models.SortField(field))
	return state, translate(err)
}

func (uc *Usecase) ToggleSortDirection(ctx context.Context, category string) (view.QueryState, error) {
	c, err := parseCategory(category)
	if err != nil {
		return view.QueryState{}, err
	}
	state, err := uc.board.ToggleSortDirection(c)
	return state, translate(err)
}

func (uc *Usecase) SetFilter(ctx context.Context, category string, dimension string, bucket string) (view.QueryState, error) {
	c, err := parseCategory(category)
	if err != nil {
		return view.QueryState{}, err
	}
	state, err := uc.board.SetFilter(c, models.FilterDimension(dimension), bucket)
	return state, translate(err)
}

func (uc *Usecase) ResetFilters(ctx context.Context, category string) (view.QueryState, error) {
	c, err := parseCategory(category)
	if err != nil {
		return view.QueryState{}, err
	}
	state, err := uc.board.ResetFilters(c)
	return state, translate(err)
}

// StartEngine returns the interval the schedule runs with.
func (uc *Usecase) StartEngine(ctx context.Context, intervalMs int) (time.Duration, error) {
	interval := time.Duration(intervalMs) * time.Millisecond
	if interval <= 0 {
		interval = uc.board.Engine().UpdateInterval()
	}
	if err := uc.board.StartEngine(interval); err != nil {
		return 0, translate(err)
	}
	return interval, nil
}

func (uc *Usecase) StopEngine(ctx context.Context) error {
	uc.board.StopEngine()
	return nil
}

func (uc *Usecase) Regenerate(ctx context.Context, category string, count int) ([]models.Token, error) {
	c, err := parseCategory(category)
	if err != nil {
		return nil, err
	}
	tokens, err := uc.board.Regenerate(c, count)
	return tokens, translate(err)
}

func (uc *Usecase) ExportColumn(ctx context.Context, category string, w io.Writer) error {
	c, err := parseCategory(category)
	if err != nil {
		return err
	}
	tokens, snapshot, err := uc.board.VisibleTokens(c)
	if err != nil {
		return translate(err)
	}
	return uc.writer.WriteTokens(w, tokens, snapshot.Prices)
}
