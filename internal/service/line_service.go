package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"telecom_assets/internal/metrics"
	"telecom_assets/internal/model"
	"telecom_assets/internal/repository"
	"telecom_assets/internal/utils"

	"go.uber.org/zap"
)

const (
	minPhoneDigits = 8
	maxPhoneDigits = 11
	maxPhaseLength = 20
)

// LineService defines operations for telecom lines
type LineService interface {
	List(ctx context.Context, filter model.LineFilter) (*model.LinePage, error)
	Get(ctx context.Context, id int64) (*model.Line, error)
	Create(ctx context.Context, form model.LineForm) (*model.Line, error)
	Update(ctx context.Context, id int64, form model.LineForm) (*model.Line, error)
	Delete(ctx context.Context, id int64) error
}

type lineService struct {
	repo    repository.LineRepository
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewLineService creates a new LineService
func NewLineService(repo repository.LineRepository, m *metrics.Metrics, log *zap.Logger) LineService {
	return &lineService{repo: repo, metrics: m, log: log}
}

// List returns one page of lines. Out-of-range paging values are clamped and
// a page past the end yields no items.
func (s *lineService) List(ctx context.Context, filter model.LineFilter) (*model.LinePage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	switch {
	case perPage < 1:
		perPage = model.DefaultPerPage
	case perPage > model.MaxPerPage:
		perPage = model.MaxPerPage
	}

	// The search term is matched as typed, surrounding spaces included.
	offset := model.Pagination{Page: page, PerPage: perPage}.Offset()
	lines, total, err := s.repo.List(ctx, filter.Search, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	return &model.LinePage{Items: lines, Pagination: model.NewPagination(page, perPage, total)}, nil
}

func (s *lineService) Get(ctx context.Context, id int64) (*model.Line, error) {
	line, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get line: %w", err)
	}
	if line == nil {
		return nil, ErrLineNotFound
	}
	return line, nil
}

func (s *lineService) Create(ctx context.Context, form model.LineForm) (*model.Line, error) {
	line, err := lineFromForm(form)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to create line: %w", err)
	}
	s.metrics.IncLineMutation("create")
	s.log.Info("line created", zap.Int64("line_id", line.ID), zap.String("phone", line.Phone))
	return line, nil
}

// Update replaces every attribute of the line with the submitted form.
func (s *lineService) Update(ctx context.Context, id int64, form model.LineForm) (*model.Line, error) {
	line, err := lineFromForm(form)
	if err != nil {
		return nil, err
	}
	line.ID = id
	if err := s.repo.Update(ctx, line); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("failed to update line: %w", err)
	}
	s.metrics.IncLineMutation("update")
	s.log.Info("line updated", zap.Int64("line_id", id))
	return line, nil
}

func (s *lineService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLineNotFound
		}
		return fmt.Errorf("failed to delete line: %w", err)
	}
	s.metrics.IncLineMutation("delete")
	s.log.Info("line deleted", zap.Int64("line_id", id))
	return nil
}

// lineFromForm normalizes and validates a submitted line form.
func lineFromForm(f model.LineForm) (*model.Line, error) {
	required := []struct{ field, value string }{
		{"conta", f.Account}, {"plano", f.Plan}, {"responsavel", f.Responsible}, {"departamento", f.Department},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, invalid(r.field, "campo obrigatório")
		}
	}

	phone := utils.CleanPhone(f.Phone)
	if len(phone) < minPhoneDigits || len(phone) > maxPhoneDigits {
		return nil, invalid("linha", "informe de 8 a 11 dígitos")
	}

	cents, err := utils.ParseCurrencyBRL(f.MonthlyFee)
	if errors.Is(err, utils.ErrAmountOutOfRange) {
		return nil, invalid("mensalidade", "valor máximo é 99.999.999,99")
	}
	if err != nil {
		return nil, invalid("mensalidade", "valor inválido")
	}
	if cents < 0 {
		return nil, invalid("mensalidade", "valor não pode ser negativo")
	}

	activation, err := utils.ParseFormDate(f.ActivationDate)
	if err != nil {
		return nil, invalid("efetivacao", "data inválida")
	}
	end, err := utils.ParseFormDate(f.EndDate)
	if err != nil {
		return nil, invalid("termino", "data inválida")
	}

	if !model.ValidYesNo(f.HasChip) {
		return nil, invalid("chipeira", "use Sim ou Não")
	}
	if !model.ValidYesNo(f.InUse) {
		return nil, invalid("uso", "use Sim ou Não")
	}
	if !model.ValidLineStatus(f.Status) {
		return nil, invalid("status", "status desconhecido")
	}

	var phase *string
	if p := strings.TrimSpace(f.Phase); p != "" {
		if len([]rune(p)) > maxPhaseLength {
			return nil, invalid("fase", "máximo de 20 caracteres")
		}
		phase = &p
	}

	return &model.Line{
		Account:         strings.TrimSpace(f.Account),
		Phone:           phone,
		Plan:            strings.TrimSpace(f.Plan),
		MonthlyFeeCents: cents,
		Responsible:     strings.TrimSpace(f.Responsible),
		Department:      strings.TrimSpace(f.Department),
		HasChip:         f.HasChip,
		ActivationDate:  activation,
		EndDate:         end,
		Status:          f.Status,
		InUse:           f.InUse,
		Phase:           phase,
	}, nil
}
