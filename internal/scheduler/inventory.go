package scheduler

import (
	"context"
	"strconv"
	"strings"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/model"
)

// AddDoses creates the vaccine on first use, otherwise adds to its count.
func (s *Service) AddDoses(ctx context.Context, sess *model.Session, vaccine, rawCount string) (*model.Vaccine, error) {
	if err := s.authorize(sess, model.RoleCaregiver); err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(rawCount))
	if err != nil {
		return nil, apperr.Validation("number of doses must be a whole number", map[string]any{"doses": rawCount})
	}
	req := dosesRequest{Vaccine: normalizeVaccine(vaccine), Doses: n}
	if err := s.check(req); err != nil {
		return nil, err
	}

	total, err := s.store.AddDoses(ctx, req.Vaccine, req.Doses)
	if err != nil {
		return nil, s.fail("failed to add doses", err, append(sessionAttrs(sess), "vaccine", req.Vaccine)...)
	}

	s.log.Info("doses added", append(sessionAttrs(sess), "vaccine", req.Vaccine, "added", n, "total", total)...)
	return &model.Vaccine{Name: req.Vaccine, Doses: total}, nil
}

func (s *Service) Vaccines(ctx context.Context) ([]model.Vaccine, error) {
	vs, err := s.store.ListVaccines(ctx)
	if err != nil {
		return nil, s.fail("failed to retrieve vaccine information", err)
	}
	return vs, nil
}

// vaccine names are case-insensitive, like usernames
func normalizeVaccine(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
