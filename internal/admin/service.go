package admin

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/shared"
)

const overviewCacheKey = "admin:overview"

// Store is the persistence contract the service depends on.
type Store interface {
	CountStudents(ctx context.Context) (int64, error)
	CountProfessors(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	CountPastLectures(ctx context.Context, now time.Time) (int64, error)
	CountPresentAttendance(ctx context.Context) (int64, error)
	DepartmentSummaries(ctx context.Context) ([]DepartmentSummary, error)
	ListStudents(ctx context.Context) ([]StudentRow, error)
	ListFaculty(ctx context.Context) ([]FacultyRow, error)
}

// Service serves the principal's college-wide views.
type Service struct {
	store Store
	cache *Cache
	now   func() time.Time
}

// NewService constructs a Service. cache may be nil.
func NewService(store Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache, now: time.Now}
}

func (s *Service) authorize(sess *authz.Session) error {
	decision := authz.Authorize(sess, authz.ViewCollegeAggregates{})
	if !decision.Allowed {
		if sess == nil {
			return shared.ErrUnauthorized
		}
		return fmt.Errorf("%w: %s", shared.ErrForbidden, decision.Reason)
	}
	return nil
}

// Overview returns the aggregate dashboard, cached for a short window since
// the counts touch every large table.
func (s *Service) Overview(ctx context.Context, sess *authz.Session) (*Overview, error) {
	if err := s.authorize(sess); err != nil {
		return nil, err
	}
	var overview Overview
	err := s.cache.FetchJSON(ctx, overviewCacheKey, &overview, func(ctx context.Context) (interface{}, error) {
		return s.buildOverview(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (s *Service) buildOverview(ctx context.Context) (*Overview, error) {
	var (
		students, professors, departments int64
		pastLectures, present             int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = s.store.CountStudents(gctx)
		return err
	})
	g.Go(func() (err error) {
		professors, err = s.store.CountProfessors(gctx)
		return err
	})
	g.Go(func() (err error) {
		departments, err = s.store.CountDepartments(gctx)
		return err
	})
	g.Go(func() (err error) {
		pastLectures, err = s.store.CountPastLectures(gctx, s.now())
		return err
	})
	g.Go(func() (err error) {
		present, err = s.store.CountPresentAttendance(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	attendance := 0
	if pastLectures > 0 {
		attendance = int(math.Round(float64(present) / float64(pastLectures) * 100))
	}

	summaries, err := s.store.DepartmentSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []DepartmentSummary{}
	}
	return &Overview{
		Stats: Stats{
			StudentCount:      students,
			FacultyCount:      professors,
			DepartmentCount:   departments,
			OverallAttendance: attendance,
		},
		Departments: summaries,
	}, nil
}

// Students returns the college-wide student listing.
func (s *Service) Students(ctx context.Context, sess *authz.Session) ([]StudentRow, error) {
	if err := s.authorize(sess); err != nil {
		return nil, err
	}
	return s.store.ListStudents(ctx)
}

// Faculty returns the college-wide faculty listing.
func (s *Service) Faculty(ctx context.Context, sess *authz.Session) ([]FacultyRow, error) {
	if err := s.authorize(sess); err != nil {
		return nil, err
	}
	return s.store.ListFaculty(ctx)
}
