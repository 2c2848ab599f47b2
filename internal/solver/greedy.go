package solver

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RosterIO/rosterd/internal/models"
)

// Greedy round-robin shift assigner. This is the in-process fallback
// used when no external optimizer is reachable: a single pass over the
// shifts in chronological order, assigning each to the least-loaded
// eligible provider. No backtracking and no optimality guarantee.

const (
	// MaxSolutions caps how many alternative solutions one request
	// may ask for.
	MaxSolutions = 5

	defaultMaxShiftsPerDay = 2
	defaultMaxHoursPerWeek = 40.0
	defaultDurationHours   = 8.0
	defaultStartTime       = "08:00"
	defaultEndTime         = "16:00"
	defaultDate            = "2024-01-01"

	// SolverType identifies the embedded fallback in solver stats.
	SolverType = "serverless_go"
	// Algorithm names the assignment strategy in solver stats.
	Algorithm = "round_robin_with_constraints"
)

// Input-validation failures are fatal to the whole request. The texts
// surface verbatim in API responses, hence the capitalization.
var (
	ErrNoShifts    = errors.New("No shifts provided for optimization")
	ErrNoProviders = errors.New("No providers available for assignment")
)

type Solver struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Solver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Solver{log: log}
}

// resolvedShift is a shift with all optional fields defaulted, ready
// for assignment. Defaults are resolved once, before sorting, so that
// synthetic ids reflect the original input order.
type resolvedShift struct {
	ID        string
	Name      string
	Date      string
	StartTime string
	EndTime   string
	Duration  float64
}

// Solve builds up to case.Run.K independent solutions. Each solution
// starts from fresh workload and per-day accumulators; diversity
// across solutions comes only from rotating the tie-break pick by the
// solution index.
func (s *Solver) Solve(c models.Case) (*models.SolveResults, error) {
	start := time.Now()

	if len(c.Shifts) == 0 {
		return nil, ErrNoShifts
	}
	if len(c.Providers) == 0 {
		return nil, ErrNoProviders
	}

	k := c.Run.K
	if k < 1 {
		k = 1
	}
	if k > MaxSolutions {
		k = MaxSolutions
	}

	shifts := resolveShifts(c.Shifts, c.Calendar.Days)
	sort.SliceStable(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		return shifts[i].StartTime < shifts[j].StartTime
	})

	var solutions []models.Solution
	for idx := 0; idx < k; idx++ {
		if sol := s.buildSolution(idx, shifts, c.Providers); sol != nil {
			solutions = append(solutions, *sol)
		}
	}

	status := "NO_SOLUTION"
	if len(solutions) > 0 {
		status = "OPTIMAL"
	}
	return &models.SolveResults{
		Solutions: solutions,
		SolverStats: models.SolverStats{
			TotalSolutions:  len(solutions),
			ExecutionTimeMS: float64(time.Since(start).Microseconds()) / 1000.0,
			SolverType:      SolverType,
			Status:          status,
			Algorithm:       Algorithm,
			FallbackUsed:    true,
		},
	}, nil
}

// buildSolution runs one greedy pass. A panic while building aborts
// only this solution; the remaining indices still get their attempt.
func (s *Solver) buildSolution(idx int, shifts []resolvedShift, providers []models.Provider) (sol *models.Solution) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("solution build aborted",
				zap.Int("solution_index", idx),
				zap.Any("panic", r))
			sol = nil
		}
	}()

	workload := make(map[string]float64)     // provider id -> assigned hours
	daily := make(map[string]map[string]int) // date -> provider id -> shift count
	assignments := make([]models.Assignment, 0, len(shifts))

	for _, shift := range shifts {
		best := findBestProvider(idx, shift, providers, workload, daily)
		if best == nil {
			// No eligible provider: the shift stays unassigned.
			continue
		}

		assignments = append(assignments, models.Assignment{
			ShiftID:       shift.ID,
			ShiftName:     shift.Name,
			ProviderID:    best.ID,
			ProviderName:  best.Name,
			Date:          shift.Date,
			StartTime:     shift.StartTime,
			EndTime:       shift.EndTime,
			SolutionIndex: idx,
		})

		workload[best.ID] += shift.Duration
		if daily[shift.Date] == nil {
			daily[shift.Date] = make(map[string]int)
		}
		daily[shift.Date][best.ID]++
	}

	if len(assignments) == 0 {
		return nil
	}
	return &models.Solution{
		Assignments:    assignments,
		SolutionID:     fmt.Sprintf("solution_%d", idx+1),
		ObjectiveValue: len(assignments),
		Feasible:       true,
	}
}

// findBestProvider filters providers by per-day and weekly caps plus
// weekday availability, sorts the survivors by accumulated workload
// (ascending, stable) and rotates the pick by the solution index.
func findBestProvider(solutionIdx int, shift resolvedShift, providers []models.Provider, workload map[string]float64, daily map[string]map[string]int) *models.Provider {
	weekday := weekdayName(shift.Date)

	var eligible []*models.Provider
	for i := range providers {
		p := &providers[i]

		maxPerDay := p.MaxShiftsPerDay
		if maxPerDay <= 0 {
			maxPerDay = defaultMaxShiftsPerDay
		}
		if daily[shift.Date][p.ID] >= maxPerDay {
			continue
		}

		maxHours := p.MaxHoursPerWeek
		if maxHours <= 0 {
			maxHours = defaultMaxHoursPerWeek
		}
		if workload[p.ID]+shift.Duration > maxHours {
			continue
		}

		if p.Availability != nil && weekday != "" {
			if allowed, ok := p.Availability[weekday]; ok && !allowed {
				continue
			}
		}

		eligible = append(eligible, p)
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return workload[eligible[i].ID] < workload[eligible[j].ID]
	})
	return eligible[solutionIdx%len(eligible)]
}

func resolveShifts(shifts []models.Shift, days []string) []resolvedShift {
	fallbackDate := defaultDate
	if len(days) > 0 {
		fallbackDate = days[0]
	}

	out := make([]resolvedShift, len(shifts))
	for i, s := range shifts {
		r := resolvedShift{
			ID:        s.ID,
			Name:      s.Name,
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		}
		if r.ID == "" {
			r.ID = fmt.Sprintf("shift_%d", i)
		}
		if r.Name == "" {
			r.Name = fmt.Sprintf("Shift %d", i+1)
		}
		if r.Date == "" {
			r.Date = fallbackDate
		}
		if r.StartTime == "" {
			r.StartTime = defaultStartTime
		}
		if r.EndTime == "" {
			r.EndTime = defaultEndTime
		}
		r.Duration = resolveDuration(s.Duration, r.StartTime, r.EndTime)
		out[i] = r
	}
	return out
}

// resolveDuration prefers an explicit duration, then derives one from
// the HH:MM clock times, adding 24 hours when the span is negative
// (overnight shifts). Unparseable times default to 8 hours.
func resolveDuration(explicit float64, startTime, endTime string) float64 {
	if explicit > 0 {
		return explicit
	}
	start, okStart := parseClock(startTime)
	end, okEnd := parseClock(endTime)
	if !okStart || !okEnd {
		return defaultDurationHours
	}
	d := end - start
	if d < 0 {
		d += 24
	}
	return d
}

func parseClock(s string) (float64, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return float64(h) + float64(m)/60.0, true
}

// weekdayName returns the lowercase English weekday for an ISO date,
// or "" when the date does not parse (availability checks are then
// skipped for that shift).
func weekdayName(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return strings.ToLower(t.Weekday().String())
}
