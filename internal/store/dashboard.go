package store

import (
	"fmt"
	"sort"
	"time"

	"ats-backend/internal/models"
)

// FunnelData counts candidates at or beyond the four reporting milestones.
type FunnelData struct {
	Screening int64 `json:"screening"`
	Interview int64 `json:"interview"`
	Offer     int64 `json:"offer"`
	Hired     int64 `json:"hired"`
}

type ChartDataPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type DashboardData struct {
	NewThisWeek      int64            `json:"newThisWeek"`
	Funnel           FunnelData       `json:"funnel"`
	OpenJobs         int64            `json:"openJobs"`
	TopSource        string           `json:"topSource"`
	ProfilesByWeek   []ChartDataPoint `json:"profilesByWeek"`
	ProfilesBySource []ChartDataPoint `json:"profilesBySource"`
}

type ProjectPerformance struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type ReportData struct {
	TotalProfiles    int64                `json:"totalProfiles"`
	ProfilesOverTime []ChartDataPoint     `json:"profilesOverTime"`
	Funnel           FunnelData           `json:"funnel"`
	SourceDist       []ChartDataPoint     `json:"sourceDistribution"`
	TopProjects      []ProjectPerformance `json:"topProjects,omitempty"`
}

// funnelMilestones orders the reporting milestones from latest to earliest.
// A candidate counts toward every milestone its status has passed.
var funnelMilestones = []models.CandidateStatus{
	models.StatusHired,
	models.StatusOfferSent,
	models.StatusInterviewScheduled,
	models.StatusScreened,
}

func (s *Store) funnel(f CandidateFilter) (FunnelData, error) {
	count := func(statuses []models.CandidateStatus) (int64, error) {
		var n int64
		err := f.apply(s.db.Model(&models.Candidate{})).
			Where("status IN ?", statuses).Count(&n).Error
		return n, err
	}

	var out FunnelData
	var err error
	if out.Screening, err = count(funnelMilestones); err != nil {
		return out, err
	}
	if out.Interview, err = count(funnelMilestones[:3]); err != nil {
		return out, err
	}
	if out.Offer, err = count(funnelMilestones[:2]); err != nil {
		return out, err
	}
	if out.Hired, err = count(funnelMilestones[:1]); err != nil {
		return out, err
	}
	return out, nil
}

// Dashboard aggregates live store contents for the landing page.
func (s *Store) Dashboard() (*DashboardData, error) {
	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)

	out := &DashboardData{}

	if err := s.db.Model(&models.Candidate{}).
		Where("created_at >= ?", weekAgo).
		Count(&out.NewThisWeek).Error; err != nil {
		return nil, err
	}

	var err error
	if out.Funnel, err = s.funnel(CandidateFilter{}); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.JobPosting{}).
		Where("status = ?", models.JobStatusPosting).
		Count(&out.OpenJobs).Error; err != nil {
		return nil, err
	}

	if out.ProfilesBySource, err = s.profilesBySource(CandidateFilter{}); err != nil {
		return nil, err
	}
	if len(out.ProfilesBySource) > 0 {
		out.TopSource = out.ProfilesBySource[0].Label
	}

	if out.ProfilesByWeek, err = s.profilesByWeek(now, 8); err != nil {
		return nil, err
	}

	return out, nil
}

// profilesBySource counts matching candidates per source name, busiest first.
func (s *Store) profilesBySource(f CandidateFilter) ([]ChartDataPoint, error) {
	type row struct {
		SourceID string
		N        int64
	}
	var rows []row
	if err := f.apply(s.db.Model(&models.Candidate{})).
		Select("source_id as source_id, COUNT(*) as n").
		Where("source_id IS NOT NULL").
		Group("source_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	lookups, err := s.lookupNames()
	if err != nil {
		return nil, err
	}

	points := make([]ChartDataPoint, 0, len(rows))
	for _, r := range rows {
		label := lookups[r.SourceID]
		if label == "" {
			label = "Unknown"
		}
		points = append(points, ChartDataPoint{Label: label, Value: r.N})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points, nil
}

// profilesByWeek buckets candidate creations into the trailing n ISO weeks.
func (s *Store) profilesByWeek(now time.Time, weeks int) ([]ChartDataPoint, error) {
	start := now.AddDate(0, 0, -7*weeks)
	var created []time.Time
	if err := s.db.Model(&models.Candidate{}).
		Where("created_at >= ?", start).
		Order("created_at asc").
		Pluck("created_at", &created).Error; err != nil {
		return nil, err
	}

	points := make([]ChartDataPoint, 0, weeks)
	index := map[string]int{}
	for w := weeks - 1; w >= 0; w-- {
		_, wk := now.AddDate(0, 0, -7*w).ISOWeek()
		label := fmt.Sprintf("W%d", wk)
		index[label] = len(points)
		points = append(points, ChartDataPoint{Label: label})
	}
	for _, t := range created {
		_, wk := t.ISOWeek()
		if i, ok := index[fmt.Sprintf("W%d", wk)]; ok {
			points[i].Value++
		}
	}
	return points, nil
}

// Report aggregates live store contents over a time range ("week", "month"
// or "quarter"), optionally scoped to one project.
func (s *Store) Report(timeRange, projectID string) (*ReportData, error) {
	now := s.now()
	var start time.Time
	var buckets []time.Time
	var labels []string

	switch timeRange {
	case "week":
		start = now.AddDate(0, 0, -7)
		for d := 6; d >= 0; d-- {
			day := now.AddDate(0, 0, -d)
			buckets = append(buckets, day)
			labels = append(labels, day.Format("Mon"))
		}
	case "month":
		start = now.AddDate(0, 0, -28)
		for w := 3; w >= 0; w-- {
			buckets = append(buckets, now.AddDate(0, 0, -7*w))
			labels = append(labels, fmt.Sprintf("Week %d", 4-w))
		}
	case "quarter":
		start = now.AddDate(0, -3, 0)
		for m := 2; m >= 0; m-- {
			month := now.AddDate(0, -m, 0)
			buckets = append(buckets, month)
			labels = append(labels, month.Format("Jan"))
		}
	default:
		return nil, invalid("timeRange", "must be week, month or quarter")
	}

	f := CandidateFilter{ProjectID: projectID, StartDate: &start}

	out := &ReportData{}
	if err := f.apply(s.db.Model(&models.Candidate{})).
		Count(&out.TotalProfiles).Error; err != nil {
		return nil, err
	}

	var created []time.Time
	if err := f.apply(s.db.Model(&models.Candidate{})).
		Order("created_at asc").
		Pluck("created_at", &created).Error; err != nil {
		return nil, err
	}
	out.ProfilesOverTime = bucketize(created, buckets, labels, timeRange)

	var err error
	if out.Funnel, err = s.funnel(f); err != nil {
		return nil, err
	}
	if out.SourceDist, err = s.profilesBySource(f); err != nil {
		return nil, err
	}

	if projectID == "" {
		if out.TopProjects, err = s.topProjects(start, 5); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// bucketize assigns each timestamp to the nearest bucket at or before it.
func bucketize(times, buckets []time.Time, labels []string, timeRange string) []ChartDataPoint {
	points := make([]ChartDataPoint, len(buckets))
	for i, l := range labels {
		points[i] = ChartDataPoint{Label: l}
	}
	for _, t := range times {
		idx := -1
		for i, b := range buckets {
			var boundary time.Time
			switch timeRange {
			case "week":
				boundary = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
			case "month":
				boundary = b.AddDate(0, 0, -7)
			case "quarter":
				boundary = b.AddDate(0, -1, 0)
			}
			if t.After(boundary) {
				idx = i
			}
		}
		if idx >= 0 {
			points[idx].Value++
		}
	}
	return points
}

// topProjects ranks projects by candidates created since start.
func (s *Store) topProjects(start time.Time, limit int) ([]ProjectPerformance, error) {
	type row struct {
		ProjectID string
		N         int64
	}
	var rows []row
	if err := s.db.Model(&models.Candidate{}).
		Select("project_id as project_id, COUNT(*) as n").
		Where("project_id IS NOT NULL AND created_at >= ?", start).
		Group("project_id").
		Order("n desc").
		Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	projects, err := s.projectNames()
	if err != nil {
		return nil, err
	}
	out := make([]ProjectPerformance, 0, len(rows))
	for _, r := range rows {
		name := projects[r.ProjectID]
		if name == "" {
			name = "Unknown"
		}
		out = append(out, ProjectPerformance{Name: name, Count: r.N})
	}
	return out, nil
}
