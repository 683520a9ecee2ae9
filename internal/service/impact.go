package service

import (
	"sort"
	"time"

	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
)

// ImpactService folds the task and donation records into the numbers
// shown on profiles and the public stats endpoint. Only verified work
// counts toward hours; donations count as soon as they are recorded.
type ImpactService struct {
	taskRepo     repository.TaskRepository
	donationRepo repository.DonationRepository
	causeRepo    repository.CauseRepository
	userRepo     repository.UserRepository
}

func NewImpactService(
	taskRepo repository.TaskRepository,
	donationRepo repository.DonationRepository,
	causeRepo repository.CauseRepository,
	userRepo repository.UserRepository,
) *ImpactService {
	return &ImpactService{
		taskRepo:     taskRepo,
		donationRepo: donationRepo,
		causeRepo:    causeRepo,
		userRepo:     userRepo,
	}
}

type TimelineEntry struct {
	Month   string `json:"month"`
	Hours   int    `json:"hours"`
	Donated int64  `json:"donated"`
}

// CategoryCount is the number of verified engagements in one cause
// category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type VolunteerImpact struct {
	TotalHours      int             `json:"totalHours"`
	TotalDonated    int64           `json:"totalDonated"`
	CausesSupported int             `json:"causesSupported"`
	Categories      []CategoryCount `json:"categories"`
	Timeline        []TimelineEntry `json:"timeline"`
}

// VolunteerImpact aggregates one volunteer's verified hours and
// donations. A cause counts once toward causesSupported even when the
// volunteer both worked and donated there.
func (s *ImpactService) VolunteerImpact(volunteerID string) (*VolunteerImpact, error) {
	tasks, err := s.taskRepo.ByVolunteer(volunteerID)
	if err != nil {
		return nil, err
	}

	donations, err := s.donationRepo.ByVolunteerWithCause(volunteerID)
	if err != nil {
		return nil, err
	}

	impact := &VolunteerImpact{}
	causes := map[string]bool{}
	categories := map[string]int{}
	timeline := map[string]*TimelineEntry{}

	for _, task := range tasks {
		if !task.Verified() {
			continue
		}

		hours := task.Hours()
		impact.TotalHours += hours
		causes[task.CauseID] = true
		if task.CauseCategory != "" {
			categories[task.CauseCategory]++
		}

		// Hours land in the month the task was last written, or failing
		// that the month its window ended. Undated history degrades to
		// the current month rather than being dropped.
		when := time.Now()
		if !task.UpdatedAt.IsZero() {
			when = task.UpdatedAt
		} else if task.EndDate != nil {
			when = *task.EndDate
		}
		bucket(timeline, when).Hours += hours
	}

	for _, donation := range donations {
		impact.TotalDonated += donation.Amount
		causes[donation.CauseID] = true
		bucket(timeline, donation.CreatedAt).Donated += donation.Amount
	}

	impact.CausesSupported = len(causes)

	impact.Categories = make([]CategoryCount, 0, len(categories))
	for category, count := range categories {
		impact.Categories = append(impact.Categories, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(impact.Categories, func(i, j int) bool {
		return impact.Categories[i].Category < impact.Categories[j].Category
	})

	impact.Timeline = make([]TimelineEntry, 0, len(timeline))
	for _, entry := range timeline {
		impact.Timeline = append(impact.Timeline, *entry)
	}
	sort.Slice(impact.Timeline, func(i, j int) bool {
		return impact.Timeline[i].Month < impact.Timeline[j].Month
	})

	return impact, nil
}

func bucket(timeline map[string]*TimelineEntry, when time.Time) *TimelineEntry {
	month := when.Format("2006-01")
	entry, ok := timeline[month]
	if !ok {
		entry = &TimelineEntry{Month: month}
		timeline[month] = entry
	}
	return entry
}

type CauseDonationTotal struct {
	CauseID    string `json:"causeId"`
	CauseTitle string `json:"causeTitle"`
	Total      int64  `json:"total"`
}

type DailyDonationTotal struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

type DonationAnalytics struct {
	TotalDonations int64                `json:"totalDonations"`
	ByCause        []CauseDonationTotal `json:"byCause"`
	Trends         []DailyDonationTotal `json:"trends"`
}

// DonationAnalytics summarizes everything donated to one NGO's causes,
// broken down per cause and per day.
func (s *ImpactService) DonationAnalytics(ngoID string) (*DonationAnalytics, error) {
	donations, err := s.donationRepo.ByNGO(ngoID)
	if err != nil {
		return nil, err
	}

	analytics := &DonationAnalytics{}
	byCause := map[string]*CauseDonationTotal{}
	byDay := map[string]int64{}

	for _, donation := range donations {
		analytics.TotalDonations += donation.Amount

		entry, ok := byCause[donation.CauseID]
		if !ok {
			entry = &CauseDonationTotal{CauseID: donation.CauseID, CauseTitle: donation.CauseTitle}
			byCause[donation.CauseID] = entry
		}
		entry.Total += donation.Amount

		byDay[donation.CreatedAt.Format("2006-01-02")] += donation.Amount
	}

	analytics.ByCause = make([]CauseDonationTotal, 0, len(byCause))
	for _, entry := range byCause {
		analytics.ByCause = append(analytics.ByCause, *entry)
	}
	sort.Slice(analytics.ByCause, func(i, j int) bool {
		return analytics.ByCause[i].Total > analytics.ByCause[j].Total
	})

	analytics.Trends = make([]DailyDonationTotal, 0, len(byDay))
	for date, total := range byDay {
		analytics.Trends = append(analytics.Trends, DailyDonationTotal{Date: date, Total: total})
	}
	sort.Slice(analytics.Trends, func(i, j int) bool {
		return analytics.Trends[i].Date < analytics.Trends[j].Date
	})

	return analytics, nil
}

type PlatformStats struct {
	TotalVolunteers int   `json:"totalVolunteers"`
	TotalNGOs       int   `json:"totalNgos"`
	TotalCauses     int   `json:"totalCauses"`
	TotalDonated    int64 `json:"totalDonated"`
	TotalHours      int   `json:"totalHours"`
}

// PlatformStats are the public headline numbers. Hours are a flat
// per-engagement figure here: verified engagements times the daily rate.
func (s *ImpactService) PlatformStats() (*PlatformStats, error) {
	volunteers, err := s.userRepo.CountByRole(model.RoleVolunteer)
	if err != nil {
		return nil, err
	}

	ngos, err := s.userRepo.CountByRole(model.RoleNGO)
	if err != nil {
		return nil, err
	}

	causes, err := s.causeRepo.Count()
	if err != nil {
		return nil, err
	}

	donated, err := s.donationRepo.TotalAmount()
	if err != nil {
		return nil, err
	}

	approved, err := s.taskRepo.CountApproved()
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalVolunteers: volunteers,
		TotalNGOs:       ngos,
		TotalCauses:     causes,
		TotalDonated:    donated,
		TotalHours:      approved * model.HoursPerDay,
	}, nil
}
