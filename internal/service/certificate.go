package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/careconnect/careconnect/internal/authz"
	"github.com/careconnect/careconnect/internal/markdown"
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
)

var ErrNotVerified = errors.New("task is not verified")

// CertificateService renders a certificate of completed, NGO-verified
// volunteer work. The document is authored as markdown and returned as
// HTML.
type CertificateService struct {
	taskRepo    repository.TaskRepository
	causeRepo   repository.CauseRepository
	profileRepo repository.ProfileRepository
	parser      *markdown.Parser
	appName     string
}

func NewCertificateService(
	taskRepo repository.TaskRepository,
	causeRepo repository.CauseRepository,
	profileRepo repository.ProfileRepository,
	appName string,
) *CertificateService {
	return &CertificateService{
		taskRepo:    taskRepo,
		causeRepo:   causeRepo,
		profileRepo: profileRepo,
		parser:      markdown.NewParser(),
		appName:     appName,
	}
}

type Certificate struct {
	TaskID        string `json:"taskId"`
	VolunteerName string `json:"volunteerName"`
	CauseTitle    string `json:"causeTitle"`
	NGOName       string `json:"ngoName"`
	Hours         int    `json:"hours"`
	IssuedAt      string `json:"issuedAt"`
	HTML          string `json:"html"`
}

// ForTask issues a certificate for the principal's own verified task.
func (s *CertificateService) ForTask(principal *authz.Principal, taskID string) (*Certificate, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}

	task, err := s.taskRepo.ByID(taskID)
	if err != nil {
		return nil, err
	}

	if task.VolunteerID != principal.ID {
		return nil, ErrForbidden
	}

	if !task.Verified() {
		return nil, ErrNotVerified
	}

	cause, err := s.causeRepo.ByID(task.CauseID)
	if err != nil {
		return nil, err
	}

	volunteer, err := s.profileRepo.ByUserID(task.VolunteerID)
	if err != nil {
		return nil, err
	}

	ngo, err := s.profileRepo.ByUserID(cause.NGOID)
	if err != nil {
		return nil, err
	}

	issuedAt := time.Now().Format("January 2, 2006")
	source := s.render(volunteer.Name, ngo.Name, cause, task, issuedAt)

	html, err := s.parser.Parse([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}

	return &Certificate{
		TaskID:        task.ID,
		VolunteerName: volunteer.Name,
		CauseTitle:    cause.Title,
		NGOName:       ngo.Name,
		Hours:         task.Hours(),
		IssuedAt:      issuedAt,
		HTML:          string(html),
	}, nil
}

func (s *CertificateService) render(volunteerName, ngoName string, cause *model.Cause, task *model.Task, issuedAt string) string {
	window := ""
	if task.StartDate != nil && task.EndDate != nil {
		window = fmt.Sprintf("\nPeriod of service: %s to %s\n",
			task.StartDate.Format("January 2, 2006"),
			task.EndDate.Format("January 2, 2006"))
	}

	return fmt.Sprintf(`# Certificate of Volunteer Service

**%s** hereby certifies that

## %s

completed **%d hours** of volunteer work for the cause

### %s

organized by **%s**.
%s
Issued on %s.
`, s.appName, volunteerName, task.Hours(), cause.Title, ngoName, window, issuedAt)
}
