package service

// In-memory repository fakes shared by the service tests. They keep
// insertion order so list assertions are deterministic.

import (
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
)

func testEmailService() *EmailService {
	// Dev mode: emails are logged, never sent.
	return NewEmailService("", "noreply@careconnect.test", "http://localhost:8090", "CareConnect", true)
}

// --- causes ---

type fakeCauseRepo struct {
	causes []*model.Cause
}

func (f *fakeCauseRepo) Create(cause *model.Cause) error {
	copied := *cause
	f.causes = append(f.causes, &copied)
	return nil
}

func (f *fakeCauseRepo) ByID(id string) (*model.Cause, error) {
	for _, cause := range f.causes {
		if cause.ID == id {
			copied := *cause
			return &copied, nil
		}
	}
	return nil, repository.ErrCauseNotFound
}

func (f *fakeCauseRepo) ByIDWithNGO(id string) (*model.CauseWithNGO, error) {
	cause, err := f.ByID(id)
	if err != nil {
		return nil, err
	}
	return &model.CauseWithNGO{Cause: *cause, NGOName: "NGO " + cause.NGOID}, nil
}

func (f *fakeCauseRepo) List(filters repository.CauseFilters) ([]*model.CauseWithNGO, error) {
	var out []*model.CauseWithNGO
	for _, cause := range f.causes {
		if filters.Category != "" && cause.Category != filters.Category {
			continue
		}
		if filters.Status != "" && cause.Status != filters.Status {
			continue
		}
		out = append(out, &model.CauseWithNGO{Cause: *cause, NGOName: "NGO " + cause.NGOID})
	}
	return out, nil
}

func (f *fakeCauseRepo) ByNGO(ngoID string) ([]*model.Cause, error) {
	var out []*model.Cause
	for _, cause := range f.causes {
		if cause.NGOID == ngoID {
			copied := *cause
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCauseRepo) Update(cause *model.Cause) error {
	for i, existing := range f.causes {
		if existing.ID == cause.ID {
			copied := *cause
			f.causes[i] = &copied
			return nil
		}
	}
	return repository.ErrCauseNotFound
}

func (f *fakeCauseRepo) Delete(id string) error {
	for i, cause := range f.causes {
		if cause.ID == id {
			f.causes = append(f.causes[:i], f.causes[i+1:]...)
			return nil
		}
	}
	return repository.ErrCauseNotFound
}

func (f *fakeCauseRepo) Count() (int, error) {
	return len(f.causes), nil
}

// --- tasks ---

type fakeTaskRepo struct {
	tasks  []*model.Task
	causes *fakeCauseRepo
}

func (f *fakeTaskRepo) Create(task *model.Task) error {
	copied := *task
	f.tasks = append(f.tasks, &copied)
	return nil
}

func (f *fakeTaskRepo) ByID(id string) (*model.Task, error) {
	for _, task := range f.tasks {
		if task.ID == id {
			copied := *task
			return &copied, nil
		}
	}
	return nil, repository.ErrTaskNotFound
}

func (f *fakeTaskRepo) detail(task *model.Task) *model.TaskDetail {
	detail := &model.TaskDetail{Task: *task, VolunteerName: "Volunteer " + task.VolunteerID}
	if f.causes != nil {
		if cause, err := f.causes.ByID(task.CauseID); err == nil {
			detail.CauseTitle = cause.Title
			detail.CauseCategory = cause.Category
			detail.CauseNGOID = cause.NGOID
		}
	}
	return detail
}

func (f *fakeTaskRepo) ByVolunteer(volunteerID string) ([]*model.TaskDetail, error) {
	var out []*model.TaskDetail
	for _, task := range f.tasks {
		if task.VolunteerID == volunteerID {
			out = append(out, f.detail(task))
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ByNGO(ngoID string) ([]*model.TaskDetail, error) {
	var out []*model.TaskDetail
	for _, task := range f.tasks {
		detail := f.detail(task)
		if detail.CauseNGOID == ngoID {
			out = append(out, detail)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Exists(causeID, volunteerID string) (bool, error) {
	for _, task := range f.tasks {
		if task.CauseID == causeID && task.VolunteerID == volunteerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskRepo) UpdateStatus(id string, status model.TaskStatus) error {
	for _, task := range f.tasks {
		if task.ID == id {
			task.Status = status
			return nil
		}
	}
	return repository.ErrTaskNotFound
}

func (f *fakeTaskRepo) UpdateProof(id, proofURL string) error {
	for _, task := range f.tasks {
		if task.ID == id {
			task.ProofURL = &proofURL
			task.Status = model.TaskStatusCompleted
			return nil
		}
	}
	return repository.ErrTaskNotFound
}

func (f *fakeTaskRepo) Approve(id string) error {
	for _, task := range f.tasks {
		if task.ID == id && task.Status == model.TaskStatusCompleted {
			task.Approved = true
			return nil
		}
	}
	return repository.ErrTaskNotFound
}

func (f *fakeTaskRepo) Delete(id string) error {
	for i, task := range f.tasks {
		if task.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrTaskNotFound
}

func (f *fakeTaskRepo) CountApproved() (int, error) {
	count := 0
	for _, task := range f.tasks {
		if task.Status == model.TaskStatusCompleted && task.Approved {
			count++
		}
	}
	return count, nil
}

// --- users & profiles ---

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) Create(user *model.User) error {
	copied := *user
	f.users = append(f.users, &copied)
	return nil
}

func (f *fakeUserRepo) ByID(id string) (*model.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ByEmail(email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Delete(id string) error {
	for i, user := range f.users {
		if user.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUserRepo) CountByRole(role model.Role) (int, error) {
	count := 0
	for _, user := range f.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeProfileRepo struct {
	profiles []*model.Profile
}

func (f *fakeProfileRepo) ByUserID(userID string) (*model.Profile, error) {
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) Create(profile *model.Profile) error {
	copied := *profile
	f.profiles = append(f.profiles, &copied)
	return nil
}

func (f *fakeProfileRepo) Update(profile *model.Profile) error {
	for i, existing := range f.profiles {
		if existing.UserID == profile.UserID {
			copied := *profile
			f.profiles[i] = &copied
			return nil
		}
	}
	return repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) NGODirectory() ([]*model.NGOSummary, error) {
	return nil, nil
}

// --- donations ---

type fakeDonationRepo struct {
	donations []*model.Donation
	causes    *fakeCauseRepo
}

func (f *fakeDonationRepo) Create(donation *model.Donation) error {
	copied := *donation
	f.donations = append(f.donations, &copied)
	return nil
}

func (f *fakeDonationRepo) ByVolunteer(volunteerID string) ([]*model.Donation, error) {
	var out []*model.Donation
	for _, donation := range f.donations {
		if donation.VolunteerID == volunteerID {
			copied := *donation
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeDonationRepo) withCause(donation *model.Donation) *model.DonationWithCause {
	enriched := &model.DonationWithCause{Donation: *donation}
	if f.causes != nil {
		if cause, err := f.causes.ByID(donation.CauseID); err == nil {
			enriched.CauseTitle = cause.Title
			enriched.CauseCategory = cause.Category
		}
	}
	return enriched
}

func (f *fakeDonationRepo) ByVolunteerWithCause(volunteerID string) ([]*model.DonationWithCause, error) {
	var out []*model.DonationWithCause
	for _, donation := range f.donations {
		if donation.VolunteerID == volunteerID {
			out = append(out, f.withCause(donation))
		}
	}
	return out, nil
}

func (f *fakeDonationRepo) ByNGO(ngoID string) ([]*model.DonationWithCause, error) {
	var out []*model.DonationWithCause
	for _, donation := range f.donations {
		if f.causes == nil {
			continue
		}
		cause, err := f.causes.ByID(donation.CauseID)
		if err != nil || cause.NGOID != ngoID {
			continue
		}
		out = append(out, f.withCause(donation))
	}
	return out, nil
}

func (f *fakeDonationRepo) TotalAmount() (int64, error) {
	var total int64
	for _, donation := range f.donations {
		total += donation.Amount
	}
	return total, nil
}

// --- posts & follows ---

type likeKey struct {
	postID, userID string
}

type fakePostRepo struct {
	posts    []*model.Post
	likes    map[likeKey]bool
	comments []*model.PostComment
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{likes: map[likeKey]bool{}}
}

func (f *fakePostRepo) Create(post *model.Post) error {
	copied := *post
	f.posts = append(f.posts, &copied)
	return nil
}

func (f *fakePostRepo) ByID(id string) (*model.Post, error) {
	for _, post := range f.posts {
		if post.ID == id {
			copied := *post
			return &copied, nil
		}
	}
	return nil, repository.ErrPostNotFound
}

func (f *fakePostRepo) feedPost(post *model.Post, viewerID string) *model.FeedPost {
	enriched := &model.FeedPost{
		Post:       *post,
		AuthorName: "Author " + post.AuthorID,
	}
	for key := range f.likes {
		if key.postID == post.ID {
			enriched.LikeCount++
			if key.userID == viewerID {
				enriched.IsLiked = true
			}
		}
	}
	for _, comment := range f.comments {
		if comment.PostID == post.ID {
			enriched.CommentCount++
		}
	}
	return enriched
}

func (f *fakePostRepo) Feed(viewerID string) ([]*model.FeedPost, error) {
	var out []*model.FeedPost
	for _, post := range f.posts {
		out = append(out, f.feedPost(post, viewerID))
	}
	return out, nil
}

func (f *fakePostRepo) FeedByAuthor(authorID, viewerID string) ([]*model.FeedPost, error) {
	var out []*model.FeedPost
	for _, post := range f.posts {
		if post.AuthorID == authorID {
			out = append(out, f.feedPost(post, viewerID))
		}
	}
	return out, nil
}

func (f *fakePostRepo) InsertLike(postID, userID string) error {
	f.likes[likeKey{postID, userID}] = true
	return nil
}

func (f *fakePostRepo) DeleteLike(postID, userID string) (bool, error) {
	key := likeKey{postID, userID}
	if !f.likes[key] {
		return false, nil
	}
	delete(f.likes, key)
	return true, nil
}

func (f *fakePostRepo) LikeCount(postID string) (int, error) {
	count := 0
	for key := range f.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakePostRepo) CreateComment(comment *model.PostComment) error {
	copied := *comment
	f.comments = append(f.comments, &copied)
	return nil
}

func (f *fakePostRepo) Comments(postID string) ([]*model.CommentWithAuthor, error) {
	var out []*model.CommentWithAuthor
	for _, comment := range f.comments {
		if comment.PostID == postID {
			out = append(out, &model.CommentWithAuthor{
				PostComment: *comment,
				AuthorName:  "Author " + comment.AuthorID,
			})
		}
	}
	return out, nil
}

type followEdge struct {
	followerID, followingID string
}

type fakeFollowRepo struct {
	edges map[followEdge]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: map[followEdge]bool{}}
}

func (f *fakeFollowRepo) Insert(followerID, followingID string) error {
	f.edges[followEdge{followerID, followingID}] = true
	return nil
}

func (f *fakeFollowRepo) Delete(followerID, followingID string) (bool, error) {
	edge := followEdge{followerID, followingID}
	if !f.edges[edge] {
		return false, nil
	}
	delete(f.edges, edge)
	return true, nil
}

func (f *fakeFollowRepo) IsFollowing(followerID, followingID string) (bool, error) {
	return f.edges[followEdge{followerID, followingID}], nil
}

func (f *fakeFollowRepo) FollowerCount(userID string) (int, error) {
	count := 0
	for edge := range f.edges {
		if edge.followingID == userID {
			count++
		}
	}
	return count, nil
}
