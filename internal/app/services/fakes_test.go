package services

import (
	"context"
	"sort"
	"strconv"

	"github.com/nivedpm/hostelhub/internal/app/models"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
)

// fakeUserRepo is an in-memory IUserRepository for service tests.
type fakeUserRepo struct {
	users  []*models.User
	nextID int64
	err    error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{nextID: 1}
	for _, u := range users {
		copied := *u
		if copied.ID == 0 {
			copied.ID = repo.nextID
		}
		if copied.ID >= repo.nextID {
			repo.nextID = copied.ID + 1
		}
		repo.users = append(repo.users, &copied)
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.AdmissionNumber == user.AdmissionNumber {
			return apperrors.ErrDuplicateAdmission
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *fakeUserRepo) GetByAdmissionNumber(_ context.Context, admissionNumber string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.AdmissionNumber == admissionNumber {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) AdmissionNumberExists(ctx context.Context, admissionNumber string) (bool, error) {
	u, err := r.GetByAdmissionNumber(ctx, admissionNumber)
	return u != nil, err
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	for i, u := range r.users {
		if u.ID == user.ID {
			copied := *user
			r.users[i] = &copied
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateProfilePhoto(_ context.Context, id int64, filename string) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			u.ProfilePhoto = filename
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

func (r *fakeUserRepo) ListCards(_ context.Context) ([]models.UserCard, error) {
	if r.err != nil {
		return nil, r.err
	}
	cards := make([]models.UserCard, 0, len(r.users))
	for _, u := range r.users {
		cards = append(cards, models.UserCard{
			AdmissionNumber: u.AdmissionNumber,
			Name:            u.Name,
			Sem:             u.Sem,
			RoomNo:          u.RoomNo,
		})
	}
	return cards, nil
}

func (r *fakeUserRepo) ListRooms(_ context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	seen := map[string]bool{}
	var rooms []string
	for _, u := range r.users {
		if u.RoomNo != "" && !seen[u.RoomNo] {
			seen[u.RoomNo] = true
			rooms = append(rooms, u.RoomNo)
		}
	}
	sort.Strings(rooms)
	return rooms, nil
}

func (r *fakeUserRepo) ListByRoom(_ context.Context, roomNo string) ([]models.UserCard, error) {
	if r.err != nil {
		return nil, r.err
	}
	var cards []models.UserCard
	for _, u := range r.users {
		if u.RoomNo == roomNo {
			cards = append(cards, models.UserCard{
				AdmissionNumber: u.AdmissionNumber,
				Name:            u.Name,
				Sem:             u.Sem,
				RoomNo:          u.RoomNo,
			})
		}
	}
	return cards, nil
}

func (r *fakeUserRepo) ListSemesters(_ context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	seen := map[string]bool{}
	var sems []string
	for _, u := range r.users {
		if u.Sem != "" && !seen[u.Sem] {
			seen[u.Sem] = true
			sems = append(sems, u.Sem)
		}
	}
	sort.Strings(sems)
	return sems, nil
}

func (r *fakeUserRepo) ListBySemester(_ context.Context, sem string) ([]models.StudentInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	var students []models.StudentInfo
	for _, u := range r.users {
		if u.Sem == sem {
			students = append(students, studentInfo(u))
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}

func (r *fakeUserRepo) ListStudents(_ context.Context) ([]models.StudentInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	var students []models.StudentInfo
	for _, u := range r.users {
		if u.Role == models.RoleStudent {
			students = append(students, studentInfo(u))
		}
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].Sem != students[j].Sem {
			return students[i].Sem < students[j].Sem
		}
		return students[i].Name < students[j].Name
	})
	return students, nil
}

func (r *fakeUserRepo) ListNonAdmin(_ context.Context) ([]models.StudentInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	var students []models.StudentInfo
	for _, u := range r.users {
		if u.Role != models.RoleAdmin {
			students = append(students, studentInfo(u))
		}
	}
	return students, nil
}

func (r *fakeUserRepo) ListBranchSem(_ context.Context) ([]models.BranchSem, error) {
	if r.err != nil {
		return nil, r.err
	}
	entries := make([]models.BranchSem, 0, len(r.users))
	for _, u := range r.users {
		entries = append(entries, models.BranchSem{
			AdmissionNumber: u.AdmissionNumber,
			Branch:          u.Branch,
			Sem:             u.Sem,
		})
	}
	return entries, nil
}

func (r *fakeUserRepo) CountStudents(_ context.Context) (int64, int64, error) {
	if r.err != nil {
		return 0, 0, r.err
	}
	var total int64
	rooms := map[string]bool{}
	for _, u := range r.users {
		if u.Role == models.RoleStudent {
			total++
			if u.RoomNo != "" {
				rooms[u.RoomNo] = true
			}
		}
	}
	return total, int64(len(rooms)), nil
}

func studentInfo(u *models.User) models.StudentInfo {
	return models.StudentInfo{
		AdmissionNumber: u.AdmissionNumber,
		Name:            u.Name,
		Branch:          u.Branch,
		Sem:             u.Sem,
		Year:            u.Year,
		RoomNo:          u.RoomNo,
	}
}

// fakeAttendanceRepo is an in-memory IAttendanceRepository.
type fakeAttendanceRepo struct {
	records map[string]map[string]models.AttendanceRecord // date -> admission -> record
	err     error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]map[string]models.AttendanceRecord)}
}

func (r *fakeAttendanceRepo) UpsertBatch(_ context.Context, date string, records []models.AttendanceRecord) error {
	if r.err != nil {
		return r.err
	}
	byAdmission, ok := r.records[date]
	if !ok {
		byAdmission = make(map[string]models.AttendanceRecord)
		r.records[date] = byAdmission
	}
	for _, rec := range records {
		byAdmission[rec.AdmissionNumber] = rec
	}
	return nil
}

func (r *fakeAttendanceRepo) ListByDate(_ context.Context, date string) ([]models.AttendanceRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	var records []models.AttendanceRecord
	for _, rec := range r.records[date] {
		records = append(records, rec)
	}
	return records, nil
}

// fakeMesscutRepo is an in-memory IMesscutRepository.
type fakeMesscutRepo struct {
	requests []models.MesscutRequest
	nextID   int
	err      error
}

func newFakeMesscutRepo(requests ...models.MesscutRequest) *fakeMesscutRepo {
	return &fakeMesscutRepo{requests: requests, nextID: len(requests) + 1}
}

func (r *fakeMesscutRepo) Create(_ context.Context, request *models.MesscutRequest) error {
	if r.err != nil {
		return r.err
	}
	if request.ID == "" {
		request.ID = "mc-" + strconv.Itoa(r.nextID)
		r.nextID++
	}
	r.requests = append(r.requests, *request)
	return nil
}

func (r *fakeMesscutRepo) UpdateStatus(_ context.Context, id, status string) error {
	if r.err != nil {
		return r.err
	}
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests[i].Status = status
			return nil
		}
	}
	return apperrors.ErrMesscutNotFound
}

func (r *fakeMesscutRepo) ListAccepted(_ context.Context, admissionNo string) ([]models.MesscutRequest, error) {
	if r.err != nil {
		return nil, r.err
	}
	var accepted []models.MesscutRequest
	for _, req := range r.requests {
		if req.Status != models.MesscutStatusAccepted {
			continue
		}
		if admissionNo != "" && req.AdmissionNo != admissionNo {
			continue
		}
		accepted = append(accepted, req)
	}
	return accepted, nil
}

func (r *fakeMesscutRepo) ListAcceptedByStudent(_ context.Context, admissionNo string) ([]models.MesscutRequest, error) {
	if r.err != nil {
		return nil, r.err
	}
	var accepted []models.MesscutRequest
	for i := len(r.requests) - 1; i >= 0; i-- {
		req := r.requests[i]
		if req.Status == models.MesscutStatusAccepted && req.AdmissionNo == admissionNo {
			accepted = append(accepted, req)
		}
	}
	return accepted, nil
}
