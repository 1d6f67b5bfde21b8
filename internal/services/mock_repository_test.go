package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/campus-erp/records-service/internal/models"
	"github.com/campus-erp/records-service/internal/repositories"
)

// fakeRepository is an in-memory Repository shared by the service tests.
// Not-found and duplicate conditions surface as the same gorm errors the
// Postgres implementation translates to.
type fakeRepository struct {
	mu     sync.Mutex
	nextID uint

	admins     map[uint]*models.Admin
	students   map[uint]*models.Student
	details    map[uint]*models.StudentDetails
	faculties  map[uint]*models.Faculty
	courses    map[uint]*models.Course
	timetables []*models.Timetable
	attendance []*models.Attendance

	notices     []models.Notice
	assignments []models.Assignment
	pyqs        []models.PYQ
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		admins:    make(map[uint]*models.Admin),
		students:  make(map[uint]*models.Student),
		details:   make(map[uint]*models.StudentDetails),
		faculties: make(map[uint]*models.Faculty),
		courses:   make(map[uint]*models.Course),
	}
}

func (f *fakeRepository) id() uint {
	f.nextID++
	return f.nextID
}

// seed helpers

func (f *fakeRepository) addAdmin(a models.Admin) *models.Admin {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.id()
	f.admins[a.ID] = &a
	return &a
}

func (f *fakeRepository) addStudent(st models.Student) *models.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	st.ID = f.id()
	f.students[st.ID] = &st
	return &st
}

func (f *fakeRepository) addFaculty(fa models.Faculty) *models.Faculty {
	f.mu.Lock()
	defer f.mu.Unlock()
	fa.ID = f.id()
	f.faculties[fa.ID] = &fa
	return &fa
}

func (f *fakeRepository) addCourse(c models.Course) *models.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.id()
	f.courses[c.ID] = &c
	return &c
}

// aggregate interface

func (f *fakeRepository) Admin() repositories.AdminRepository     { return fakeAdminRepo{f} }
func (f *fakeRepository) Student() repositories.StudentRepository { return fakeStudentRepo{f} }
func (f *fakeRepository) StudentDetails() repositories.StudentDetailsRepository {
	return fakeStudentDetailsRepo{f}
}
func (f *fakeRepository) Faculty() repositories.FacultyRepository     { return fakeFacultyRepo{f} }
func (f *fakeRepository) Course() repositories.CourseRepository       { return fakeCourseRepo{f} }
func (f *fakeRepository) Timetable() repositories.TimetableRepository { return fakeTimetableRepo{f} }
func (f *fakeRepository) Attendance() repositories.AttendanceRepository {
	return fakeAttendanceRepo{f}
}
func (f *fakeRepository) Notice() repositories.NoticeRepository { return fakeNoticeRepo{f} }
func (f *fakeRepository) Assignment() repositories.AssignmentRepository {
	return fakeAssignmentRepo{f}
}
func (f *fakeRepository) PYQ() repositories.PYQRepository { return fakePYQRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// admins

type fakeAdminRepo struct{ f *fakeRepository }

func (r fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, a := range r.f.admins {
		if a.Email == admin.Email || a.EmpID == admin.EmpID {
			return gorm.ErrDuplicatedKey
		}
	}
	admin.ID = r.f.id()
	r.f.admins[admin.ID] = admin
	return nil
}

func (r fakeAdminRepo) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if a, ok := r.f.admins[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, a := range r.f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeAdminRepo) ExistsByEmailOrEmpID(ctx context.Context, email, empID string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, a := range r.f.admins {
		if a.Email == email || a.EmpID == empID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeAdminRepo) Update(ctx context.Context, admin *models.Admin) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.admins[admin.ID] = admin
	return nil
}

// students

type fakeStudentRepo struct{ f *fakeRepository }

func (r fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, st := range r.f.students {
		if st.Email == student.Email || st.URN == student.URN {
			return gorm.ErrDuplicatedKey
		}
	}
	student.ID = r.f.id()
	r.f.students[student.ID] = student
	return nil
}

func (r fakeStudentRepo) CreateBatch(ctx context.Context, students []models.Student) error {
	for i := range students {
		if err := r.Create(ctx, &students[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if st, ok := r.f.students[id]; ok {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeStudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, st := range r.f.students {
		if st.Email == email {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeStudentRepo) ExistsByEmailOrURN(ctx context.Context, email, urn string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, st := range r.f.students {
		if st.Email == email || st.URN == urn {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeStudentRepo) FindByNaturalKeys(ctx context.Context, emails, urns []string) ([]models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	inEmails := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		inEmails[e] = struct{}{}
	}
	inURNs := make(map[string]struct{}, len(urns))
	for _, u := range urns {
		inURNs[u] = struct{}{}
	}
	var out []models.Student
	for _, st := range r.f.students {
		if _, ok := inEmails[st.Email]; ok {
			out = append(out, *st)
			continue
		}
		if _, ok := inURNs[st.URN]; ok {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (r fakeStudentRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []models.Student
	for _, id := range ids {
		if st, ok := r.f.students[id]; ok {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (r fakeStudentRepo) ListByDepartment(ctx context.Context, department string) ([]models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []models.Student
	for _, st := range r.f.students {
		if st.Department == department {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (r fakeStudentRepo) Search(ctx context.Context, filters repositories.StudentSearchFilters) ([]models.Student, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	needle := strings.ToLower(filters.SearchString)
	var out []models.Student
	for _, st := range r.f.students {
		if needle != "" &&
			!strings.Contains(strings.ToLower(st.Name), needle) &&
			!strings.Contains(strings.ToLower(st.URN), needle) &&
			!strings.Contains(strings.ToLower(st.Email), needle) {
			continue
		}
		if filters.Semester != "" && st.Semester != filters.Semester {
			continue
		}
		if filters.Section != "" && st.Section != filters.Section {
			continue
		}
		out = append(out, *st)
	}
	return out, nil
}

func (r fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.students[student.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *student
	r.f.students[student.ID] = &cp
	return nil
}

// student details

type fakeStudentDetailsRepo struct{ f *fakeRepository }

func (r fakeStudentDetailsRepo) Create(ctx context.Context, details *models.StudentDetails) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.details[details.StudentID]; ok {
		return gorm.ErrDuplicatedKey
	}
	details.ID = r.f.id()
	r.f.details[details.StudentID] = details
	return nil
}

func (r fakeStudentDetailsRepo) GetByStudentID(ctx context.Context, studentID uint) (*models.StudentDetails, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if d, ok := r.f.details[studentID]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeStudentDetailsRepo) ExistsByStudentID(ctx context.Context, studentID uint) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	_, ok := r.f.details[studentID]
	return ok, nil
}

func (r fakeStudentDetailsRepo) Update(ctx context.Context, details *models.StudentDetails) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.details[details.StudentID] = details
	return nil
}

// faculties

type fakeFacultyRepo struct{ f *fakeRepository }

func (r fakeFacultyRepo) Create(ctx context.Context, faculty *models.Faculty) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, fa := range r.f.faculties {
		if fa.Email == faculty.Email || fa.EmpID == faculty.EmpID {
			return gorm.ErrDuplicatedKey
		}
	}
	faculty.ID = r.f.id()
	r.f.faculties[faculty.ID] = faculty
	return nil
}

func (r fakeFacultyRepo) CreateBatch(ctx context.Context, faculties []models.Faculty) error {
	for i := range faculties {
		if err := r.Create(ctx, &faculties[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r fakeFacultyRepo) GetByID(ctx context.Context, id uint) (*models.Faculty, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if fa, ok := r.f.faculties[id]; ok {
		return fa, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeFacultyRepo) GetByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, fa := range r.f.faculties {
		if fa.Email == email {
			return fa, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeFacultyRepo) ExistsByEmailOrEmpID(ctx context.Context, email, empID string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, fa := range r.f.faculties {
		if fa.Email == email || fa.EmpID == empID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeFacultyRepo) FindConflict(ctx context.Context, email, empID string, excludeID uint) (*models.Faculty, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, fa := range r.f.faculties {
		if fa.ID == excludeID {
			continue
		}
		if (email != "" && fa.Email == email) || (empID != "" && fa.EmpID == empID) {
			return fa, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeFacultyRepo) FindByNaturalKeys(ctx context.Context, emails, empIDs []string) ([]models.Faculty, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	inEmails := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		inEmails[e] = struct{}{}
	}
	inEmpIDs := make(map[string]struct{}, len(empIDs))
	for _, e := range empIDs {
		inEmpIDs[e] = struct{}{}
	}
	var out []models.Faculty
	for _, fa := range r.f.faculties {
		if _, ok := inEmails[fa.Email]; ok {
			out = append(out, *fa)
			continue
		}
		if _, ok := inEmpIDs[fa.EmpID]; ok {
			out = append(out, *fa)
		}
	}
	return out, nil
}

func (r fakeFacultyRepo) ListByDepartment(ctx context.Context, department string) ([]models.Faculty, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []models.Faculty
	for _, fa := range r.f.faculties {
		if fa.Department == department {
			out = append(out, *fa)
		}
	}
	return out, nil
}

func (r fakeFacultyRepo) ListTGByDepartment(ctx context.Context, department string) ([]models.Faculty, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []models.Faculty
	for _, fa := range r.f.faculties {
		if fa.Department == department && fa.IsTG {
			out = append(out, *fa)
		}
	}
	return out, nil
}

func (r fakeFacultyRepo) Update(ctx context.Context, faculty *models.Faculty) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.faculties[faculty.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *faculty
	r.f.faculties[faculty.ID] = &cp
	return nil
}

// courses

type fakeCourseRepo struct{ f *fakeRepository }

func (r fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, c := range r.f.courses {
		if c.CourseCode == course.CourseCode {
			return gorm.ErrDuplicatedKey
		}
	}
	course.ID = r.f.id()
	r.f.courses[course.ID] = course
	return nil
}

func (r fakeCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if c, ok := r.f.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeCourseRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Course, error) {
	return r.GetByID(ctx, id)
}

func (r fakeCourseRepo) GetByCode(ctx context.Context, courseCode string) (*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, c := range r.f.courses {
		if c.CourseCode == courseCode {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeCourseRepo) ExistsByCode(ctx context.Context, courseCode string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, c := range r.f.courses {
		if c.CourseCode == courseCode {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeCourseRepo) ListByDepartment(ctx context.Context, department string) ([]models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []models.Course
	for _, c := range r.f.courses {
		if c.Department == department {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.courses[course.ID] = course
	return nil
}

// timetables

type fakeTimetableRepo struct{ f *fakeRepository }

func (r fakeTimetableRepo) Upsert(ctx context.Context, timetable *models.Timetable) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for i, tt := range r.f.timetables {
		if tt.Department == timetable.Department && tt.Semester == timetable.Semester && tt.Section == timetable.Section {
			timetable.ID = tt.ID
			r.f.timetables[i] = timetable
			return nil
		}
	}
	timetable.ID = r.f.id()
	r.f.timetables = append(r.f.timetables, timetable)
	return nil
}

func (r fakeTimetableRepo) GetByScope(ctx context.Context, department string, semester models.Semester, section string) (*models.Timetable, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, tt := range r.f.timetables {
		if tt.Department == department && tt.Semester == semester && tt.Section == section {
			return tt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeTimetableRepo) List(ctx context.Context) ([]models.Timetable, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]models.Timetable, 0, len(r.f.timetables))
	for _, tt := range r.f.timetables {
		out = append(out, *tt)
	}
	return out, nil
}

// attendance

type fakeAttendanceRepo struct{ f *fakeRepository }

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r fakeAttendanceRepo) Create(ctx context.Context, attendance *models.Attendance) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	attendance.ID = r.f.id()
	r.f.attendance = append(r.f.attendance, attendance)
	return nil
}

func (r fakeAttendanceRepo) Exists(ctx context.Context, courseID, facultyID uint, date time.Time, periodNumber int) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, a := range r.f.attendance {
		if a.CourseID == courseID && a.FacultyID == facultyID &&
			sameDay(a.Date, date) && a.PeriodNumber == periodNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeAttendanceRepo) Find(ctx context.Context, filters repositories.AttendanceFilters) ([]models.Attendance, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []models.Attendance
	for _, a := range r.f.attendance {
		if filters.CourseID != nil && a.CourseID != *filters.CourseID {
			continue
		}
		if filters.FacultyID != nil && a.FacultyID != *filters.FacultyID {
			continue
		}
		if filters.Semester != "" && a.Semester != filters.Semester {
			continue
		}
		if filters.Section != "" && a.Section != filters.Section {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

// publications

type fakeNoticeRepo struct{ f *fakeRepository }

func (r fakeNoticeRepo) Create(ctx context.Context, notice *models.Notice) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, n := range r.f.notices {
		if n.NoticeNumber == notice.NoticeNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	notice.ID = r.f.id()
	r.f.notices = append(r.f.notices, *notice)
	return nil
}

func (r fakeNoticeRepo) ExistsByNumber(ctx context.Context, noticeNumber string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, n := range r.f.notices {
		if n.NoticeNumber == noticeNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeNoticeRepo) List(ctx context.Context) ([]models.Notice, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]models.Notice, len(r.f.notices))
	copy(out, r.f.notices)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

type fakeAssignmentRepo struct{ f *fakeRepository }

func (r fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, a := range r.f.assignments {
		if a.AssignmentID == assignment.AssignmentID {
			return gorm.ErrDuplicatedKey
		}
	}
	assignment.ID = r.f.id()
	r.f.assignments = append(r.f.assignments, *assignment)
	return nil
}

func (r fakeAssignmentRepo) ExistsByAssignmentID(ctx context.Context, assignmentID string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, a := range r.f.assignments {
		if a.AssignmentID == assignmentID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeAssignmentRepo) List(ctx context.Context) ([]models.Assignment, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]models.Assignment, len(r.f.assignments))
	copy(out, r.f.assignments)
	return out, nil
}

type fakePYQRepo struct{ f *fakeRepository }

func (r fakePYQRepo) Create(ctx context.Context, pyq *models.PYQ) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	pyq.ID = r.f.id()
	r.f.pyqs = append(r.f.pyqs, *pyq)
	return nil
}

func (r fakePYQRepo) ExistsForExam(ctx context.Context, courseID uint, examSession, examType string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, p := range r.f.pyqs {
		if p.CourseID == courseID && p.ExamSession == examSession && p.ExamType == examType {
			return true, nil
		}
	}
	return false, nil
}

func (r fakePYQRepo) ListByCourse(ctx context.Context, courseID uint) ([]models.PYQ, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []models.PYQ
	for _, p := range r.f.pyqs {
		if p.CourseID == courseID {
			out = append(out, p)
		}
	}
	return out, nil
}
