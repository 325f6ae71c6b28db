package db

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleDepartmentHead Role = "department_head"
	RoleTeacher        Role = "teacher"
	RoleStudent        Role = "student"
)

type SessionStatus string

const (
	SessionStatusPlanned   SessionStatus = "planned"
	SessionStatusHeld      SessionStatus = "held"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusMakeup    SessionStatus = "makeup"
)

type AbsenceStatus string

const (
	AbsenceStatusUnjustified   AbsenceStatus = "unjustified"
	AbsenceStatusPendingReview AbsenceStatus = "pending_review"
	AbsenceStatusJustified     AbsenceStatus = "justified"
)

type RoomType string

const (
	RoomTypeLecture RoomType = "lecture"
	RoomTypeLab     RoomType = "lab"
	RoomTypeAmphi   RoomType = "amphi"
	RoomTypeOther   RoomType = "other"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
}

// Principal is a user resolved together with its role profile. Profile
// fields are populated depending on Role and empty otherwise.
type Principal struct {
	UserID       string
	Role         Role
	StudentID    string
	GroupID      string
	TeacherID    string
	DepartmentID string
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Specialty struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
}

type Level struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SpecialtyID string `json:"specialtyId"`
}

type Group struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LevelID string `json:"levelId"`
}

type Subject struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	LevelID     string  `json:"levelId"`
	TeacherID   string  `json:"teacherId"`
	Coefficient float64 `json:"coefficient"`
}

type Room struct {
	ID       string   `json:"id"`
	Code     string   `json:"code"`
	Type     RoomType `json:"type"`
	Capacity int      `json:"capacity"`
}

type TeacherProfile struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	DepartmentID string  `json:"departmentId"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

type StudentProfile struct {
	ID          string
	UserID      string
	GroupID     string
	SpecialtyID string
}

// TeacherOption is a teacher row shaped for selection lists.
type TeacherOption struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type DepartmentHeadProfile struct {
	ID           string
	UserID       string
	DepartmentID string
}

type Session struct {
	ID          string
	Date        time.Time
	StartsAt    time.Time
	EndsAt      time.Time
	RoomID      string
	SubjectID   string
	GroupID     string
	TeacherID   string
	Status      SessionStatus
	Semester    string
	WeekDay     int
	IsRecurring bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionDetail carries a session with the display fields read models need.
type SessionDetail struct {
	Session
	SubjectName  string
	GroupName    string
	RoomCode     string
	TeacherName  string
	DepartmentID string
}

type Absence struct {
	ID                string
	StudentID         string
	SessionID         string
	Reason            string
	Status            AbsenceStatus
	JustificationText *string
	ReviewerID        *string
	ReviewNotes       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AbsenceDetail materialises the session, subject, teacher and student
// around an absence row for the role-scoped list views.
type AbsenceDetail struct {
	Absence
	SessionDate    time.Time
	SessionStartAt time.Time
	SessionEndAt   time.Time
	SubjectName    string
	TeacherID      string
	TeacherUserID  string
	TeacherName    string
	StudentUserID  string
	StudentName    string
	GroupID        string
	GroupName      string
	DepartmentID   string
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID *string   `json:"relatedId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationStats struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
}

// DependentCount reports one kind of blocking dependent on delete.
type DependentCount struct {
	Kind  string
	Count int64
}

// StudentAbsenceCount is one row of the department summary / alert scan.
type StudentAbsenceCount struct {
	StudentID     string `json:"studentId"`
	StudentUserID string `json:"-"`
	StudentName   string `json:"studentName"`
	GroupName     string `json:"groupName"`
	Unjustified   int64  `json:"unjustified"`
}
