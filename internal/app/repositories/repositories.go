package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	SequenceRepository     *SequenceRepository
	AcademicYearRepository *AcademicYearRepository
	CatalogRepository      *CatalogRepository
	CourseRepository       *CourseRepository
	StudentRepository      *StudentRepository
	FacultyRepository      *FacultyRepository
	TimetableRepository    *TimetableRepository
	ExaminationRepository  *ExaminationRepository
	HallTicketRepository   *HallTicketRepository
	FeeRepository          *FeeRepository
	LibraryRepository      *LibraryRepository
	HostelRepository       *HostelRepository
	TransportRepository    *TransportRepository
	DashboardRepository    *DashboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		SequenceRepository:     NewSequenceRepository(db),
		AcademicYearRepository: NewAcademicYearRepository(db),
		CatalogRepository:      NewCatalogRepository(db),
		CourseRepository:       NewCourseRepository(db),
		StudentRepository:      NewStudentRepository(db),
		FacultyRepository:      NewFacultyRepository(db),
		TimetableRepository:    NewTimetableRepository(db),
		ExaminationRepository:  NewExaminationRepository(db),
		HallTicketRepository:   NewHallTicketRepository(db),
		FeeRepository:          NewFeeRepository(db),
		LibraryRepository:      NewLibraryRepository(db),
		HostelRepository:       NewHostelRepository(db),
		TransportRepository:    NewTransportRepository(db),
		DashboardRepository:    NewDashboardRepository(db),
	}
}
