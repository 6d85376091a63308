package models

import "time"

// Hostel defines a residence building in the 'hostels' table
type Hostel struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name" example:"North Block"`
	Code     string `json:"code" db:"code" example:"NB"`
	Warden   string `json:"warden,omitempty" db:"warden"`
	Capacity int    `json:"capacity" db:"capacity"`
	Active   bool   `json:"active" db:"active"`
}

// HostelRoom defines a room in the 'hostel_rooms' table. Occupied tracks
// live allocations against Capacity.
type HostelRoom struct {
	ID       int64  `json:"id" db:"id"`
	HostelID int64  `json:"hostelId" db:"hostel_id"`
	Number   string `json:"number" db:"number" example:"N-204"`
	Floor    int    `json:"floor" db:"floor"`
	Capacity int    `json:"capacity" db:"capacity" example:"3"`
	Occupied int    `json:"occupied" db:"occupied"`
	Active   bool   `json:"active" db:"active"`

	Hostel *Hostel `json:"hostel,omitempty"`
}

// HasVacancy reports whether the room can take another allocation
func (r *HostelRoom) HasVacancy() bool {
	return r.Occupied < r.Capacity
}

// Hostel allocation statuses
const (
	AllocationActive  Status = "active"
	AllocationVacated Status = "vacated"
)

// HostelAllocationTransitions lists the legal status changes for allocations
var HostelAllocationTransitions = map[Status][]Status{
	AllocationActive: {AllocationVacated},
}

// HostelAllocation defines a student's room assignment in the
// 'hostel_allocations' table. A student holds at most one active allocation.
type HostelAllocation struct {
	ID          int64      `json:"id" db:"id"`
	RoomID      int64      `json:"roomId" db:"room_id"`
	StudentID   int64      `json:"studentId" db:"student_id"`
	AllocatedOn time.Time  `json:"allocatedOn" db:"allocated_on"`
	VacatedOn   *time.Time `json:"vacatedOn,omitempty" db:"vacated_on"`
	Status      Status     `json:"status" db:"status" example:"active"`

	Room    *HostelRoom `json:"room,omitempty"`
	Student *Student    `json:"student,omitempty"`
}
