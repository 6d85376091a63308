package models

import "fmt"

// Seats assigned per room during auto-generation
const SeatsPerRoom = 30

// SeatAllocation defines one student's seat for an examination in the
// 'seat_allocations' table. The (examination, room, seat) triple and the
// (examination, student) pair are each unique.
type SeatAllocation struct {
	ID            int64  `json:"id" db:"id"`
	ExaminationID int64  `json:"examinationId" db:"examination_id"`
	StudentID     int64  `json:"studentId" db:"student_id"`
	RoomLabel     string `json:"roomLabel" db:"room_label" example:"R001"`
	SeatLabel     string `json:"seatLabel" db:"seat_label" example:"S017"`

	Student *Student `json:"student,omitempty"`
}

// RoomLabel renders a 1-based room index as "R001"
func RoomLabel(room int) string {
	return fmt.Sprintf("R%03d", room)
}

// SeatLabel renders a 1-based seat index as "S017"
func SeatLabel(seat int) string {
	return fmt.Sprintf("S%03d", seat)
}

// GenerateSeating assigns seats to students in registration order, filling
// each room before opening the next. Seat numbering restarts at S001 in
// every room.
func GenerateSeating(examinationID int64, studentIDs []int64) []SeatAllocation {
	allocations := make([]SeatAllocation, 0, len(studentIDs))
	for i, studentID := range studentIDs {
		room := i/SeatsPerRoom + 1
		seat := i%SeatsPerRoom + 1
		allocations = append(allocations, SeatAllocation{
			ExaminationID: examinationID,
			StudentID:     studentID,
			RoomLabel:     RoomLabel(room),
			SeatLabel:     SeatLabel(seat),
		})
	}
	return allocations
}
