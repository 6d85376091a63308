package models

import "time"

// TransportRoute defines a bus route in the 'transport_routes' table
type TransportRoute struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name" example:"Route 7 - City Centre"`
	Code          string  `json:"code" db:"code" example:"RT7"`
	VehicleNumber string  `json:"vehicleNumber,omitempty" db:"vehicle_number"`
	DriverName    string  `json:"driverName,omitempty" db:"driver_name"`
	Capacity      int     `json:"capacity" db:"capacity" example:"40"`
	MonthlyFee    float64 `json:"monthlyFee" db:"monthly_fee" example:"1200"`
	Active        bool    `json:"active" db:"active"`

	Stops []TransportStop `json:"stops,omitempty"`
}

// TransportStop is one pickup point on a route, ordered by Sequence
type TransportStop struct {
	ID       int64   `json:"id" db:"id"`
	RouteID  int64   `json:"routeId" db:"route_id"`
	Name     string  `json:"name" db:"name" example:"Clock Tower"`
	Sequence int     `json:"sequence" db:"sequence"`
	PickupAt float64 `json:"pickupAt" db:"pickup_at" example:"7.75"`
}

// Transport subscription statuses
const (
	SubscriptionActive    Status = "active"
	SubscriptionSuspended Status = "suspended"
	SubscriptionClosed    Status = "closed"
)

// TransportSubscriptionTransitions lists the legal status changes for
// transport subscriptions
var TransportSubscriptionTransitions = map[Status][]Status{
	SubscriptionActive:    {SubscriptionSuspended, SubscriptionClosed},
	SubscriptionSuspended: {SubscriptionActive, SubscriptionClosed},
}

// TransportSubscription assigns a student to a route and stop in the
// 'transport_subscriptions' table
type TransportSubscription struct {
	ID        int64      `json:"id" db:"id"`
	RouteID   int64      `json:"routeId" db:"route_id"`
	StopID    int64      `json:"stopId" db:"stop_id"`
	StudentID int64      `json:"studentId" db:"student_id"`
	StartDate time.Time  `json:"startDate" db:"start_date"`
	EndDate   *time.Time `json:"endDate,omitempty" db:"end_date"`
	Status    Status     `json:"status" db:"status" example:"active"`

	Route *TransportRoute `json:"route,omitempty"`
	Stop  *TransportStop  `json:"stop,omitempty"`
}
