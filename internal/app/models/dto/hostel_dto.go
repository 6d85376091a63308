package dto

// CreateHostelRequest creates a residence building
type CreateHostelRequest struct {
	Name     string `json:"name" binding:"required" example:"North Block"`
	Code     string `json:"code" binding:"required" example:"NB"`
	Warden   string `json:"warden"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// CreateHostelRoomRequest adds a room to a hostel
type CreateHostelRoomRequest struct {
	HostelID int64  `json:"hostelId" binding:"required"`
	Number   string `json:"number" binding:"required" example:"N-204"`
	Floor    int    `json:"floor"`
	Capacity int    `json:"capacity" binding:"required,min=1" example:"3"`
}

// AllocateRoomRequest assigns a student to a room
type AllocateRoomRequest struct {
	RoomID    int64 `json:"roomId" binding:"required"`
	StudentID int64 `json:"studentId" binding:"required"`
}

// CreateTransportRouteRequest creates a bus route with its stops
type CreateTransportRouteRequest struct {
	Name          string                 `json:"name" binding:"required"`
	Code          string                 `json:"code" binding:"required"`
	VehicleNumber string                 `json:"vehicleNumber"`
	DriverName    string                 `json:"driverName"`
	Capacity      int                    `json:"capacity" binding:"required,min=1" example:"40"`
	MonthlyFee    float64                `json:"monthlyFee" binding:"min=0" example:"1200"`
	Stops         []TransportStopRequest `json:"stops" binding:"dive"`
}

// TransportStopRequest is one pickup point inside a route creation request
type TransportStopRequest struct {
	Name     string  `json:"name" binding:"required" example:"Clock Tower"`
	Sequence int     `json:"sequence"`
	PickupAt float64 `json:"pickupAt" example:"7.75"`
}

// SubscribeTransportRequest enrols a student on a route at a stop
type SubscribeTransportRequest struct {
	RouteID   int64 `json:"routeId" binding:"required"`
	StopID    int64 `json:"stopId" binding:"required"`
	StudentID int64 `json:"studentId" binding:"required"`
}
