package dto

// CreateBookRequest adds a title to the catalogue
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	ISBN        string `json:"isbn" binding:"required"`
	Publisher   string `json:"publisher"`
	Category    string `json:"category"`
	TotalCopies int    `json:"totalCopies" binding:"required,min=1" example:"5"`
}

// IssueBookRequest lends a copy to a student
type IssueBookRequest struct {
	BookID    int64 `json:"bookId" binding:"required"`
	StudentID int64 `json:"studentId" binding:"required"`
	LoanDays  int   `json:"loanDays" example:"14"`
}

// ReserveBookRequest places a hold on a title
type ReserveBookRequest struct {
	BookID    int64 `json:"bookId" binding:"required"`
	StudentID int64 `json:"studentId" binding:"required"`
}

// ReturnBookResponse reports the outcome of a return, including any fine
type ReturnBookResponse struct {
	IssueID int64   `json:"issueId"`
	Fine    float64 `json:"fine" example:"15"`
	Overdue bool    `json:"overdue"`
}
