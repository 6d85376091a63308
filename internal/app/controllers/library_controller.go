package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
)

// LibraryController handles the catalogue, loans and reservations
type LibraryController struct {
	libraryService *services.LibraryService
}

// NewLibraryController creates a new LibraryController
func NewLibraryController(libraryService *services.LibraryService) *LibraryController {
	return &LibraryController{libraryService: libraryService}
}

// AddBook adds a title to the catalogue
// @Summary Add a book
// @Tags library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Book"
// @Success 201 {object} dto.APIResponse{data=models.Book} "Added"
// @Router /books [post]
func (c *LibraryController) AddBook(ctx *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	book, err := c.libraryService.AddBook(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(book, "Book added"))
}

// SearchBooks searches the catalogue
// @Summary Search books
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param search query string false "Title, author or ISBN"
// @Success 200 {object} dto.APIResponse{data=[]models.Book}
// @Router /books [get]
func (c *LibraryController) SearchBooks(ctx *gin.Context) {
	books, err := c.libraryService.SearchBooks(ctx, ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(books, ""))
}

// IssueBook lends a copy to a student
// @Summary Issue a book
// @Tags library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IssueBookRequest true "Loan"
// @Success 201 {object} dto.APIResponse{data=models.BookIssue} "Issued"
// @Failure 409 {object} dto.ErrorResponse "No copies available"
// @Router /book-issues [post]
func (c *LibraryController) IssueBook(ctx *gin.Context) {
	var req dto.IssueBookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	issue, err := c.libraryService.IssueBook(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(issue, "Book issued"))
}

// ReturnBook closes a loan
// @Summary Return a book
// @Description Closes the loan and reports the fine for late returns
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReturnBookResponse}
// @Failure 409 {object} dto.ErrorResponse "Issue already closed"
// @Router /book-issues/{id}/return [post]
func (c *LibraryController) ReturnBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.libraryService.ReturnBook(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "Book returned"))
}

// ReserveBook places a hold on a title
// @Summary Reserve a book
// @Tags library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReserveBookRequest true "Reservation"
// @Success 201 {object} dto.APIResponse{data=models.BookReservation} "Reserved"
// @Failure 409 {object} dto.ErrorResponse "Copies are available"
// @Router /book-reservations [post]
func (c *LibraryController) ReserveBook(ctx *gin.Context) {
	var req dto.ReserveBookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	reservation, err := c.libraryService.ReserveBook(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(reservation, "Book reserved"))
}

// CancelReservation cancels a pending hold
// @Summary Cancel a reservation
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} dto.APIResponse "Cancelled"
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /book-reservations/{id} [delete]
func (c *LibraryController) CancelReservation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.libraryService.CancelReservation(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Reservation cancelled"))
}
