// Package controllers holds the HTTP handlers. Controllers bind and
// validate requests, call the matching service and translate errors via
// middleware.HandleAPIError.
//
// Controllers defined in this package:
//   - AuthController: login, token refresh, logout and password changes
//   - AcademicController: academic years, semesters, departments, programs,
//     batches, classrooms, subjects and courses
//   - StudentController: admissions, attendance, discipline and performance
//   - FacultyController: faculty records and workload
//   - TimetableController: weekly slots with conflict protection
//   - ExaminationController: exams, schedules, grade bands and results
//   - HallTicketController: eligibility, hall tickets, ID cards, seating
//     and public QR verification
//   - FeeController: fee structures, payments, discounts and dues
//   - LibraryController: catalogue, loans, fines and reservations
//   - HostelController: hostels, rooms and allocations
//   - TransportController: routes, stops and subscriptions
//   - WizardController: bulk import, promotion, publication and reminders
//   - DashboardController: aggregate counters
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter. On failure it writes
// the validation error response and reports false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body. On failure it writes the validation
// error response and reports false.
func bindJSON(ctx *gin.Context, target interface{}) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}
