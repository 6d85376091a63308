package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/controllers"
	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	academicController *controllers.AcademicController,
	studentController *controllers.StudentController,
	facultyController *controllers.FacultyController,
	timetableController *controllers.TimetableController,
	examinationController *controllers.ExaminationController,
	hallTicketController *controllers.HallTicketController,
	feeController *controllers.FeeController,
	libraryController *controllers.LibraryController,
	hostelController *controllers.HostelController,
	transportController *controllers.TransportController,
	wizardController *controllers.WizardController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Public verification routes (QR scans land here) ---
	verify := v1.Group("/verify")
	{
		verify.GET("/hall-ticket/:number", hallTicketController.VerifyHallTicket)
		verify.GET("/id-card/:number", hallTicketController.VerifyIDCard)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/change-password", authController.ChangePassword)

		// Academic structure: reads for everyone, writes for admins
		authenticated.GET("/academic-years", academicController.ListAcademicYears)
		authenticated.GET("/academic-years/current", academicController.GetCurrentYear)
		authenticated.GET("/academic-years/:id/semesters", academicController.ListSemesters)
		authenticated.GET("/departments", academicController.ListDepartments)
		authenticated.GET("/programs", academicController.ListPrograms)
		authenticated.GET("/classrooms", academicController.ListClassrooms)
		authenticated.GET("/courses", academicController.ListCourses)

		academicAdmin := authenticated.Group("")
		academicAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			academicAdmin.POST("/academic-years", academicController.CreateAcademicYear)
			academicAdmin.PUT("/academic-years/:id", academicController.UpdateAcademicYear)
			academicAdmin.PATCH("/academic-years/:id/status", academicController.ChangeYearStatus)
			academicAdmin.POST("/semesters", academicController.CreateSemester)
			academicAdmin.POST("/departments", academicController.CreateDepartment)
			academicAdmin.POST("/programs", academicController.CreateProgram)
			academicAdmin.POST("/batches", academicController.CreateBatch)
			academicAdmin.PATCH("/batches/:id/status", academicController.ChangeBatchStatus)
			academicAdmin.POST("/classrooms", academicController.CreateClassroom)
			academicAdmin.POST("/subjects", academicController.CreateSubject)
			academicAdmin.POST("/courses", academicController.CreateCourse)
		}

		// Students
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.GET("/:id", studentController.GetStudent)
			students.GET("/:id/attendance", studentController.AttendanceSummary)
			students.GET("/:id/performance", studentController.Performance)
			students.GET("/:id/fee-payments", feeController.ListPayments)
			students.GET("/:id/fee-due/:structureId", feeController.StudentDue)

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				studentsAdmin.POST("", studentController.AdmitStudent)
				studentsAdmin.PUT("/:id", studentController.UpdateStudent)
				studentsAdmin.PATCH("/:id/status", studentController.ChangeStudentStatus)
			}
		}

		// Attendance and discipline: faculty records, admins resolve
		attendanceProtected := authenticated.Group("")
		attendanceProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty))
		{
			attendanceProtected.POST("/attendance", studentController.MarkAttendance)
			attendanceProtected.POST("/discipline", studentController.ReportDiscipline)
		}
		disciplineAdmin := authenticated.Group("")
		disciplineAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			disciplineAdmin.PATCH("/discipline/:id", studentController.ResolveDiscipline)
		}

		// Faculty
		faculty := authenticated.Group("/faculty")
		{
			faculty.GET("", facultyController.ListFaculty)
			faculty.GET("/:id", facultyController.GetFaculty)
			faculty.GET("/:id/workload", facultyController.Workload)

			facultyAdmin := faculty.Group("")
			facultyAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				facultyAdmin.POST("", facultyController.HireFaculty)
				facultyAdmin.PUT("/:id", facultyController.UpdateFaculty)
				facultyAdmin.PATCH("/:id/status", facultyController.ChangeFacultyStatus)
			}
		}

		// Timetable: reads open, writes admin-only
		timetable := authenticated.Group("/timetable")
		{
			timetable.GET("", timetableController.ListEntries)

			timetableAdmin := timetable.Group("")
			timetableAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				timetableAdmin.POST("", timetableController.CreateEntry)
				timetableAdmin.PUT("/:id", timetableController.UpdateEntry)
				timetableAdmin.DELETE("/:id", timetableController.DeleteEntry)
			}
		}

		// Examinations and results
		examinations := authenticated.Group("/examinations")
		{
			examinations.GET("", examinationController.ListExaminations)
			examinations.GET("/:id", examinationController.GetExamination)
			examinations.GET("/:id/schedules", examinationController.ListSchedules)
			examinations.GET("/:id/results", examinationController.ListResults)
			examinations.GET("/:id/eligibility/:studentId", hallTicketController.CheckEligibility)
			examinations.GET("/:id/seating", hallTicketController.GetSeating)

			examFacultyProtected := examinations.Group("")
			examFacultyProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty))
			{
				examFacultyProtected.POST("/:id/results", examinationController.EnterResult)
			}

			examAdmin := examinations.Group("")
			examAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				examAdmin.POST("", examinationController.CreateExamination)
				examAdmin.PATCH("/:id/status", examinationController.ChangeExamStatus)
				examAdmin.POST("/:id/schedules", examinationController.AddSchedule)
				examAdmin.POST("/:id/seating", hallTicketController.GenerateSeating)
			}
		}

		authenticated.GET("/grade-bands", examinationController.ListGradeBands)

		gradeBandsAdmin := authenticated.Group("/grade-bands")
		gradeBandsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			gradeBandsAdmin.POST("", examinationController.CreateGradeBand)
		}

		results := authenticated.Group("/results")
		results.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty))
		{
			results.PUT("/:resultId", examinationController.CorrectResult)
			results.PATCH("/:resultId/status", examinationController.ChangeResultStatus)
		}

		// Hall tickets and ID cards
		hallTickets := authenticated.Group("/hall-tickets")
		{
			hallTickets.GET("/:id", hallTicketController.GetHallTicket)
			hallTickets.GET("/:id/qr", hallTicketController.HallTicketQR)

			hallTicketsAdmin := hallTickets.Group("")
			hallTicketsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				hallTicketsAdmin.POST("", hallTicketController.GenerateHallTicket)
				hallTicketsAdmin.PATCH("/:id/status", hallTicketController.ChangeTicketStatus)
			}
		}

		idCardsAdmin := authenticated.Group("/id-cards")
		idCardsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			idCardsAdmin.POST("", hallTicketController.IssueIDCard)
		}

		// Fees
		authenticated.GET("/fee-structures", feeController.ListStructures)
		authenticated.GET("/fee-structures/:id", feeController.GetStructure)

		feesAdmin := authenticated.Group("")
		feesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			feesAdmin.POST("/fee-structures", feeController.CreateStructure)
			feesAdmin.POST("/fee-payments", feeController.RecordPayment)
			feesAdmin.PATCH("/fee-payments/:id/status", feeController.ChangePaymentStatus)
			feesAdmin.POST("/fee-discounts", feeController.CreateDiscount)
			feesAdmin.POST("/fee-discounts/apply", feeController.ApplyDiscount)
		}

		// Library
		authenticated.GET("/books", libraryController.SearchBooks)

		libraryAdmin := authenticated.Group("")
		libraryAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			libraryAdmin.POST("/books", libraryController.AddBook)
			libraryAdmin.POST("/book-issues", libraryController.IssueBook)
			libraryAdmin.POST("/book-issues/:id/return", libraryController.ReturnBook)
		}
		authenticated.POST("/book-reservations", libraryController.ReserveBook)
		authenticated.DELETE("/book-reservations/:id", libraryController.CancelReservation)

		// Hostel
		hostelAdmin := authenticated.Group("")
		hostelAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			hostelAdmin.POST("/hostels", hostelController.CreateHostel)
			hostelAdmin.POST("/hostel-rooms", hostelController.AddRoom)
			hostelAdmin.POST("/hostel-allocations", hostelController.AllocateRoom)
			hostelAdmin.POST("/hostel-allocations/:id/vacate", hostelController.VacateRoom)
		}
		authenticated.GET("/hostels/:id/rooms", hostelController.ListRooms)

		// Transport
		authenticated.GET("/transport-routes", transportController.ListRoutes)
		authenticated.GET("/transport-routes/:id", transportController.GetRoute)

		transportAdmin := authenticated.Group("")
		transportAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			transportAdmin.POST("/transport-routes", transportController.CreateRoute)
			transportAdmin.POST("/transport-subscriptions", transportController.Subscribe)
			transportAdmin.PATCH("/transport-subscriptions/:id/status", transportController.ChangeSubscriptionStatus)
		}

		// Bulk wizards (admin only)
		wizards := authenticated.Group("/wizards")
		wizards.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			wizards.POST("/import-students", wizardController.ImportStudents)
			wizards.POST("/promote-students", wizardController.PromoteStudents)
			wizards.POST("/publish-results", wizardController.PublishResults)
			wizards.POST("/hall-tickets", wizardController.BulkHallTickets)
			wizards.POST("/id-cards", wizardController.BulkIDCards)
			wizards.POST("/fee-reminders", wizardController.SendFeeReminders)
		}

		// Dashboard
		dashboard := authenticated.Group("/dashboard")
		dashboard.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty))
		{
			dashboard.GET("", dashboardController.Summary)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}, ""))
	})

	// Swagger routes are registered separately via SetupSwagger
}
