package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted under /api/v1.
type Handlers struct {
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Employee   EmployeeHandler
	Calendar   CalendarHandler
}

func NewRouter(cfg config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			// Self-service reads for the token's employee
			r.Route("/my", func(r chi.Router) {
				r.Get("/attendance", h.Attendance.GetMyAttendance)
				r.Get("/payslips", h.Payroll.GetMyPayslips)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequireHR)

				r.Get("/", h.Attendance.List)
				r.Post("/import", h.Attendance.Import)
				r.Post("/manual", h.Attendance.ManualEntry)
				r.With(middleware.RequireAdmin).Delete("/", h.Attendance.Purge)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Attendance.Get)
					r.Put("/overtime", h.Attendance.ApproveOvertime)
					r.Post("/recalculate", h.Attendance.Recalculate)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireHR)

				r.Route("/batches", func(r chi.Router) {
					r.Get("/", h.Payroll.ListBatches)
					r.Post("/", h.Payroll.CreateBatch)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Payroll.GetBatch)
						r.Post("/compute", h.Payroll.ComputeBatch)
						r.Post("/finalize", h.Payroll.FinalizeBatch)
						r.Post("/void", h.Payroll.VoidBatch)
						r.Delete("/", h.Payroll.DeleteBatch)
						r.Get("/export", h.Payroll.ExportBankFile)
					})
				})

				r.Get("/entries/{id}", h.Payroll.GetEntry)
				r.Put("/deductions/{id}/waive", h.Payroll.WaiveDeduction)

				r.Route("/components", func(r chi.Router) {
					r.Get("/", h.Payroll.ListComponents)
					r.Post("/", h.Payroll.CreateComponent)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				// Employees may read their own record; the service rejects anything else.
				r.Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)

					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/gratuity", h.Employee.Gratuity)
					r.Put("/{id}/bank", h.Employee.UpdateBankDetails)

					r.Post("/{id}/deductions", h.Employee.AssignDeduction)
					r.Get("/{id}/deductions", h.Employee.ListDeductions)
					r.Delete("/deductions/{id}", h.Employee.DeactivateDeduction)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/holidays", h.Calendar.MonthView)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)

					r.Post("/holidays", h.Calendar.CreateHoliday)
					r.Delete("/holidays/{id}", h.Calendar.DeleteHoliday)
					r.Get("/settings", h.Calendar.GetSettings)
					r.Put("/settings", h.Calendar.UpdateSettings)
				})
			})
		})
	})

	return r
}
