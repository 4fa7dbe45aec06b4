package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetclinic/clinic-system/internal/api/handler"
	"github.com/vetclinic/clinic-system/internal/api/middleware"
	"github.com/vetclinic/clinic-system/internal/core/ports"
	"github.com/vetclinic/clinic-system/pkg/token"
)

// RouterConfig carries the wired dependencies the HTTP layer needs. Services
// are built in main so their lifecycles (audit dispatcher, admin bootstrap)
// stay outside the router.
type RouterConfig struct {
	DB           *mongo.Database
	Redis        *redis.Client
	Issuer       *token.Issuer
	Auth         ports.AuthService
	Appointments ports.AppointmentService
	Clinic       ports.ClinicService
	Pets         ports.PetRepository
	Vets         ports.VetRepository
	Owners       ports.OwnerRepository
	Services     ports.ServiceRepository
	Records      ports.MedicalRecordRepository
	Specialties  ports.SpecialtyRepository
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("vetclinic"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	appointmentHandler := handler.NewAppointmentHandler(cfg.Appointments)
	clinicHandler := handler.NewClinicHandler(cfg.Clinic)
	petHandler := handler.NewPetHandler(cfg.Pets)
	vetHandler := handler.NewVetHandler(cfg.Vets)
	ownerHandler := handler.NewOwnerHandler(cfg.Owners)
	serviceHandler := handler.NewServiceHandler(cfg.Services)
	recordHandler := handler.NewMedicalRecordHandler(cfg.Records, cfg.Pets, cfg.Vets)
	specialtyHandler := handler.NewSpecialtyHandler(cfg.Specialties)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DB, cfg.Redis)

	// --- Public routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Protected routes ---
	auth := middleware.Auth(cfg.Issuer)
	api := e.Group("/api", auth)

	appointments := api.Group("/appointments")
	appointments.GET("", appointmentHandler.List, middleware.RBAC(middleware.OpAppointmentsRead))
	appointments.GET("/:id", appointmentHandler.Get, middleware.RBAC(middleware.OpAppointmentsRead))
	appointments.POST("", appointmentHandler.Create, middleware.RBAC(middleware.OpAppointmentsWrite))
	appointments.PUT("/:id/status", appointmentHandler.UpdateStatus, middleware.RBAC(middleware.OpAppointmentsWrite))
	appointments.DELETE("/:id", appointmentHandler.Cancel, middleware.RBAC(middleware.OpAppointmentsWrite))

	api.GET("/clinic/stats", clinicHandler.Stats, middleware.RBAC(middleware.OpClinicStatsRead))

	catalogRead := middleware.RBAC(middleware.OpCatalogRead)
	catalogWrite := middleware.RBAC(middleware.OpCatalogWrite)

	pets := api.Group("/pets")
	pets.GET("", petHandler.List, catalogRead)
	pets.GET("/:id", petHandler.Get, catalogRead)
	pets.POST("", petHandler.Create, catalogWrite)
	pets.PUT("/:id", petHandler.Update, catalogWrite)
	pets.DELETE("/:id", petHandler.Delete, catalogWrite)

	vets := api.Group("/vets")
	vets.GET("", vetHandler.List, catalogRead)
	vets.GET("/:id", vetHandler.Get, catalogRead)
	vets.POST("", vetHandler.Create, catalogWrite)
	vets.PUT("/:id", vetHandler.Update, catalogWrite)
	vets.DELETE("/:id", vetHandler.Delete, catalogWrite)

	owners := api.Group("/owners")
	owners.GET("", ownerHandler.List, catalogRead)
	owners.GET("/:id", ownerHandler.Get, catalogRead)
	owners.POST("", ownerHandler.Create, catalogWrite)
	owners.PUT("/:id", ownerHandler.Update, catalogWrite)
	owners.DELETE("/:id", ownerHandler.Delete, catalogWrite)

	specialties := api.Group("/specialties")
	specialties.GET("", specialtyHandler.List, catalogRead)
	specialties.GET("/:id", specialtyHandler.Get, catalogRead)
	specialties.POST("", specialtyHandler.Create, catalogWrite)
	specialties.PUT("/:id", specialtyHandler.Update, catalogWrite)
	specialties.DELETE("/:id", specialtyHandler.Delete, catalogWrite)

	records := api.Group("/medical-records")
	records.GET("", recordHandler.List, middleware.RBAC(middleware.OpMedicalRecordRead))
	records.GET("/:id", recordHandler.Get, middleware.RBAC(middleware.OpMedicalRecordRead))
	records.GET("/pet/:petId", recordHandler.ListByPet, middleware.RBAC(middleware.OpMedicalRecordRead))
	records.POST("", recordHandler.Create, middleware.RBAC(middleware.OpMedicalRecordWrite))

	services := api.Group("/services")
	services.GET("", serviceHandler.List, catalogRead)
	services.GET("/:id", serviceHandler.Get, catalogRead)
	services.POST("", serviceHandler.Create, catalogWrite)
	services.PUT("/:id", serviceHandler.Update, catalogWrite)
	services.DELETE("/:id", serviceHandler.Delete, catalogWrite)

	return e
}
