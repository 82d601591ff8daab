package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/leaveease/leaveease-backend-go/internal/config"
	appHTTP "github.com/leaveease/leaveease-backend-go/internal/handler/http"
	"github.com/leaveease/leaveease-backend-go/internal/pkg/database"
	"github.com/leaveease/leaveease-backend-go/internal/pkg/email"
	holidayClient "github.com/leaveease/leaveease-backend-go/internal/pkg/holiday"
	"github.com/leaveease/leaveease-backend-go/internal/pkg/jwt"
	"github.com/leaveease/leaveease-backend-go/internal/repository/postgresql"
	authService "github.com/leaveease/leaveease-backend-go/internal/service/auth"
	employeeService "github.com/leaveease/leaveease-backend-go/internal/service/employee"
	"github.com/leaveease/leaveease-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	holidayProvider := holidayClient.NewClient(cfg.Holiday)
	calculator := leave.NewWorkdayCalculator(holidayProvider, cfg.Holiday.Country)
	ledger := leave.NewBalanceLedger(leaveRequestRepo)
	requestValidator := leave.NewRequestValidator(employeeRepo, leaveRequestRepo, calculator, ledger)
	requestService := leave.NewRequestService(txManager, employeeRepo, leaveRequestRepo, requestValidator, ledger)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(txManager, employeeRepo, userRepo, emailService, cfg.App, cfg.Leave)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	leaveHandler := appHTTP.NewLeaveHandler(requestService)

	router := appHTTP.NewRouter(JWTService, authHandler, employeeHandler, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
