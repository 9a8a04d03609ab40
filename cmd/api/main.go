package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/wagebook/wagebook-backend-go/internal/config"
	appHTTP "github.com/wagebook/wagebook-backend-go/internal/handler/http"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/database"
	"github.com/wagebook/wagebook-backend-go/internal/repository/postgresql"
	importerService "github.com/wagebook/wagebook-backend-go/internal/service/importer"
	profileService "github.com/wagebook/wagebook-backend-go/internal/service/mappingprofile"
	runService "github.com/wagebook/wagebook-backend-go/internal/service/payrollrun"
	"github.com/wagebook/wagebook-backend-go/internal/service/statutory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	employeeRepo := postgresql.NewEmployeeRepository(db)
	runRepo := postgresql.NewRunRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	detailRepo := postgresql.NewDetailRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	engine := statutory.NewEngine()
	importSvc := importerService.NewImportService(
		txRunner,
		employeeRepo,
		runRepo,
		attendanceRepo,
		detailRepo,
		engine,
		logger,
	)
	profileSvc := profileService.NewProfileService(profileRepo)
	runSvc := runService.NewRunService(runRepo, attendanceRepo, detailRepo)

	importHandler := appHTTP.NewImportHandler(importSvc, profileSvc, cfg.Import.MaxUploadBytes)
	profileHandler := appHTTP.NewMappingProfileHandler(profileSvc)
	runHandler := appHTTP.NewPayrollRunHandler(runSvc)

	router := appHTTP.NewRouter(importHandler, profileHandler, runHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
