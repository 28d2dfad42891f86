package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/config"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/database"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/handler"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/queue"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/repository"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/router"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/scheduling"
)

func main() {
    // Load .env if present; real deployments set env vars directly.
    if err := godotenv.Load(); err != nil {
        log.Println("no .env file found, relying on environment")
    }
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }
    defer db.Close()

    // Redis is optional: nil disables response caching and rate limiting.
    rdb := config.NewRedisClient()

    open, err := scheduling.ParseClock(cfg.DockOpen)
    if err != nil {
        log.Fatalf("invalid DOCK_OPEN %q: %v", cfg.DockOpen, err)
    }
    closeMin, err := scheduling.ParseClock(cfg.DockClose)
    if err != nil {
        log.Fatalf("invalid DOCK_CLOSE %q: %v", cfg.DockClose, err)
    }
    grid := handler.GridConfig{
        GranularityMin: cfg.SlotGranularityMin,
        Operating:      scheduling.OperatingWindow{OpenMinute: open, CloseMinute: closeMin},
    }

    dockRepo := repository.NewDockRepo(db)
    apptRepo := repository.NewAppointmentRepo(db)
    carrierRepo := repository.NewCarrierRepo(db)
    warehouseRepo := repository.NewWarehouseRepo(db)

    dockHandler := handler.NewDockHandler(dockRepo, warehouseRepo)
    apptHandler := handler.NewAppointmentHandler(apptRepo, dockRepo, carrierRepo, cfg.LockTimeout)
    availHandler := handler.NewAvailabilityHandler(apptRepo, dockRepo, carrierRepo, warehouseRepo, grid)

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAPI(e, dockHandler, apptHandler, availHandler, cfg.JWTSecret, rdb)

    // Drain the load-plan link queue in the background.  The consumer
    // reconnects on its own; a dead broker never blocks HTTP serving.
    go func() {
        if err := queue.StartLinkedConsumer(); err != nil {
            log.Printf("loadplan consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
