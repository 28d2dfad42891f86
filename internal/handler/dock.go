package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/repository"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/scheduling"
)

// DockHandler serves the dock registry endpoints.
type DockHandler struct {
    docks      *repository.DockRepo
    warehouses *repository.WarehouseRepo
}

// NewDockHandler builds the handler and panics on nil dependencies,
// surfacing wiring mistakes at startup rather than on first request.
func NewDockHandler(docks *repository.DockRepo, warehouses *repository.WarehouseRepo) *DockHandler {
    if docks == nil || warehouses == nil {
        panic("handler: nil repository passed to NewDockHandler")
    }
    return &DockHandler{docks: docks, warehouses: warehouses}
}

type createDockRequest struct {
    Code             string   `json:"code"`
    Name             string   `json:"name"`
    WarehouseID      uint64   `json:"warehouse_id"`
    Type             string   `json:"type"`
    MaxVehicleLength *float64 `json:"max_vehicle_length_m"`
    MaxVehicleHeight *float64 `json:"max_vehicle_height_m"`
    HasLeveler       bool     `json:"has_leveler"`
    HasSeal          bool     `json:"has_seal"`
    Equipment        []string `json:"equipment"`
}

// CreateDock registers a new dock.  New docks start in the available
// status; the code is unique per warehouse and immutable afterwards.
func (h *DockHandler) CreateDock(c echo.Context) error {
    var req createDockRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Code == "" || req.Name == "" || req.WarehouseID == 0 {
        return respondEngineError(c, scheduling.Validationf("code, name and warehouse_id are required"))
    }
    if !model.ValidDockType(req.Type) {
        return respondEngineError(c, scheduling.Validationf("invalid dock type %q", req.Type))
    }
    if (req.MaxVehicleLength != nil && *req.MaxVehicleLength <= 0) ||
        (req.MaxVehicleHeight != nil && *req.MaxVehicleHeight <= 0) {
        return respondEngineError(c, scheduling.Validationf("vehicle limits must be positive"))
    }

    ctx := c.Request().Context()
    ok, err := h.warehouses.Exists(ctx, req.WarehouseID)
    if err != nil {
        return respondEngineError(c, err)
    }
    if !ok {
        return respondEngineError(c, repository.ErrWarehouseNotFound)
    }

    equipment := req.Equipment
    if equipment == nil {
        equipment = []string{}
    }
    dock := &model.Dock{
        Code:             req.Code,
        Name:             req.Name,
        WarehouseID:      req.WarehouseID,
        Type:             req.Type,
        Status:           model.DockStatusAvailable,
        MaxVehicleLength: req.MaxVehicleLength,
        MaxVehicleHeight: req.MaxVehicleHeight,
        HasLeveler:       req.HasLeveler,
        HasSeal:          req.HasSeal,
        Equipment:        equipment,
    }
    if err := h.docks.Create(ctx, dock); err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusCreated, dock)
}

// ListDocks returns docks filtered by optional warehouse_id, type and
// status query parameters, ordered by code.
func (h *DockHandler) ListDocks(c echo.Context) error {
    warehouseID, err := parseUintQuery(c, "warehouse_id")
    if err != nil {
        return respondEngineError(c, err)
    }
    dockType := c.QueryParam("type")
    if dockType != "" && !model.ValidDockType(dockType) {
        return respondEngineError(c, scheduling.Validationf("invalid dock type %q", dockType))
    }
    status := c.QueryParam("status")
    if status != "" && !model.ValidDockStatus(status) {
        return respondEngineError(c, scheduling.Validationf("invalid dock status %q", status))
    }

    docks, err := h.docks.List(c.Request().Context(), warehouseID, dockType, status)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": docks})
}

type updateDockRequest struct {
    Name             *string  `json:"name"`
    Type             *string  `json:"type"`
    Status           *string  `json:"status"`
    MaxVehicleLength *float64 `json:"max_vehicle_length_m"`
    MaxVehicleHeight *float64 `json:"max_vehicle_height_m"`
    HasLeveler       *bool    `json:"has_leveler"`
    HasSeal          *bool    `json:"has_seal"`
    Equipment        []string `json:"equipment"`
}

// UpdateDock applies a partial edit to a dock.  Code and warehouse are
// immutable.  Setting the status here is the operator override path
// (maintenance, closed); appointment transitions manage the
// occupied/available flip on their own.
func (h *DockHandler) UpdateDock(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return respondEngineError(c, scheduling.Validationf("invalid dock id"))
    }
    var req updateDockRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    ctx := c.Request().Context()
    dock, err := h.docks.GetByID(ctx, id)
    if err != nil {
        return respondEngineError(c, err)
    }
    if req.Name != nil {
        if *req.Name == "" {
            return respondEngineError(c, scheduling.Validationf("name must not be empty"))
        }
        dock.Name = *req.Name
    }
    if req.Type != nil {
        if !model.ValidDockType(*req.Type) {
            return respondEngineError(c, scheduling.Validationf("invalid dock type %q", *req.Type))
        }
        dock.Type = *req.Type
    }
    if req.Status != nil {
        if !model.ValidDockStatus(*req.Status) {
            return respondEngineError(c, scheduling.Validationf("invalid dock status %q", *req.Status))
        }
        dock.Status = *req.Status
    }
    if req.MaxVehicleLength != nil {
        if *req.MaxVehicleLength <= 0 {
            return respondEngineError(c, scheduling.Validationf("max_vehicle_length_m must be positive"))
        }
        dock.MaxVehicleLength = req.MaxVehicleLength
    }
    if req.MaxVehicleHeight != nil {
        if *req.MaxVehicleHeight <= 0 {
            return respondEngineError(c, scheduling.Validationf("max_vehicle_height_m must be positive"))
        }
        dock.MaxVehicleHeight = req.MaxVehicleHeight
    }
    if req.HasLeveler != nil {
        dock.HasLeveler = *req.HasLeveler
    }
    if req.HasSeal != nil {
        dock.HasSeal = *req.HasSeal
    }
    if req.Equipment != nil {
        dock.Equipment = req.Equipment
    }

    if err := h.docks.Update(ctx, dock); err != nil {
        return respondEngineError(c, err)
    }
    updated, err := h.docks.GetByID(ctx, id)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, updated)
}
