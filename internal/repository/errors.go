// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrDockNotFound is returned when a dock lookup matches no row.
var ErrDockNotFound = errors.New("dock not found")

// ErrAppointmentNotFound is returned when an appointment lookup matches
// no row.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ErrCarrierNotFound is returned when a carrier lookup matches no row.
var ErrCarrierNotFound = errors.New("carrier not found")

// ErrWarehouseNotFound is returned when a warehouse lookup matches no row.
var ErrWarehouseNotFound = errors.New("warehouse not found")

// ErrDuplicateCode is returned when creating a dock whose code already
// exists within the warehouse.
var ErrDuplicateCode = errors.New("dock code already exists")

// IsLockTimeout reports whether the error is a MySQL lock wait timeout or
// deadlock, the two driver errors the write path maps to a retryable
// contention failure.
func IsLockTimeout(err error) bool {
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        // 1205 = lock wait timeout exceeded, 1213 = deadlock found.
        return me.Number == 1205 || me.Number == 1213
    }
    return false
}
