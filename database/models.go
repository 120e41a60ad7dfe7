package database

import (
	"time"

	"gorm.io/gorm"
)

// User represents a staff member who can log into the system
type User struct {
	gorm.Model
	TenantID     string `json:"tenant_id" gorm:"index"`
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"index"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Phone        string `json:"phone"`
}

// Customer represents a rental customer (person or company)
type Customer struct {
	gorm.Model
	TenantID string `json:"tenant_id" gorm:"index"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
}

// Vehicle represents a fleet vehicle
type Vehicle struct {
	gorm.Model
	TenantID       string  `json:"tenant_id" gorm:"index"`
	Plate          string  `json:"plate" gorm:"index"`
	Brand          string  `json:"brand"`
	VehicleModel   string  `json:"model" gorm:"column:model"`
	Year           int     `json:"year"`
	Type           string  `json:"type"`
	Status         string  `json:"status"`
	Mileage        int     `json:"mileage"`
	InitialMileage int     `json:"initial_mileage"`
	TankCapacity   float64 `json:"tank_capacity"`
	DailyRate      float64 `json:"daily_rate"`
}

// Contract represents a rental agreement for one or more vehicles
type Contract struct {
	gorm.Model
	TenantID             string    `json:"tenant_id" gorm:"index"`
	Number               string    `json:"number" gorm:"index"`
	CustomerID           uint      `json:"customer_id"`
	VehicleID            *uint     `json:"vehicle_id"`
	DailyRate            float64   `json:"daily_rate"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	Status               string    `json:"status"`
	KmLimit              int       `json:"km_limit"`
	PricePerExcessKm     float64   `json:"price_per_excess_km"`
	PricePerLiter        float64   `json:"price_per_liter"`
	UsesMultipleVehicles bool      `json:"uses_multiple_vehicles"`
	// Recurrence settings are nullable together; a contract without
	// RecurrenceType never generates recurring costs.
	RecurrenceType *string           `json:"recurrence_type"`
	RecurrenceDay  *int              `json:"recurrence_day"`
	AutoRenew      *bool             `json:"auto_renew"`
	Notes          string            `json:"notes"`
	Customer       Customer          `gorm:"foreignKey:CustomerID" json:"customer"`
	Vehicle        *Vehicle          `gorm:"foreignKey:VehicleID" json:"vehicle"`
	Vehicles       []ContractVehicle `gorm:"foreignKey:ContractID" json:"vehicles"`
}

// ContractVehicle links a multi-vehicle contract to one of its vehicles.
// Unique per (contract, vehicle) pair.
type ContractVehicle struct {
	gorm.Model
	TenantID   string  `json:"tenant_id" gorm:"index"`
	ContractID uint    `json:"contract_id" gorm:"index:idx_contract_vehicle,unique"`
	VehicleID  uint    `json:"vehicle_id" gorm:"index:idx_contract_vehicle,unique"`
	DailyRate  float64 `json:"daily_rate"`
	Vehicle    Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle"`
}

// Inspection records vehicle condition at check-in or check-out
type Inspection struct {
	gorm.Model
	TenantID    string       `json:"tenant_id" gorm:"index"`
	VehicleID   uint         `json:"vehicle_id" gorm:"index"`
	ContractID  *uint        `json:"contract_id"`
	InspectorID *uint        `json:"inspector_id"`
	Type        string       `json:"type"`
	Mileage     int          `json:"mileage"`
	FuelLevel   float64      `json:"fuel_level"`
	Notes       string       `json:"notes"`
	PhotoURL    string       `json:"photo_url"`
	InspectedAt time.Time    `json:"inspected_at"`
	Damages     []DamageItem `gorm:"foreignKey:InspectionID" json:"damages"`
	Vehicle     Vehicle      `gorm:"foreignKey:VehicleID" json:"vehicle"`
}

// DamageItem is a single damage found during an inspection
type DamageItem struct {
	gorm.Model
	InspectionID   uint   `json:"inspection_id" gorm:"index"`
	Location       string `json:"location"`
	DamageType     string `json:"damage_type"`
	Severity       string `json:"severity"`
	RequiresRepair bool   `json:"requires_repair"`
	PhotoURL       string `json:"photo_url"`
}

// Cost is a billable line item, either entered by staff or derived
// automatically when a contract finalizes or recurs
type Cost struct {
	gorm.Model
	TenantID    string     `json:"tenant_id" gorm:"index"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Origin      string     `json:"origin"`
	ContractID  *uint      `json:"contract_id" gorm:"index"`
	VehicleID   *uint      `json:"vehicle_id"`
	CustomerID  *uint      `json:"customer_id"`
	DueDate     *time.Time `json:"due_date"`
	// PeriodKey identifies the billing period of a recurring cost (e.g.
	// "2026-08" for monthly) so generation stays idempotent.
	PeriodKey string    `json:"period_key" gorm:"index"`
	Contract  *Contract `gorm:"foreignKey:ContractID" json:"contract"`
	Vehicle   *Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle"`
	Customer  *Customer `gorm:"foreignKey:CustomerID" json:"customer"`
}

// Supplier represents a parts/services supplier
type Supplier struct {
	gorm.Model
	TenantID string `json:"tenant_id" gorm:"index"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

// Part represents an inventory item
type Part struct {
	gorm.Model
	TenantID     string    `json:"tenant_id" gorm:"index"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku" gorm:"index"`
	Quantity     int       `json:"quantity"`
	MinimumStock int       `json:"minimum_stock"`
	UnitCost     float64   `json:"unit_cost"`
	SupplierID   *uint     `json:"supplier_id"`
	Supplier     *Supplier `gorm:"foreignKey:SupplierID" json:"supplier"`
}

// PurchaseOrder represents an order placed with a supplier
type PurchaseOrder struct {
	gorm.Model
	TenantID   string              `json:"tenant_id" gorm:"index"`
	Number     string              `json:"number"`
	SupplierID uint                `json:"supplier_id"`
	Status     string              `json:"status"`
	Notes      string              `json:"notes"`
	Supplier   Supplier            `gorm:"foreignKey:SupplierID" json:"supplier"`
	Items      []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items"`
}

// PurchaseOrderItem is a single line of a purchase order
type PurchaseOrderItem struct {
	gorm.Model
	PurchaseOrderID uint    `json:"purchase_order_id" gorm:"index"`
	PartID          uint    `json:"part_id"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	Part            Part    `gorm:"foreignKey:PartID" json:"part"`
}

// Payment records the settlement of a cost through the payment gateway
type Payment struct {
	gorm.Model
	TenantID       string  `json:"tenant_id" gorm:"index"`
	CostID         uint    `json:"cost_id" gorm:"index"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	ProviderOrder  string  `json:"provider_order_id"`
	TransactionID  string  `json:"transaction_id"`
	PaymentDetails string  `json:"payment_details"`
	Cost           Cost    `gorm:"foreignKey:CostID" json:"cost"`
}

// Notification represents a system notification for a user
type Notification struct {
	gorm.Model
	TenantID    string `json:"tenant_id" gorm:"index"`
	UserID      uint   `json:"user_id" gorm:"index"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	RelatedID   *uint  `json:"related_id"`
	RelatedType string `json:"related_type"`
	IsRead      bool   `json:"is_read"`
}

// Constants for status values
const (
	ContractStatusActive    = "active"
	ContractStatusFinalized = "finalized"
	ContractStatusCancelled = "cancelled"

	VehicleStatusAvailable   = "available"
	VehicleStatusInUse       = "in_use"
	VehicleStatusMaintenance = "maintenance"
	VehicleStatusInactive    = "inactive"

	CostStatusPending    = "pending"
	CostStatusAuthorized = "authorized"
	CostStatusPaid       = "paid"

	CostCategoryExcessKm    = "excess_km"
	CostCategoryFuel        = "fuel"
	CostCategoryMaintenance = "maintenance"
	CostCategoryRecurring   = "recurring"
	CostCategoryDamage      = "damage"
	CostCategoryOther       = "other"

	CostOriginManual    = "manual"
	CostOriginAutomatic = "automatic"

	InspectionTypeCheckIn  = "check_in"
	InspectionTypeCheckOut = "check_out"

	DamageSeverityLow    = "low"
	DamageSeverityMedium = "medium"
	DamageSeverityHigh   = "high"

	PurchaseOrderStatusDraft     = "draft"
	PurchaseOrderStatusOrdered   = "ordered"
	PurchaseOrderStatusReceived  = "received"
	PurchaseOrderStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"

	RecurrenceMonthly = "monthly"
	RecurrenceWeekly  = "weekly"
	RecurrenceYearly  = "yearly"

	// User roles
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleInspector = "inspector"
)
